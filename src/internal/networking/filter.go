package networking

import (
	"fmt"

	"github.com/vishvananda/netlink"
	"golang.org/x/sys/unix"

	"github.com/maksimkurb/keen-tap/src/internal/errors"
	"github.com/maksimkurb/keen-tap/src/internal/log"
)

// MirrorFilter installs the ingress redirect from one interface to its peer.
type MirrorFilter struct {
	nl       Netlinker
	resolver *Resolver
}

func NewMirrorFilter(nl Netlinker, resolver *Resolver) *MirrorFilter {
	return &MirrorFilter{nl: nl, resolver: resolver}
}

// BuildMirrorFilter returns a match-all u32 filter on the ingress qdisc of linkIndex whose
// single action redirects every frame to the egress of peerIndex
// (tc filter add dev X parent ffff: protocol all u32 match u32 0 0 action mirred egress redirect dev Y).
func BuildMirrorFilter(linkIndex, peerIndex int) *netlink.U32 {
	return &netlink.U32{
		FilterAttrs: netlink.FilterAttrs{
			LinkIndex: linkIndex,
			Parent:    netlink.MakeHandle(0xffff, 0),
			Priority:  1,
			Protocol:  unix.ETH_P_ALL,
		},
		Actions: []netlink.Action{
			netlink.NewMirredAction(peerIndex),
		},
	}
}

// Redirect installs the filter on name pointing at peer. Both names are resolved on every call.
func (f *MirrorFilter) Redirect(name, peer string) error {
	index, err := f.resolver.Resolve(name)
	if err != nil {
		return err
	}
	peerIndex, err := f.resolver.Resolve(peer)
	if err != nil {
		return err
	}

	log.Debugf("Adding mirror filter %s (idx=%d) -> %s (idx=%d)", name, index, peer, peerIndex)
	if err := f.nl.FilterAdd(BuildMirrorFilter(index, peerIndex)); err != nil {
		return errors.NewTransportError(name, fmt.Sprintf("failed to add mirror filter to %s", peer), err)
	}

	log.Infof("Mirroring ingress of %s to %s", name, peer)
	return nil
}

// RedirectTargets returns the peer indices every ingress redirect on the interface points at.
func (f *MirrorFilter) RedirectTargets(name string) ([]int, error) {
	link, err := f.resolver.Link(name)
	if err != nil {
		return nil, err
	}

	filters, err := f.nl.FilterList(link, netlink.MakeHandle(0xffff, 0))
	if err != nil {
		if classifyKernelError(err) == kernelErrNotPresent {
			return nil, nil
		}
		return nil, errors.NewTransportError(name, "failed to list ingress filters", err)
	}

	var targets []int
	for _, filter := range filters {
		u32, ok := filter.(*netlink.U32)
		if !ok {
			continue
		}
		for _, action := range u32.Actions {
			mirred, ok := action.(*netlink.MirredAction)
			if ok && mirred.MirredAction == netlink.TCA_EGRESS_REDIR {
				targets = append(targets, mirred.Ifindex)
			}
		}
	}
	return targets, nil
}
