package networking

import (
	"github.com/vishvananda/netlink"

	"github.com/maksimkurb/keen-tap/src/internal/errors"
	"github.com/maksimkurb/keen-tap/src/internal/log"
)

// IngressQdisc adds and removes the ingress qdisc (ffff:) of an interface.
type IngressQdisc struct {
	nl       Netlinker
	resolver *Resolver
}

func NewIngressQdisc(nl Netlinker, resolver *Resolver) *IngressQdisc {
	return &IngressQdisc{nl: nl, resolver: resolver}
}

// BuildIngressQdisc returns the ingress qdisc for the given link index.
func BuildIngressQdisc(linkIndex int) *netlink.Ingress {
	return &netlink.Ingress{
		QdiscAttrs: netlink.QdiscAttrs{
			LinkIndex: linkIndex,
			Handle:    netlink.MakeHandle(0xffff, 0),
			Parent:    netlink.HANDLE_INGRESS,
		},
	}
}

// DelIfExists removes the ingress qdisc together with every filter attached to it.
//
// A missing interface or a missing qdisc is not an error. The kernel answers a delete of
// an absent ingress qdisc with EINVAL, so presence is checked with a qdisc dump first.
// Delete failures are logged as warnings and swallowed; only scan failures are returned.
func (q *IngressQdisc) DelIfExists(name string) (bool, error) {
	link, err := q.resolver.Link(name)
	if err != nil {
		if errors.IsNotFound(err) {
			log.Infof("Interface %s does not exist, nothing to remove", name)
			return false, nil
		}
		return false, err
	}

	present, err := q.hasIngress(name, link)
	if err != nil {
		return false, err
	}
	if !present {
		log.Infof("No ingress qdisc on %s", name)
		return false, nil
	}

	index := link.Attrs().Index
	log.Debugf("Deleting ingress qdisc from %s (idx=%d)", name, index)
	if err := q.nl.QdiscDel(BuildIngressQdisc(index)); err != nil {
		if classifyKernelError(err) == kernelErrNotPresent {
			log.Infof("No ingress qdisc on %s", name)
		} else {
			log.Warnf("Failed to delete ingress qdisc from %s: %v", name, err)
		}
		return false, nil
	}

	log.Infof("Removed ingress qdisc from %s", name)
	return true, nil
}

// AddIfNotExists attaches an ingress qdisc. An existing one is reported with a warning
// and (false, nil).
func (q *IngressQdisc) AddIfNotExists(name string) (bool, error) {
	index, err := q.resolver.Resolve(name)
	if err != nil {
		return false, err
	}

	log.Debugf("Adding ingress qdisc to %s (idx=%d)", name, index)
	if err := q.nl.QdiscAdd(BuildIngressQdisc(index)); err != nil {
		if classifyKernelError(err) == kernelErrExists {
			log.Warnf("Ingress qdisc already exists on %s", name)
			return false, nil
		}
		return false, errors.NewTransportError(name, "failed to add ingress qdisc", err)
	}

	log.Infof("Added ingress qdisc to %s", name)
	return true, nil
}

// IsExists reports whether an ingress qdisc is attached to the interface.
func (q *IngressQdisc) IsExists(name string) (bool, error) {
	link, err := q.resolver.Link(name)
	if err != nil {
		return false, err
	}
	return q.hasIngress(name, link)
}

func (q *IngressQdisc) hasIngress(name string, link netlink.Link) (bool, error) {
	qdiscs, err := q.nl.QdiscList(link)
	if err != nil {
		return false, errors.NewTransportError(name, "failed to list qdiscs", err)
	}

	for _, qdisc := range qdiscs {
		attrs := qdisc.Attrs()
		if attrs.LinkIndex == link.Attrs().Index && attrs.Parent == netlink.HANDLE_INGRESS && qdisc.Type() == "ingress" {
			return true, nil
		}
	}
	return false, nil
}
