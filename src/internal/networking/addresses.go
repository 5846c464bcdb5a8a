package networking

import (
	stderrors "errors"
	"fmt"

	"github.com/vishvananda/netlink"
	"golang.org/x/sys/unix"

	"github.com/maksimkurb/keen-tap/src/internal/errors"
	"github.com/maksimkurb/keen-tap/src/internal/log"
)

// AddressFlusher removes every IP address bound to an interface.
// Flushed addresses are not remembered anywhere.
type AddressFlusher struct {
	nl       Netlinker
	resolver *Resolver
}

func NewAddressFlusher(nl Netlinker, resolver *Resolver) *AddressFlusher {
	return &AddressFlusher{nl: nl, resolver: resolver}
}

// Flush deletes all IPv4 and IPv6 addresses of the interface and returns how many were removed.
func (f *AddressFlusher) Flush(name string) (int, error) {
	link, err := f.resolver.Link(name)
	if err != nil {
		return 0, err
	}

	addrs, err := f.nl.AddrList(link, netlink.FAMILY_ALL)
	if err != nil {
		return 0, errors.NewTransportError(name, "failed to list addresses", err)
	}

	removed := 0
	for i := range addrs {
		addr := &addrs[i]
		log.Debugf("Deleting address %s from %s", addr.IPNet, name)

		if err := f.nl.AddrDel(link, addr); err != nil {
			// Secondary addresses go away together with their primary.
			if stderrors.Is(err, unix.EADDRNOTAVAIL) || classifyKernelError(err) == kernelErrNotPresent {
				log.Debugf("Address %s is already gone from %s", addr.IPNet, name)
				continue
			}
			return removed, errors.NewTransportError(name, fmt.Sprintf("failed to delete address %s", addr.IPNet), err)
		}
		removed++
	}

	return removed, nil
}
