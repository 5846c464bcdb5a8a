package networking

import (
	"github.com/vishvananda/netlink"

	"github.com/maksimkurb/keen-tap/src/internal/errors"
	"github.com/maksimkurb/keen-tap/src/internal/log"
)

// Resolver maps interface names to kernel links.
//
// Nothing is cached: every call lists the links again, so an interface that was
// deleted and re-created between two calls resolves to its new index.
type Resolver struct {
	nl Netlinker
}

func NewResolver(nl Netlinker) *Resolver {
	return &Resolver{nl: nl}
}

// Resolve returns the current kernel index of the named interface.
func (r *Resolver) Resolve(name string) (int, error) {
	link, err := r.Link(name)
	if err != nil {
		return 0, err
	}
	return link.Attrs().Index, nil
}

// Link returns the first link whose name matches.
func (r *Resolver) Link(name string) (netlink.Link, error) {
	links, err := r.nl.LinkList()
	if err != nil {
		return nil, errors.NewTransportError(name, "failed to list links", err)
	}

	for _, link := range links {
		if link.Attrs().Name == name {
			log.Debugf("Resolved interface %s to index %d", name, link.Attrs().Index)
			return link, nil
		}
	}

	return nil, errors.NewNotFoundError(name)
}
