package networking

import (
	"github.com/maksimkurb/keen-tap/src/internal/errors"
	"github.com/maksimkurb/keen-tap/src/internal/log"
)

// PromiscToggle sets or clears IFF_PROMISC. The netlink request changes only that flag
// (ifi_change = IFF_PROMISC).
type PromiscToggle struct {
	nl       Netlinker
	resolver *Resolver
}

func NewPromiscToggle(nl Netlinker, resolver *Resolver) *PromiscToggle {
	return &PromiscToggle{nl: nl, resolver: resolver}
}

func (p *PromiscToggle) Set(name string, enabled bool) error {
	link, err := p.resolver.Link(name)
	if err != nil {
		return err
	}

	if enabled {
		err = p.nl.SetPromiscOn(link)
	} else {
		err = p.nl.SetPromiscOff(link)
	}
	if err != nil {
		return errors.NewTransportError(name, "failed to change promiscuous mode", err)
	}

	if enabled {
		log.Infof("Promiscuous mode enabled on %s", name)
	} else {
		log.Infof("Promiscuous mode disabled on %s", name)
	}
	return nil
}
