package networking

import (
	"github.com/vishvananda/netlink"

	"github.com/maksimkurb/keen-tap/src/internal/errors"
)

// LinkSummary is one row of the interfaces listing.
type LinkSummary struct {
	Index     int      `json:"index"`
	Name      string   `json:"name"`
	Type      string   `json:"type"`
	State     string   `json:"state"`
	Promisc   bool     `json:"promisc"`
	Addresses []string `json:"addresses"`
}

// ListLinks returns every link with its addresses, in kernel order.
func ListLinks(nl Netlinker) ([]LinkSummary, error) {
	links, err := nl.LinkList()
	if err != nil {
		return nil, errors.NewTransportError("", "failed to list links", err)
	}

	summaries := make([]LinkSummary, 0, len(links))
	for _, link := range links {
		attrs := link.Attrs()

		addrs, err := nl.AddrList(link, netlink.FAMILY_ALL)
		if err != nil {
			return nil, errors.NewTransportError(attrs.Name, "failed to list addresses", err)
		}

		summary := LinkSummary{
			Index:     attrs.Index,
			Name:      attrs.Name,
			Type:      link.Type(),
			State:     attrs.OperState.String(),
			Promisc:   attrs.Promisc != 0,
			Addresses: []string{},
		}
		for _, addr := range addrs {
			if addr.IPNet != nil {
				summary.Addresses = append(summary.Addresses, addr.IPNet.String())
			}
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}
