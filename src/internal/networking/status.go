package networking

import (
	"fmt"

	"github.com/vishvananda/netlink"

	"github.com/maksimkurb/keen-tap/src/internal/errors"
)

// QdiscStats is a snapshot of qdisc counters widened to 64 bits.
type QdiscStats struct {
	Bytes      uint64 `json:"bytes"`
	Packets    uint64 `json:"packets"`
	Drops      uint64 `json:"drops"`
	Overlimits uint64 `json:"overlimits"`
	Qlen       uint64 `json:"qlen"`
	Backlog    uint64 `json:"backlog"`
}

// QdiscInfo describes one qdisc attached to an interface.
type QdiscInfo struct {
	Kind    string     `json:"kind"`
	Handle  string     `json:"handle"`
	Parent  string     `json:"parent"`
	Options []string   `json:"options"`
	Stats   QdiscStats `json:"stats"`
}

// InterfaceStatus is a read-only snapshot taken at query time.
type InterfaceStatus struct {
	Name            string      `json:"name"`
	IPv6Enabled     bool        `json:"ipv6_enabled"`
	PromiscuousMode bool        `json:"promiscuous_mode"`
	Qdiscs          []QdiscInfo `json:"qdisc"`
}

// StatusReporter collects InterfaceStatus snapshots.
type StatusReporter struct {
	nl       Netlinker
	resolver *Resolver
	ipv6     *IPv6Toggle
}

func NewStatusReporter(nl Netlinker, resolver *Resolver, ipv6 *IPv6Toggle) *StatusReporter {
	return &StatusReporter{nl: nl, resolver: resolver, ipv6: ipv6}
}

// Report fails with a not-found error when the interface does not exist.
func (s *StatusReporter) Report(name string) (*InterfaceStatus, error) {
	index, err := s.resolver.Resolve(name)
	if err != nil {
		return nil, err
	}

	ipv6Enabled, err := s.ipv6.Enabled(name)
	if err != nil {
		return nil, err
	}

	promisc, err := s.promiscuous(name, index)
	if err != nil {
		return nil, err
	}

	qdiscs, err := s.nl.QdiscList(nil)
	if err != nil {
		return nil, errors.NewTransportError(name, "failed to list qdiscs", err)
	}

	status := &InterfaceStatus{
		Name:            name,
		IPv6Enabled:     ipv6Enabled,
		PromiscuousMode: promisc,
		Qdiscs:          []QdiscInfo{},
	}
	for _, qdisc := range qdiscs {
		attrs := qdisc.Attrs()
		if attrs.LinkIndex != index || attrs.Parent != netlink.HANDLE_INGRESS {
			continue
		}
		status.Qdiscs = append(status.Qdiscs, parseQdisc(qdisc))
	}

	return status, nil
}

func (s *StatusReporter) promiscuous(name string, index int) (bool, error) {
	links, err := s.nl.LinkList()
	if err != nil {
		return false, errors.NewTransportError(name, "failed to list links", err)
	}
	for _, link := range links {
		if link.Attrs().Index == index {
			return link.Attrs().Promisc != 0, nil
		}
	}
	// Vanished between resolve and scan.
	return false, errors.NewNotFoundError(name)
}

func parseQdisc(qdisc netlink.Qdisc) QdiscInfo {
	attrs := qdisc.Attrs()
	handleMajor, _ := netlink.MajorMinor(attrs.Handle)
	parentMajor, _ := netlink.MajorMinor(attrs.Parent)

	info := QdiscInfo{
		Kind:    qdisc.Type(),
		Handle:  fmt.Sprintf("%x:", handleMajor),
		Parent:  fmt.Sprintf("%x:", parentMajor),
		Options: qdiscOptions(qdisc),
	}

	if stats := attrs.Statistics; stats != nil {
		if stats.Basic != nil {
			info.Stats.Bytes = stats.Basic.Bytes
			info.Stats.Packets = uint64(stats.Basic.Packets)
		}
		if stats.Queue != nil {
			info.Stats.Drops = uint64(stats.Queue.Drops)
			info.Stats.Overlimits = uint64(stats.Queue.Overlimits)
			info.Stats.Qlen = uint64(stats.Queue.Qlen)
			info.Stats.Backlog = uint64(stats.Queue.Backlog)
		}
	}

	return info
}

// qdiscOptions renders the kind-specific attributes as key=value strings.
func qdiscOptions(qdisc netlink.Qdisc) []string {
	switch q := qdisc.(type) {
	case *netlink.Prio:
		return []string{fmt.Sprintf("bands=%d", q.Bands)}
	case *netlink.Tbf:
		return []string{
			fmt.Sprintf("rate=%d", q.Rate),
			fmt.Sprintf("limit=%d", q.Limit),
			fmt.Sprintf("buffer=%d", q.Buffer),
		}
	case *netlink.Htb:
		return []string{
			fmt.Sprintf("r2q=%d", q.Rate2Quantum),
			fmt.Sprintf("default=%x", q.Defcls),
		}
	case *netlink.FqCodel:
		return []string{
			fmt.Sprintf("limit=%d", q.Limit),
			fmt.Sprintf("flows=%d", q.Flows),
			fmt.Sprintf("quantum=%d", q.Quantum),
			fmt.Sprintf("target=%d", q.Target),
			fmt.Sprintf("interval=%d", q.Interval),
		}
	case *netlink.Sfq:
		return []string{
			fmt.Sprintf("limit=%d", q.Limit),
			fmt.Sprintf("quantum=%d", q.Quantum),
			fmt.Sprintf("perturb=%d", q.Perturb),
		}
	case *netlink.Netem:
		return []string{
			fmt.Sprintf("latency=%d", q.Latency),
			fmt.Sprintf("jitter=%d", q.Jitter),
			fmt.Sprintf("loss=%d", q.Loss),
			fmt.Sprintf("limit=%d", q.Limit),
		}
	default:
		return nil
	}
}
