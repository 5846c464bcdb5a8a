package mocks

import (
	"net"
	"sort"
	"strings"
	"sync"

	"github.com/vishvananda/netlink"
	"golang.org/x/sys/unix"

	"github.com/maksimkurb/keen-tap/src/internal/networking"
)

// FakeKernel is an in-memory link/qdisc/filter/sysctl table.
//
// It implements both networking.Netlinker and networking.SysctlController so a real
// networking.Manager can be driven end to end without touching the host. Errors use
// the same errno values the kernel returns.
type FakeKernel struct {
	mu sync.Mutex

	links   map[int]*fakeLink
	sysctls map[string]string

	// SysctlErr, when set, is returned by every sysctl read and write.
	SysctlErr error
	// PromiscErr, when set, is returned by SetPromiscOn/Off.
	PromiscErr error
	// FilterAddErr, when set, is returned by FilterAdd.
	FilterAddErr error
}

type fakeLink struct {
	index   int
	name    string
	promisc bool
	addrs   []netlink.Addr
	ingress bool
	filters []netlink.Filter
}

var (
	_ networking.Netlinker        = (*FakeKernel)(nil)
	_ networking.SysctlController = (*FakeKernel)(nil)
)

func NewFakeKernel() *FakeKernel {
	return &FakeKernel{
		links:   make(map[int]*fakeLink),
		sysctls: make(map[string]string),
	}
}

// AddLink creates an interface with IPv6 enabled and the given CIDR addresses.
func (k *FakeKernel) AddLink(index int, name string, cidrs ...string) {
	k.mu.Lock()
	defer k.mu.Unlock()

	link := &fakeLink{index: index, name: name}
	for _, cidr := range cidrs {
		ip, ipnet, err := net.ParseCIDR(cidr)
		if err != nil {
			panic(err)
		}
		ipnet.IP = ip
		link.addrs = append(link.addrs, netlink.Addr{IPNet: ipnet})
	}
	k.links[index] = link
	k.sysctls[networking.IPv6Key(name)] = "0"
}

// DeleteLink removes an interface together with its qdisc and filters.
func (k *FakeKernel) DeleteLink(name string) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if link := k.byName(name); link != nil {
		delete(k.links, link.index)
		delete(k.sysctls, networking.IPv6Key(name))
	}
}

// SetPromisc sets the promiscuous flag directly.
func (k *FakeKernel) SetPromisc(name string, on bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if link := k.byName(name); link != nil {
		link.promisc = on
	}
}

// HasIngress reports whether the interface has an ingress qdisc.
func (k *FakeKernel) HasIngress(name string) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	link := k.byName(name)
	return link != nil && link.ingress
}

// RedirectTargets returns the mirred target index of every filter on the interface.
func (k *FakeKernel) RedirectTargets(name string) []int {
	k.mu.Lock()
	defer k.mu.Unlock()

	link := k.byName(name)
	if link == nil {
		return nil
	}
	var targets []int
	for _, f := range link.filters {
		u32, ok := f.(*netlink.U32)
		if !ok {
			continue
		}
		for _, action := range u32.Actions {
			if mirred, ok := action.(*netlink.MirredAction); ok {
				targets = append(targets, mirred.Ifindex)
			}
		}
	}
	return targets
}

// Addresses returns the CIDRs currently bound to the interface.
func (k *FakeKernel) Addresses(name string) []string {
	k.mu.Lock()
	defer k.mu.Unlock()

	link := k.byName(name)
	if link == nil {
		return nil
	}
	out := []string{}
	for _, addr := range link.addrs {
		out = append(out, addr.IPNet.String())
	}
	return out
}

// Sysctl returns a raw sysctl value.
func (k *FakeKernel) Sysctl(key string) string {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.sysctls[key]
}

func (k *FakeKernel) byName(name string) *fakeLink {
	for _, link := range k.links {
		if link.name == name {
			return link
		}
	}
	return nil
}

func (k *FakeKernel) byIndex(index int) (*fakeLink, error) {
	link, ok := k.links[index]
	if !ok {
		return nil, unix.ENODEV
	}
	return link, nil
}

func (l *fakeLink) toNetlink() netlink.Link {
	attrs := netlink.LinkAttrs{Index: l.index, Name: l.name, OperState: netlink.OperUp}
	if l.promisc {
		attrs.Promisc = 1
	}
	return &netlink.Veth{LinkAttrs: attrs}
}

func (k *FakeKernel) LinkList() ([]netlink.Link, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	indices := make([]int, 0, len(k.links))
	for index := range k.links {
		indices = append(indices, index)
	}
	sort.Ints(indices)

	links := make([]netlink.Link, 0, len(indices))
	for _, index := range indices {
		links = append(links, k.links[index].toNetlink())
	}
	return links, nil
}

func (k *FakeKernel) setPromisc(link netlink.Link, on bool) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.PromiscErr != nil {
		return k.PromiscErr
	}
	l, err := k.byIndex(link.Attrs().Index)
	if err != nil {
		return err
	}
	l.promisc = on
	return nil
}

func (k *FakeKernel) SetPromiscOn(link netlink.Link) error {
	return k.setPromisc(link, true)
}

func (k *FakeKernel) SetPromiscOff(link netlink.Link) error {
	return k.setPromisc(link, false)
}

func (k *FakeKernel) AddrList(link netlink.Link, family int) ([]netlink.Addr, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	l, err := k.byIndex(link.Attrs().Index)
	if err != nil {
		return nil, err
	}
	return append([]netlink.Addr(nil), l.addrs...), nil
}

func (k *FakeKernel) AddrDel(link netlink.Link, addr *netlink.Addr) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	l, err := k.byIndex(link.Attrs().Index)
	if err != nil {
		return err
	}
	for i, a := range l.addrs {
		if a.IPNet.String() == addr.IPNet.String() {
			l.addrs = append(l.addrs[:i], l.addrs[i+1:]...)
			return nil
		}
	}
	return unix.EADDRNOTAVAIL
}

func (k *FakeKernel) QdiscList(link netlink.Link) ([]netlink.Qdisc, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	var qdiscs []netlink.Qdisc
	for _, l := range k.links {
		if link != nil && l.index != link.Attrs().Index {
			continue
		}
		if l.ingress {
			q := networking.BuildIngressQdisc(l.index)
			q.Statistics = &netlink.QdiscStatistics{
				Basic: &netlink.GnetStatsBasic{},
				Queue: &netlink.GnetStatsQueue{},
			}
			qdiscs = append(qdiscs, q)
		}
	}
	return qdiscs, nil
}

func (k *FakeKernel) QdiscAdd(qdisc netlink.Qdisc) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if qdisc.Type() != "ingress" {
		return unix.EOPNOTSUPP
	}
	l, err := k.byIndex(qdisc.Attrs().LinkIndex)
	if err != nil {
		return err
	}
	if l.ingress {
		return unix.EEXIST
	}
	l.ingress = true
	return nil
}

func (k *FakeKernel) QdiscDel(qdisc netlink.Qdisc) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	l, err := k.byIndex(qdisc.Attrs().LinkIndex)
	if err != nil {
		return err
	}
	if !l.ingress {
		// "Invalid handle", as returned by the kernel for an absent ingress qdisc.
		return unix.EINVAL
	}
	l.ingress = false
	l.filters = nil
	return nil
}

func (k *FakeKernel) FilterAdd(filter netlink.Filter) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.FilterAddErr != nil {
		return k.FilterAddErr
	}
	l, err := k.byIndex(filter.Attrs().LinkIndex)
	if err != nil {
		return err
	}
	if !l.ingress {
		return unix.EINVAL
	}
	l.filters = append(l.filters, filter)
	return nil
}

func (k *FakeKernel) FilterList(link netlink.Link, parent uint32) ([]netlink.Filter, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	l, err := k.byIndex(link.Attrs().Index)
	if err != nil {
		return nil, err
	}
	return append([]netlink.Filter(nil), l.filters...), nil
}

func (k *FakeKernel) Get(key string) (string, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.SysctlErr != nil {
		return "", k.SysctlErr
	}
	value, ok := k.sysctls[key]
	if !ok {
		return "", unix.ENOENT
	}
	return strings.TrimSpace(value), nil
}

func (k *FakeKernel) Set(key, value string) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.SysctlErr != nil {
		return k.SysctlErr
	}
	if _, ok := k.sysctls[key]; !ok {
		return unix.ENOENT
	}
	k.sysctls[key] = value
	return nil
}
