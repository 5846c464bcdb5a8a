package networking

import (
	"github.com/stretchr/testify/mock"
	"github.com/vishvananda/netlink"
)

// MockNetlinker is a testify mock of Netlinker.
type MockNetlinker struct {
	mock.Mock
}

func (m *MockNetlinker) LinkList() ([]netlink.Link, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]netlink.Link), args.Error(1)
}

func (m *MockNetlinker) SetPromiscOn(link netlink.Link) error {
	args := m.Called(link)
	return args.Error(0)
}

func (m *MockNetlinker) SetPromiscOff(link netlink.Link) error {
	args := m.Called(link)
	return args.Error(0)
}

func (m *MockNetlinker) AddrList(link netlink.Link, family int) ([]netlink.Addr, error) {
	args := m.Called(link, family)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]netlink.Addr), args.Error(1)
}

func (m *MockNetlinker) AddrDel(link netlink.Link, addr *netlink.Addr) error {
	args := m.Called(link, addr)
	return args.Error(0)
}

func (m *MockNetlinker) QdiscList(link netlink.Link) ([]netlink.Qdisc, error) {
	args := m.Called(link)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]netlink.Qdisc), args.Error(1)
}

func (m *MockNetlinker) QdiscAdd(qdisc netlink.Qdisc) error {
	args := m.Called(qdisc)
	return args.Error(0)
}

func (m *MockNetlinker) QdiscDel(qdisc netlink.Qdisc) error {
	args := m.Called(qdisc)
	return args.Error(0)
}

func (m *MockNetlinker) FilterAdd(filter netlink.Filter) error {
	args := m.Called(filter)
	return args.Error(0)
}

func (m *MockNetlinker) FilterList(link netlink.Link, parent uint32) ([]netlink.Filter, error) {
	args := m.Called(link, parent)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]netlink.Filter), args.Error(1)
}

// MockSysctl is a testify mock of SysctlController.
type MockSysctl struct {
	mock.Mock
}

func (m *MockSysctl) Get(key string) (string, error) {
	args := m.Called(key)
	return args.String(0), args.Error(1)
}

func (m *MockSysctl) Set(key, value string) error {
	args := m.Called(key, value)
	return args.Error(0)
}

func testLink(index int, name string) *netlink.Device {
	return &netlink.Device{LinkAttrs: netlink.LinkAttrs{Index: index, Name: name}}
}

func vethPair() []netlink.Link {
	return []netlink.Link{
		testLink(1, "lo"),
		testLink(5, "veth0"),
		testLink(6, "veth1"),
	}
}
