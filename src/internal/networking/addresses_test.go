package networking

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vishvananda/netlink"
	"golang.org/x/sys/unix"

	"github.com/maksimkurb/keen-tap/src/internal/errors"
)

func mustAddr(t *testing.T, cidr string) netlink.Addr {
	t.Helper()
	ip, ipnet, err := net.ParseCIDR(cidr)
	require.NoError(t, err)
	ipnet.IP = ip
	return netlink.Addr{IPNet: ipnet}
}

func TestAddressFlusher_Flush(t *testing.T) {
	link := testLink(5, "veth0")
	v4 := mustAddr(t, "10.0.0.1/24")
	v4secondary := mustAddr(t, "10.0.0.2/24")
	v6 := mustAddr(t, "fe80::1/64")

	nl := new(MockNetlinker)
	nl.On("LinkList").Return([]netlink.Link{link}, nil)
	nl.On("AddrList", link, netlink.FAMILY_ALL).Return([]netlink.Addr{v4, v4secondary, v6}, nil)
	nl.On("AddrDel", link, &v4).Return(nil).Once()
	nl.On("AddrDel", link, &v4secondary).Return(unix.EADDRNOTAVAIL).Once()
	nl.On("AddrDel", link, &v6).Return(nil).Once()

	removed, err := NewAddressFlusher(nl, NewResolver(nl)).Flush("veth0")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	nl.AssertExpectations(t)
}

func TestAddressFlusher_NoAddresses(t *testing.T) {
	link := testLink(5, "veth0")
	nl := new(MockNetlinker)
	nl.On("LinkList").Return([]netlink.Link{link}, nil)
	nl.On("AddrList", link, netlink.FAMILY_ALL).Return([]netlink.Addr{}, nil)

	removed, err := NewAddressFlusher(nl, NewResolver(nl)).Flush("veth0")
	require.NoError(t, err)
	assert.Zero(t, removed)
	nl.AssertNotCalled(t, "AddrDel", mock.Anything, mock.Anything)
}

func TestAddressFlusher_Errors(t *testing.T) {
	t.Run("missing interface", func(t *testing.T) {
		nl := new(MockNetlinker)
		nl.On("LinkList").Return(vethPair(), nil)

		_, err := NewAddressFlusher(nl, NewResolver(nl)).Flush("veth9")
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("delete failure", func(t *testing.T) {
		link := testLink(5, "veth0")
		addr := mustAddr(t, "192.168.1.1/24")
		nl := new(MockNetlinker)
		nl.On("LinkList").Return([]netlink.Link{link}, nil)
		nl.On("AddrList", link, netlink.FAMILY_ALL).Return([]netlink.Addr{addr}, nil)
		nl.On("AddrDel", link, mock.Anything).Return(unix.EPERM)

		_, err := NewAddressFlusher(nl, NewResolver(nl)).Flush("veth0")
		require.Error(t, err)
		assert.True(t, errors.IsTransport(err))
		assert.Contains(t, err.Error(), "192.168.1.1/24")
	})
}
