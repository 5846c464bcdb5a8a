package networking

import (
	"github.com/vishvananda/netlink"
	"golang.org/x/sys/unix"

	"github.com/maksimkurb/keen-tap/src/internal/errors"
)

// Netlinker is the subset of netlink operations the tap engine issues.
// *netlink.Handle satisfies it, so does every test double.
type Netlinker interface {
	LinkList() ([]netlink.Link, error)
	SetPromiscOn(link netlink.Link) error
	SetPromiscOff(link netlink.Link) error

	AddrList(link netlink.Link, family int) ([]netlink.Addr, error)
	AddrDel(link netlink.Link, addr *netlink.Addr) error

	QdiscList(link netlink.Link) ([]netlink.Qdisc, error)
	QdiscAdd(qdisc netlink.Qdisc) error
	QdiscDel(qdisc netlink.Qdisc) error

	FilterAdd(filter netlink.Filter) error
	FilterList(link netlink.Link, parent uint32) ([]netlink.Filter, error)
}

// Session is the single route-netlink connection shared by every engine component.
//
// Requests on a netlink.Handle are synchronous: each call sends a request and reads
// the kernel's reply on the same socket before returning, so there is no background
// reader to keep alive. Close releases the socket.
type Session struct {
	*netlink.Handle
}

var _ Netlinker = (*Session)(nil)

// NewSession opens a NETLINK_ROUTE socket in the current network namespace.
func NewSession() (*Session, error) {
	handle, err := netlink.NewHandle(unix.NETLINK_ROUTE)
	if err != nil {
		return nil, errors.NewIOError("failed to open netlink session", err)
	}
	return &Session{Handle: handle}, nil
}
