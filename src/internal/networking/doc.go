// Package networking implements the kernel side of keen-tap.
//
// A tap is a pair of interfaces whose ingress traffic is redirected to each other
// with tc: an ingress qdisc plus a match-all u32 filter with a mirred redirect action.
// Both sides get their addresses flushed, IPv6 disabled and promiscuous mode enabled.
//
// # Components
//
//   - Session: the shared NETLINK_ROUTE handle
//   - Resolver: name to index lookup, never cached
//   - AddressFlusher: deletes all addresses of an interface
//   - IngressQdisc: idempotent add/remove of the ingress qdisc
//   - MirrorFilter: the redirect filter towards the peer
//   - IPv6Toggle: net.ipv6.conf.<iface>.disable_ipv6 through sysctl
//   - PromiscToggle: IFF_PROMISC through a link change request
//   - StatusReporter: InterfaceStatus snapshots
//   - Checker: compares the kernel against the expected tap state
//
// Manager bundles all of them over one Netlinker and one SysctlController.
//
// # Example Usage
//
//	session, err := networking.NewSession()
//	if err != nil {
//	    log.Fatalf("%v", err)
//	}
//	defer session.Close()
//
//	mgr := networking.NewManager(session)
//	status, err := mgr.Status("veth0")
//	fmt.Print(status)
package networking
