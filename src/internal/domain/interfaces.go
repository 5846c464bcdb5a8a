// Package domain defines core interfaces for dependency injection and abstraction.
//
// This package contains the fundamental interfaces that enable loose coupling between
// components and facilitate testing through dependency injection.
package domain

import (
	"github.com/maksimkurb/keen-tap/src/internal/networking"
)

// TapEngine defines the per-interface kernel operations a tap is built from.
//
// Each method resolves interface names afresh. Implementations must not reorder or
// batch calls; the orchestration order is decided by the caller.
type TapEngine interface {
	// RemoveIngressQdisc removes the ingress qdisc and its filters. A missing interface
	// or qdisc is not an error. Returns true if something was removed.
	RemoveIngressQdisc(name string) (bool, error)

	// FlushAddresses deletes every address bound to the interface.
	FlushAddresses(name string) (int, error)

	// AddIngressQdisc adds the ingress qdisc. Returns false without error if it already exists.
	AddIngressQdisc(name string) (bool, error)

	// RedirectIngress installs a match-all filter redirecting ingress of name to peer.
	RedirectIngress(name, peer string) error

	// SetIPv6 enables or disables IPv6 processing on the interface.
	SetIPv6(name string, enabled bool) error

	// SetPromisc sets or clears the promiscuous flag.
	SetPromisc(name string, enabled bool) error

	// Status returns a snapshot of the interface. Fails if the interface does not exist.
	Status(name string) (*networking.InterfaceStatus, error)

	// Check compares the kernel state of both interfaces against an applied tap.
	Check(a, b string) ([]networking.CheckResult, error)

	// Links lists all interfaces known to the kernel.
	Links() ([]networking.LinkSummary, error)
}
