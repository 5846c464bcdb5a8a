package networking

// Manager is the main facade over the tap engine components.
//
// Every component shares the same Netlinker. The Manager itself holds no kernel state;
// the orchestration of start/stop lives in the service package.
type Manager struct {
	nl       Netlinker
	resolver *Resolver
	flusher  *AddressFlusher
	qdisc    *IngressQdisc
	filter   *MirrorFilter
	ipv6     *IPv6Toggle
	promisc  *PromiscToggle
	reporter *StatusReporter
	checker  *Checker
}

// NewManager creates a manager bound to a live netlink session and /proc/sys.
func NewManager(session *Session) *Manager {
	return NewManagerWithDeps(session, ProcSysctl{})
}

// NewManagerWithDeps creates a manager over arbitrary netlink and sysctl backends.
func NewManagerWithDeps(nl Netlinker, sys SysctlController) *Manager {
	resolver := NewResolver(nl)
	ipv6 := NewIPv6Toggle(sys)
	qdisc := NewIngressQdisc(nl, resolver)
	filter := NewMirrorFilter(nl, resolver)
	reporter := NewStatusReporter(nl, resolver, ipv6)

	return &Manager{
		nl:       nl,
		resolver: resolver,
		flusher:  NewAddressFlusher(nl, resolver),
		qdisc:    qdisc,
		filter:   filter,
		ipv6:     ipv6,
		promisc:  NewPromiscToggle(nl, resolver),
		reporter: reporter,
		checker:  NewChecker(resolver, qdisc, filter, reporter),
	}
}

// ResolveIndex returns the current kernel index of the interface.
func (m *Manager) ResolveIndex(name string) (int, error) {
	return m.resolver.Resolve(name)
}

// RemoveIngressQdisc removes the ingress qdisc if present.
func (m *Manager) RemoveIngressQdisc(name string) (bool, error) {
	return m.qdisc.DelIfExists(name)
}

// AddIngressQdisc adds the ingress qdisc unless it already exists.
func (m *Manager) AddIngressQdisc(name string) (bool, error) {
	return m.qdisc.AddIfNotExists(name)
}

// FlushAddresses removes every address of the interface.
func (m *Manager) FlushAddresses(name string) (int, error) {
	return m.flusher.Flush(name)
}

// RedirectIngress mirrors the ingress of name to peer.
func (m *Manager) RedirectIngress(name, peer string) error {
	return m.filter.Redirect(name, peer)
}

// SetIPv6 enables or disables IPv6 on the interface.
func (m *Manager) SetIPv6(name string, enabled bool) error {
	return m.ipv6.Set(name, enabled)
}

// SetPromisc turns promiscuous mode on or off.
func (m *Manager) SetPromisc(name string, enabled bool) error {
	return m.promisc.Set(name, enabled)
}

// Status returns a snapshot of the interface.
func (m *Manager) Status(name string) (*InterfaceStatus, error) {
	return m.reporter.Report(name)
}

// Check verifies the tap state of both interfaces.
func (m *Manager) Check(a, b string) ([]CheckResult, error) {
	return m.checker.Check(a, b)
}

// Links lists all interfaces.
func (m *Manager) Links() ([]LinkSummary, error) {
	return ListLinks(m.nl)
}
