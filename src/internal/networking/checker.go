package networking

import (
	"fmt"

	"github.com/maksimkurb/keen-tap/src/internal/errors"
)

const (
	CheckComponentInterface    = "interface"
	CheckComponentIngressQdisc = "ingress_qdisc"
	CheckComponentMirrorFilter = "mirror_filter"
	CheckComponentPromisc      = "promiscuous_mode"
	CheckComponentIPv6         = "ipv6"
)

// CheckResult compares one piece of expected tap state against the kernel.
type CheckResult struct {
	Interface string `json:"interface"`
	Component string `json:"component"`
	Expected  string `json:"expected"`
	Actual    string `json:"actual"`
	OK        bool   `json:"ok"`
	Message   string `json:"message"`
}

// Checker verifies that an applied pair still has the state start left behind.
type Checker struct {
	resolver *Resolver
	qdisc    *IngressQdisc
	filter   *MirrorFilter
	reporter *StatusReporter
}

func NewChecker(resolver *Resolver, qdisc *IngressQdisc, filter *MirrorFilter, reporter *StatusReporter) *Checker {
	return &Checker{resolver: resolver, qdisc: qdisc, filter: filter, reporter: reporter}
}

// Check inspects both interfaces of the pair in order. A missing interface yields a single
// failed "interface" result instead of an error.
func (c *Checker) Check(a, b string) ([]CheckResult, error) {
	var results []CheckResult

	for _, pair := range [][2]string{{a, b}, {b, a}} {
		ifaceResults, err := c.checkInterface(pair[0], pair[1])
		if err != nil {
			return nil, err
		}
		results = append(results, ifaceResults...)
	}

	return results, nil
}

func (c *Checker) checkInterface(name, peer string) ([]CheckResult, error) {
	if _, err := c.resolver.Resolve(name); err != nil {
		if errors.IsNotFound(err) {
			return []CheckResult{{
				Interface: name,
				Component: CheckComponentInterface,
				Expected:  "present",
				Actual:    "missing",
				Message:   fmt.Sprintf("interface %s does not exist", name),
			}}, nil
		}
		return nil, err
	}

	var results []CheckResult

	qdiscExists, err := c.qdisc.IsExists(name)
	if err != nil {
		return nil, err
	}
	results = append(results, boolResult(name, CheckComponentIngressQdisc, true, qdiscExists,
		"ingress qdisc is attached", "ingress qdisc is missing"))

	results = append(results, c.checkFilter(name, peer))

	status, err := c.reporter.Report(name)
	if err != nil {
		return nil, err
	}
	results = append(results, boolResult(name, CheckComponentPromisc, true, status.PromiscuousMode,
		"promiscuous mode is on", "promiscuous mode is off"))
	results = append(results, boolResult(name, CheckComponentIPv6, false, status.IPv6Enabled,
		"IPv6 is disabled", "IPv6 is enabled"))

	return results, nil
}

func (c *Checker) checkFilter(name, peer string) CheckResult {
	result := CheckResult{
		Interface: name,
		Component: CheckComponentMirrorFilter,
		Expected:  fmt.Sprintf("redirect to %s", peer),
	}

	peerIndex, err := c.resolver.Resolve(peer)
	if err != nil {
		result.Actual = "peer missing"
		result.Message = fmt.Sprintf("cannot resolve peer %s: %v", peer, err)
		return result
	}

	targets, err := c.filter.RedirectTargets(name)
	if err != nil {
		result.Actual = "unknown"
		result.Message = fmt.Sprintf("cannot list filters: %v", err)
		return result
	}

	result.Actual = "none"
	for _, target := range targets {
		if target == peerIndex {
			result.Actual = result.Expected
			result.OK = true
			result.Message = fmt.Sprintf("ingress of %s is redirected to %s (idx=%d)", name, peer, peerIndex)
			return result
		}
		result.Actual = fmt.Sprintf("redirect to idx=%d", target)
	}
	result.Message = fmt.Sprintf("no redirect from %s to %s (idx=%d)", name, peer, peerIndex)
	return result
}

func boolResult(name, component string, expected, actual bool, okMsg, failMsg string) CheckResult {
	result := CheckResult{
		Interface: name,
		Component: component,
		Expected:  onOff(expected),
		Actual:    onOff(actual),
		OK:        expected == actual,
	}
	if result.OK {
		result.Message = okMsg
	} else {
		result.Message = failMsg
	}
	return result
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

// AllOK reports whether every result passed.
func AllOK(results []CheckResult) bool {
	for _, r := range results {
		if !r.OK {
			return false
		}
	}
	return true
}
