package mocks

import (
	"fmt"

	"github.com/maksimkurb/keen-tap/src/internal/networking"
)

// MockTapEngine is a mock implementation of the TapEngine interface.
//
// Every method records itself in CallLog as "Method iface[ peer|on|off]" so tests can
// assert the exact order the service drives the engine in.
type MockTapEngine struct {
	RemoveIngressQdiscFunc func(name string) (bool, error)
	FlushAddressesFunc     func(name string) (int, error)
	AddIngressQdiscFunc    func(name string) (bool, error)
	RedirectIngressFunc    func(name, peer string) error
	SetIPv6Func            func(name string, enabled bool) error
	SetPromiscFunc         func(name string, enabled bool) error
	StatusFunc             func(name string) (*networking.InterfaceStatus, error)
	CheckFunc              func(a, b string) ([]networking.CheckResult, error)
	LinksFunc              func() ([]networking.LinkSummary, error)

	// Track calls for verification in tests
	RemoveIngressQdiscCalls int
	FlushAddressesCalls     int
	AddIngressQdiscCalls    int
	RedirectIngressCalls    int
	SetIPv6Calls            int
	SetPromiscCalls         int
	StatusCalls             int
	CheckCalls              int
	LinksCalls              int

	CallLog []string
}

// NewMockTapEngine creates a new mock tap engine where every operation succeeds.
func NewMockTapEngine() *MockTapEngine {
	return &MockTapEngine{}
}

func onOff(enabled bool) string {
	if enabled {
		return "on"
	}
	return "off"
}

func (m *MockTapEngine) RemoveIngressQdisc(name string) (bool, error) {
	m.RemoveIngressQdiscCalls++
	m.CallLog = append(m.CallLog, "RemoveIngressQdisc "+name)
	if m.RemoveIngressQdiscFunc != nil {
		return m.RemoveIngressQdiscFunc(name)
	}
	return true, nil
}

func (m *MockTapEngine) FlushAddresses(name string) (int, error) {
	m.FlushAddressesCalls++
	m.CallLog = append(m.CallLog, "FlushAddresses "+name)
	if m.FlushAddressesFunc != nil {
		return m.FlushAddressesFunc(name)
	}
	return 0, nil
}

func (m *MockTapEngine) AddIngressQdisc(name string) (bool, error) {
	m.AddIngressQdiscCalls++
	m.CallLog = append(m.CallLog, "AddIngressQdisc "+name)
	if m.AddIngressQdiscFunc != nil {
		return m.AddIngressQdiscFunc(name)
	}
	return true, nil
}

func (m *MockTapEngine) RedirectIngress(name, peer string) error {
	m.RedirectIngressCalls++
	m.CallLog = append(m.CallLog, fmt.Sprintf("RedirectIngress %s %s", name, peer))
	if m.RedirectIngressFunc != nil {
		return m.RedirectIngressFunc(name, peer)
	}
	return nil
}

func (m *MockTapEngine) SetIPv6(name string, enabled bool) error {
	m.SetIPv6Calls++
	m.CallLog = append(m.CallLog, fmt.Sprintf("SetIPv6 %s %s", name, onOff(enabled)))
	if m.SetIPv6Func != nil {
		return m.SetIPv6Func(name, enabled)
	}
	return nil
}

func (m *MockTapEngine) SetPromisc(name string, enabled bool) error {
	m.SetPromiscCalls++
	m.CallLog = append(m.CallLog, fmt.Sprintf("SetPromisc %s %s", name, onOff(enabled)))
	if m.SetPromiscFunc != nil {
		return m.SetPromiscFunc(name, enabled)
	}
	return nil
}

func (m *MockTapEngine) Status(name string) (*networking.InterfaceStatus, error) {
	m.StatusCalls++
	m.CallLog = append(m.CallLog, "Status "+name)
	if m.StatusFunc != nil {
		return m.StatusFunc(name)
	}
	return &networking.InterfaceStatus{Name: name, Qdiscs: []networking.QdiscInfo{}}, nil
}

func (m *MockTapEngine) Check(a, b string) ([]networking.CheckResult, error) {
	m.CheckCalls++
	m.CallLog = append(m.CallLog, fmt.Sprintf("Check %s %s", a, b))
	if m.CheckFunc != nil {
		return m.CheckFunc(a, b)
	}
	return nil, nil
}

func (m *MockTapEngine) Links() ([]networking.LinkSummary, error) {
	m.LinksCalls++
	m.CallLog = append(m.CallLog, "Links")
	if m.LinksFunc != nil {
		return m.LinksFunc()
	}
	return []networking.LinkSummary{}, nil
}
