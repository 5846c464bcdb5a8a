package networking

import (
	"fmt"

	"github.com/maksimkurb/keen-tap/src/internal/errors"
	"github.com/maksimkurb/keen-tap/src/internal/log"
)

const (
	ipv6Enabled  = "0"
	ipv6Disabled = "1"
)

// IPv6Key returns the sysctl controlling IPv6 on the interface.
func IPv6Key(name string) string {
	return fmt.Sprintf("net.ipv6.conf.%s.disable_ipv6", name)
}

// IPv6Toggle flips net.ipv6.conf.<iface>.disable_ipv6.
type IPv6Toggle struct {
	sys SysctlController
}

func NewIPv6Toggle(sys SysctlController) *IPv6Toggle {
	return &IPv6Toggle{sys: sys}
}

// Enabled reports whether IPv6 processing is on for the interface.
func (t *IPv6Toggle) Enabled(name string) (bool, error) {
	key := IPv6Key(name)
	value, err := t.sys.Get(key)
	if err != nil {
		return false, errors.NewSysctlError(key, "failed to read sysctl", err)
	}
	return value == ipv6Enabled, nil
}

// Set writes the desired state. Nothing is written when the value already matches.
func (t *IPv6Toggle) Set(name string, enabled bool) error {
	key := IPv6Key(name)

	current, err := t.sys.Get(key)
	if err != nil {
		return errors.NewSysctlError(key, "failed to read sysctl", err)
	}

	desired := ipv6Disabled
	state := "disabled"
	if enabled {
		desired = ipv6Enabled
		state = "enabled"
	}

	if current == desired {
		log.Infof("IPv6 already %s on %s", state, name)
		return nil
	}

	log.Debugf("Setting %s = %s", key, desired)
	if err := t.sys.Set(key, desired); err != nil {
		return errors.NewSysctlError(key, "failed to write sysctl", err)
	}

	log.Infof("IPv6 %s on %s", state, name)
	return nil
}
