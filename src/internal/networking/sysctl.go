package networking

import (
	"strings"

	"github.com/achanda/go-sysctl"
)

// SysctlController reads and writes kernel tunables by their dotted name.
type SysctlController interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// ProcSysctl accesses /proc/sys directly.
type ProcSysctl struct{}

func (ProcSysctl) Get(key string) (string, error) {
	value, err := sysctl.Get(key)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(value), nil
}

func (ProcSysctl) Set(key, value string) error {
	return sysctl.Set(key, value)
}
