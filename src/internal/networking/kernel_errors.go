package networking

import (
	"errors"
	"strings"

	"golang.org/x/sys/unix"
)

type kernelErrorKind int

const (
	kernelErrOther kernelErrorKind = iota
	kernelErrExists
	kernelErrNotPresent
)

// classifyKernelError recognises the benign netlink replies: "already exists" when adding
// and "not present" when deleting. errno is checked first, message text second.
func classifyKernelError(err error) kernelErrorKind {
	if err == nil {
		return kernelErrOther
	}

	switch {
	case errors.Is(err, unix.EEXIST):
		return kernelErrExists
	case errors.Is(err, unix.ENOENT):
		return kernelErrNotPresent
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "file exists"), strings.Contains(msg, "already exists"):
		return kernelErrExists
	case strings.Contains(msg, "no such file or directory"),
		strings.Contains(msg, "not found"),
		strings.Contains(msg, "cannot find"):
		return kernelErrNotPresent
	}

	return kernelErrOther
}
