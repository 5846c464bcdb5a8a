// Package commands implements CLI command handlers for keen-tap.
//
// Each command implements the Runner interface and delegates to service.TapService.
//
// # Command Structure
//
// All commands follow a consistent pattern:
//   - Init(): Parse arguments, load configuration and open the netlink session
//   - Run(): Execute the command
//   - Name(): Return command name for routing
//
// # Available Commands
//
//   - start: Mirror ingress traffic of each interface of the pair to its peer
//   - stop: Revert "start" (addresses flushed by start are not restored)
//   - status: Print the IPv6, promiscuous and qdisc state of both interfaces
//   - self-check: Verify the kernel state of an applied pair
//   - interfaces: List available interfaces
//   - serve: Run the read-only HTTP status API
//
// The pair is taken from positional arguments, or from the [tap] section of the
// configuration file when no arguments are given.
package commands
