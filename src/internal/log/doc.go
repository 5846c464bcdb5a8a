// Package log provides simple leveled logging for keen-tap.
//
// The package keeps a small printf-style API on top of a logrus logger.
// Messages are rendered with colored level prefixes:
//
//   - DEBUG: Detailed diagnostic information (only shown in verbose mode)
//   - INFO: General informational messages
//   - WARN: Warning messages, e.g. best-effort steps that failed
//   - ERROR: Error messages for failures
//
// Errors are written to stderr, all other levels to stdout.
//
// # Example Usage
//
//	log.Infof("Adding ingress qdisc to %s", iface)
//	log.Warnf("Failed to disable IPv6 on %s: %v. Continuing...", iface, err)
//
//	log.SetVerbose(true)
//	log.Debugf("Resolved %s to index %d", iface, index)
//
//	log.SetForceStdErr(true) // keep stdout for the status report
package log
