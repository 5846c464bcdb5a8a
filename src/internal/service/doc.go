// Package service provides the orchestration layer for keen-tap.
//
// TapService sequences the engine operations of the networking package across an
// interface pair. Both the CLI commands and the HTTP API go through one TapService,
// which serialises every call with a mutex so that only one operation ever talks to
// the kernel at a time.
//
// # Example Usage
//
//	deps, err := domain.NewAppDependencies()
//	if err != nil {
//	    log.Fatalf("%v", err)
//	}
//	defer deps.Close()
//
//	tap := service.NewTapService(deps.TapEngine())
//	if err := tap.Start("veth0", "veth1"); err != nil {
//	    log.Fatalf("%v", err)
//	}
package service
