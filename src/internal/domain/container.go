package domain

import (
	"github.com/maksimkurb/keen-tap/src/internal/networking"
)

// AppDependencies is a dependency injection container that holds all application dependencies.
//
// Usage:
//
//	deps, err := domain.NewAppDependencies()
//	if err != nil {
//	    log.Fatalf("%v", err)
//	}
//	defer deps.Close()
//	engine := deps.TapEngine()
type AppDependencies struct {
	session   *networking.Session
	tapEngine TapEngine
}

// NewAppDependencies opens the netlink session and builds the production engine on top of it.
// Failing to open the session is fatal for every command.
func NewAppDependencies() (*AppDependencies, error) {
	session, err := networking.NewSession()
	if err != nil {
		return nil, err
	}

	return &AppDependencies{
		session:   session,
		tapEngine: networking.NewManager(session),
	}, nil
}

// NewTestDependencies creates a dependency container around the given engine.
func NewTestDependencies(tapEngine TapEngine) *AppDependencies {
	return &AppDependencies{
		tapEngine: tapEngine,
	}
}

// TapEngine returns the tap engine.
func (d *AppDependencies) TapEngine() TapEngine {
	return d.tapEngine
}

// Close releases the netlink session, if one was opened.
func (d *AppDependencies) Close() {
	if d.session != nil {
		d.session.Close()
		d.session = nil
	}
}
