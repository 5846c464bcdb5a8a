package commands

import (
	"fmt"
	"io"

	"github.com/maksimkurb/keen-tap/src/internal/config"
	"github.com/maksimkurb/keen-tap/src/internal/domain"
	"github.com/maksimkurb/keen-tap/src/internal/log"
	"github.com/maksimkurb/keen-tap/src/internal/service"
)

type Runner interface {
	Init(args []string, globalArgs *AppContext) error
	Run() error
	Name() string
}

type AppContext struct {
	ConfigPath string
	Verbose    bool
	Version    string

	// Deps is opened lazily by the first command that needs the kernel.
	Deps *domain.AppDependencies
	// Out receives reports printed by status, self-check and interfaces.
	Out io.Writer
}

// Close releases the netlink session, if one was opened.
func (ctx *AppContext) Close() {
	if ctx.Deps != nil {
		ctx.Deps.Close()
	}
}

func (ctx *AppContext) tapService() (*service.TapService, error) {
	if ctx.Deps == nil {
		deps, err := domain.NewAppDependencies()
		if err != nil {
			return nil, fmt.Errorf("failed to open netlink session: %w", err)
		}
		ctx.Deps = deps
	}
	return service.NewTapService(ctx.Deps.TapEngine()), nil
}

// loadConfigOrFail loads and validates the configuration file. A missing file yields defaults.
func loadConfigOrFail(configPath string) (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if cfg.General.Verbose {
		log.SetVerbose(true)
	}

	return cfg, nil
}
