package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/maksimkurb/keen-tap/src/internal/api"
	"github.com/maksimkurb/keen-tap/src/internal/config"
	"github.com/maksimkurb/keen-tap/src/internal/log"
	"github.com/maksimkurb/keen-tap/src/internal/service"
)

// ServeCommand runs the read-only HTTP API.
type ServeCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext
	cfg *config.Config
	tap *service.TapService

	listenAddr string
}

// CreateServeCommand creates a new serve command.
func CreateServeCommand() *ServeCommand {
	c := &ServeCommand{
		fs: flag.NewFlagSet("serve", flag.ExitOnError),
	}
	c.fs.StringVar(&c.listenAddr, "listen", "", "Address to bind the HTTP server (overrides [api].listen_addr)")
	return c
}

func (c *ServeCommand) Name() string {
	return c.fs.Name()
}

func (c *ServeCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx

	if err := c.fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfigOrFail(ctx.ConfigPath)
	if err != nil {
		return err
	}
	c.cfg = cfg

	if c.listenAddr == "" {
		c.listenAddr = cfg.API.ListenAddr
	}

	if c.tap, err = ctx.tapService(); err != nil {
		return err
	}

	return nil
}

func (c *ServeCommand) Run() error {
	log.Infof("Configuration loaded from: %s", c.cfg.GetConfigFilePath())
	log.Infof("Access restricted to private subnets only")

	server := api.NewServer(c.listenAddr, api.NewHandler(c.tap, c.cfg, c.ctx.Version))

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		if err != nil {
			return err
		}

	case sig := <-shutdown:
		log.Infof("Received signal %v, shutting down server...", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Stop(ctx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		log.Infof("Server stopped gracefully")
	}

	return nil
}
