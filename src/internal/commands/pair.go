package commands

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/maksimkurb/keen-tap/src/internal/config"
	"github.com/maksimkurb/keen-tap/src/internal/service"
)

// pairCommand is the shared part of every command that acts on an interface pair.
// Positional arguments override the pair configured in [tap].
type pairCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext
	cfg *config.Config
	tap *service.TapService

	interfaceA string
	interfaceB string
}

func newPairCommand(name string) pairCommand {
	return pairCommand{
		fs: flag.NewFlagSet(name, flag.ExitOnError),
	}
}

func (p *pairCommand) Name() string {
	return p.fs.Name()
}

func (p *pairCommand) Init(args []string, ctx *AppContext) error {
	p.ctx = ctx

	if err := p.fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfigOrFail(ctx.ConfigPath)
	if err != nil {
		return err
	}
	p.cfg = cfg

	a, b, err := p.cfg.ResolvePair(p.fs.Args())
	if err != nil {
		return fmt.Errorf("usage: %s <interface_a> <interface_b>: %w", p.fs.Name(), err)
	}
	p.interfaceA, p.interfaceB = a, b

	if p.tap, err = ctx.tapService(); err != nil {
		return err
	}

	return nil
}

func (p *pairCommand) out() io.Writer {
	if p.ctx != nil && p.ctx.Out != nil {
		return p.ctx.Out
	}
	return os.Stdout
}
