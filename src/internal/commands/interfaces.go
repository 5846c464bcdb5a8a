package commands

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/maksimkurb/keen-tap/src/internal/networking"
	"github.com/maksimkurb/keen-tap/src/internal/service"
)

func CreateInterfacesCommand() *InterfacesCommand {
	return &InterfacesCommand{
		fs: flag.NewFlagSet("interfaces", flag.ExitOnError),
	}
}

// InterfacesCommand lists the interfaces that can be used as a tap pair.
type InterfacesCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext
	tap *service.TapService
}

func (g *InterfacesCommand) Name() string {
	return g.fs.Name()
}

func (g *InterfacesCommand) Init(args []string, ctx *AppContext) error {
	g.ctx = ctx

	if err := g.fs.Parse(args); err != nil {
		return err
	}

	tap, err := ctx.tapService()
	if err != nil {
		return err
	}
	g.tap = tap

	return nil
}

func (g *InterfacesCommand) Run() error {
	links, err := g.tap.Links()
	if err != nil {
		return fmt.Errorf("failed to get interfaces: %w", err)
	}

	out := io.Writer(os.Stdout)
	if g.ctx.Out != nil {
		out = g.ctx.Out
	}
	fmt.Fprint(out, formatLinks(links))
	return nil
}

func formatLinks(links []networking.LinkSummary) string {
	var sb strings.Builder
	for _, link := range links {
		promisc := ""
		if link.Promisc {
			promisc = " PROMISC"
		}
		fmt.Fprintf(&sb, "%d: %s (%s) %s%s\n", link.Index, link.Name, link.Type, link.State, promisc)
		for _, addr := range link.Addresses {
			fmt.Fprintf(&sb, "    %s\n", addr)
		}
	}
	return sb.String()
}
