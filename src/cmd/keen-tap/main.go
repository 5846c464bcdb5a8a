package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/maksimkurb/keen-tap/src/internal/commands"
	"github.com/maksimkurb/keen-tap/src/internal/config"
	"github.com/maksimkurb/keen-tap/src/internal/log"
)

var (
	version = "dev"
	commit  = "n/a"
	date    = "n/a"
)

func main() {
	ctx := &commands.AppContext{Version: version}

	// Define flags
	flag.StringVar(&ctx.ConfigPath, "config", config.DefaultConfigPath, "Path to configuration file (optional)")
	flag.BoolVar(&ctx.Verbose, "verbose", false, "Enable debug logging")

	// Custom usage message
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Keenetic Transparent Traffic Tap\n")
		fmt.Fprintf(os.Stderr, "Version: %s (Commit: %s, Date: %s)\n\n", version, commit, date)
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <command> [args]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  start <a> <b>           Mirror ingress traffic of each interface to its peer\n")
		fmt.Fprintf(os.Stderr, "  stop <a> <b>            Revert \"start\" (flushed addresses are not restored)\n")
		fmt.Fprintf(os.Stderr, "  status <a> <b>          Show IPv6, promiscuous mode and qdisc state\n")
		fmt.Fprintf(os.Stderr, "  self-check [<a> <b>]    Verify that the tap is applied\n")
		fmt.Fprintf(os.Stderr, "  interfaces              Get available interfaces list\n")
		fmt.Fprintf(os.Stderr, "  serve [-listen addr]    Run the HTTP status API\n\n")
		fmt.Fprintf(os.Stderr, "The pair may be omitted when [tap] is set in the configuration file.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if ctx.Verbose {
		log.SetVerbose(true)
	}

	cmds := []commands.Runner{
		commands.CreateStartCommand(),
		commands.CreateStopCommand(),
		commands.CreateStatusCommand(),
		commands.CreateSelfCheckCommand(),
		commands.CreateInterfacesCommand(),
		commands.CreateServeCommand(),
	}

	args := flag.Args()

	if len(args) < 1 {
		flag.Usage()
		os.Exit(1)
	}

	subcommand := args[0]
	for _, cmd := range cmds {
		if cmd.Name() == subcommand {
			if err := cmd.Init(args[1:], ctx); err != nil {
				log.Fatalf("Failed to initialize command: %v", err)
			}

			if err := cmd.Run(); err != nil {
				log.Fatalf("Failed to run command: %v", err)
			}

			ctx.Close()
			os.Exit(0)
		}
	}

	log.Fatalf("Unknown subcommand: %s", subcommand)
}
