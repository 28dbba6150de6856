package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/juju/errors"
	"github.com/temoto/atm/cmd/atm/cli"
	"github.com/temoto/atm/cmd/atm/note"
	"github.com/temoto/atm/cmd/atm/subcmd"
	"github.com/temoto/atm/log2"
	"github.com/temoto/atm/state"
)

var log = log2.NewStderr(log2.LInfo)

var modules = []subcmd.Mod{
	note.ValidateMod,
	note.CashOutMod,
	note.ChainMod,
	cli.Mod,
}

func main() {
	cmdline := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	flagConfig := cmdline.String("config", "atm.hcl", "config file, missing file means reference banknote order")
	flagDebug := cmdline.Bool("debug", false, "debug log, includes resolver walk")
	cmdline.Usage = func() {
		fmt.Fprintf(cmdline.Output(), "usage: %s [flags] command [args]\ncommands:\n", os.Args[0])
		subcmd.PrintUsage(cmdline.Output(), modules)
		fmt.Fprintf(cmdline.Output(), "flags:\n")
		cmdline.PrintDefaults()
	}
	_ = cmdline.Parse(os.Args[1:])

	log.SetFlags(log2.LInteractiveFlags)
	if *flagDebug {
		log.SetLevel(log2.LDebug)
	}

	mod, err := subcmd.Parse(cmdline.Arg(0), modules)
	if err != nil {
		cmdline.Usage()
		log.Fatal(err)
	}

	ctx, g := state.NewContext(log)
	config, err := state.ReadConfigOptional(log, state.NewOsFullReader(), *flagConfig)
	if err != nil {
		log.Fatal(errors.ErrorStack(err))
	}
	err = mod.Main(ctx, config, cmdline.Args()[1:])
	g.Alive.Stop()
	if err != nil {
		log.Fatal(errors.ErrorStack(err))
	}
	g.Alive.Wait()
}
