package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	prompt "github.com/c-bata/go-prompt"
	"github.com/juju/errors"
	"github.com/temoto/atm/cmd/atm/note"
	"github.com/temoto/atm/cmd/atm/subcmd"
	helpers_cli "github.com/temoto/atm/helpers/cli"
	"github.com/temoto/atm/state"
)

const usage = `syntax: one command per line
- validate TEXT            check banknote label, TEXT is rest of line
- cashout AMOUNT CURRENCY  check amount is decomposable
- trace AMOUNT CURRENCY    cashout with resolver walk
- chain                    print banknote order
- help
`

var Mod = subcmd.Mod{Name: "cli", Usage: "interactive prompt", Main: Main}

func Main(ctx context.Context, config *state.Config, args []string) error {
	g := state.GetGlobal(ctx)
	if err := g.Init(ctx, config); err != nil {
		return err
	}

	exec := NewExecutor(ctx, os.Stdout)
	helpers_cli.MainLoop(g.Alive, "atm", func(line string) {
		if err := exec(line); err != nil {
			g.Log.Error(errors.ErrorStack(err))
		}
	}, NewCompleter(ctx))
	return nil
}

func NewCompleter(ctx context.Context) func(d prompt.Document) []prompt.Suggest {
	g := state.GetGlobal(ctx)
	commands := []prompt.Suggest{
		{Text: "validate", Description: "TEXT"},
		{Text: "cashout", Description: "AMOUNT CURRENCY"},
		{Text: "trace", Description: "AMOUNT CURRENCY"},
		{Text: "chain"},
		{Text: "help"},
	}
	labels := make([]prompt.Suggest, 0, g.Chain.Len())
	for _, label := range g.Chain.Labels() {
		labels = append(labels, prompt.Suggest{Text: label})
	}
	currencies := []prompt.Suggest{{Text: "dollar"}, {Text: "ruble"}}

	return func(d prompt.Document) []prompt.Suggest {
		before := d.TextBeforeCursor()
		word := d.GetWordBeforeCursor()
		fields := strings.Fields(before)
		switch {
		case len(fields) == 0 || (len(fields) == 1 && word != ""):
			return prompt.FilterHasPrefix(commands, word, true)
		case fields[0] == "validate":
			// prompt replaces only last word, ruble labels have space
			if len(fields) > 2 || (len(fields) == 2 && word == "") {
				return nil
			}
			return prompt.FilterHasPrefix(labels, word, false)
		case fields[0] == "cashout" || fields[0] == "trace":
			if (len(fields) == 2 && word == "") || len(fields) == 3 {
				return prompt.FilterHasPrefix(currencies, word, true)
			}
		}
		return nil
	}
}

// NewExecutor returns line interpreter writing results into w.
func NewExecutor(ctx context.Context, w io.Writer) func(line string) error {
	g := state.GetGlobal(ctx)

	return func(line string) error {
		line = strings.TrimSpace(line)
		if line == "" {
			return nil
		}
		command, rest := line, ""
		if i := strings.IndexByte(line, ' '); i >= 0 {
			command, rest = line[:i], strings.TrimSpace(line[i+1:])
		}

		switch command {
		case "help", "/help":
			fmt.Fprint(w, usage)
			return nil
		case "validate":
			if rest == "" {
				return errors.NotValidf("validate: expected TEXT")
			}
			note.Validate(w, g.Machine, []string{rest})
			return nil
		case "cashout":
			return note.CashOut(w, g.Machine, strings.Fields(rest), false)
		case "trace":
			return note.CashOut(w, g.Machine, strings.Fields(rest), true)
		case "chain":
			note.Chain(w, g.Chain)
			return nil
		case "quit", "exit":
			g.Alive.Stop()
			return nil
		}
		return errors.NotValidf("command=%q, try help", command)
	}
}
