package note

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/juju/errors"
	"github.com/temoto/atm/atm"
	"github.com/temoto/atm/cmd/atm/subcmd"
	"github.com/temoto/atm/currency"
	"github.com/temoto/atm/engine"
	"github.com/temoto/atm/state"
)

var (
	ValidateMod = subcmd.Mod{Name: "validate", Usage: "TEXT...  check banknote labels", Main: validateMain}
	CashOutMod  = subcmd.Mod{Name: "cashout", Usage: "[-trace] AMOUNT CURRENCY  check amount is decomposable", Main: cashOutMain}
	ChainMod    = subcmd.Mod{Name: "chain", Usage: "print configured banknote order", Main: chainMain}
)

func validateMain(ctx context.Context, config *state.Config, args []string) error {
	g := state.GetGlobal(ctx)
	if err := g.Init(ctx, config); err != nil {
		return err
	}
	if len(args) == 0 {
		return errors.NotValidf("validate: expected TEXT argument")
	}
	Validate(os.Stdout, g.Machine, args)
	return nil
}

func cashOutMain(ctx context.Context, config *state.Config, args []string) error {
	g := state.GetGlobal(ctx)
	flags := flag.NewFlagSet("cashout", flag.ContinueOnError)
	flagTrace := flags.Bool("trace", false, "print resolver walk")
	if err := flags.Parse(args); err != nil {
		return errors.Annotate(err, "cashout")
	}
	if err := g.Init(ctx, config); err != nil {
		return err
	}
	return CashOut(os.Stdout, g.Machine, flags.Args(), *flagTrace)
}

func chainMain(ctx context.Context, config *state.Config, args []string) error {
	g := state.GetGlobal(ctx)
	if err := g.Init(ctx, config); err != nil {
		return err
	}
	Chain(os.Stdout, g.Chain)
	return nil
}

// Validate prints `TEXT: true|false` per text.
func Validate(w io.Writer, m *atm.Machine, texts []string) {
	for _, text := range texts {
		fmt.Fprintf(w, "%s: %t\n", text, m.Validate(text))
	}
}

// CashOut parses `AMOUNT CURRENCY` and prints result, with walk trace if requested.
func CashOut(w io.Writer, m *atm.Machine, args []string, trace bool) error {
	const tag = "cashout"
	amount, c, err := ParseRequest(args)
	if err != nil {
		return errors.Annotate(err, tag)
	}
	if trace {
		tr, err := m.Explain(amount, c)
		if err != nil {
			return errors.Annotate(err, tag)
		}
		fmt.Fprintf(w, "%t\n", tr.Accepted)
		PrintTrace(w, &tr)
		return nil
	}
	ok, err := m.CashOut(amount, c)
	if err != nil {
		return errors.Annotate(err, tag)
	}
	fmt.Fprintf(w, "%t\n", ok)
	return nil
}

func ParseRequest(args []string) (int, currency.Currency, error) {
	if len(args) != 2 {
		return 0, 0, errors.NotValidf("arguments=%q expected AMOUNT CURRENCY", args)
	}
	amount, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, errors.NotValidf("amount=%q", args[0])
	}
	c, err := currency.ParseCurrency(args[1])
	if err != nil {
		return 0, 0, err
	}
	return amount, c, nil
}

func PrintTrace(w io.Writer, tr *engine.Trace) {
	for i, s := range tr.Steps {
		fmt.Fprintf(w, "%2d. %-12s amount=%-8d %s\n", i+1, s.Denomination.Label(), s.Amount, s.Kind)
	}
	fmt.Fprintf(w, "outcome=%s\n", tr.Outcome)
}

func Chain(w io.Writer, c *engine.Chain) {
	for i, label := range c.Labels() {
		fmt.Fprintf(w, "%2d. %s\n", i+1, label)
	}
}
