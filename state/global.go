package state

import (
	"context"
	"fmt"

	"github.com/juju/errors"
	"github.com/temoto/alive/v2"
	"github.com/temoto/atm/atm"
	"github.com/temoto/atm/engine"
	"github.com/temoto/atm/log2"
)

type Global struct {
	Alive   *alive.Alive
	Config  *Config
	Chain   *engine.Chain
	Machine *atm.Machine
	Log     *log2.Log
}

const ContextKey = "run/state-global"

func NewContext(log *log2.Log) (context.Context, *Global) {
	if log == nil {
		panic("code error state.NewContext() log=nil")
	}

	g := &Global{
		Alive: alive.NewAlive(),
		Log:   log,
	}

	ctx := context.Background()
	ctx = context.WithValue(ctx, log2.ContextKey, log)
	ctx = context.WithValue(ctx, ContextKey, g)

	return ctx, g
}

func GetGlobal(ctx context.Context) *Global {
	v := ctx.Value(ContextKey)
	if v == nil {
		panic(fmt.Sprintf("context['%s'] is nil", ContextKey))
	}
	if g, ok := v.(*Global); ok {
		return g
	}
	panic(fmt.Sprintf("context['%s'] expected type *Global actual=%#v", ContextKey, v))
}

// If `Init` fails, consider `Global` is in broken state.
func (g *Global) Init(ctx context.Context, cfg *Config) error {
	g.Config = cfg

	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	// never lower level set by caller, e.g. -debug flag
	if !g.Log.Enabled(level) {
		g.Log.SetLevel(level)
	}

	order, err := cfg.ChainOrder()
	if err != nil {
		return errors.Annotate(err, "chain init")
	}
	chain, err := engine.New(order...)
	if err != nil {
		return errors.Annotate(err, "chain init")
	}
	chain.SetLog(g.Log)
	g.Chain = chain
	g.Machine = atm.New(chain, g.Log)
	g.Log.Debugf("config: chain len=%d order=%s", chain.Len(), chain.String())
	return nil
}

func (g *Global) MustInit(ctx context.Context, cfg *Config) {
	err := g.Init(ctx, cfg)
	if err != nil {
		g.Log.Fatal(errors.ErrorStack(err))
	}
}

func (g *Global) Error(err error, args ...interface{}) {
	if err != nil {
		if len(args) != 0 {
			msg := args[0].(string)
			args = args[1:]
			err = errors.Annotatef(err, msg, args...)
		}
		g.Log.Error(errors.ErrorStack(err))
	}
}
