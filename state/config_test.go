package state

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/temoto/atm/currency"
	"github.com/temoto/atm/engine"
	"github.com/temoto/atm/log2"
)

func TestReadConfig(t *testing.T) {
	t.Parallel()

	type Case struct {
		name      string
		input     string
		check     func(testing.TB, context.Context)
		expectErr string
	}
	cases := []Case{
		{"empty", "", func(t testing.TB, ctx context.Context) {
			g := GetGlobal(ctx)
			assert.Equal(t, engine.ReferenceOrder(), g.Chain.Denominations())
			assert.True(t, g.Machine.Validate("100 Rubles"))
		}, ""},

		{"notes",
			`chain { notes = ["20$", "50 Rubles"] }`,
			func(t testing.TB, ctx context.Context) {
				g := GetGlobal(ctx)
				assert.Equal(t, "20$ -> 50 Rubles", g.Chain.String())
				ok, err := g.Machine.CashOut(50, currency.Ruble)
				require.NoError(t, err)
				assert.False(t, ok)
			},
			"",
		},

		{"notes-five-dollar-explicit",
			`chain { notes = ["5$", "1$"] }`,
			func(t testing.TB, ctx context.Context) {
				g := GetGlobal(ctx)
				assert.True(t, g.Machine.Validate("5$"))
			},
			"",
		},

		{"log-level", `log { level = "error" }`,
			func(t testing.TB, ctx context.Context) {
				g := GetGlobal(ctx)
				// test logger is debug, config can not lower it
				assert.True(t, g.Log.Enabled(log2.LDebug))
			},
			"",
		},

		{"include-normalize", `
chain { notes = ["1$"] }
include "./empty" {}`,
			func(t testing.TB, ctx context.Context) {
				assert.Equal(t, "1$", GetGlobal(ctx).Chain.String())
			}, ""},

		{"include-optional", `
include "dollars-only" {}
include "non-exist" { optional = true }`,
			func(t testing.TB, ctx context.Context) {
				assert.Equal(t, "100$ -> 10$ -> 1$", GetGlobal(ctx).Chain.String())
			}, ""},

		{"include-overwrites", `
chain { notes = ["10 Rubles"] }
include "dollars-only" {}`,
			func(t testing.TB, ctx context.Context) {
				assert.Equal(t, "100$ -> 10$ -> 1$", GetGlobal(ctx).Chain.String())
			}, ""},

		{"include-keeps-when-unset", `
chain { notes = ["10 Rubles"] }
include "log-debug" {}`,
			func(t testing.TB, ctx context.Context) {
				g := GetGlobal(ctx)
				assert.Equal(t, "10 Rubles", g.Chain.String())
				assert.Equal(t, "debug", g.Config.Log.Level)
			}, ""},

		{"error-syntax", `hello`, nil, "key 'hello' expected start of object"},
		{"error-include-loop", `include "include-loop" {}`, nil, "config include loop: from=include-loop include=include-loop"},
		{"error-include-required", `include "non-exist" {}`, nil, "config required name=non-exist"},
		{"error-label", `chain { notes = ["100 rubles"] }`, nil, `config chain.notes[0]: banknote label="100 rubles" not valid`},
		{"error-undeclared", `chain { notes = ["3$"] }`, nil, "config chain.notes[0] banknote=3$ in catalog not found"},
		{"error-duplicate", `chain { notes = ["1$", "1$"] }`, nil, "denomination=1$ position=1 first=0 already exists"},
		{"error-log-level", `log { level = "loud" }`, nil, `config log.level: log level="loud" not valid`},
	}
	mkCheck := func(c Case) func(*testing.T) {
		return func(t *testing.T) {
			log := log2.NewTest(t, log2.LDebug)
			ctx, g := NewContext(log)

			fs := NewMockFullReader(map[string]string{
				"test-inline":  c.input,
				"empty":        "",
				"dollars-only": `chain { notes = ["100$", "10$", "1$"] }`,
				"log-debug":    `log { level = "debug" }`,
				"error-syntax": "hello",
				"include-loop": `include "include-loop" {}`,
			})
			cfg, err := ReadConfig(log, fs, "test-inline")
			if err == nil {
				err = g.Init(ctx, cfg)
			}
			if c.expectErr == "" {
				if err != nil {
					t.Fatalf("error expected=nil actual='%v'", errors.ErrorStack(err))
				}
				if c.check != nil {
					c.check(t, ctx)
				}
			} else {
				require.Error(t, err)
				if !strings.Contains(err.Error(), c.expectErr) {
					t.Fatalf("error expected='%s' actual='%v'", c.expectErr, err)
				}
			}
		}
	}
	for _, c := range cases {
		t.Run(c.name, mkCheck(c))
	}
}

func TestChainOrderFoldsErrors(t *testing.T) {
	t.Parallel()

	cfg := &Config{}
	cfg.Chain.Notes = []string{"3$", "100$", "ten"}
	_, err := cfg.ChainOrder()
	require.Error(t, err)
	lines := strings.Split(err.Error(), "\n")
	assert.Len(t, lines, 2)

	cfg.Chain.Notes = []string{"3$"}
	_, err = cfg.ChainOrder()
	assert.True(t, errors.IsNotFound(err), "err=%v", err)
}

func TestReadConfigOptional(t *testing.T) {
	t.Parallel()

	log := log2.NewTest(t, log2.LDebug)
	cfg, err := ReadConfigOptional(log, NewMockFullReader(nil), "atm.hcl")
	require.NoError(t, err)
	order, err := cfg.ChainOrder()
	require.NoError(t, err)
	assert.Equal(t, engine.ReferenceOrder(), order)

	_, err = ReadConfig(log, NewMockFullReader(nil), "atm.hcl")
	assert.True(t, errors.IsNotFound(err), "err=%v", err)
}

func TestReadConfigOs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "atm.hcl"), []byte(`
chain { notes = ["50$"] }
include "local.hcl" { optional = true }
include "rubles.hcl" {}
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rubles.hcl"), []byte(`chain { notes = ["100 Rubles", "10 Rubles"] }`), 0o644))

	log := log2.NewTest(t, log2.LDebug)
	cfg, err := ReadConfig(log, NewOsFullReader(), filepath.Join(dir, "atm.hcl"))
	require.NoError(t, err)
	assert.Equal(t, []string{"100 Rubles", "10 Rubles"}, cfg.Chain.Notes)
}

func TestFunctionalBundled(t *testing.T) {
	// not Parallel
	t.Logf("this test needs OS open|read|stat access to file `../atm.hcl`")

	ctx, g := NewContext(log2.NewTest(t, log2.LDebug))
	g.MustInit(ctx, MustReadConfig(g.Log, NewOsFullReader(), "../atm.hcl"))
	assert.Equal(t, engine.ReferenceOrder(), g.Chain.Denominations())
}

func TestNewTestContext(t *testing.T) {
	t.Parallel()

	ctx, g := NewTestContext(t, `chain { notes = ["2$", "1$"] }`)
	assert.Equal(t, g, GetGlobal(ctx))
	assert.Equal(t, 2, g.Chain.Len())
	assert.True(t, g.Alive.IsRunning())
}

func TestGetGlobalPanic(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { GetGlobal(context.Background()) })
	assert.Panics(t, func() { GetGlobal(context.WithValue(context.Background(), ContextKey, "wrong")) })
}
