package state

import (
	"path/filepath"

	"github.com/hashicorp/hcl"
	"github.com/juju/errors"
	"github.com/temoto/atm/currency"
	"github.com/temoto/atm/engine"
	"github.com/temoto/atm/helpers"
	"github.com/temoto/atm/log2"
)

type Config struct {
	// includeSeen contains absolute paths to prevent include loops
	includeSeen map[string]struct{}
	// only used for Unmarshal, do not access
	XXX_Include []ConfigSource `hcl:"include"`

	Log struct {
		Level string `hcl:"level"`
	} `hcl:"log"`

	Chain struct {
		// traversal order, head first, banknote labels like "100$"
		// empty = engine.ReferenceOrder
		Notes []string `hcl:"notes"`
	} `hcl:"chain"`
}

type ConfigSource struct {
	Name     string `hcl:"name,key"`
	Optional bool   `hcl:"optional"`
}

// ChainOrder parses chain.notes. Every note must be declared in currency.Catalog.
func (c *Config) ChainOrder() ([]currency.Denomination, error) {
	if len(c.Chain.Notes) == 0 {
		return engine.ReferenceOrder(), nil
	}
	errs := make([]error, 0)
	order := make([]currency.Denomination, 0, len(c.Chain.Notes))
	for i, label := range c.Chain.Notes {
		d, err := currency.ParseLabel(label)
		if err != nil {
			errs = append(errs, errors.Annotatef(err, "config chain.notes[%d]", i))
			continue
		}
		if !currency.Declared(d) {
			errs = append(errs, errors.NotFoundf("config chain.notes[%d] banknote=%s in catalog", i, label))
			continue
		}
		order = append(order, d)
	}
	if err := helpers.FoldErrors(errs); err != nil {
		return nil, err
	}
	return order, nil
}

func (c *Config) LogLevel() (log2.Level, error) {
	level, err := log2.ParseLevel(c.Log.Level)
	return level, errors.Annotate(err, "config log.level")
}

func (c *Config) read(log *log2.Log, fs FullReader, source ConfigSource, errs *[]error) {
	norm := fs.Normalize(source.Name)
	if _, ok := c.includeSeen[norm]; ok {
		log.Fatalf("config duplicate source=%s", source.Name)
	} else {
		log.Debugf("config reading source='%s' path=%s", source.Name, norm)
	}
	c.includeSeen[source.Name] = struct{}{}
	c.includeSeen[norm] = struct{}{}

	bs, err := fs.ReadAll(norm)
	if bs == nil && err == nil {
		if !source.Optional {
			err = errors.NotFoundf("config required name=%s path=%s", source.Name, norm)
			*errs = append(*errs, err)
		}
		return
	}
	if err != nil {
		*errs = append(*errs, errors.Annotatef(err, "config source=%s", source.Name))
		return
	}

	// hcl appends to slices, later source must replace notes instead
	prevNotes := c.Chain.Notes
	c.Chain.Notes = nil
	err = hcl.Unmarshal(bs, c)
	if c.Chain.Notes == nil {
		c.Chain.Notes = prevNotes
	}
	if err != nil {
		err = errors.Annotatef(err, "config unmarshal source=%s content='%s'", source.Name, string(bs))
		*errs = append(*errs, err)
		return
	}

	var includes []ConfigSource
	includes, c.XXX_Include = c.XXX_Include, nil
	for _, include := range includes {
		includeNorm := fs.Normalize(include.Name)
		if _, ok := c.includeSeen[includeNorm]; ok {
			err = errors.Errorf("config include loop: from=%s include=%s", source.Name, include.Name)
			*errs = append(*errs, err)
			continue
		}
		c.read(log, fs, include, errs)
	}
}

// ReadConfig merges named sources in order, later values overwrite.
// Every named source is required.
func ReadConfig(log *log2.Log, fs FullReader, names ...string) (*Config, error) {
	return readConfig(log, fs, false, names...)
}

// ReadConfigOptional is ReadConfig where missing sources yield defaults.
func ReadConfigOptional(log *log2.Log, fs FullReader, names ...string) (*Config, error) {
	return readConfig(log, fs, true, names...)
}

func readConfig(log *log2.Log, fs FullReader, optional bool, names ...string) (*Config, error) {
	if len(names) == 0 {
		log.Fatal("code error [Must]ReadConfig() without names")
	}

	if osfs, ok := fs.(*OsFullReader); ok {
		dir, name := filepath.Split(names[0])
		osfs.SetBase(dir)
		names[0] = name
	}
	c := &Config{
		includeSeen: make(map[string]struct{}),
	}
	errs := make([]error, 0, 8)
	for _, name := range names {
		c.read(log, fs, ConfigSource{Name: name, Optional: optional}, &errs)
	}
	return c, helpers.FoldErrors(errs)
}

func MustReadConfig(log *log2.Log, fs FullReader, names ...string) *Config {
	c, err := ReadConfig(log, fs, names...)
	if err != nil {
		log.Fatal(errors.ErrorStack(err))
	}
	return c
}
