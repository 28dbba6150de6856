package log2

import (
	"bytes"
	"fmt"
	"log"
	"runtime"
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLog2(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		fun  func(t testing.TB, l *Log) string
	}{
		{"caller/debug", func(t testing.TB, l *Log) string {
			l.SetFlags(log.Lshortfile)
			l.Debugf("engine.resolve amount=%d", 2033)
			return formatCallerShort(1) + "debug: engine.resolve amount=2033\n"
		}},
		{"caller/info", func(t testing.TB, l *Log) string {
			l.SetFlags(log.Lshortfile)
			l.Infof("chain len=%d", 14)
			return formatCallerShort(1) + "chain len=14\n"
		}},
		{"caller/error", func(t testing.TB, l *Log) string {
			l.SetFlags(log.Lshortfile)
			l.Errorf("config")
			return formatCallerShort(1) + "error: config\n"
		}},
		{"error-func/error", func(t testing.TB, l *Log) string {
			ech := make(chan error, 1)
			l.SetErrorFunc(func(e error) { ech <- e })
			l.SetFlags(0)
			exactError := fmt.Errorf("unknown banknote")
			l.Error(exactError)
			close(ech)
			e := <-ech
			if l == nil {
				assert.Nil(t, e)
			} else {
				assert.Equal(t, exactError, e)
			}
			return "error: unknown banknote\n"
		}},
		{"error-func/string", func(t testing.TB, l *Log) string {
			ech := make(chan error, 1)
			l.SetErrorFunc(func(e error) { ech <- e })
			l.SetFlags(0)
			l.Errorf("amount=%d negative", -5)
			close(ech)
			e := <-ech
			if l == nil {
				assert.Nil(t, e)
			} else {
				assert.Equal(t, "amount=-5 negative", e.Error())
			}
			return "error: amount=-5 negative\n"
		}},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name+"/logger=nil", func(t *testing.T) {
			c.fun(t, nil)
		})
		t.Run(c.name, func(t *testing.T) {
			buf := bytes.NewBuffer(nil)
			l := NewWriter(buf, LAll)
			expect := c.fun(t, l)
			assert.Equal(t, expect, buf.String())
		})
	}
}

func TestLevel(t *testing.T) {
	t.Parallel()

	buf := bytes.NewBuffer(nil)
	l := NewWriter(buf, LInfo)
	l.SetFlags(0)
	l.Debugf("hidden")
	assert.Equal(t, "", buf.String())
	assert.False(t, l.Enabled(LDebug))

	l.SetLevel(LDebug)
	l.Debugf("shown")
	assert.Equal(t, "debug: shown\n", buf.String())

	clone := l.Clone(LError)
	clone.Infof("dropped")
	assert.Equal(t, "debug: shown\n", buf.String())

	var nilLog *Log
	assert.False(t, nilLog.Enabled(LError))
	assert.Nil(t, nilLog.Clone(LDebug))
}

func TestParseLevel(t *testing.T) {
	t.Parallel()
	for input, expect := range map[string]Level{"": LInfo, "info": LInfo, "DEBUG": LDebug, "error": LError, "all": LAll} {
		level, err := ParseLevel(input)
		require.NoError(t, err, input)
		assert.Equal(t, expect, level, input)
	}
	_, err := ParseLevel("verbose")
	assert.True(t, errors.IsNotValid(err))
}

func callerShort(depth int) (file string, line int) {
	var ok bool
	_, file, line, ok = runtime.Caller(depth)
	if !ok {
		file = "???"
		line = 0
	}

	short := file
	for i := len(file) - 1; i > 0; i-- {
		if file[i] == '/' {
			short = file[i+1:]
			break
		}
	}
	file = short

	return
}

func formatCallerShort(depth int) string {
	file, line := callerShort(depth + 1)
	return fmt.Sprintf("%s:%d: ", file, line-1)
}
