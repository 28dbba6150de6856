package cli

import (
	"bufio"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/c-bata/go-prompt"
	"github.com/mattn/go-isatty"
	"github.com/temoto/alive/v2"
)

// MainLoop runs interactive prompt on terminal, otherwise executes stdin line by line.
// Signals stop `a`; non-interactive loop checks it between lines.
func MainLoop(a *alive.Alive, tag string, exec func(line string), complete func(d prompt.Document) []prompt.Suggest) {
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT)
	defer signal.Stop(signalCh)
	go func() {
		select {
		case <-signalCh:
			a.Stop()
		case <-a.StopChan():
		}
	}()

	if isatty.IsTerminal(os.Stdin.Fd()) {
		go func() {
			// go-prompt Run() has no cancel, leave process on stop
			<-a.StopChan()
			os.Exit(0)
		}()
		prompt.New(exec, complete,
			prompt.OptionTitle(tag),
			prompt.OptionPrefix(tag+"> "),
		).Run()
		return
	}
	ReadLines(a, os.Stdin, exec)
}

// ReadLines calls exec for each non-empty trimmed line until EOF or `a` stops.
func ReadLines(a *alive.Alive, r io.Reader, exec func(line string)) {
	scanner := bufio.NewScanner(r)
	for a.IsRunning() && scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		exec(line)
	}
}
