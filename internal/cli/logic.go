package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/idelchi/deepclean/internal/deepclean"
	"github.com/idelchi/deepclean/internal/logging"
)

func (c CLI) logic(s settings, unknown []string) (int, error) {
	jsonOutput := strings.ToLower(s.output) == "json"

	out := newPrinter(c.stdout, isTerminal(c.stdout), jsonOutput)

	log := logging.New(c.stdout, s.debug && !jsonOutput)
	log.OpenAudit(s.audit)

	defer func() {
		if err := log.Close(); err != nil {
			fmt.Fprintf(c.stderr, "Warning: %v\n", err)
		}
	}()

	out.banner()

	for _, arg := range unknown {
		if jsonOutput {
			fmt.Fprintf(c.stderr, "Warning: Unknown argument '%s' ignored.\n", arg)

			continue
		}

		out.warnUnknown(arg)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return 1, fmt.Errorf("getting current directory: %w", err)
	}

	out.startingDirectory(cwd)

	// The prompt must stay visible even when stdout carries JSON.
	promptOut := c.stdout
	if jsonOutput {
		promptOut = c.stderr
	}

	stdin := bufio.NewReader(c.stdin)

	options := s.options
	options.Root = cwd

	report, err := deepclean.Run(options, deepclean.Hooks{
		OnError:   out.inlineError,
		OnMatches: out.matches,
		Confirm: func([]string) bool {
			return confirm(stdin, promptOut)
		},
		OnDeleting: out.startDeleting,
		OnOutcome:  out.outcome,
		Log:        log,
	})
	if err != nil {
		return 1, err
	}

	if jsonOutput {
		if err := PrintJSON(report, c.stdout); err != nil {
			return 1, err
		}
	} else if err := out.report(report); err != nil {
		return 1, err
	}

	return report.ExitCode(), nil
}

// isTerminal reports whether w is a terminal, so output can be colored.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
