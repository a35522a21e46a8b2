package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/idelchi/deepclean/internal/deepclean"
)

const (
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 2
)

// jsonReport is the JSON form of a run report.
type jsonReport struct {
	*deepclean.Report

	// Freed is the freed space in human-readable form.
	Freed string `json:"freed"`
	// ExitCode is the exit code the process ends with.
	ExitCode int `json:"exit_code"`
}

// PrintJSON outputs the run report in JSON format.
func PrintJSON(report *deepclean.Report, writer io.Writer) error {
	data, err := json.MarshalIndent(jsonReport{
		Report:   report,
		Freed:    deepclean.FormatBytes(report.Stats.FreedBytes),
		ExitCode: report.ExitCode(),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

// printer renders the human-readable progress of a run.
// A quiet printer prints nothing, which is used for JSON output.
type printer struct {
	w        io.Writer
	styled   bool
	quiet    bool
	removing bool

	ok   lipgloss.Style
	fail lipgloss.Style
	warn lipgloss.Style
}

func newPrinter(w io.Writer, styled, quiet bool) *printer {
	return &printer{
		w:      w,
		styled: styled,
		quiet:  quiet,
		ok:     lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		fail:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		warn:   lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	}
}

func (p *printer) paint(style lipgloss.Style, s string) string {
	if !p.styled {
		return s
	}

	return style.Render(s)
}

//nolint:forbidigo // Progress output to console
func (p *printer) printf(format string, args ...any) {
	if p.quiet {
		return
	}

	fmt.Fprintf(p.w, format, args...)
}

func (p *printer) banner() {
	p.printf("%s\n%s\n\n", banner, strings.Repeat("=", len(banner)))
}

func (p *printer) warnUnknown(arg string) {
	p.printf("%s\n", p.paint(p.warn, fmt.Sprintf("Warning: Unknown argument '%s' ignored.", arg)))
}

func (p *printer) startingDirectory(dir string) {
	p.printf("Starting directory: %s\n\n", dir)
}

// inlineError shows scan errors as they happen. Delete errors get their own
// notice from outcome.
func (p *printer) inlineError(msg string) {
	if p.removing {
		return
	}

	p.printf("  %s\n", p.paint(p.warn, "! "+msg))
}

func (p *printer) matches(matches []string) {
	p.printf("Found %d folder(s) to delete:\n", len(matches))

	for _, m := range matches {
		p.printf("  - %s\n", m)
	}

	p.printf("\n")
}

func (p *printer) startDeleting() {
	p.removing = true

	p.printf("Deleting folders...\n")
}

func (p *printer) outcome(o deepclean.Outcome) {
	switch o.Kind {
	case deepclean.Deleted:
		p.printf("  %s\n", p.paint(p.ok, "✓ Deleted: "+o.Path))
	case deepclean.AccessDenied:
		p.printf("  %s\n", p.paint(p.fail, "✗ Access denied: "+o.Path))
	case deepclean.IOFailure:
		p.printf("  %s\n", p.paint(p.fail, "✗ I/O error: "+o.Path))
	default:
		p.printf("  %s\n", p.paint(p.fail, "✗ Error: "+o.Path))
	}
}

// report prints the closing lines for the state the run stopped in.
func (p *printer) report(r *deepclean.Report) error {
	if p.quiet {
		return nil
	}

	switch r.State {
	case deepclean.StateNothingFound:
		p.printf("No bin or obj folders found.\n")
	case deepclean.StateReported:
		p.printf("DRY RUN MODE - No folders will be deleted.\n")
	case deepclean.StateCancelled:
		p.printf("Operation cancelled.\n")
	case deepclean.StateDone:
		if err := p.summary(r); err != nil {
			return err
		}
	}

	if len(r.Errors) > 0 {
		p.printf("\nErrors encountered:\n")

		for _, e := range r.Errors {
			p.printf("  - %s\n", e)
		}
	}

	return nil
}

func (p *printer) summary(r *deepclean.Report) error {
	w := tabwriter.NewWriter(p.w, 0, 4, TabSpacing, ' ', 0)

	fmt.Fprintln(w, "\nSummary:\t")
	fmt.Fprintf(w, "  Deleted:\t%d folder(s)\n", r.Stats.Deleted)
	fmt.Fprintf(w, "  Freed space:\t%s (%s bytes)\n",
		deepclean.FormatBytes(r.Stats.FreedBytes), humanize.Comma(r.Stats.FreedBytes))
	fmt.Fprintf(w, "  Elapsed:\t%v\n", r.Elapsed.Round(time.Millisecond))

	return w.Flush()
}
