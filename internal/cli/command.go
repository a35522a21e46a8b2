package cli

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/idelchi/deepclean/internal/config"
	"github.com/idelchi/deepclean/internal/deepclean"
	"github.com/idelchi/deepclean/internal/logging"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// New creates a new CLI instance with the given version, bound to the process streams.
func New(version string) CLI {
	return CLI{version: version, stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
}

// WithIO returns a copy of the CLI using the given streams.
func (c CLI) WithIO(stdin io.Reader, stdout, stderr io.Writer) CLI {
	c.stdin, c.stdout, c.stderr = stdin, stdout, stderr

	return c
}

// settings is the parsed, immutable configuration of one invocation.
type settings struct {
	options deepclean.Options
	debug   bool
	output  string
	audit   logging.Audit
}

//nolint:gochecknoglobals // Config constant
var allowedOutputs = []string{"table", "json"}

const banner = "DeepClean - Recursively delete bin and obj folders"

func help(w io.Writer, flags *pflag.FlagSet) {
	fmt.Fprintln(w, banner)
	fmt.Fprintln(w, strings.Repeat("=", len(banner)))
	fmt.Fprintln(w, heredoc.Doc(`

		Usage:

			deepclean [flags]

		Description:
		  Recursively finds and deletes all 'bin' and 'obj' folders from the
		  current directory downwards. Useful for cleaning up .NET projects.

		  Matched folders are not searched further; anything nested inside them
		  is removed together with them.

		Exit codes:
		  0  success, nothing found, dry run or cancelled
		  1  one or more folders could not be scanned or deleted, or a fatal error

		Flags:
	`))
	fmt.Fprint(w, flags.FlagUsages())
}

// lowercase normalizes flag names, so --DRY-RUN behaves like --dry-run.
func lowercase(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ToLower(name))
}

// Execute runs the CLI with the provided arguments and returns the process exit code.
// A non-nil error is fatal and always pairs with exit code 1.
func (c CLI) Execute(args []string) (int, error) {
	var (
		s          settings
		configPath string
		version    bool
		exitCode   int
	)

	cmd := &cobra.Command{
		Use:           "deepclean [flags]",
		Short:         "Recursively delete bin and obj folders",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		FParseErrWhitelist: cobra.FParseErrWhitelist{
			UnknownFlags: true,
		},
	}

	flags := cmd.Flags()
	flags.SetNormalizeFunc(lowercase)
	flags.SortFlags = false

	flags.BoolVarP(&s.options.DryRun, "dry-run", "d", false, "Show what would be deleted without actually deleting")
	flags.BoolVarP(&s.options.AutoConfirm, "yes", "y", false, "Skip confirmation prompt and delete automatically")
	flags.StringSliceVarP(&s.options.Excludes, "exclude", "e", []string{},
		"Wildcard patterns for directories to skip (e.g. node_modules,vendor/*)")
	flags.StringVarP(&s.output, "output", "o", "table", "Output format: table or json")
	flags.StringVar(&configPath, "config", "", "Path to a TOML or YAML config file")
	flags.StringVar(&s.audit.File, "log-file", "", "Append an audit log of deletions to this file (rotated)")
	flags.BoolVar(&s.debug, "debug", false, "Enable debug output")
	flags.BoolVarP(&version, "version", "v", false, "Show version and exit")

	cmd.InitDefaultHelpFlag()
	flags.Lookup("help").Usage = "Show this help message"

	cmd.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		help(c.stdout, cmd.Flags())
	})
	// cobra falls back to os.Args for nil args.
	if args == nil {
		args = []string{}
	}

	args = foldShorthands(flags, args)

	cmd.SetArgs(args)
	cmd.SetIn(c.stdin)
	cmd.SetOut(c.stdout)
	cmd.SetErr(c.stderr)

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		if version {
			fmt.Fprintln(c.stdout, c.version)

			return nil
		}

		if err := s.merge(cmd.Flags(), configPath); err != nil {
			return err
		}

		if !slices.Contains(allowedOutputs, strings.ToLower(s.output)) {
			return fmt.Errorf("invalid output format %q: must be one of %v", s.output, allowedOutputs)
		}

		code, err := c.logic(s, unknownArgs(cmd.Flags(), args))
		exitCode = code

		return err
	}

	if err := cmd.Execute(); err != nil {
		return 1, err
	}

	return exitCode, nil
}

// merge applies config file values for every flag that was not set explicitly.
func (s *settings) merge(flags *pflag.FlagSet, configPath string) error {
	file := config.Defaults()

	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}

		file = loaded
	}

	if file.DryRun != nil && !flags.Changed("dry-run") {
		s.options.DryRun = *file.DryRun
	}

	if file.Yes != nil && !flags.Changed("yes") {
		s.options.AutoConfirm = *file.Yes
	}

	if file.Debug != nil && !flags.Changed("debug") {
		s.debug = *file.Debug
	}

	if file.Output != nil && !flags.Changed("output") {
		s.output = *file.Output
	}

	if len(file.Exclude) > 0 && !flags.Changed("exclude") {
		s.options.Excludes = file.Exclude
	}

	logFile := s.audit.File
	if !flags.Changed("log-file") {
		logFile = file.Log.File
	}

	s.audit = logging.Audit{
		File:       logFile,
		MaxSizeMB:  file.Log.MaxSizeMB,
		MaxBackups: file.Log.MaxBackups,
		MaxAgeDays: file.Log.MaxAgeDays,
		Compress:   file.Log.Compress,
	}

	return nil
}

// foldShorthands lower-cases uppercase shorthand letters that are only
// registered in lower case, so -D behaves like -d. Flag values are left as is.
func foldShorthands(flags *pflag.FlagSet, args []string) []string {
	folded := slices.Clone(args)

	for i := 0; i < len(folded); i++ {
		arg := folded[i]

		if arg == "--" {
			break
		}

		if name, ok := strings.CutPrefix(arg, "--"); ok {
			name, _, inline := strings.Cut(name, "=")
			if flag := flags.Lookup(name); flag != nil && flag.NoOptDefVal == "" && !inline {
				i++
			}

			continue
		}

		if !strings.HasPrefix(arg, "-") || arg == "-" {
			continue
		}

		group := []byte(arg[1:])
		_, takesNext := walkShorthands(flags, group)
		folded[i] = "-" + string(group)

		if takesNext {
			i++
		}
	}

	return folded
}

// unknownArgs returns the arguments the flag set does not recognize, mirroring
// how pflag skips them: flag values are consumed, stray positionals are unknown.
// Unknown letters inside a shorthand group are reported one by one.
func unknownArgs(flags *pflag.FlagSet, args []string) []string {
	var unknown []string

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if arg == "--" {
			return append(unknown, args[i+1:]...)
		}

		if !strings.HasPrefix(arg, "-") || arg == "-" {
			unknown = append(unknown, arg)

			continue
		}

		name, ok := strings.CutPrefix(arg, "--")
		if !ok {
			letters, takesNext := walkShorthands(flags, []byte(arg[1:]))
			unknown = append(unknown, letters...)

			if takesNext {
				i++
			}

			continue
		}

		name, _, inline := strings.Cut(name, "=")

		flag := flags.Lookup(name)
		if flag == nil {
			unknown = append(unknown, arg)

			continue
		}

		// A flag that needs a value takes the next argument unless it was given inline.
		if flag.NoOptDefVal == "" && !inline {
			i++
		}
	}

	return unknown
}

// walkShorthands walks a group of shorthand flags such as "dy" or "ojson" the
// way pflag parses it, folding uppercase letters that are only registered in
// lower case. It returns the unknown letters as "-x" and whether the group ends
// in a flag that takes the next argument as its value.
func walkShorthands(flags *pflag.FlagSet, group []byte) ([]string, bool) {
	var unknown []string

	for i, c := range group {
		if c > 0x7f {
			return append(unknown, "-"+string(group[i:])), false
		}

		letter := string(group[i : i+1])

		if c >= 'A' && c <= 'Z' && flags.ShorthandLookup(letter) == nil {
			if lower := strings.ToLower(letter); flags.ShorthandLookup(lower) != nil {
				group[i], letter = lower[0], lower
			}
		}

		rest := group[i+1:]
		inline := len(rest) > 0 && rest[0] == '='

		flag := flags.ShorthandLookup(letter)
		if flag == nil {
			unknown = append(unknown, "-"+letter)

			if inline {
				return unknown, false
			}

			continue
		}

		if inline {
			return unknown, false
		}

		// The rest of the group is the value.
		if flag.NoOptDefVal == "" {
			return unknown, len(rest) == 0
		}
	}

	return unknown, false
}
