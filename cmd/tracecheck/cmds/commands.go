package cmds

import (
	"fmt"
	"io"
	"os"

	"github.com/google/go-dap"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/tracecheck/tracecheck/pkg/config"
	"github.com/tracecheck/tracecheck/pkg/drive"
	"github.com/tracecheck/tracecheck/pkg/fixture"
	"github.com/tracecheck/tracecheck/pkg/logflags"
	"github.com/tracecheck/tracecheck/pkg/tracefile"
	"github.com/tracecheck/tracecheck/pkg/version"
)

var (
	// log is whether to log debug statements.
	log bool
	// logOutput is a comma separated list of components that should produce debug output.
	logOutput string
	// fixtureDir is the directory trace names are resolved against; when
	// empty, trace arguments are plain file paths.
	fixtureDir string
	// sourcePath is the source file recorded in generated breakpoint requests.
	sourcePath string
	// noColor disables colorized output.
	noColor bool

	// rootCommand is the root of the command tree.
	rootCommand *cobra.Command

	conf *config.Config
)

const tracecheckLongDesc = `tracecheck validates and inspects debugger stop expectation traces.

A trace file lists the stops a debugger is expected to make while stepping
through a test program, the variables expected to be visible at each stop and
the stepping action to take afterwards. tracecheck parses these files, reports
format errors with the offending line, and can derive the breakpoints and the
DAP request sequence a debugger client needs to replay a trace.`

// New returns an initialized command tree.
func New() *cobra.Command {
	conf = config.LoadConfig()

	rootCommand = &cobra.Command{
		Use:   "tracecheck",
		Short: "tracecheck validates debugger stop expectation traces.",
		Long:  tracecheckLongDesc,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logflags.Setup(log, logOutput)
		},
	}

	rootCommand.PersistentFlags().BoolVarP(&log, "log", "", false, "Enable debug logging.")
	rootCommand.PersistentFlags().StringVarP(&logOutput, "log-output", "", "", "Comma separated list of components that should produce debug output (parser, fixture, dap).")
	rootCommand.PersistentFlags().BoolVarP(&noColor, "no-color", "", false, "Disable colorized output.")

	// 'check' subcommand.
	checkCommand := &cobra.Command{
		Use:   "check <trace>...",
		Short: "Parse trace files and report format errors.",
		Long: `Parse one or more trace files and report format errors.

Every argument is parsed independently; the command exits non-zero if any
trace is malformed.`,
		Run: checkCmd,
	}
	traceFlags(checkCommand.Flags())
	rootCommand.AddCommand(checkCommand)

	// 'dump' subcommand.
	dumpCommand := &cobra.Command{
		Use:   "dump <trace>",
		Short: "Print the stops, scopes and expected values of a trace.",
		Run:   dumpCmd,
	}
	traceFlags(dumpCommand.Flags())
	rootCommand.AddCommand(dumpCommand)

	// 'breakpoints' subcommand.
	breakpointsCommand := &cobra.Command{
		Use:   "breakpoints <trace>",
		Short: "Print the source lines that need a breakpoint, in first occurrence order.",
		Run:   breakpointsCmd,
	}
	traceFlags(breakpointsCommand.Flags())
	rootCommand.AddCommand(breakpointsCommand)

	// 'plan' subcommand.
	planCommand := &cobra.Command{
		Use:   "plan <trace>",
		Short: "Print the DAP requests needed to replay a trace.",
		Run:   planCmd,
	}
	traceFlags(planCommand.Flags())
	planCommand.Flags().StringVar(&sourcePath, "source", "", "Source file path recorded in the setBreakpoints request.")
	rootCommand.AddCommand(planCommand)

	// 'funcs' subcommand.
	funcsCommand := &cobra.Command{
		Use:   "funcs <trace> [prefix]",
		Short: "List the functions a trace expects stops in.",
		Run:   funcsCmd,
	}
	traceFlags(funcsCommand.Flags())
	rootCommand.AddCommand(funcsCommand)

	// 'version' subcommand.
	versionCommand := &cobra.Command{
		Use:   "version",
		Short: "Prints version.",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("tracecheck\n%s\n%s\n", version.TracecheckVersion, version.BuildInfo())
		},
	}
	rootCommand.AddCommand(versionCommand)

	return rootCommand
}

// traceFlags registers the flags shared by every command that reads a
// trace file.
func traceFlags(fs *pflag.FlagSet) {
	fs.StringVar(&fixtureDir, "fixture-dir", conf.FixtureDir, "Directory trace names are resolved against.")
}

// loadTraces parses the named traces, through the fixture repository
// when a fixture directory is configured.
func loadTraces(names []string) ([]*tracefile.Trace, error) {
	load := tracefile.ParseFile
	if fixtureDir != "" {
		repo, err := fixture.NewRepo(fixtureDir, conf.TraceCacheSize)
		if err != nil {
			return nil, err
		}
		load = repo.Load
	}

	traces := make([]*tracefile.Trace, len(names))
	for i, name := range names {
		trace, err := load(name)
		if err != nil {
			return nil, err
		}
		traces[i] = trace
	}
	return traces, nil
}

func loadOneTrace(cmd *cobra.Command, args []string) *tracefile.Trace {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "not enough arguments, see '%s --help'\n", cmd.CommandPath())
		os.Exit(1)
	}
	traces, err := loadTraces(args[:1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return traces[0]
}

const (
	ansiBold  = "\x1b[1m"
	ansiReset = "\x1b[0m"
)

// outWriter returns the writer command output should go to and whether
// ANSI escapes may be written to it.
func outWriter() (io.Writer, bool) {
	if noColor || conf.DisableColor || !isatty.IsTerminal(os.Stdout.Fd()) {
		return os.Stdout, false
	}
	return colorable.NewColorableStdout(), true
}

func checkCmd(cmd *cobra.Command, args []string) {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "not enough arguments, see '%s --help'\n", cmd.CommandPath())
		os.Exit(1)
	}

	failed := false
	for _, name := range args {
		traces, err := loadTraces([]string{name})
		if err != nil {
			failed = true
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		trace := traces[0]
		fmt.Printf("%s: %d stops, %d breakpoint lines\n", name, len(trace.Stops()), len(trace.RequestedBreakpoints()))
	}
	if failed {
		os.Exit(1)
	}
}

func dumpCmd(cmd *cobra.Command, args []string) {
	trace := loadOneTrace(cmd, args)
	out, color := outWriter()

	bold, reset := "", ""
	if color {
		bold, reset = ansiBold, ansiReset
	}

	if trace.SuspendOnEntry() {
		fmt.Fprintln(out, "suspend on entry")
	}
	for _, stop := range trace.Stops() {
		kind := "stop"
		if stop.NeedsBreakpoint {
			kind = "break"
		}
		fmt.Fprintf(out, "%s%s at line %d in %s, then %s%s\n", bold, kind, stop.Line, stop.FunctionName, stop.Strategy, reset)
		for _, scope := range stop.Scopes() {
			name := scope.Name
			if name == "" {
				name = "(unnamed)"
			}
			fmt.Fprintf(out, "  scope %s\n", name)
			dumpMembers(out, scope.Members(), 4)
		}
	}
}

func dumpMembers(out io.Writer, members *tracefile.MemberList, indent int) {
	for _, name := range members.Names() {
		v, _ := members.Get(name)
		buggy := ""
		if v.Buggy() {
			buggy = " (buggy)"
		}
		if sv, ok := v.(*tracefile.StructuredValue); ok {
			fmt.Fprintf(out, "%*s%s %s%s\n", indent, "", name, sv.TypeName(), buggy)
			dumpMembers(out, &sv.Members, indent+2)
		} else {
			fmt.Fprintf(out, "%*s%s %s = %s%s\n", indent, "", name, v.TypeName(), v, buggy)
		}
	}
}

func breakpointsCmd(cmd *cobra.Command, args []string) {
	trace := loadOneTrace(cmd, args)
	for _, line := range trace.RequestedBreakpoints() {
		fmt.Println(line)
	}
}

func planCmd(cmd *cobra.Command, args []string) {
	trace := loadOneTrace(cmd, args)
	src := sourcePath
	if src == "" {
		src = conf.SourcePath
	}

	out, _ := outWriter()
	for _, msg := range drive.Plan(trace, src) {
		switch msg := msg.(type) {
		case *dap.SetBreakpointsRequest:
			fmt.Fprintf(out, "%3d setBreakpoints", msg.Seq)
			for _, bp := range msg.Arguments.Breakpoints {
				fmt.Fprintf(out, " %d", bp.Line)
			}
			fmt.Fprintln(out)
		case *dap.StepInRequest:
			fmt.Fprintf(out, "%3d stepIn\n", msg.Seq)
		case *dap.StepOutRequest:
			fmt.Fprintf(out, "%3d stepOut\n", msg.Seq)
		case *dap.NextRequest:
			fmt.Fprintf(out, "%3d next\n", msg.Seq)
		case *dap.TerminateRequest:
			fmt.Fprintf(out, "%3d terminate\n", msg.Seq)
		case *dap.ContinueRequest:
			fmt.Fprintf(out, "%3d continue\n", msg.Seq)
		case *dap.RestartFrameRequest:
			fmt.Fprintf(out, "%3d restartFrame\n", msg.Seq)
		}
	}
}

func funcsCmd(cmd *cobra.Command, args []string) {
	trace := loadOneTrace(cmd, args)
	prefix := ""
	if len(args) > 1 {
		prefix = args[1]
	}

	out, _ := outWriter()
	index := tracefile.NewFuncIndex(trace)
	for _, fn := range index.Funcs(prefix) {
		fmt.Fprintf(out, "%s:", fn)
		for _, stop := range index.Stops(fn) {
			fmt.Fprintf(out, " %d", stop.Line)
		}
		fmt.Fprintln(out)
	}
}
