package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/zaidlab/folio/internal/config"
	"github.com/zaidlab/folio/internal/logger"
	"github.com/zaidlab/folio/internal/store"
	"github.com/zaidlab/folio/internal/theme"
	"github.com/zaidlab/folio/internal/tui"
)

const staticWidth = 100

type rootFlags struct {
	contentPath string
	stateDir    string
	watch       bool
	seed        int64
	fps         int
	logFile     string
	logLevel    string
	noMouse     bool
}

// runOptions is everything the root command resolved before starting the page.
type runOptions struct {
	content *config.Content
	pref    *theme.Preference
	log     *logger.Logger
	rng     *rand.Rand
	flags   *rootFlags
}

var programRunner = runProgram

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "folio",
		Short:         "Folio renders an animated portfolio page in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, flags)
		},
	}

	cmd.PersistentFlags().StringVar(&flags.stateDir, "state-dir", "", "Directory for preferences and logs (default $FOLIO_HOME or ~/.folio)")
	cmd.PersistentFlags().StringVar(&flags.logFile, "log-file", "", "Log file path (default <state-dir>/folio.log)")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error (default $FOLIO_LOG_LEVEL or info)")
	cmd.Flags().StringVarP(&flags.contentPath, "content", "c", "", "Path to a portfolio content YAML file")
	cmd.Flags().BoolVar(&flags.watch, "watch", false, "Reload the content file when it changes")
	cmd.Flags().Int64Var(&flags.seed, "seed", 0, "Particle seed (0 picks one from the clock)")
	cmd.Flags().IntVar(&flags.fps, "fps", 0, "Frames per second (default from content settings)")
	cmd.Flags().BoolVar(&flags.noMouse, "no-mouse", false, "Disable mouse tracking")

	cmd.AddCommand(newThemeCmd(flags))
	cmd.AddCommand(newSnapshotCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func runRoot(cmd *cobra.Command, flags *rootFlags) error {
	if flags.watch && flags.contentPath == "" {
		return newCommandError("watch content", "no content file", fmt.Errorf("--watch requires --content"), "Pass --content with the YAML file to watch.")
	}

	dir, err := stateDir(flags.stateDir)
	if err != nil {
		return newCommandError("resolve state directory", "home directory lookup", err, "Set FOLIO_HOME or pass --state-dir.")
	}

	log, closeLog := openLogger(flags, dir, cmd.ErrOrStderr())
	defer closeLog()

	content, err := config.Load(flags.contentPath)
	if err != nil {
		return newCommandError("load content", displayPath(flags.contentPath), err, "Fix the reported field or line and try again.")
	}

	opts := runOptions{
		content: content,
		pref:    openPreference(dir, log),
		log:     log,
		rng:     newRand(flags.seed),
		flags:   flags,
	}

	out := cmd.OutOrStdout()
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return programRunner(cmd.Context(), opts, f)
	}
	return renderStatic(out, opts, staticWidth)
}

// renderStatic writes the fully revealed page once for pipes and redirects.
func renderStatic(w io.Writer, opts runOptions, width int) error {
	page := tui.RenderStatic(tui.Options{
		Content:    opts.content,
		Preference: opts.pref,
		Logger:     opts.log,
		Rand:       opts.rng,
		Width:      width,
		Height:     30,
		FPS:        opts.flags.fps,
	})
	_, err := fmt.Fprintln(w, page)
	return err
}

func runProgram(ctx context.Context, opts runOptions, out *os.File) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	width, height, err := term.GetSize(int(out.Fd()))
	if err != nil {
		width, height = 80, 24
	}

	m := tui.NewModel(tui.Options{
		Content:    opts.content,
		Preference: opts.pref,
		Logger:     opts.log,
		Rand:       opts.rng,
		Width:      width,
		Height:     height,
		FPS:        opts.flags.fps,
	})

	programOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithOutput(out), tea.WithContext(ctx)}
	if !opts.flags.noMouse {
		programOpts = append(programOpts, tea.WithMouseAllMotion())
	}
	p := tea.NewProgram(m, programOpts...)

	if opts.flags.watch {
		w, err := config.Watch(ctx, opts.flags.contentPath, 0, opts.log, func(c *config.Content, err error) {
			p.Send(tui.ContentReloadedMsg{Content: c, Err: err})
		})
		if err != nil {
			return newCommandError("watch content", opts.flags.contentPath, err, "Check that the file's directory exists and is readable.")
		}
		defer w.Close()
	}

	opts.log.Info("page started")
	final, err := p.Run()
	if fm, ok := final.(tui.Model); ok {
		fm.Close()
	}
	if err != nil {
		opts.log.Error(err, "page exited with error")
		return fmt.Errorf("failed to run page: %w", err)
	}
	opts.log.Info("page closed")
	return nil
}

// openLogger opens the log file. The page owns the terminal, so when the file cannot be
// opened logs are discarded after a one-line notice on stderr.
func openLogger(flags *rootFlags, dir string, stderr io.Writer) (*logger.Logger, func()) {
	level := flags.logLevel
	if level == "" {
		level = os.Getenv(logLevelEnv)
	}
	path := flags.logFile
	if path == "" {
		path = defaultLogPath(dir)
	}

	log, closer, err := logger.OpenFile(path, level)
	if errors.Is(err, logger.ErrInvalidLevel) {
		fmt.Fprintf(stderr, "invalid log level %q, using info\n", level)
		log, closer, err = logger.OpenFile(path, "")
	}
	if err != nil {
		fmt.Fprintf(stderr, "logging disabled: %v\n", err)
		return logger.Discard(), func() {}
	}
	return log, func() { _ = closer.Close() }
}

// openPreference opens the preference store. An unreadable file leaves the theme
// session-only.
func openPreference(dir string, log *logger.Logger) *theme.Preference {
	fs, err := store.NewFileStore(preferencesPath(dir))
	if err != nil {
		log.Warn(err, "preference store unavailable, theme is session-only")
		return theme.NewPreference(nil, nil, log)
	}
	return theme.NewPreference(fs, nil, log)
}

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

func displayPath(path string) string {
	if path == "" {
		return "embedded default content"
	}
	return path
}
