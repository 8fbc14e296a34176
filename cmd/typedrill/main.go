// Package main provides the CLI entrypoint for typedrill.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/typedrill/typedrill/internal/archive"
	"github.com/typedrill/typedrill/internal/config"
	"github.com/typedrill/typedrill/internal/model"
	"github.com/typedrill/typedrill/internal/server"
	"github.com/typedrill/typedrill/internal/stats"
	"github.com/typedrill/typedrill/internal/statsui"
	"github.com/typedrill/typedrill/internal/store"
	"github.com/typedrill/typedrill/internal/textgen"
	"github.com/typedrill/typedrill/internal/tui"
	"github.com/typedrill/typedrill/internal/vocab"
)

const (
	defaultSource     = "quotes"
	defaultLength     = "medium"
	defaultDifficulty = "mixed"
	defaultAddr       = ":8085"
	localProgressUser = "local"
)

var (
	practiceSource     string
	practiceLength     string
	practiceDifficulty string
	practiceCategory   string
	practiceWord       string
	practiceServerURL  string
	practiceUserID     string

	statsPlain bool

	exportOut string

	serveAddr string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "typedrill",
		Short:         "TUI typing trainer with adaptive vocabulary practice",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().StringVar(&practiceSource, "source", defaultSource, "text source (quotes, programming, lorem, words, sentences, vocabulary)")
	rootCmd.Flags().StringVar(&practiceLength, "length", defaultLength, "passage length (short, medium, long)")
	rootCmd.Flags().StringVar(&practiceDifficulty, "difficulty", defaultDifficulty, "vocabulary difficulty (easy, medium, hard, mixed)")
	rootCmd.Flags().StringVar(&practiceCategory, "category", "", "vocabulary category filter")
	rootCmd.Flags().StringVar(&practiceWord, "word", "", "practice a specific vocabulary word")
	rootCmd.Flags().StringVar(&practiceServerURL, "server-url", "", "backend URL for shared leaderboards (optional)")
	rootCmd.Flags().StringVar(&practiceUserID, "user-id", "", "backend user id (optional)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newSourcesCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newResetCmd())
	rootCmd.AddCommand(newServeCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "source", &practiceSource, fileCfg.Practice.Source)
	applyStringConfig(cmd, "length", &practiceLength, fileCfg.Practice.Length)
	applyStringConfig(cmd, "difficulty", &practiceDifficulty, fileCfg.Practice.Difficulty)
	applyStringConfig(cmd, "category", &practiceCategory, fileCfg.Practice.Category)
	applyStringConfig(cmd, "server-url", &practiceServerURL, fileCfg.Server.ServerURL)
	applyStringConfig(cmd, "user-id", &practiceUserID, fileCfg.Server.UserID)

	if err := validatePracticeFlags(); err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	arch := archive.New(st)
	settings, err := arch.Settings(context.Background())
	if err != nil {
		logErrf("failed to load settings: %v\n", err)
		settings = model.DefaultSettings()
	}
	settings.TextSource = practiceSource
	settings.TextLength = model.TextLength(practiceLength)

	catalog := vocab.NewCatalog()
	gen := textgen.New(catalog)
	scheduler := vocab.NewScheduler(catalog, st)

	opts := tui.Options{
		Settings: settings,
		TextOpts: textgen.Options{
			Source: practiceSource,
			Length: model.TextLength(practiceLength),
			Vocabulary: vocab.Options{
				Difficulty: model.Difficulty(practiceDifficulty),
				Category:   practiceCategory,
				Length:     model.TextLength(practiceLength),
			},
			Word: practiceWord,
		},
		ProgressUser: localProgressUser,
	}
	if practiceServerURL != "" && practiceUserID != "" {
		opts.API = server.NewAPIClient(practiceServerURL)
		opts.RemoteUser = practiceUserID
	}

	program := tea.NewProgram(tui.NewModel(opts, gen, arch, scheduler), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func validatePracticeFlags() error {
	if !textgen.KnownSource(practiceSource) {
		return fmt.Errorf("unknown --source %q (run: typedrill sources)", practiceSource)
	}
	switch model.TextLength(practiceLength) {
	case model.LengthShort, model.LengthMedium, model.LengthLong:
	default:
		return fmt.Errorf("--length must be short, medium, or long")
	}
	switch model.Difficulty(practiceDifficulty) {
	case model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard, model.DifficultyMixed:
	default:
		return fmt.Errorf("--difficulty must be easy, medium, hard, or mixed")
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newSourcesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List available text sources",
		Args:  cobra.NoArgs,
		RunE:  runSourcesCmd,
	}
}

func runSourcesCmd(cmd *cobra.Command, _ []string) error {
	for _, src := range textgen.Sources() {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s\n", src.ID, src.Description); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show stats",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print a plain-text summary instead of the TUI")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	arch := archive.New(st)

	if statsPlain {
		ctx := context.Background()
		aggs, err := arch.Aggregates(ctx)
		if err != nil {
			return fmt.Errorf("failed to load stats: %w", err)
		}
		results, err := arch.Results(ctx)
		if err != nil {
			return fmt.Errorf("failed to load results: %w", err)
		}
		return stats.RenderSummary(cmd.OutOrStdout(), aggs, results)
	}

	scheduler := vocab.NewScheduler(vocab.NewCatalog(), st)
	program := tea.NewProgram(statsui.NewModel(arch, scheduler, localProgressUser), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export settings, results, and stats as JSON",
		Args:  cobra.NoArgs,
		RunE:  runExportCmd,
	}
	cmd.Flags().StringVar(&exportOut, "out", "", "output file (default: stdout)")
	return cmd
}

func runExportCmd(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	raw, err := archive.New(st).Export(context.Background())
	if err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}
	if exportOut == "" {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), string(raw)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	if err := os.WriteFile(exportOut, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", exportOut, err)
	}
	logErrf("Wrote %s\n", exportOut)
	return nil
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a previously exported JSON document",
		Args:  cobra.ExactArgs(1),
		RunE:  runImportCmd,
	}
}

func runImportCmd(_ *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	if err := archive.New(st).Import(context.Background(), raw); err != nil {
		return fmt.Errorf("failed to import: %w", err)
	}
	logErrln("Import complete")
	return nil
}

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear stored results and stats (settings are kept)",
		Args:  cobra.NoArgs,
		RunE:  runResetCmd,
	}
}

func runResetCmd(_ *cobra.Command, _ []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	if err := archive.New(st).Clear(context.Background()); err != nil {
		return fmt.Errorf("failed to clear archive: %w", err)
	}
	logErrln("Cleared results and stats")
	return nil
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the backend server",
		Args:  cobra.NoArgs,
		RunE:  runServeCmd,
	}
	cmd.Flags().StringVar(&serveAddr, "addr", defaultAddr, "listen address")
	return cmd
}

func runServeCmd(cobraCmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cobraCmd, "addr", &serveAddr, fileCfg.Server.Addr)

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	state := server.NewState()
	hub := server.NewHub(logger)
	go hub.Run()

	handler := server.NewHandler(state, hub, logger)
	srv := &http.Server{
		Addr:              serveAddr,
		Handler:           server.NewRouter(handler, hub),
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.Info("server listening", "addr", serveAddr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# typedrill configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# source = %q         # Text source (quotes, programming, lorem, words, sentences, vocabulary)
# length = %q         # Passage length (short, medium, long)
# difficulty = %q     # Vocabulary difficulty (easy, medium, hard, mixed)
# category = ""            # Vocabulary category filter

[server]
# addr = %q              # Listen address for typedrill serve
# server-url = ""          # Backend URL for shared leaderboards
# user-id = ""             # Backend user id
`,
		defaultSource,
		defaultLength,
		defaultDifficulty,
		defaultAddr,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
