// Package main provides the CLI entrypoint for tecla.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/tecla-cli/tecla/internal/config"
	"github.com/tecla-cli/tecla/internal/generator"
	"github.com/tecla-cli/tecla/internal/layout"
	"github.com/tecla-cli/tecla/internal/model"
	"github.com/tecla-cli/tecla/internal/stats"
	"github.com/tecla-cli/tecla/internal/statsui"
	"github.com/tecla-cli/tecla/internal/store"
	"github.com/tecla-cli/tecla/internal/tui"
	"github.com/tecla-cli/tecla/internal/wordlist"
)

const (
	defaultMode        = string(model.ModeStrict)
	defaultWords       = 25
	defaultCaps        = 0.3
	defaultPunct       = 0.2
	defaultWeakTop     = 8
	defaultWeakFactor  = 2.0
	defaultWeakWindow  = 20
	defaultCurveWindow = 20
	defaultWordlistSz  = 10000
)

const defaultPunctSet = ".,;:?!\"'()-"

const wordlistLang = "es"

var (
	practiceMode       string
	practiceCaseSens   bool
	practiceStrictAcc  bool
	practiceWordDel    bool
	practiceWords      int
	practiceCaps       float64
	practicePunct      float64
	practicePunctSet   string
	practiceFocusWeak  bool
	practiceWeakTop    int
	practiceWeakFactor float64
	practiceWeakWindow int

	statsMode        string
	statsSince       string
	statsLast        int
	statsCurveWindow int

	wordlistSize  int
	wordlistURL   string
	wordlistForce bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tecla",
		Short:         "Typing tutor for the Latin-American Spanish keyboard layout",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().StringVar(&practiceMode, "mode", defaultMode, "error policy: strict, lenient, or no-backspace")
	rootCmd.Flags().BoolVar(&practiceCaseSens, "case-sensitive", true, "require matching letter case")
	rootCmd.Flags().BoolVar(&practiceStrictAcc, "strict-accents", true, "require matching accents (á vs a)")
	rootCmd.Flags().BoolVar(&practiceWordDel, "allow-word-deletion", false, "allow ctrl+backspace word deletion")
	rootCmd.Flags().IntVar(&practiceWords, "words", defaultWords, "words per text")
	rootCmd.Flags().Float64Var(&practiceCaps, "caps", defaultCaps, "probability of capitalized first letter (0-1)")
	rootCmd.Flags().Float64Var(&practicePunct, "punct", defaultPunct, "punctuation probability per word (0-1)")
	rootCmd.Flags().StringVar(&practicePunctSet, "punct-set", defaultPunctSet, "punctuation set")
	rootCmd.Flags().BoolVar(&practiceFocusWeak, "focus-weak", false, "bias practice toward weak characters")
	rootCmd.Flags().IntVar(&practiceWeakTop, "weak-top", defaultWeakTop, "number of weak characters to focus on")
	rootCmd.Flags().Float64Var(&practiceWeakFactor, "weak-factor", defaultWeakFactor, "weight factor for weak characters")
	rootCmd.Flags().IntVar(&practiceWeakWindow, "weak-window", defaultWeakWindow, "number of recent sessions to compute weak chars")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newWordlistCmd())
	rootCmd.AddCommand(newLayoutCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "mode", &practiceMode, fileCfg.Practice.Mode)
	applyBoolConfig(cmd, "case-sensitive", &practiceCaseSens, fileCfg.Practice.CaseSensitive)
	applyBoolConfig(cmd, "strict-accents", &practiceStrictAcc, fileCfg.Practice.StrictAccents)
	applyBoolConfig(cmd, "allow-word-deletion", &practiceWordDel, fileCfg.Practice.AllowWordDeletion)
	applyIntConfig(cmd, "words", &practiceWords, fileCfg.Practice.Words)
	applyFloatConfig(cmd, "caps", &practiceCaps, fileCfg.Practice.CapsPct)
	applyFloatConfig(cmd, "punct", &practicePunct, fileCfg.Practice.PunctPct)
	applyStringConfig(cmd, "punct-set", &practicePunctSet, fileCfg.Practice.PunctSet)
	applyBoolConfig(cmd, "focus-weak", &practiceFocusWeak, fileCfg.Practice.FocusWeak)
	applyIntConfig(cmd, "weak-top", &practiceWeakTop, fileCfg.Practice.WeakTop)
	applyFloatConfig(cmd, "weak-factor", &practiceWeakFactor, fileCfg.Practice.WeakFactor)
	applyIntConfig(cmd, "weak-window", &practiceWeakWindow, fileCfg.Practice.WeakWindow)

	cfg := model.Config{
		Mode:              model.Mode(practiceMode),
		CaseSensitive:     practiceCaseSens,
		StrictAccents:     practiceStrictAcc,
		AllowWordDeletion: practiceWordDel,
		Words:             practiceWords,
		CapsPct:           practiceCaps,
		PunctPct:          practicePunct,
		PunctSet:          practicePunctSet,
		FocusWeak:         practiceFocusWeak,
		WeakTop:           practiceWeakTop,
		WeakFactor:        practiceWeakFactor,
		WeakWindow:        practiceWeakWindow,
	}

	if err := validateConfig(cfg); err != nil {
		return err
	}

	words, err := loadPracticeWords()
	if err != nil {
		return err
	}

	storePath := config.DefaultDBPath()
	st, err := store.Open(storePath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	weakSet := map[rune]struct{}{}
	weakNoticePrinted := false
	if cfg.FocusWeak {
		aggs, err := st.GetWeakChars(context.Background(), cfg.WeakWindow, string(cfg.Mode))
		if err != nil {
			logErrf("failed to load weak chars: %v\n", err)
		} else {
			weakSet = stats.SelectWeakChars(aggs, cfg.WeakTop)
			if len(weakSet) == 0 {
				logErrln("no stats available for weak-char focus yet; using normal generator")
				weakNoticePrinted = true
			}
		}
	}

	gen := generator.New()
	practiceModel := tui.NewModel(cfg, st, gen, words, weakSet, weakNoticePrinted)
	program := tea.NewProgram(practiceModel, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// loadPracticeWords prefers a downloaded word list and falls back to the
// embedded one.
func loadPracticeWords() ([]string, error) {
	path := config.DefaultWordListPath(wordlistLang)
	if _, err := os.Stat(path); err == nil {
		words, err := wordlist.LoadWords(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load word list %s: %w", path, err)
		}
		return words, nil
	}
	words, err := wordlist.Embedded()
	if err != nil {
		return nil, fmt.Errorf("failed to load embedded word list: %w", err)
	}
	return words, nil
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

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show stats",
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsMode, "mode", "", "mode filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N sessions")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	return cmd
}

func runStatsCmd(_ *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}

	cfg := model.StatsConfig{
		Mode:        statsMode,
		Since:       sinceTime,
		Last:        statsLast,
		CurveWindow: statsCurveWindow,
	}

	storePath := config.DefaultDBPath()
	st, err := store.Open(storePath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	browser := statsui.NewModel(st, cfg)
	program := tea.NewProgram(browser, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func newWordlistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wordlist",
		Short: "Download the Spanish word list",
		RunE:  runWordlistCmd,
	}
	cmd.Flags().IntVar(&wordlistSize, "size", defaultWordlistSz, "number of words")
	cmd.Flags().StringVar(&wordlistURL, "url", wordlist.DefaultSourceURL, "frequency list source URL")
	cmd.Flags().BoolVar(&wordlistForce, "force", false, "overwrite existing file")
	return cmd
}

func runWordlistCmd(_ *cobra.Command, _ []string) error {
	if wordlistSize <= 0 {
		return fmt.Errorf("--size must be greater than 0")
	}
	outPath := config.DefaultWordListPath(wordlistLang)
	if !wordlistForce {
		if _, err := os.Stat(outPath); err == nil {
			return fmt.Errorf("word list already exists: %s (use --force to overwrite)", outPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat word list: %w", err)
		}
	}
	logErrln("Fetching word list...")
	count, err := wordlist.Fetch(context.Background(), wordlistURL, outPath, wordlistLang, wordlistSize)
	if err != nil {
		return fmt.Errorf("failed to download word list: %w", err)
	}
	logErrf("Wrote %d words to %s\n", count, outPath)
	return nil
}

func newLayoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "layout",
		Short: "Print the keyboard layout reference",
		Args:  cobra.NoArgs,
		RunE:  runLayoutCmd,
	}
}

func runLayoutCmd(cmd *cobra.Command, _ []string) error {
	headers := []string{"Key", "Normal", "Shift", "AltGr", "Finger", "Home"}
	rows := make([][]string, 0, len(layout.Keys()))
	for _, key := range layout.Keys() {
		if key.Dead {
			rows = append(rows, []string{key.Code, "´ dead", "¨ dead", "", key.Finger.String(), ""})
			continue
		}
		home := ""
		if key.HomeRow {
			home = "yes"
		}
		rows = append(rows, []string{
			key.Code,
			layerLabel(key.Normal),
			layerLabel(key.Shift),
			layerLabel(key.AltGr),
			key.Finger.String(),
			home,
		})
	}
	for _, line := range stats.FormatTable(headers, rows, nil) {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func layerLabel(r rune) string {
	switch r {
	case 0:
		return ""
	case ' ':
		return "<space>"
	}
	return string(r)
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

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# tecla configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# mode = %q                  # strict, lenient, or no-backspace
# case-sensitive = true      # Require matching letter case
# strict-accents = true      # Require matching accents
# allow-word-deletion = false # Allow ctrl+backspace word deletion
# words = %d                 # Words per text
# caps = %.2f                # Probability of capitalized first letter (0-1)
# punct = %.2f               # Punctuation probability per word (0-1)
# punct-set = %q             # Punctuation set
# focus-weak = false         # Bias practice toward weak characters
# weak-top = %d              # Number of weak characters to focus on
# weak-factor = %.1f         # Weight factor for weak characters
# weak-window = %d           # Number of recent sessions to compute weak chars
`,
		defaultMode,
		defaultWords,
		defaultCaps,
		defaultPunct,
		defaultPunctSet,
		defaultWeakTop,
		defaultWeakFactor,
		defaultWeakWindow,
	)
}

func validateConfig(cfg model.Config) error {
	if !cfg.Mode.Valid() {
		return fmt.Errorf("--mode must be strict, lenient, or no-backspace")
	}
	if cfg.Words <= 0 {
		return fmt.Errorf("--words must be > 0")
	}
	if cfg.CapsPct < 0 || cfg.CapsPct > 1 {
		return fmt.Errorf("--caps must be between 0 and 1")
	}
	if cfg.PunctPct < 0 || cfg.PunctPct > 1 {
		return fmt.Errorf("--punct must be between 0 and 1")
	}
	if cfg.PunctSet == "" {
		return fmt.Errorf("--punct-set must not be empty")
	}
	if cfg.WeakTop < 0 {
		return fmt.Errorf("--weak-top must be >= 0")
	}
	if cfg.WeakFactor < 0 {
		return fmt.Errorf("--weak-factor must be >= 0")
	}
	if cfg.WeakWindow < 0 {
		return fmt.Errorf("--weak-window must be >= 0")
	}
	return nil
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
