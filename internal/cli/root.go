package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/epoch/internal/clock"
	"github.com/aidanlsb/epoch/internal/config"
	"github.com/aidanlsb/epoch/internal/precision"
	"github.com/aidanlsb/epoch/internal/ui"
)

var (
	// Global flags
	utcFlag       bool
	offsetFlag    string
	precisionFlag string
	configPath    string

	// Resolved values
	resolvedConfigPath string
	cfg                *config.Config
)

// Suggestions shared by every command that resolves a zone or scale.
const (
	offsetForms    = "Write offsets like +9, -0530 or +5:45"
	precisionForms = "Precisions: second, millisecond (alias ms)"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "epoch",
	Short: "Epoch - generate and parse Unix timestamps",
	Long: `Epoch converts between Unix timestamps and human-readable dates.

Generate timestamps for now, a preset day, or an explicit date, shift
them by calendar-aware deltas like +3day or -45min, and parse numbers
back into readable form. Output honors the configured zone and
precision.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// config subcommands load the file themselves, so a broken
		// config can still be inspected and repaired.
		if cmd.Name() == "config" || (cmd.Parent() != nil && cmd.Parent().Name() == "config") {
			return nil
		}

		var err error
		cfg, resolvedConfigPath, err = loadGlobalConfigWithPath()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if cfg == nil {
			cfg = &config.Config{}
		}
		ui.ConfigureTheme(cfg.UI.Accent)
		ui.ConfigureMarkdownCodeTheme(cfg.UI.CodeTheme)

		return nil
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&utcFlag, "utc", "u", false, "Use UTC instead of the local or configured zone")
	rootCmd.PersistentFlags().StringVarP(&offsetFlag, "offset", "o", "", "Fixed UTC offset like +9, -0530 or +5:45")
	rootCmd.PersistentFlags().StringVarP(&precisionFlag, "precision", "p", "", "Timestamp precision: second or millisecond")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for agent/script use)")
}

// getConfig returns the loaded config.
func getConfig() *config.Config {
	if cfg == nil {
		return &config.Config{}
	}
	return cfg
}

func resolveConfigFilePath() string {
	if strings.TrimSpace(configPath) != "" {
		return configPath
	}
	return config.DefaultPath()
}

func loadGlobalConfigWithPath() (*config.Config, string, error) {
	resolvedPath := resolveConfigFilePath()

	var loadedCfg *config.Config
	var err error
	if strings.TrimSpace(configPath) != "" {
		loadedCfg, err = config.LoadFrom(configPath)
	} else {
		loadedCfg, err = config.Load()
	}
	if err != nil {
		return nil, "", err
	}
	if loadedCfg == nil {
		loadedCfg = &config.Config{}
	}

	return loadedCfg, resolvedPath, nil
}

// resolveProvider picks the output zone. --utc beats everything;
// otherwise the first offset among the flag, EPOCH_OFFSET, and the
// config file wins; with none set the system zone is used.
func resolveProvider() (*clock.Provider, []Warning, error) {
	if utcFlag {
		var warnings []Warning
		if strings.TrimSpace(offsetFlag) != "" {
			warnings = append(warnings, Warning{
				Code:    WarnOffsetIgnored,
				Message: "--offset is ignored when --utc is set",
			})
		}
		return clock.UTC(), warnings, nil
	}

	text, source := strings.TrimSpace(offsetFlag), "--offset"
	if text == "" {
		text, source = config.FromEnv().Offset, config.EnvOffset
	}
	if text == "" {
		text, source = strings.TrimSpace(getConfig().Offset), "config offset"
	}
	if text == "" {
		return clock.Local(), nil, nil
	}

	off, err := clock.ParseOffset(text)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", source, err)
	}
	return clock.Fixed(off), nil, nil
}

// resolvePrecision picks the timestamp scale: the flag, then
// EPOCH_PRECISION, then the config file, then seconds.
func resolvePrecision() (precision.Precision, error) {
	text, source := strings.TrimSpace(precisionFlag), "--precision"
	if text == "" {
		text, source = config.FromEnv().Precision, config.EnvPrecision
	}
	if text == "" {
		text, source = strings.TrimSpace(getConfig().Precision), "config precision"
	}
	if text == "" {
		return precision.Second, nil
	}

	p, err := precision.Find(text)
	if err != nil {
		return precision.Second, fmt.Errorf("%s: %w", source, err)
	}
	return p, nil
}

// printWarnings echoes warnings to stderr in text mode. JSON mode
// attaches them to the envelope instead.
func printWarnings(cmd *cobra.Command, warnings []Warning) {
	for _, w := range warnings {
		fmt.Fprintln(cmd.ErrOrStderr(), ui.Warning(w.Message))
	}
}

func handleOffsetError(err error) error {
	return handleError(ErrOffsetInvalid, err, offsetForms)
}

func handlePrecisionError(err error) error {
	return handleError(ErrPrecisionUnknown, err, precisionForms)
}
