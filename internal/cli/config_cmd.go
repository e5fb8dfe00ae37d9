package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/epoch/internal/clock"
	"github.com/aidanlsb/epoch/internal/config"
	"github.com/aidanlsb/epoch/internal/precision"
	"github.com/aidanlsb/epoch/internal/ui"
)

type globalConfigContext struct {
	cfg          *config.Config
	configPath   string
	configExists bool
}

var (
	configSetOffset      string
	configSetPrecision   string
	configSetUIAccent    string
	configSetUICodeTheme string

	configUnsetOffset      bool
	configUnsetPrecision   bool
	configUnsetUIAccent    bool
	configUnsetUICodeTheme bool
)

func loadGlobalConfigContextAllowMissing() (*globalConfigContext, error) {
	resolvedPath := resolveConfigFilePath()

	if _, err := os.Stat(resolvedPath); os.IsNotExist(err) {
		return &globalConfigContext{
			cfg:        &config.Config{},
			configPath: resolvedPath,
		}, nil
	}

	loadedCfg, err := config.LoadFrom(resolvedPath)
	if err != nil {
		return nil, err
	}
	if loadedCfg == nil {
		loadedCfg = &config.Config{}
	}

	return &globalConfigContext{
		cfg:          loadedCfg,
		configPath:   resolvedPath,
		configExists: true,
	}, nil
}

func configData(ctx *globalConfigContext) map[string]interface{} {
	return map[string]interface{}{
		"config_path": ctx.configPath,
		"exists":      ctx.configExists,
		"offset":      strings.TrimSpace(ctx.cfg.Offset),
		"precision":   strings.TrimSpace(ctx.cfg.Precision),
		"ui": map[string]interface{}{
			"accent":     strings.TrimSpace(ctx.cfg.UI.Accent),
			"code_theme": strings.TrimSpace(ctx.cfg.UI.CodeTheme),
		},
	}
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	ctx, err := loadGlobalConfigContextAllowMissing()
	if err != nil {
		return handleError(ErrConfigInvalid, err, "")
	}

	if isJSONOutput() {
		outputSuccess(configData(ctx), nil)
		return nil
	}

	if !ctx.configExists {
		fmt.Printf("Config file does not exist: %s\n", ctx.configPath)
		fmt.Println("Run 'epoch config init' to create it.")
		return nil
	}

	fmt.Printf("config: %s\n", ctx.configPath)

	display := func(v string) string {
		if strings.TrimSpace(v) == "" {
			return "(not set)"
		}
		return ui.Value(strings.TrimSpace(v))
	}

	tbl := ui.NewTable(2)
	tbl.AddRow("offset", display(ctx.cfg.Offset))
	tbl.AddRow("precision", display(ctx.cfg.Precision))
	tbl.AddRow("ui.accent", display(ctx.cfg.UI.Accent))
	tbl.AddRow("ui.code_theme", display(ctx.cfg.UI.CodeTheme))
	fmt.Print(tbl.String())

	return nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage global epoch config.toml settings",
	Long: `Manage global epoch config.toml settings.

The config file holds the default offset, precision, and UI theming
used when the matching flags and EPOCH_* variables are absent.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default config.toml if missing",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		targetPath := resolveConfigFilePath()
		_, statErr := os.Stat(targetPath)
		existed := statErr == nil
		if statErr != nil && !os.IsNotExist(statErr) {
			return handleError(ErrFileReadError, statErr, "")
		}

		createdPath, err := config.CreateDefaultAt(targetPath)
		if err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"config_path": createdPath,
				"created":     !existed,
			}, nil)
			return nil
		}

		if existed {
			fmt.Printf("Config already exists: %s\n", createdPath)
		} else {
			fmt.Printf("Created config: %s\n", createdPath)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set one or more config.toml fields",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := loadGlobalConfigContextAllowMissing()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}

		changed := make([]string, 0, 4)

		if cmd.Flags().Changed("offset") {
			value := strings.TrimSpace(configSetOffset)
			if value == "" {
				return handleErrorMsg(ErrInvalidInput, "offset cannot be empty; use 'epoch config unset --offset' to clear it", "")
			}
			off, parseErr := clock.ParseOffset(value)
			if parseErr != nil {
				return handleError(ErrOffsetInvalid, parseErr, offsetForms)
			}
			// Stored in canonical +HH:MM form.
			ctx.cfg.Offset = off.String()
			changed = append(changed, "offset")
		}

		if cmd.Flags().Changed("precision") {
			value := strings.TrimSpace(configSetPrecision)
			if value == "" {
				return handleErrorMsg(ErrInvalidInput, "precision cannot be empty; use 'epoch config unset --precision' to clear it", "")
			}
			p, findErr := precision.Find(value)
			if findErr != nil {
				return handleError(ErrPrecisionUnknown, findErr, precisionForms)
			}
			ctx.cfg.Precision = p.String()
			changed = append(changed, "precision")
		}

		if cmd.Flags().Changed("ui-accent") {
			value := strings.TrimSpace(configSetUIAccent)
			if value == "" {
				return handleErrorMsg(ErrInvalidInput, "ui-accent cannot be empty; use 'epoch config unset --ui-accent' to clear it", "")
			}
			ctx.cfg.UI.Accent = value
			changed = append(changed, "ui.accent")
		}

		if cmd.Flags().Changed("ui-code-theme") {
			value := strings.TrimSpace(configSetUICodeTheme)
			if value == "" {
				return handleErrorMsg(ErrInvalidInput, "ui-code-theme cannot be empty; use 'epoch config unset --ui-code-theme' to clear it", "")
			}
			ctx.cfg.UI.CodeTheme = value
			changed = append(changed, "ui.code_theme")
		}

		if len(changed) == 0 {
			return handleErrorMsg(ErrMissingArgument, "no fields provided; set at least one of --offset/--precision/--ui-accent/--ui-code-theme", "")
		}

		if err := config.SaveTo(ctx.configPath, ctx.cfg); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		ctx.configExists = true
		if isJSONOutput() {
			data := configData(ctx)
			data["changed"] = changed
			outputSuccess(data, nil)
			return nil
		}

		fmt.Printf("Updated config: %s\n", ctx.configPath)
		fmt.Printf("changed: %s\n", strings.Join(changed, ", "))
		return nil
	},
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset",
	Short: "Clear one or more config.toml fields",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := loadGlobalConfigContextAllowMissing()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}
		if !ctx.configExists {
			return handleErrorMsg(ErrFileNotFound, fmt.Sprintf("config file not found: %s", ctx.configPath), "Run 'epoch config init' first")
		}

		changed := make([]string, 0, 4)
		if configUnsetOffset {
			ctx.cfg.Offset = ""
			changed = append(changed, "offset")
		}
		if configUnsetPrecision {
			ctx.cfg.Precision = ""
			changed = append(changed, "precision")
		}
		if configUnsetUIAccent {
			ctx.cfg.UI.Accent = ""
			changed = append(changed, "ui.accent")
		}
		if configUnsetUICodeTheme {
			ctx.cfg.UI.CodeTheme = ""
			changed = append(changed, "ui.code_theme")
		}

		if len(changed) == 0 {
			return handleErrorMsg(ErrMissingArgument, "no fields selected; pass one or more unset flags", "")
		}

		if err := config.SaveTo(ctx.configPath, ctx.cfg); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		if isJSONOutput() {
			data := configData(ctx)
			data["changed"] = changed
			outputSuccess(data, nil)
			return nil
		}

		fmt.Printf("Updated config: %s\n", ctx.configPath)
		fmt.Printf("cleared: %s\n", strings.Join(changed, ", "))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current config.toml values",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	})

	configSetCmd.Flags().StringVar(&configSetOffset, "offset", "", "Set default UTC offset (stored as +HH:MM)")
	configSetCmd.Flags().StringVar(&configSetPrecision, "precision", "", "Set default precision (second|millisecond)")
	configSetCmd.Flags().StringVar(&configSetUIAccent, "ui-accent", "", "Set UI accent color (ANSI 0-255 or #RRGGBB)")
	configSetCmd.Flags().StringVar(&configSetUICodeTheme, "ui-code-theme", "", "Set markdown code theme name")

	configUnsetCmd.Flags().BoolVar(&configUnsetOffset, "offset", false, "Clear offset")
	configUnsetCmd.Flags().BoolVar(&configUnsetPrecision, "precision", false, "Clear precision")
	configUnsetCmd.Flags().BoolVar(&configUnsetUIAccent, "ui-accent", false, "Clear ui.accent")
	configUnsetCmd.Flags().BoolVar(&configUnsetUICodeTheme, "ui-code-theme", false, "Clear ui.code_theme")

	rootCmd.AddCommand(configCmd)
}
