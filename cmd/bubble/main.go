package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/npratt/bubble/internal/config"
	"github.com/npratt/bubble/internal/store"
	"github.com/npratt/bubble/internal/tui"
)

var version = "dev"

// loadConfigWithFlags loads the config and applies explicit CLI overrides.
func loadConfigWithFlags(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(viper.GetViper())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cmd.Flags().Changed(FlagDataDir) {
		cfg.Paths.Data = viper.GetString(FlagDataDir)
	}
	if cmd.Flags().Changed(FlagLogDir) {
		cfg.Paths.Log = viper.GetString(FlagLogDir)
	}
	if cmd.Flags().Changed(FlagFPS) {
		cfg.UI.FPS = viper.GetInt(FlagFPS)
	}
	return cfg, nil
}

func main() {
	logLevel := &slog.LevelVar{}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	viper.SetEnvPrefix("BUBBLE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:   "bubble",
		Short: "Build and explore your personal social graph",
		Long: `bubble renders your personal social graph as an interactive node-link
diagram in the terminal: you at the center, the people you know around
you, optionally clustered into named groups.

A force-directed layout positions the nodes; click a node to add
connections, link people together, or organize them into groups. The
graph persists between runs.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if viper.GetBool(FlagVerbose) {
				logLevel.Set(slog.LevelDebug)
			}

			cfg, err := loadConfigWithFlags(cmd)
			if err != nil {
				return err
			}

			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return fmt.Errorf("bubble needs an interactive terminal (use \"bubble show\" to print the saved graph)")
			}

			if err := os.MkdirAll(cfg.Paths.Data, 0755); err != nil {
				return fmt.Errorf("create data directory: %w", err)
			}
			if err := os.MkdirAll(cfg.Paths.Log, 0755); err != nil {
				return fmt.Errorf("create log directory: %w", err)
			}

			// Logs go to a rotating file so they never write over the canvas.
			logResult, err := SetupTUILogger(cfg.Paths.Log, logLevel, cfg.LogRotation)
			if err != nil {
				return err
			}
			defer func() { _ = logResult.Close() }()
			slog.SetDefault(logResult.Logger)

			logResult.Logger.Info("bubble starting",
				"version", version,
				"data_dir", cfg.Paths.Data,
				"fps", cfg.UI.FPS,
			)

			st, err := store.Open(cfg.Paths.Data, logResult.Logger)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer func() { _ = st.Close() }()

			return tui.New(cfg, st, logResult.Logger).Run()
		},
	}

	// Persistent flags available to all commands
	rootCmd.PersistentFlags().Bool(FlagVerbose, false, "Enable verbose (debug) logging")
	rootCmd.PersistentFlags().String(FlagConfig, "", "Config file path (default: .bubble/config.yaml)")
	rootCmd.PersistentFlags().String(FlagDataDir, "", "Data directory for the saved graph")
	rootCmd.PersistentFlags().String(FlagLogDir, "", "Directory for the debug log")
	rootCmd.PersistentFlags().Int(FlagFPS, 0, "Animation frames per second")

	// Bind all flags to viper
	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		_ = viper.BindPFlag(f.Name, f)
	})

	// Version command
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("bubble %s\n", version)
		},
	}

	// Show command: print the saved graph without launching the TUI.
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the saved graph as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfigWithFlags(cmd)
			if err != nil {
				return err
			}

			st, err := store.Open(cfg.Paths.Data, logger)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer func() { _ = st.Close() }()

			raw, ok := st.Raw()
			if !ok {
				fmt.Println("No bubble yet. Run \"bubble\" to create one.")
				return nil
			}
			if viper.GetBool(FlagRaw) {
				fmt.Println(string(raw))
				return nil
			}
			var buf bytes.Buffer
			if err := json.Indent(&buf, raw, "", "  "); err != nil {
				// Corrupt record, print it as-is.
				fmt.Println(string(raw))
				return nil
			}
			fmt.Println(buf.String())
			return nil
		},
	}
	showCmd.Flags().Bool(FlagRaw, false, "Print the record without indentation")
	_ = viper.BindPFlag(FlagRaw, showCmd.Flags().Lookup(FlagRaw))

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(showCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		logger.Error("bubble failed", "error", err)
		os.Exit(1)
	}
}
