package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/charmbracelet/fang"
	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
	"github.com/stattrackr/stattrackr/internal/config"
	"github.com/stattrackr/stattrackr/internal/ui"
	_ "modernc.org/sqlite"
)

var (
	BuildVersion   = "master"
	BuildCommit    = "00000000"
	BuildDate      = time.Now().Format("2006-01-02T15:04:05Z")
	BuildGoVersion = runtime.Version()
	cfgFile        string
	apiBaseURL     string
	rootCmd        = &cobra.Command{
		Use:   "stattrackr",
		Short: "Football statistics dashboard",
		Long:  `stattrackr - Browse, sort and compare player and club statistics from the terminal`,
		RunE:  run,
	}

	versionCmd = &cobra.Command{
		Use:               "version",
		Short:             "Print version information",
		Long:              "Print detailed version information about stattrackr",
		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		Run:               version,
	}
)

var errApp = errors.New("application error")

func main() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file path")
	rootCmd.PersistentFlags().StringVar(&apiBaseURL, "api", "", "Override the api base url")
	rootCmd.AddCommand(versionCmd)
	addCommands(rootCmd)

	if err := fang.Execute(context.Background(), rootCmd); err != nil {
		slog.Error("Exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func version(_ *cobra.Command, _ []string) {
	fmt.Printf("stattrackr - Football statistics dashboard\n\n") //nolint:forbidigo
	fmt.Printf("  Version: %s\n", BuildVersion)                    //nolint:forbidigo
	fmt.Printf("  Commit:  %s\n", BuildCommit)                     //nolint:forbidigo
	fmt.Printf("  Built:   %s\n", BuildDate)                       //nolint:forbidigo
	fmt.Printf("  Runtime: %s\n\n", BuildGoVersion)                //nolint:forbidigo
}

// run is the main entry point of the terminal ui.
func run(cmd *cobra.Command, _ []string) error {
	configUpdates := make(chan config.Config)
	authFailures := make(chan error, 1)

	env, errEnv := setup(cmd.Context(), configUpdates, authFailures)
	if errEnv != nil {
		return errEnv
	}
	defer env.Close()

	slog.Info("Starting stattrackr", slog.String("version", BuildVersion),
		slog.String("commit", BuildCommit), slog.String("date", BuildDate),
		slog.String("go", runtime.Version()), slog.String("api", env.config.APIBaseURL))

	done := make(chan any)
	app := NewApp(configUpdates, authFailures)
	services := ui.Services{
		Client:    env.client,
		Directory: env.directory,
		Config:    env.config,
		Writer:    env.loader,
		CachePath: env.cachePath,
		Build:     ui.BuildInfo{Version: BuildVersion, Commit: BuildCommit, Date: BuildDate},
	}

	program := app.createUI(cmd.Context(), services)

	go func() {
		if err := program.Run(); err != nil {
			slog.Error("Failed to run UI", slog.String("error", err.Error()))
		}

		done <- "⚽"
	}()

	app.Start(cmd.Context(), done)

	return nil
}
