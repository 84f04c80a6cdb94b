package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/fang"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/justtldr/cli/internal/config"
	"github.com/justtldr/cli/internal/fetch"
	"github.com/justtldr/cli/internal/outbound"
	"github.com/justtldr/cli/internal/settings"
	"github.com/justtldr/cli/internal/summarize"
	"github.com/justtldr/cli/internal/youtube"
)

// Set by the linker at release time.
var version = "dev"

var appConfig = &config.Cfg{}

var rootCmd = &cobra.Command{
	Use:   "tldr",
	Short: "Send web pages, videos and text to an AI chat for summarizing",
	Long: `tldr captures the readable text of a web page, a YouTube transcript or any
text you give it, wraps it in your prompt, trims it to fit the selected AI
service and opens that service with the request on your clipboard.`,
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "Show debug output")
	rootCmd.PersistentFlags().String("settings", "", "Path to the settings file (default: user config dir)")

	rootCmd.AddCommand(fitCmd)
	rootCmd.AddCommand(chunkCmd)
	rootCmd.AddCommand(pageCmd)
	rootCmd.AddCommand(youtubeCmd)
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(pasteCmd)
	rootCmd.AddCommand(servicesCmd)
	rootCmd.AddCommand(promptsCmd)
	rootCmd.AddCommand(configCmd)
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return fang.Execute(ctx, rootCmd, fang.WithVersion(version))
}

func initConfig(cmd *cobra.Command, args []string) error {
	appConfig = config.Load()

	debug, _ := cmd.Flags().GetBool("debug")
	if debug || appConfig.Debug {
		appConfig.Debug = true
		pterm.EnableDebugMessages()
	}
	return nil
}

// getStore opens the settings file named by --settings, TLDR_SETTINGS_PATH or
// the default location, in that order.
func getStore(cmd *cobra.Command) (*settings.Store, error) {
	path, _ := cmd.Flags().GetString("settings")
	if path == "" {
		path = appConfig.SettingsPath
	}
	if path == "" {
		var err error
		if path, err = settings.DefaultPath(); err != nil {
			return nil, err
		}
	}
	pterm.Debug.Printf("Using settings file %s\n", path)
	return settings.NewStore(path), nil
}

func getPipeline(cmd *cobra.Command) (*summarize.Pipeline, *outbound.Dispatcher, error) {
	store, err := getStore(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to locate settings: %w", err)
	}

	client := fetch.New(appConfig.FetchOptions())
	dispatcher := outbound.NewDispatcher(pendingFor(store))

	return &summarize.Pipeline{
		Settings:   store,
		Fetcher:    client,
		YouTube:    youtube.NewClient(client),
		Dispatcher: dispatcher,
	}, dispatcher, nil
}

// pendingFor keeps handed-off text next to the settings file.
func pendingFor(store *settings.Store) *outbound.Pending {
	return outbound.NewPending(filepath.Join(filepath.Dir(store.Path()), outbound.PendingFileName))
}
