package cmd

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/justtldr/cli/internal/aiservice"
	"github.com/justtldr/cli/internal/settings"
	"github.com/justtldr/cli/pkg/util"
)

// ConfigStore is the subset of settings.Store used by the config commands.
type ConfigStore interface {
	Load() (*settings.Data, error)
	Path() string
	SetAIService(id aiservice.ID) error
	SetPremium(id aiservice.ID, premium bool) error
	ExcludeSites(sites ...string) error
	IncludeSite(site string) error
	Reset() error
}

// ConfigCmd handles settings operations other than prompts.
type ConfigCmd struct {
	store ConfigStore
	out   io.Writer
}

type configView struct {
	Path            string   `json:"path"`
	Version         string   `json:"version"`
	Service         string   `json:"service"`
	Premium         bool     `json:"premium"`
	CharacterLimit  int      `json:"characterLimit"`
	DefaultPrompt   string   `json:"defaultPrompt"`
	PremiumServices []string `json:"premiumServices"`
	ExcludedSites   []string `json:"excludedSites"`
}

// Show prints the current settings.
func (c ConfigCmd) Show(output string) error {
	data, err := c.store.Load()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	selected := data.SummaryService()
	premium := lo.Keys(lo.PickBy(data.PremiumServices, func(_ string, on bool) bool { return on }))
	sort.Strings(premium)

	view := configView{
		Path:            c.store.Path(),
		Version:         data.Version,
		Service:         string(selected.Service.ID),
		Premium:         selected.Premium,
		CharacterLimit:  selected.CharacterLimit,
		DefaultPrompt:   data.DefaultPrompt().ID,
		PremiumServices: premium,
		ExcludedSites:   data.ExcludedSites,
	}

	if output == "json" {
		return util.PrintPrettyJSON(c.out, view)
	}

	rows := pterm.TableData{{"Property", "Value"}}
	rows = append(rows, []string{"Settings file", view.Path})
	rows = append(rows, []string{"Version", view.Version})
	rows = append(rows, []string{"Service", selected.Service.Name})
	rows = append(rows, []string{"Character limit", util.FormatCount(view.CharacterLimit)})
	rows = append(rows, []string{"Default prompt", data.DefaultPrompt().Name})
	rows = append(rows, []string{"Premium services", util.JoinOrDash(premium...)})
	rows = append(rows, []string{"Excluded sites", util.JoinOrDash(data.ExcludedSites...)})
	PrintTableNoPad(rows, true)
	return nil
}

// SetService selects the AI service.
func (c ConfigCmd) SetService(raw string) error {
	id, err := aiservice.ParseID(raw)
	if err != nil {
		return fmt.Errorf("%w: %s (choose one of %s)", err, raw, strings.Join(aiservice.IDs(), ", "))
	}
	if err := c.store.SetAIService(id); err != nil {
		return err
	}
	pterm.Success.Printf("Summaries will be sent to %s\n", id)
	return nil
}

// SetPremium records the plan tier for a service.
func (c ConfigCmd) SetPremium(raw, value string) error {
	id, err := aiservice.ParseID(raw)
	if err != nil {
		return fmt.Errorf("%w: %s", err, raw)
	}
	on, err := parseSwitch(value)
	if err != nil {
		return err
	}
	if err := c.store.SetPremium(id, on); err != nil {
		return err
	}

	svc, _ := aiservice.Get(id)
	pterm.Success.Printf("%s limit is now %s characters\n", svc.Name, util.FormatCount(svc.Limit(on)))
	return nil
}

// Exclude adds sites to the excluded list.
func (c ConfigCmd) Exclude(sites []string) error {
	if err := c.store.ExcludeSites(sites...); err != nil {
		return err
	}
	pterm.Success.Printf("Excluded %s\n", strings.Join(sites, ", "))
	return nil
}

// Include removes a site from the excluded list.
func (c ConfigCmd) Include(site string) error {
	if err := c.store.IncludeSite(site); err != nil {
		return err
	}
	pterm.Success.Printf("%s is no longer excluded\n", settings.NormalizeSite(site))
	return nil
}

// Reset restores default settings.
func (c ConfigCmd) Reset(skipConfirm bool) error {
	if !skipConfirm {
		pterm.DefaultInteractiveConfirm.DefaultText = "Reset all settings, including custom prompts?"
		ok, _ := pterm.DefaultInteractiveConfirm.Show()
		if !ok {
			pterm.Info.Println("Reset cancelled")
			return nil
		}
	}
	if err := c.store.Reset(); err != nil {
		return err
	}
	pterm.Success.Println("Settings reset to defaults")
	return nil
}

func parseSwitch(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("expected on or off, got %q", s)
	}
	return v, nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and change settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configServiceCmd = &cobra.Command{
	Use:       "service <id>",
	Short:     "Choose the AI service summaries are sent to",
	Args:      cobra.ExactArgs(1),
	ValidArgs: aiservice.IDs(),
	RunE:      runConfigService,
}

var configPremiumCmd = &cobra.Command{
	Use:     "premium <service> <on|off>",
	Short:   "Mark a service as using a paid plan, raising its character limit",
	Example: `  tldr config premium claude on`,
	Args:    cobra.ExactArgs(2),
	RunE:    runConfigPremium,
}

var configExcludeCmd = &cobra.Command{
	Use:     "exclude <site>...",
	Short:   "Exclude sites from page summaries",
	Example: `  tldr config exclude mail.google.com https://bank.example.com/login`,
	Args:    cobra.MinimumNArgs(1),
	RunE:    runConfigExclude,
}

var configIncludeCmd = &cobra.Command{
	Use:   "include <site>",
	Short: "Remove a site from the excluded list",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigInclude,
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigReset,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configServiceCmd)
	configCmd.AddCommand(configPremiumCmd)
	configCmd.AddCommand(configExcludeCmd)
	configCmd.AddCommand(configIncludeCmd)
	configCmd.AddCommand(configResetCmd)

	configCmd.Flags().StringP("output", "o", "", "Output format (json)")
	configShowCmd.Flags().StringP("output", "o", "", "Output format (json)")
	configResetCmd.Flags().BoolP("yes", "y", false, "Skip confirmation prompt")
}

func getConfigCmd(cmd *cobra.Command) (ConfigCmd, error) {
	store, err := getStore(cmd)
	if err != nil {
		return ConfigCmd{}, err
	}
	return ConfigCmd{store: store, out: cmd.OutOrStdout()}, nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	c, err := getConfigCmd(cmd)
	if err != nil {
		return err
	}
	return c.Show(output)
}

func runConfigService(cmd *cobra.Command, args []string) error {
	c, err := getConfigCmd(cmd)
	if err != nil {
		return err
	}
	return c.SetService(args[0])
}

func runConfigPremium(cmd *cobra.Command, args []string) error {
	c, err := getConfigCmd(cmd)
	if err != nil {
		return err
	}
	return c.SetPremium(args[0], args[1])
}

func runConfigExclude(cmd *cobra.Command, args []string) error {
	c, err := getConfigCmd(cmd)
	if err != nil {
		return err
	}
	return c.Exclude(args)
}

func runConfigInclude(cmd *cobra.Command, args []string) error {
	c, err := getConfigCmd(cmd)
	if err != nil {
		return err
	}
	return c.Include(args[0])
}

func runConfigReset(cmd *cobra.Command, args []string) error {
	skip, _ := cmd.Flags().GetBool("yes")
	c, err := getConfigCmd(cmd)
	if err != nil {
		return err
	}
	return c.Reset(skip)
}
