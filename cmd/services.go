package cmd

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/justtldr/cli/internal/aiservice"
	"github.com/justtldr/cli/internal/settings"
	"github.com/justtldr/cli/pkg/util"
)

// SettingsReader loads the current settings.
type SettingsReader interface {
	Load() (*settings.Data, error)
}

// ServicesCmd lists the supported AI services.
type ServicesCmd struct {
	settings SettingsReader
	out      io.Writer
}

type serviceRow struct {
	aiservice.Service
	Premium  bool `json:"premium"`
	Selected bool `json:"selected"`
	Limit    int  `json:"limit"`
}

// List prints every service with its limits and the current selection.
func (c ServicesCmd) List(output string) error {
	data, err := c.settings.Load()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	selected := data.SummaryService()

	var items []serviceRow
	for _, svc := range aiservice.All() {
		premium := data.PremiumServices[string(svc.ID)]
		items = append(items, serviceRow{
			Service:  svc,
			Premium:  premium,
			Selected: svc.ID == selected.Service.ID,
			Limit:    svc.Limit(premium),
		})
	}

	if output == "json" {
		return util.PrintPrettyJSONSlice(c.out, items)
	}

	rows := pterm.TableData{{"", "ID", "Name", "URL", "Free", "Premium", "Tier"}}
	for _, item := range items {
		marker := ""
		if item.Selected {
			marker = "*"
		}
		tier := "free"
		if item.Premium {
			tier = "premium"
		}
		rows = append(rows, []string{
			marker,
			string(item.ID),
			item.Name,
			item.URL,
			util.FormatCount(item.CharacterLimit),
			util.FormatCount(item.PremiumCharacterLimit),
			tier,
		})
	}
	PrintTableNoPad(rows, true)
	return nil
}

var servicesCmd = &cobra.Command{
	Use:   "services",
	Short: "List supported AI services and their character limits",
	Args:  cobra.NoArgs,
	RunE:  runServices,
}

func init() {
	servicesCmd.Flags().StringP("output", "o", "", "Output format (json)")
}

func runServices(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")

	store, err := getStore(cmd)
	if err != nil {
		return err
	}

	c := ServicesCmd{settings: store, out: cmd.OutOrStdout()}
	return c.List(output)
}
