package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/justtldr/cli/internal/aiservice"
	"github.com/justtldr/cli/internal/fetch"
	"github.com/justtldr/cli/pkg/util"
)

const (
	statusTimeout   = 10 * time.Second
	maxStatusChecks = 3
)

// PageGetter fetches a URL. *fetch.Client satisfies it.
type PageGetter interface {
	Get(ctx context.Context, url string, headers map[string]string) (*fetch.Response, error)
}

type serviceStatus struct {
	ID       aiservice.ID `json:"id"`
	Name     string       `json:"name"`
	URL      string       `json:"url"`
	Status   string       `json:"status"`
	Code     int          `json:"code,omitempty"`
	Selected bool         `json:"selected"`
	Error    string       `json:"error,omitempty"`
}

// StatusCmd checks whether each AI service answers.
type StatusCmd struct {
	getter   PageGetter
	settings SettingsReader
	out      io.Writer
}

// Check requests every service page concurrently and prints the result.
func (c StatusCmd) Check(ctx context.Context, output string) error {
	var selected aiservice.ID
	if data, err := c.settings.Load(); err == nil {
		selected = data.SummaryService().Service.ID
	} else {
		pterm.Debug.Printf("Could not load settings: %v\n", err)
	}

	services := aiservice.All()
	results := make([]serviceStatus, len(services))

	// A failing service is a result; only cancellation of ctx aborts the run
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxStatusChecks)
	for i, svc := range services {
		g.Go(func() error {
			st := c.check(gCtx, svc)
			if err := ctx.Err(); err != nil {
				return err
			}
			st.Selected = svc.ID == selected
			results[i] = st
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("status check interrupted: %w", err)
	}

	if output == "json" {
		return util.PrintPrettyJSONSlice(c.out, results)
	}

	printStatus(results)
	return nil
}

func (c StatusCmd) check(ctx context.Context, svc aiservice.Service) serviceStatus {
	st := serviceStatus{ID: svc.ID, Name: svc.Name, URL: svc.URL}

	ctx, cancel := context.WithTimeout(ctx, statusTimeout)
	defer cancel()

	resp, err := c.getter.Get(ctx, svc.URL, nil)
	var statusErr *fetch.StatusError
	switch {
	case err == nil:
		st.Status, st.Code = "operational", resp.StatusCode
	case errors.As(err, &statusErr):
		st.Code = statusErr.StatusCode
		// Bot protection answers 4xx from a live site
		if statusErr.StatusCode >= http.StatusInternalServerError {
			st.Status = "degraded"
		} else {
			st.Status = "operational"
		}
	default:
		st.Status, st.Error = "unreachable", err.Error()
	}
	return st
}

var statusDisplay = map[string]struct {
	label string
	rgb   pterm.RGB
}{
	"operational": {label: "Reachable", rgb: pterm.NewRGB(31, 163, 130)},
	"degraded":    {label: "Server Error", rgb: pterm.NewRGB(245, 158, 11)},
	"unreachable": {label: "Unreachable", rgb: pterm.NewRGB(239, 68, 68)},
}

func getStatusDisplay(status string) (string, pterm.RGB) {
	if d, ok := statusDisplay[status]; ok {
		return d.label, d.rgb
	}
	return "Unknown", pterm.NewRGB(128, 128, 128)
}

func printStatus(results []serviceStatus) {
	pterm.Println()
	pterm.Println("  " + pterm.Bold.Sprint("AI services"))
	for _, r := range results {
		label, rgb := getStatusDisplay(r.Status)
		marker := " "
		if r.Selected {
			marker = "*"
		}
		pterm.Printf("  %s %s %-10s %-12s %s\n", marker, rgb.Sprint("●"), r.Name, label, r.URL)
	}
	pterm.Println()
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check that the AI services can be reached",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().StringP("output", "o", "", "Output format (json)")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")

	store, err := getStore(cmd)
	if err != nil {
		return err
	}

	c := StatusCmd{
		getter:   fetch.New(appConfig.FetchOptions()),
		settings: store,
		out:      cmd.OutOrStdout(),
	}
	return c.Check(cmd.Context(), output)
}
