package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/justtldr/cli/internal/summarize"
	"github.com/justtldr/cli/internal/youtube"
	"github.com/justtldr/cli/pkg/util"
)

// SummaryPipeline is the subset of summarize.Pipeline the commands use.
type SummaryPipeline interface {
	Page(ctx context.Context, url string) (*summarize.Summary, error)
	Video(ctx context.Context, url string) (*summarize.Summary, error)
	Text(ctx context.Context, text string) (*summarize.Summary, error)
}

// SummarizeCmd runs a summary flow and reports the handoff.
type SummarizeCmd struct {
	pipeline SummaryPipeline
	out      io.Writer
}

// SummarizeInput holds options shared by the summary flows.
type SummarizeInput struct {
	Print  bool
	Output string
}

// Page summarizes the web page at url.
func (c SummarizeCmd) Page(ctx context.Context, url string, in SummarizeInput) error {
	if in.Output != "json" {
		pterm.Info.Printf("Capturing %s\n", url)
	}
	summary, err := c.pipeline.Page(ctx, url)
	if errors.Is(err, summarize.ErrExcludedSite) {
		pterm.Warning.Println("This site is on your excluded list. Remove it with 'tldr config include'.")
	}
	if err != nil {
		return err
	}
	return c.report(summary, in)
}

// Video summarizes the transcript of the YouTube video at url.
func (c SummarizeCmd) Video(ctx context.Context, url string, in SummarizeInput) error {
	if in.Output != "json" {
		pterm.Info.Printf("Fetching transcript for %s\n", url)
	}
	summary, err := c.pipeline.Video(ctx, url)
	if errors.Is(err, youtube.ErrNoTranscript) {
		pterm.Warning.Println("No English transcript is available for this video.")
	}
	if err != nil {
		return err
	}
	return c.report(summary, in)
}

// Text summarizes arbitrary text.
func (c SummarizeCmd) Text(ctx context.Context, text string, in SummarizeInput) error {
	summary, err := c.pipeline.Text(ctx, text)
	if err != nil {
		return err
	}
	return c.report(summary, in)
}

func (c SummarizeCmd) report(s *summarize.Summary, in SummarizeInput) error {
	text := s.Text

	if in.Output == "json" {
		payload := struct {
			*summarize.Summary
			Text string `json:"text,omitempty"`
		}{Summary: s}
		if in.Print {
			payload.Text = text
		}
		return util.PrintPrettyJSON(c.out, payload)
	}

	if in.Print {
		fmt.Fprintln(c.out, text)
	}

	rows := pterm.TableData{{"Property", "Value"}}
	rows = append(rows, []string{"Source", s.Source})
	rows = append(rows, []string{"Title", util.OrDash(s.Title)})
	rows = append(rows, []string{"Prompt", s.Prompt})
	rows = append(rows, []string{"Service", string(s.Handoff.Service)})
	rows = append(rows, []string{"Limit", strconv.Itoa(s.Limit)})
	rows = append(rows, []string{"Length", strconv.Itoa(s.Handoff.Length)})
	rows = append(rows, []string{"Fitted", strconv.FormatBool(s.Fitted)})
	PrintTableNoPad(rows, true)

	switch {
	case s.Handoff.DryRun:
		pterm.Info.Printf("Dry run: would open %s\n", s.Handoff.URL)
	case s.Handoff.Opened:
		pterm.Success.Printf("Copied to clipboard and opened %s. Paste to send, or run 'tldr paste' if the clipboard was overwritten.\n", s.Handoff.URL)
	}
	return nil
}

var pageCmd = &cobra.Command{
	Use:   "page <url>",
	Short: "Summarize a web page",
	Long: `Capture the readable text of a web page, wrap it in your default prompt
and hand it to the selected AI service.`,
	Example: `  tldr page https://go.dev/blog/go1.22
  tldr page https://example.com/post --service claude --dry-run --print`,
	Args: cobra.ExactArgs(1),
	RunE: runPage,
}

var youtubeCmd = &cobra.Command{
	Use:     "youtube <url>",
	Aliases: []string{"yt"},
	Short:   "Summarize a YouTube video from its transcript",
	Example: `  tldr youtube https://www.youtube.com/watch?v=dQw4w9WgXcQ
  tldr yt https://youtu.be/dQw4w9WgXcQ --prompt youtube`,
	Args: cobra.ExactArgs(1),
	RunE: runYouTube,
}

var sendCmd = &cobra.Command{
	Use:   "send [file]",
	Short: "Summarize text from a file or stdin",
	Example: `  tldr send meeting-notes.md
  pbpaste | tldr send --service gemini`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSendText,
}

func init() {
	for _, c := range []*cobra.Command{pageCmd, youtubeCmd, sendCmd} {
		c.Flags().Bool("dry-run", false, "Prepare the request without touching the clipboard or browser")
		c.Flags().Bool("print", false, "Print the final request text")
		c.Flags().String("prompt", "", "Prompt ID to use instead of the default")
		c.Flags().StringP("output", "o", "", "Output format (json)")
		addServiceFlag(c.Flags(), "Service to use instead of the configured one")
	}
}

func newSummarizeCmd(cmd *cobra.Command) (SummarizeCmd, SummarizeInput, error) {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	printText, _ := cmd.Flags().GetBool("print")
	promptID, _ := cmd.Flags().GetString("prompt")
	output, _ := cmd.Flags().GetString("output")

	pipeline, dispatcher, err := getPipeline(cmd)
	if err != nil {
		return SummarizeCmd{}, SummarizeInput{}, err
	}
	dispatcher.DryRun = dryRun
	pipeline.Service = getServiceFlag(cmd.Flags())
	pipeline.PromptID = promptID

	c := SummarizeCmd{pipeline: pipeline, out: cmd.OutOrStdout()}
	return c, SummarizeInput{Print: printText, Output: output}, nil
}

func runPage(cmd *cobra.Command, args []string) error {
	c, in, err := newSummarizeCmd(cmd)
	if err != nil {
		return err
	}
	return c.Page(cmd.Context(), args[0], in)
}

func runYouTube(cmd *cobra.Command, args []string) error {
	c, in, err := newSummarizeCmd(cmd)
	if err != nil {
		return err
	}
	return c.Video(cmd.Context(), args[0], in)
}

func runSendText(cmd *cobra.Command, args []string) error {
	text, err := readInput(args, cmd.InOrStdin())
	if err != nil {
		return err
	}
	c, in, err := newSummarizeCmd(cmd)
	if err != nil {
		return err
	}
	return c.Text(cmd.Context(), text, in)
}
