package cmd

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/justtldr/cli/internal/outbound"
	"github.com/justtldr/cli/pkg/util"
)

// PendingTaker hands out the text kept by the last handoff, once.
type PendingTaker interface {
	Take() (string, bool, error)
}

// PasteCmd prints or re-copies the text waiting from the last handoff.
type PasteCmd struct {
	pending   PendingTaker
	clipboard outbound.Clipboard
	out       io.Writer
}

// PasteInput holds input for taking the pending text.
type PasteInput struct {
	Copy   bool
	Output string
}

type pasteResult struct {
	Pending bool   `json:"pending"`
	Length  int    `json:"length"`
	Copied  bool   `json:"copied"`
	Text    string `json:"text,omitempty"`
}

// Paste takes the pending text. It is gone afterwards whether or not it was copied.
func (c PasteCmd) Paste(in PasteInput) error {
	text, ok, err := c.pending.Take()
	if err != nil {
		return err
	}

	res := pasteResult{Pending: ok, Length: utf8.RuneCountInString(text), Text: text}
	if ok && in.Copy {
		if err := c.clipboard.WriteAll(text); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		res.Copied = true
	}

	if in.Output == "json" {
		return util.PrintPrettyJSON(c.out, res)
	}

	if !ok {
		pterm.Info.Println("Nothing is waiting to be pasted")
		return nil
	}
	if res.Copied {
		pterm.Success.Printf("Copied %d characters to the clipboard\n", res.Length)
		return nil
	}
	fmt.Fprintln(c.out, text)
	return nil
}

var pasteCmd = &cobra.Command{
	Use:   "paste",
	Short: "Take the text waiting from the last summary handoff",
	Long: `Every page, youtube or send run keeps the request it handed off until it is
taken once. paste prints that text, or puts it back on the clipboard with
--copy, and clears it.`,
	Example: `  # Restore the clipboard after it was overwritten
  tldr paste --copy

  # Pipe the last request somewhere else
  tldr paste > request.txt`,
	Args: cobra.NoArgs,
	RunE: runPaste,
}

func init() {
	pasteCmd.Flags().Bool("copy", false, "Copy the text to the clipboard instead of printing it")
	pasteCmd.Flags().StringP("output", "o", "", "Output format (json)")
}

func runPaste(cmd *cobra.Command, args []string) error {
	copyText, _ := cmd.Flags().GetBool("copy")
	output, _ := cmd.Flags().GetString("output")

	store, err := getStore(cmd)
	if err != nil {
		return err
	}

	c := PasteCmd{pending: pendingFor(store), clipboard: outbound.SystemClipboard, out: cmd.OutOrStdout()}
	return c.Paste(PasteInput{Copy: copyText, Output: output})
}
