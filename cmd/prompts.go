package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/justtldr/cli/internal/prompts"
	"github.com/justtldr/cli/internal/settings"
	"github.com/justtldr/cli/pkg/util"
)

// PromptStore is the subset of settings.Store used for prompt management.
type PromptStore interface {
	Load() (*settings.Data, error)
	AddPrompt(name, content string) (prompts.Prompt, error)
	EditPrompt(id, name, content string) error
	DeletePrompt(id string) error
	SetDefaultPrompt(id string) error
}

// PromptsCmd handles prompt operations.
type PromptsCmd struct {
	store PromptStore
	out   io.Writer
}

// List prints all prompts, marking the default.
func (c PromptsCmd) List(output string) error {
	data, err := c.store.Load()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	if output == "json" {
		return util.PrintPrettyJSONSlice(c.out, data.Prompts)
	}

	if len(data.Prompts) == 0 {
		pterm.Info.Println("No prompts found")
		return nil
	}

	rows := pterm.TableData{{"", "ID", "Name", "Content"}}
	for _, p := range data.Prompts {
		marker := ""
		if p.IsDefault {
			marker = "*"
		}
		rows = append(rows, []string{marker, p.ID, p.Name, preview(p.Content, 50)})
	}
	PrintTableNoPad(rows, true)
	return nil
}

// Show prints one prompt in full.
func (c PromptsCmd) Show(id, output string) error {
	data, err := c.store.Load()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	p, err := data.Prompt(id)
	if err != nil {
		return fmt.Errorf("%w: %s", err, id)
	}

	if output == "json" {
		return util.PrintPrettyJSON(c.out, p)
	}
	fmt.Fprintln(c.out, p.Content)
	return nil
}

// AddPromptInput holds input for adding a prompt.
type AddPromptInput struct {
	Name       string
	Content    string
	SetDefault bool
}

// Add stores a new prompt.
func (c PromptsCmd) Add(in AddPromptInput) error {
	p, err := c.store.AddPrompt(in.Name, in.Content)
	if err != nil {
		return err
	}
	if in.SetDefault {
		if err := c.store.SetDefaultPrompt(p.ID); err != nil {
			return err
		}
	}
	pterm.Success.Printf("Added prompt %s (%s)\n", p.Name, p.ID)
	return nil
}

// EditPromptInput holds input for editing a prompt.
type EditPromptInput struct {
	ID      string
	Name    string
	Content string
}

// Edit updates a prompt's name or content.
func (c PromptsCmd) Edit(in EditPromptInput) error {
	if strings.TrimSpace(in.Name) == "" && strings.TrimSpace(in.Content) == "" {
		return fmt.Errorf("nothing to change. Pass --name, --content or --file")
	}
	if err := c.store.EditPrompt(in.ID, in.Name, in.Content); err != nil {
		return err
	}
	pterm.Success.Printf("Updated prompt %s\n", in.ID)
	return nil
}

// DeletePromptInput holds input for deleting a prompt.
type DeletePromptInput struct {
	ID          string
	SkipConfirm bool
}

// Delete removes a prompt.
func (c PromptsCmd) Delete(in DeletePromptInput) error {
	if !in.SkipConfirm {
		msg := fmt.Sprintf("Are you sure you want to delete prompt '%s'?", in.ID)
		pterm.DefaultInteractiveConfirm.DefaultText = msg
		ok, _ := pterm.DefaultInteractiveConfirm.Show()
		if !ok {
			pterm.Info.Println("Deletion cancelled")
			return nil
		}
	}

	if err := c.store.DeletePrompt(in.ID); err != nil {
		return err
	}
	pterm.Success.Printf("Deleted prompt %s\n", in.ID)
	return nil
}

// SetDefault makes id the default prompt.
func (c PromptsCmd) SetDefault(id string) error {
	if err := c.store.SetDefaultPrompt(id); err != nil {
		return err
	}
	pterm.Success.Printf("Default prompt set to %s\n", id)
	return nil
}

var promptsCmd = &cobra.Command{
	Use:     "prompts",
	Aliases: []string{"prompt"},
	Short:   "Manage prompt templates",
	Long: `Manage the prompts wrapped around captured content.

A prompt containing {{content}} has the captured text inserted at that spot.
Otherwise the text is appended after the prompt.`,
	Args: cobra.NoArgs,
	RunE: runPromptsList,
}

var promptsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List prompts",
	Args:  cobra.NoArgs,
	RunE:  runPromptsList,
}

var promptsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a prompt",
	Args:  cobra.ExactArgs(1),
	RunE:  runPromptsShow,
}

var promptsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a prompt",
	Example: `  tldr prompts add --name "Bullets" --content "Summarize as 5 bullet points."
  tldr prompts add --name "From file" --file prompt.txt --default`,
	Args: cobra.NoArgs,
	RunE: runPromptsAdd,
}

var promptsEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a prompt",
	Args:  cobra.ExactArgs(1),
	RunE:  runPromptsEdit,
}

var promptsDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a prompt",
	Args:    cobra.ExactArgs(1),
	RunE:    runPromptsDelete,
}

var promptsDefaultCmd = &cobra.Command{
	Use:   "default <id>",
	Short: "Set the default prompt",
	Args:  cobra.ExactArgs(1),
	RunE:  runPromptsDefault,
}

func init() {
	promptsCmd.AddCommand(promptsListCmd)
	promptsCmd.AddCommand(promptsShowCmd)
	promptsCmd.AddCommand(promptsAddCmd)
	promptsCmd.AddCommand(promptsEditCmd)
	promptsCmd.AddCommand(promptsDeleteCmd)
	promptsCmd.AddCommand(promptsDefaultCmd)

	promptsCmd.Flags().StringP("output", "o", "", "Output format (json)")
	promptsListCmd.Flags().StringP("output", "o", "", "Output format (json)")
	promptsShowCmd.Flags().StringP("output", "o", "", "Output format (json)")

	promptsAddCmd.Flags().String("name", "", "Prompt name (required)")
	promptsAddCmd.Flags().String("content", "", "Prompt text")
	promptsAddCmd.Flags().StringP("file", "f", "", "Read prompt text from a file")
	promptsAddCmd.Flags().Bool("default", false, "Make this the default prompt")
	_ = promptsAddCmd.MarkFlagRequired("name")
	promptsAddCmd.MarkFlagsMutuallyExclusive("content", "file")

	promptsEditCmd.Flags().String("name", "", "New prompt name")
	promptsEditCmd.Flags().String("content", "", "New prompt text")
	promptsEditCmd.Flags().StringP("file", "f", "", "Read new prompt text from a file")
	promptsEditCmd.MarkFlagsMutuallyExclusive("content", "file")

	promptsDeleteCmd.Flags().BoolP("yes", "y", false, "Skip confirmation prompt")
}

func getPromptsCmd(cmd *cobra.Command) (PromptsCmd, error) {
	store, err := getStore(cmd)
	if err != nil {
		return PromptsCmd{}, err
	}
	return PromptsCmd{store: store, out: cmd.OutOrStdout()}, nil
}

func promptContent(cmd *cobra.Command) (string, error) {
	content, _ := cmd.Flags().GetString("content")
	file, _ := cmd.Flags().GetString("file")
	if file == "" {
		return content, nil
	}
	bs, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return string(bs), nil
}

func runPromptsList(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	c, err := getPromptsCmd(cmd)
	if err != nil {
		return err
	}
	return c.List(output)
}

func runPromptsShow(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	c, err := getPromptsCmd(cmd)
	if err != nil {
		return err
	}
	return c.Show(args[0], output)
}

func runPromptsAdd(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	setDefault, _ := cmd.Flags().GetBool("default")
	content, err := promptContent(cmd)
	if err != nil {
		return err
	}

	c, err := getPromptsCmd(cmd)
	if err != nil {
		return err
	}
	return c.Add(AddPromptInput{Name: name, Content: content, SetDefault: setDefault})
}

func runPromptsEdit(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	content, err := promptContent(cmd)
	if err != nil {
		return err
	}

	c, err := getPromptsCmd(cmd)
	if err != nil {
		return err
	}
	return c.Edit(EditPromptInput{ID: args[0], Name: name, Content: content})
}

func runPromptsDelete(cmd *cobra.Command, args []string) error {
	skip, _ := cmd.Flags().GetBool("yes")
	c, err := getPromptsCmd(cmd)
	if err != nil {
		return err
	}
	return c.Delete(DeletePromptInput{ID: args[0], SkipConfirm: skip})
}

func runPromptsDefault(cmd *cobra.Command, args []string) error {
	c, err := getPromptsCmd(cmd)
	if err != nil {
		return err
	}
	return c.SetDefault(args[0])
}
