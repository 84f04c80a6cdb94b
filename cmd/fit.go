package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/justtldr/cli/pkg/sampling"
	"github.com/justtldr/cli/pkg/util"
)

const previewLength = 400

var previewStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("8")).
	Padding(0, 1).
	Width(80)

// FitCmd fits text into a character budget and writes the result to out.
type FitCmd struct {
	out io.Writer
}

// FitInput holds input for fitting text.
type FitInput struct {
	Text    string
	Config  sampling.Config
	Stats   bool
	Preview bool
	Output  string
}

// Fit runs the sampler over in.Text. in.Config must be complete; zero fields
// are rejected rather than defaulted.
func (c FitCmd) Fit(in FitInput) error {
	res, err := sampling.FitWithStats(in.Text, in.Config)
	if err != nil {
		return err
	}

	if in.Output == "json" {
		return util.PrintPrettyJSON(c.out, res)
	}

	switch {
	case in.Preview:
		fmt.Fprintln(c.out, previewStyle.Render(preview(res.Text, previewLength)))
	default:
		fmt.Fprintln(c.out, res.Text)
	}

	if in.Stats {
		printFitStats(res)
	}
	return nil
}

// ChunkInput holds input for splitting text.
type ChunkInput struct {
	Text   string
	Size   int
	Output string
}

// Chunk prints the word-boundary chunks of in.Text.
func (c FitCmd) Chunk(in ChunkInput) error {
	if in.Size <= 0 {
		return fmt.Errorf("--size must be positive, got %d", in.Size)
	}

	chunks := sampling.Chunk(in.Text, in.Size)
	if in.Output == "json" {
		return util.PrintPrettyJSONSlice(c.out, chunks)
	}

	if len(chunks) == 0 {
		pterm.Info.Println("No chunks")
		return nil
	}

	rows := pterm.TableData{{"#", "Length", "Chunk"}}
	for i, chunk := range chunks {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(utf8.RuneCountInString(chunk)),
			preview(chunk, 60),
		})
	}
	PrintTableNoPad(rows, true)
	return nil
}

func printFitStats(res *sampling.FitResult) {
	rows := pterm.TableData{
		{"Property", "Value"},
		{"Input length", strconv.Itoa(res.InputLength)},
		{"Output length", strconv.Itoa(res.OutputLength)},
		{"Sampled", strconv.FormatBool(res.Sampled)},
	}
	if res.Sampled {
		rows = append(rows,
			[]string{"Chunks", strconv.Itoa(res.Chunks)},
			[]string{"Lead-in length", strconv.Itoa(res.LeadInLength)},
			[]string{"Sample points", strconv.Itoa(res.SamplePoints)},
			[]string{"Sampled chunks", strconv.Itoa(res.SampledChunks)},
		)
	}
	PrintTableNoPad(rows, true)
}

func preview(s string, n int) string {
	return util.Truncate(strings.Join(strings.Fields(s), " "), n)
}

var fitCmd = &cobra.Command{
	Use:   "fit [file]",
	Short: "Fit text into a character budget",
	Long: `Fit text into a character budget without calling any service.

Text under the limit is returned unchanged. Longer text keeps a contiguous
lead-in and then evenly spaced samples from the rest, always at word
boundaries. Reads stdin when no file is given or the file is "-".`,
	Example: `  # Fit a file to the default 20000 characters
  tldr fit article.txt

  # Fit stdin to 5000 characters and show what was kept
  cat book.txt | tldr fit --limit 5000 --stats

  # Inspect the sampler as JSON
  tldr fit notes.md --limit 2000 -o json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFit,
}

var chunkCmd = &cobra.Command{
	Use:    "chunk [file]",
	Short:  "Show how text is split into word-boundary chunks",
	Args:   cobra.MaximumNArgs(1),
	Hidden: true,
	RunE:   runChunk,
}

func init() {
	fitCmd.Flags().Int("limit", sampling.DefaultCharacterLimit, "Maximum output length in characters")
	fitCmd.Flags().Float64("ratio", sampling.DefaultInitialContentRatio, "Share of the limit kept as a contiguous lead-in (0-1)")
	fitCmd.Flags().Int("chunk-size", sampling.DefaultChunkSize, "Maximum chunk length in characters")
	fitCmd.Flags().Int("min-chunks", sampling.DefaultMinChunksPerSegment, "Consecutive chunks taken at each sample point")
	fitCmd.Flags().Bool("stats", false, "Print a summary of what was kept")
	fitCmd.Flags().Bool("preview", false, "Print a short boxed preview instead of the full text")
	fitCmd.Flags().StringP("output", "o", "", "Output format (json)")

	chunkCmd.Flags().Int("size", sampling.DefaultChunkSize, "Maximum chunk length in characters")
	chunkCmd.Flags().StringP("output", "o", "", "Output format (json)")
}

func runFit(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	ratio, _ := cmd.Flags().GetFloat64("ratio")
	chunkSize, _ := cmd.Flags().GetInt("chunk-size")
	minChunks, _ := cmd.Flags().GetInt("min-chunks")
	stats, _ := cmd.Flags().GetBool("stats")
	showPreview, _ := cmd.Flags().GetBool("preview")
	output, _ := cmd.Flags().GetString("output")

	text, err := readInput(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	c := FitCmd{out: cmd.OutOrStdout()}
	return c.Fit(FitInput{
		Text: text,
		Config: sampling.Config{
			CharacterLimit:      limit,
			InitialContentRatio: ratio,
			ChunkSize:           chunkSize,
			MinChunksPerSegment: minChunks,
		},
		Stats:   stats,
		Preview: showPreview,
		Output:  output,
	})
}

func runChunk(cmd *cobra.Command, args []string) error {
	size, _ := cmd.Flags().GetInt("size")
	output, _ := cmd.Flags().GetString("output")

	text, err := readInput(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	c := FitCmd{out: cmd.OutOrStdout()}
	return c.Chunk(ChunkInput{Text: text, Size: size, Output: output})
}
