package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/pterm/pterm"

	"github.com/justtldr/cli/internal/settings"
)

var outBuf bytes.Buffer

// setupStdoutCapture sends pterm output to outBuf for the rest of the test.
func setupStdoutCapture(t *testing.T) {
	t.Helper()
	outBuf.Reset()

	printers := []*pterm.PrefixPrinter{&pterm.Info, &pterm.Success, &pterm.Warning, &pterm.Error}
	saved := make([]io.Writer, len(printers))
	for i, p := range printers {
		saved[i] = p.Writer
		p.Writer = &outBuf
	}
	pterm.SetDefaultOutput(&outBuf)
	pterm.DisableStyling()

	t.Cleanup(func() {
		for i, p := range printers {
			p.Writer = saved[i]
		}
		pterm.SetDefaultOutput(os.Stdout)
		pterm.EnableStyling()
	})
}

func newTestStore(t *testing.T) *settings.Store {
	t.Helper()
	return settings.NewStore(filepath.Join(t.TempDir(), "settings.yaml"))
}
