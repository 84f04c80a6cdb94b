package cmd

import "github.com/pterm/pterm"

// PrintTableNoPad renders rows with pterm's default table style.
func PrintTableNoPad(rows pterm.TableData, hasHeader bool) {
	_ = pterm.DefaultTable.WithHasHeader(hasHeader).WithData(rows).Render()
}
