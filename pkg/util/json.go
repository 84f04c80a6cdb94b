package util

import (
	"encoding/json"
	"fmt"
	"io"
)

// PrintPrettyJSON writes v to w as indented JSON followed by a newline.
func PrintPrettyJSON(w io.Writer, v any) error {
	bs, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(bs))
	return err
}

// PrintPrettyJSONSlice is PrintPrettyJSON for slices, printing [] instead of
// null for an empty slice.
func PrintPrettyJSONSlice[T any](w io.Writer, items []T) error {
	if items == nil {
		items = []T{}
	}
	return PrintPrettyJSON(w, items)
}
