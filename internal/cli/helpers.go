package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"
)

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func newTable(w io.Writer, header string) *tabwriter.Writer {
	writer := tabwriter.NewWriter(w, 2, 2, 2, ' ', 0)
	fmt.Fprintln(writer, header)
	return writer
}

func parseInstant(flag, input string) (time.Time, error) {
	if input == "" {
		return time.Time{}, fmt.Errorf("--%s is required", flag)
	}
	parsed, err := time.Parse(time.RFC3339, input)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s %q (expected RFC3339)", flag, input)
	}
	return parsed, nil
}

func formatInstant(t time.Time) string {
	return t.Format("2006-01-02 15:04")
}
