package main

import (
	"encoding/json"
	"fmt"
	"io"

	"wirelab/internal/format"
)

// tableMode maps the configured table style to a format.Mode. The per-command
// --markdown flag wins over the config.
func tableMode(markdown bool) format.Mode {
	if markdown {
		return format.Markdown
	}
	return format.ModeFromString(cfg.Table.Mode)
}

// printJSON writes v as indented JSON, for --json output.
func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}
