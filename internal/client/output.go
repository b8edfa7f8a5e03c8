// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/MKhiriev/go-journal-vault/models"
)

const previewLength = 60

func printEntry(w io.Writer, entry models.Entry, asJSON bool) error {
	if asJSON {
		return writeJSON(w, entry)
	}

	fmt.Fprintf(w, "id:      %s\n", entry.RecordID)
	fmt.Fprintf(w, "kind:    %s\n", entry.Kind)
	fmt.Fprintf(w, "index:   %s\n", entry.IndexMode)
	if !entry.UpdatedAt.IsZero() {
		fmt.Fprintf(w, "updated: %s\n", entry.UpdatedAt.Local().Format(time.DateTime))
	}
	fmt.Fprintf(w, "\n%s\n", entry.Text)
	return nil
}

func printEntries(w io.Writer, entries []models.Entry, asJSON bool) error {
	if asJSON {
		if entries == nil {
			entries = []models.Entry{}
		}
		return writeJSON(w, entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(w, "No entries.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tKIND\tTEXT")
	for _, entry := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", entry.RecordID, entry.Kind, preview(entry.Text))
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// preview returns the first line of text cut to previewLength runes.
func preview(text string) string {
	line, _, _ := strings.Cut(text, "\n")
	runes := []rune(line)
	if len(runes) > previewLength {
		return string(runes[:previewLength-1]) + "…"
	}
	if len(line) < len(text) {
		return line + " …"
	}
	return line
}
