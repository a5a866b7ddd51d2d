package sync

import (
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"modsync/pkg/types"
)

// RenderReport formats the final human-readable summary: a counts table
// per kind plus a failure list when anything went wrong.
func RenderReport(report Report, results []types.Result, includePacks bool) string {
	var out strings.Builder

	out.WriteString(pterm.DefaultSection.Sprint("Sync summary"))
	out.WriteString("\n")

	table := pterm.TableData{
		{"", "checked", "up-to-date", "downloaded", "updated", "no-version", "failed"},
		tallyRow("mods", report.Mods),
	}
	if includePacks {
		table = append(table, tallyRow("resource packs", report.ResourcePacks))
		table = append(table, tallyRow("total", report.Total))
	}

	rendered, err := pterm.DefaultTable.WithHasHeader().WithData(table).Srender()
	if err != nil {
		// Srender only fails on impossible terminal setups; fall back to
		// the raw numbers.
		rendered = plainTable(table)
	}
	out.WriteString(rendered)
	out.WriteString("\n")

	for _, r := range results {
		if r.Outcome != types.OutcomeFailed {
			continue
		}
		out.WriteString(pterm.Error.Sprintfln("%s (%s): %v", r.Artifact.Name, r.Artifact.ID, r.Err))
	}

	return out.String()
}

func tallyRow(label string, t Tally) []string {
	return []string{
		label,
		strconv.Itoa(t.Checked),
		strconv.Itoa(t.UpToDate),
		strconv.Itoa(t.Downloaded),
		strconv.Itoa(t.Updated),
		strconv.Itoa(t.NoVersion),
		strconv.Itoa(t.Failed),
	}
}

func plainTable(table pterm.TableData) string {
	var out strings.Builder
	for _, row := range table {
		out.WriteString(strings.Join(row, "  "))
		out.WriteString("\n")
	}
	return out.String()
}
