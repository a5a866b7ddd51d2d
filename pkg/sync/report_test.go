package sync

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"modsync/pkg/types"
)

func TestRenderReportShowsCounts(t *testing.T) {
	report := Report{
		Mods:  Tally{Checked: 3, UpToDate: 1, Updated: 1, NoVersion: 1},
		Total: Tally{Checked: 3, UpToDate: 1, Updated: 1, NoVersion: 1},
	}

	out := RenderReport(report, nil, false)

	assert.Contains(t, out, "Sync summary")
	assert.Contains(t, out, "mods")
	assert.Contains(t, out, "3")
	// Resource packs were not synced, so no total row either.
	assert.NotContains(t, out, "resource packs")
}

func TestRenderReportListsFailures(t *testing.T) {
	results := []types.Result{
		{
			Artifact: types.Artifact{ID: "AANobbMI", Name: "Sodium", Kind: types.KindMod},
			Outcome:  types.OutcomeFailed,
			Err:      fmt.Errorf("connection reset"),
		},
	}
	report := Reduce(results)

	out := RenderReport(report, results, true)

	assert.Contains(t, out, "Sodium")
	assert.Contains(t, out, "connection reset")
	assert.Contains(t, out, "resource packs")
}
