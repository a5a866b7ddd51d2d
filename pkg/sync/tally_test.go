package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"modsync/pkg/types"
)

func TestTallyAdd(t *testing.T) {
	var tally Tally
	for _, outcome := range []types.Outcome{
		types.OutcomeUpToDate,
		types.OutcomeDownloaded,
		types.OutcomeDownloaded,
		types.OutcomeUpdated,
		types.OutcomeNoVersion,
		types.OutcomeFailed,
	} {
		tally.Add(outcome)
	}

	assert.Equal(t, 6, tally.Checked)
	assert.Equal(t, 1, tally.UpToDate)
	assert.Equal(t, 2, tally.Downloaded)
	assert.Equal(t, 1, tally.Updated)
	assert.Equal(t, 1, tally.NoVersion)
	assert.Equal(t, 1, tally.Failed)
}

func TestReduceSplitsByKindAndSumsToChecked(t *testing.T) {
	results := []types.Result{
		{Artifact: types.Artifact{ID: "a", Kind: types.KindMod}, Outcome: types.OutcomeDownloaded},
		{Artifact: types.Artifact{ID: "b", Kind: types.KindMod}, Outcome: types.OutcomeUpToDate},
		{Artifact: types.Artifact{ID: "c", Kind: types.KindMod}, Outcome: types.OutcomeFailed},
		{Artifact: types.Artifact{ID: "d", Kind: types.KindResourcePack}, Outcome: types.OutcomeDownloaded},
		{Artifact: types.Artifact{ID: "e", Kind: types.KindResourcePack}, Outcome: types.OutcomeNoVersion},
	}

	report := Reduce(results)

	assert.Equal(t, 3, report.Mods.Checked)
	assert.Equal(t, 2, report.ResourcePacks.Checked)
	assert.Equal(t, 5, report.Total.Checked)

	for _, tally := range []Tally{report.Mods, report.ResourcePacks, report.Total} {
		sum := tally.UpToDate + tally.Downloaded + tally.Updated + tally.NoVersion + tally.Failed
		assert.Equal(t, tally.Checked, sum)
	}
}

func TestMerge(t *testing.T) {
	a := Tally{Checked: 2, Downloaded: 1, UpToDate: 1}
	b := Tally{Checked: 3, Updated: 1, NoVersion: 1, Failed: 1}
	a.Merge(b)

	assert.Equal(t, Tally{Checked: 5, Downloaded: 1, UpToDate: 1, Updated: 1, NoVersion: 1, Failed: 1}, a)
}
