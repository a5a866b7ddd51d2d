package sync

import "modsync/pkg/types"

// Tally accumulates outcome counts. Counting is a commutative reduction
// over independent results, performed in one pass after the pool drains;
// no counter is shared between workers.
type Tally struct {
	Checked    int
	UpToDate   int
	Downloaded int
	Updated    int
	NoVersion  int
	Failed     int
}

// Add counts one result.
func (t *Tally) Add(outcome types.Outcome) {
	t.Checked++
	switch outcome {
	case types.OutcomeUpToDate:
		t.UpToDate++
	case types.OutcomeDownloaded:
		t.Downloaded++
	case types.OutcomeUpdated:
		t.Updated++
	case types.OutcomeNoVersion:
		t.NoVersion++
	case types.OutcomeFailed:
		t.Failed++
	}
}

// Merge folds another tally into this one.
func (t *Tally) Merge(other Tally) {
	t.Checked += other.Checked
	t.UpToDate += other.UpToDate
	t.Downloaded += other.Downloaded
	t.Updated += other.Updated
	t.NoVersion += other.NoVersion
	t.Failed += other.Failed
}

// Report holds the per-kind and combined tallies of one run.
type Report struct {
	Mods          Tally
	ResourcePacks Tally
	Total         Tally
}

// Reduce folds the pool's results into per-kind and combined tallies.
func Reduce(results []types.Result) Report {
	var report Report
	for _, r := range results {
		switch r.Artifact.Kind {
		case types.KindResourcePack:
			report.ResourcePacks.Add(r.Outcome)
		default:
			report.Mods.Add(r.Outcome)
		}
	}
	report.Total.Merge(report.Mods)
	report.Total.Merge(report.ResourcePacks)
	return report
}
