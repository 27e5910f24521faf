package stage

import (
	"context"

	"github.com/flarebyte/papyrus/internal/logging"
	"github.com/flarebyte/papyrus/internal/wikitable"
)

const selectTableStage = "select-table"

func selectTableRunner(ctx context.Context, in Envelope, _ Deps) (Envelope, error) {
	sel, idx := wikitable.Select(in.Candidates, in.Job.Selector)
	if sel == nil {
		return Envelope{}, wikitable.ErrNoTables
	}
	logging.FromContext(ctx).Debug("table selected", "selector", in.Job.Selector, "index", idx, "candidates", len(in.Candidates))
	out := in
	out.Selected = sel
	out.Index = idx
	return out, nil
}

func init() { Register(selectTableStage, selectTableRunner) }
