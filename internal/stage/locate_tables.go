package stage

import (
	"context"

	"github.com/flarebyte/papyrus/internal/wikitable"
)

const locateTablesStage = "locate-tables"

func locateTablesRunner(_ context.Context, in Envelope, _ Deps) (Envelope, error) {
	doc, err := wikitable.ParseBytes(in.HTML)
	if err != nil {
		return Envelope{}, err
	}
	tables, err := wikitable.Locate(doc)
	if err != nil {
		return Envelope{}, err
	}
	out := in
	out.Doc = doc
	out.Candidates = tables
	return out, nil
}

func init() { Register(locateTablesStage, locateTablesRunner) }
