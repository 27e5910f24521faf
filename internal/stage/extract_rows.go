package stage

import (
	"context"
	"errors"

	"github.com/flarebyte/papyrus/internal/wikitable"
)

const extractRowsStage = "extract-rows"

func extractRowsRunner(_ context.Context, in Envelope, _ Deps) (Envelope, error) {
	if in.Selected == nil {
		return Envelope{}, errors.New("no table selected")
	}
	out := in
	out.Table = wikitable.Extract(in.Selected)
	return out, nil
}

func init() { Register(extractRowsStage, extractRowsRunner) }
