package stage

import (
	"context"
	"time"

	"github.com/flarebyte/papyrus/internal/metafile"
)

const writeSidecarStage = "write-sidecar"

// SidecarMeta describes a written table for its .meta.yaml file.
func SidecarMeta(in Envelope, generatedAt time.Time) map[string]any {
	return map[string]any{
		"source":      in.Job.URL,
		"selector":    in.Job.Selector,
		"format":      string(in.Job.Format),
		"runId":       in.RunID,
		"generatedAt": generatedAt.UTC().Format(time.RFC3339),
		"table": map[string]any{
			"index":      in.Index,
			"candidates": len(in.Candidates),
			"caption":    in.Table.Caption,
			"headers":    in.Table.Headers,
			"rows":       len(in.Table.Rows),
			"columns":    in.Table.Width(),
		},
	}
}

func writeSidecarRunner(_ context.Context, in Envelope, deps Deps) (Envelope, error) {
	if !deps.Sidecar || in.Output == "" {
		return in, nil
	}
	path, err := metafile.Write(in.Output, SidecarMeta(in, deps.now()))
	if err != nil {
		return Envelope{}, err
	}
	out := in
	out.SidecarAt = path
	return out, nil
}

func init() { Register(writeSidecarStage, writeSidecarRunner) }
