package stage

import (
	"context"

	"github.com/flarebyte/papyrus/internal/logging"
	"github.com/flarebyte/papyrus/internal/metafile"
	"github.com/flarebyte/papyrus/internal/storage"
)

const publishOutputStage = "publish-output"

func publishOutputRunner(ctx context.Context, in Envelope, deps Deps) (Envelope, error) {
	if deps.Storage == nil || in.Output == "" {
		return in, nil
	}
	md := map[string]string{"run-id": in.RunID, "source": in.Job.URL}
	out := in
	info, err := storage.PutFile(ctx, deps.Storage, deps.StoragePrefix, in.Output, in.Job.Format.ContentType(), md)
	if err != nil {
		return Envelope{}, err
	}
	out.Published = append(out.Published, info.Key)
	if in.SidecarAt != "" {
		info, err := storage.PutFile(ctx, deps.Storage, deps.StoragePrefix, in.SidecarAt, metafile.ContentType, md)
		if err != nil {
			return Envelope{}, err
		}
		out.Published = append(out.Published, info.Key)
	}
	logging.FromContext(ctx).Info("output published", "keys", out.Published)
	return out, nil
}

func init() { Register(publishOutputStage, publishOutputRunner) }
