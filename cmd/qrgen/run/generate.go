package run

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/flarebyte/papyrus/internal/logging"
	"github.com/flarebyte/papyrus/internal/metafile"
	"github.com/flarebyte/papyrus/internal/qr"
	"github.com/flarebyte/papyrus/internal/storage"
)

const defaultCodeName = "qrcode"

// Job is one code to render.
type Job struct {
	Payload string
	Name    string
	Format  qr.Format
	Scale   int
	OutDir  string
}

// FileName returns <name><ext>, defaulting the name to "qrcode".
func (j Job) FileName() string {
	name := j.Name
	if name == "" {
		name = defaultCodeName
	}
	return name + j.Format.Ext()
}

// Deps are the optional collaborators of Generate.
type Deps struct {
	Storage       storage.Storage
	StoragePrefix string
	Sidecar       bool
	Now           func() time.Time
}

// Result lists what Generate wrote.
type Result struct {
	Output    string
	SidecarAt string
	Published []string
	Modules   int
}

// Generate encodes the payload, writes the image and, when enabled, its
// sidecar and the published copies.
func Generate(ctx context.Context, job Job, runID string, deps Deps) (Result, error) {
	code, err := qr.Encode(job.Payload)
	if err != nil {
		return Result{}, err
	}
	res := Result{Output: filepath.Join(job.OutDir, job.FileName()), Modules: code.Size()}
	if err := os.MkdirAll(job.OutDir, 0o755); err != nil {
		return Result{}, err
	}
	f, err := os.Create(res.Output)
	if err != nil {
		return Result{}, err
	}
	werr := code.Write(f, job.Format, job.Scale)
	if err := errors.Join(werr, f.Close()); err != nil {
		return Result{}, fmt.Errorf("%s: %w", res.Output, err)
	}
	log := logging.FromContext(ctx)
	log.Info("code written", "path", res.Output, "modules", res.Modules)

	if deps.Sidecar {
		now := time.Now
		if deps.Now != nil {
			now = deps.Now
		}
		res.SidecarAt, err = metafile.Write(res.Output, map[string]any{
			"payload":     job.Payload,
			"format":      string(job.Format),
			"scale":       effectiveScale(job.Scale),
			"modules":     res.Modules,
			"ecc":         "H",
			"runId":       runID,
			"generatedAt": now().UTC().Format(time.RFC3339),
		})
		if err != nil {
			return Result{}, err
		}
	}

	if deps.Storage != nil {
		md := map[string]string{"run-id": runID}
		info, err := storage.PutFile(ctx, deps.Storage, deps.StoragePrefix, res.Output, job.Format.ContentType(), md)
		if err != nil {
			return Result{}, err
		}
		res.Published = append(res.Published, info.Key)
		if res.SidecarAt != "" {
			info, err := storage.PutFile(ctx, deps.Storage, deps.StoragePrefix, res.SidecarAt, metafile.ContentType, md)
			if err != nil {
				return Result{}, err
			}
			res.Published = append(res.Published, info.Key)
		}
		log.Info("code published", "keys", res.Published)
	}
	return res, nil
}

func effectiveScale(scale int) int {
	if scale < 1 {
		return qr.DefaultScale
	}
	return scale
}
