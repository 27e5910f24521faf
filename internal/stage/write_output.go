package stage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/flarebyte/papyrus/internal/logging"
	"github.com/flarebyte/papyrus/internal/wikitable"
)

const (
	writeOutputStage = "write-output"
	defaultTableName = "wikitable"
)

// OutputPath returns <outDir>/<name><ext>, defaulting the name to
// "wikitable".
func OutputPath(job Job) string {
	name := job.Name
	if name == "" {
		name = defaultTableName
	}
	return filepath.Join(job.OutDir, name+job.Format.Ext())
}

func writeOutputRunner(ctx context.Context, in Envelope, _ Deps) (Envelope, error) {
	path := OutputPath(in.Job)
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Envelope{}, err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return Envelope{}, err
	}
	werr := wikitable.Write(f, in.Table, in.Job.Format)
	cerr := f.Close()
	if err := errors.Join(werr, cerr); err != nil {
		return Envelope{}, fmt.Errorf("%s: %w", path, err)
	}
	logging.FromContext(ctx).Info("table written", "path", path, "rows", len(in.Table.Rows), "columns", in.Table.Width())
	out := in
	out.Output = path
	return out, nil
}

func init() { Register(writeOutputStage, writeOutputRunner) }
