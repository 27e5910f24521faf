package stage

import (
	"context"
	"time"

	"github.com/flarebyte/papyrus/internal/logging"
	"github.com/flarebyte/papyrus/internal/script"
	"github.com/flarebyte/papyrus/internal/storage"
	"github.com/flarebyte/papyrus/internal/wikitable"
)

// Deps carries the collaborators stages need.
type Deps struct {
	Fetcher       *wikitable.Fetcher
	Scripts       *script.Rows
	Storage       storage.Storage
	StoragePrefix string
	Sidecar       bool
	Now           func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// Runner executes a stage.
type Runner func(ctx context.Context, in Envelope, deps Deps) (Envelope, error)

var registry = map[string]Runner{}

// Register adds a stage runner.
func Register(name string, r Runner) {
	registry[name] = r
}

// Run executes a registered stage by name. Runner failures are returned as
// *Error naming the stage.
func Run(ctx context.Context, name string, in Envelope, deps Deps) (Envelope, error) {
	r, ok := registry[name]
	if !ok {
		return Envelope{}, ErrUnknown{name: name}
	}
	out, err := r(ctx, in, deps)
	if err != nil {
		return Envelope{}, &Error{Stage: name, Err: err}
	}
	out.Stage = name
	return out, nil
}

// RunAll executes stages in order, stopping at the first failure.
func RunAll(ctx context.Context, stages []string, in Envelope, deps Deps) (Envelope, error) {
	log := logging.FromContext(ctx)
	out := in
	var err error
	for _, name := range stages {
		start := time.Now()
		out, err = Run(ctx, name, out, deps)
		if err != nil {
			log.Debug("stage failed", "stage", name, "error", err)
			return Envelope{}, err
		}
		log.Debug("stage done", "stage", name, "elapsed", time.Since(start))
	}
	return out, nil
}

// ErrUnknown is returned when a stage is not found.
type ErrUnknown struct{ name string }

func (e ErrUnknown) Error() string { return "unknown stage: " + e.name }
