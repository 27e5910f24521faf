package run

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/flarebyte/papyrus/internal/logging"
	"github.com/flarebyte/papyrus/internal/prompt"
	"github.com/flarebyte/papyrus/internal/qr"
)

// Interactive asks for a payload, a file name and a format until the user
// stops. A failure ends the loop.
func Interactive(ctx context.Context, in io.Reader, out io.Writer, outDir string, scale int, deps Deps) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	p := prompt.New(in, out)
	return p.Loop(func() error {
		payload, err := p.AskRaw("Enter the URL you want the QR code to link to:")
		if err != nil && !errors.Is(err, prompt.ErrNoInput) {
			return err
		}
		if payload == "" {
			return qr.ErrEmptyPayload
		}
		name, err := p.AskDefault("Enter a file name:", defaultCodeName)
		if err != nil {
			return err
		}
		answer, err := p.AskDefault("Save as png or svg?", string(qr.FormatPNG))
		if err != nil {
			return err
		}

		runID := uuid.NewString()
		jctx, _ := logging.WithFields(ctx, "run_id", runID)
		job := Job{Payload: payload, Name: name, Format: qr.ParseFormat(answer), Scale: scale, OutDir: outDir}
		res, err := Generate(jctx, job, runID, deps)
		if err != nil {
			return err
		}
		p.Printf("Saved %s\n", filepath.Base(res.Output))
		return nil
	})
}
