package run

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/flarebyte/papyrus/internal/logging"
	"github.com/flarebyte/papyrus/internal/prompt"
	"github.com/flarebyte/papyrus/internal/stage"
	"github.com/flarebyte/papyrus/internal/wikitable"
)

const noTablesMessage = "No tables with class 'wikitable' were found."

// Interactive asks for a page, a file name and a table until the user stops.
// A page without wikitables is reported and the loop continues; any other
// failure ends it.
func Interactive(ctx context.Context, in io.Reader, out io.Writer, outDir string, format wikitable.Format, deps stage.Deps) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	p := prompt.New(in, out)
	return p.Loop(func() error {
		url, err := p.Ask("Enter the URL of the wikipedia page:")
		if err != nil && !errors.Is(err, prompt.ErrNoInput) {
			return err
		}
		if url == "" {
			return wikitable.ErrMissingURL
		}
		name, err := p.AskDefault("Enter a file name:", "wikitable")
		if err != nil {
			return err
		}
		selector, err := p.AskDefault("Enter the title or index of the table you want:", "0")
		if err != nil {
			return err
		}

		runID := uuid.NewString()
		jctx, log := logging.WithFields(ctx, "run_id", runID, "url", url)
		job := stage.Job{URL: url, Name: name, Selector: selector, Format: format, OutDir: outDir}
		env, err := stage.RunAll(jctx, stage.TablePipeline, stage.NewEnvelope(job, runID), deps)
		if errors.Is(err, wikitable.ErrNoTables) {
			log.Info("no wikitable found")
			p.Printf("%s\n", noTablesMessage)
			return nil
		}
		if err != nil {
			return err
		}
		p.Printf("Saved %d rows to %s\n", len(env.Table.Rows), env.Output)
		return nil
	})
}
