package stage

import (
	"context"
	"errors"

	"github.com/flarebyte/papyrus/internal/logging"
	"github.com/flarebyte/papyrus/internal/wikitable"
)

const fetchHTMLStage = "fetch-html"

func fetchHTMLRunner(ctx context.Context, in Envelope, deps Deps) (Envelope, error) {
	f := deps.Fetcher
	if f == nil {
		f = wikitable.NewFetcher(wikitable.DefaultTimeout, "")
	}
	body, err := f.Fetch(ctx, in.Job.URL)
	if err != nil {
		return Envelope{}, err
	}
	if len(body) == 0 {
		return Envelope{}, errors.New("empty response body")
	}
	logging.FromContext(ctx).Info("page downloaded", "url", in.Job.URL, "bytes", len(body))
	out := in
	out.HTML = body
	return out, nil
}

func init() { Register(fetchHTMLStage, fetchHTMLRunner) }
