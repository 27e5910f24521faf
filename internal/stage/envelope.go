package stage

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/flarebyte/papyrus/internal/wikitable"
)

// Job is one table download request.
type Job struct {
	URL      string
	Name     string
	Selector string
	Format   wikitable.Format
	OutDir   string
}

// Envelope is the state handed from stage to stage.
type Envelope struct {
	Job   Job
	RunID string
	Stage string

	HTML       []byte
	Doc        *goquery.Document
	Candidates []*goquery.Selection
	Selected   *goquery.Selection
	Index      int

	Table     wikitable.Table
	Output    string
	SidecarAt string
	Published []string
}

// NewEnvelope starts a pipeline for job.
func NewEnvelope(job Job, runID string) Envelope {
	return Envelope{Job: job, RunID: runID, Index: -1}
}
