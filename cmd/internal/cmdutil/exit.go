package cmdutil

import "github.com/flarebyte/papyrus/internal/config"

const (
	exitCodeSuccess = 0
	exitCodeExecErr = 1
)

// ExitError carries the process exit code for main.
type ExitError struct {
	code int
	msg  string
}

func (e ExitError) Error() string { return e.msg }
func (e ExitError) ExitCode() int { return e.code }

// Tally counts finished batch jobs.
type Tally struct {
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
	Skipped   int `json:"skipped"`
}

// EvaluateBatchExit decides the exit status of a batch that ran to the end.
// Fail-fast batches surface their first error directly, so only keep-going
// needs a verdict: it fails when jobs failed and none succeeded.
func EvaluateBatchExit(mode string, t Tally) error {
	if mode != config.ErrorsKeepGoing || t.Failed == 0 {
		return nil
	}
	if t.Succeeded > 0 {
		return nil
	}
	return ExitError{code: exitCodeExecErr, msg: "keep-going: no successful jobs"}
}
