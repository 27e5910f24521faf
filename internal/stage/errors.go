package stage

import (
	"errors"
	"sort"
	"strings"
)

// Error wraps a stage failure with the stage name.
type Error struct {
	Stage string
	Err   error
}

func (e *Error) Error() string {
	msg := SanitizeErrorMessage(e.Err.Error())
	if strings.HasPrefix(msg, e.Stage+": ") {
		return msg
	}
	return e.Stage + ": " + msg
}

func (e *Error) Unwrap() error { return e.Err }

// JobError records a failed job in keep-going mode.
type JobError struct {
	Job     string `json:"job"`
	Stage   string `json:"stage,omitempty"`
	Message string `json:"message"`
}

// SanitizeErrorMessage collapses whitespace so a message fits on one line.
func SanitizeErrorMessage(msg string) string {
	s := strings.Join(strings.Fields(msg), " ")
	if s == "" {
		return "error"
	}
	return s
}

// SortJobErrors sorts errors by (job, stage, message) deterministically.
func SortJobErrors(errs []JobError) {
	sort.Slice(errs, func(i, j int) bool {
		ei, ej := errs[i], errs[j]
		if ei.Job != ej.Job {
			return ei.Job < ej.Job
		}
		if ei.Stage != ej.Stage {
			return ei.Stage < ej.Stage
		}
		return ei.Message < ej.Message
	})
}

// NewJobError describes err for job, lifting the stage name when err came
// from a stage.
func NewJobError(job string, err error) JobError {
	var se *Error
	if errors.As(err, &se) {
		msg := strings.TrimPrefix(SanitizeErrorMessage(se.Err.Error()), se.Stage+": ")
		return JobError{Job: job, Stage: se.Stage, Message: msg}
	}
	return JobError{Job: job, Message: SanitizeErrorMessage(err.Error())}
}
