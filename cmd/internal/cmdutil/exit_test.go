package cmdutil

import (
	"testing"

	"github.com/flarebyte/papyrus/internal/config"
)

func assertExitError(t *testing.T, err error, wantMsg string, wantCode int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error")
	}
	if err.Error() != wantMsg {
		t.Fatalf("unexpected error: %v", err)
	}
	ec, ok := err.(interface{ ExitCode() int })
	if !ok || ec.ExitCode() != wantCode {
		t.Fatalf("unexpected exit code")
	}
}

func TestEvaluateBatchExit_KeepGoing_SomeSucceeded(t *testing.T) {
	if err := EvaluateBatchExit(config.ErrorsKeepGoing, Tally{Succeeded: 1, Failed: 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEvaluateBatchExit_KeepGoing_AllFailed(t *testing.T) {
	err := EvaluateBatchExit(config.ErrorsKeepGoing, Tally{Failed: 2})
	assertExitError(t, err, "keep-going: no successful jobs", exitCodeExecErr)
}

func TestEvaluateBatchExit_FailFastIgnored(t *testing.T) {
	if err := EvaluateBatchExit(config.ErrorsFailFast, Tally{Failed: 3}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEvaluateBatchExit_Empty(t *testing.T) {
	if err := EvaluateBatchExit(config.ErrorsKeepGoing, Tally{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
