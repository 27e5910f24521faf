package cmdutil

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
)

func TestReport(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantOut  string
		wantCode int
	}{
		{name: "nil", err: nil, wantOut: "", wantCode: 0},
		{name: "plain", err: errors.New("fetch x:\n  unexpected status"), wantOut: "fetch x: unexpected status\n", wantCode: 1},
		{name: "blank", err: errors.New("  "), wantOut: "error\n", wantCode: 1},
		{name: "exit coder", err: ExitError{code: 3, msg: "drift"}, wantOut: "drift\n", wantCode: 3},
		{name: "wrapped exit coder", err: fmt.Errorf("batch: %w", ExitError{code: 4, msg: "x"}), wantOut: "batch: x\n", wantCode: 4},
		{name: "zero exit code", err: ExitError{code: 0, msg: "odd"}, wantOut: "odd\n", wantCode: 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			if got := Report(&buf, tc.err); got != tc.wantCode {
				t.Fatalf("code: want %d, got %d", tc.wantCode, got)
			}
			if buf.String() != tc.wantOut {
				t.Fatalf("output: want %q, got %q", tc.wantOut, buf.String())
			}
		})
	}
}
