package cmdutil

import (
	"errors"
	"io"
	"os"
	"strings"
)

type exitCoder interface {
	ExitCode() int
}

// Main runs execute with the process arguments and exits with Report's code.
func Main(execute func(args []string) error) {
	if code := Report(os.Stderr, execute(os.Args[1:])); code != 0 {
		os.Exit(code)
	}
}

// Report prints err to w as one whitespace-collapsed line, without usage or
// stack trace, and returns the exit code: 0 for nil, the error's ExitCode()
// when it has a non-zero one, 1 otherwise.
func Report(w io.Writer, err error) int {
	if err == nil {
		return exitCodeSuccess
	}
	msg := strings.Join(strings.Fields(err.Error()), " ")
	if msg == "" {
		msg = "error"
	}
	_, _ = io.WriteString(w, msg+"\n")
	var ec exitCoder
	if errors.As(err, &ec) && ec.ExitCode() != 0 {
		return ec.ExitCode()
	}
	return exitCodeExecErr
}
