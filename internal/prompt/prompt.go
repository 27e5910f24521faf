// Package prompt implements the line-oriented question/answer loop shared
// by the interactive commands.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoInput is returned when input ends before a required answer.
var ErrNoInput = errors.New("no input")

// Prompter asks questions on out and reads answers from in.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New returns a Prompter over in and out.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Printf writes a message to the output.
func (p *Prompter) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}

// Ask prints question on its own line and returns the trimmed answer. A final
// line without a newline is still returned; ErrNoInput means input was
// already exhausted.
func (p *Prompter) Ask(question string) (string, error) {
	line, err := p.AskRaw(question)
	return strings.TrimSpace(line), err
}

// AskRaw is Ask without trimming: only the line terminator is removed.
func (p *Prompter) AskRaw(question string) (string, error) {
	if _, err := fmt.Fprintln(p.out, question); err != nil {
		return "", err
	}
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	if err != nil && line == "" {
		return "", ErrNoInput
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

// AskDefault is Ask with def substituted for an empty or missing answer.
func (p *Prompter) AskDefault(question, def string) (string, error) {
	answer, err := p.Ask(question)
	if err != nil && !errors.Is(err, ErrNoInput) {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// Again asks whether to run another iteration. An answer starting with "n"
// or exhausted input stops the loop.
func (p *Prompter) Again() bool {
	answer, err := p.Ask("Another? y/n")
	if err != nil {
		return false
	}
	return !strings.HasPrefix(strings.ToLower(answer), "n")
}

// Loop runs body until it fails or the user declines another round.
func (p *Prompter) Loop(body func() error) error {
	for {
		if err := body(); err != nil {
			return err
		}
		if !p.Again() {
			return nil
		}
	}
}
