// Package prompt asks the operator for an explicit go/no-go answer.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	doerrors "github.com/iafisher/do/internal/errors"
	"github.com/iafisher/do/internal/output"
)

type answer struct {
	line string
	err  error
}

// Confirmer reads one line of input per question. There is no timeout and
// no default answer; only context cancellation ends the wait early.
type Confirmer struct {
	in  *bufio.Reader
	out *output.Writer

	once    sync.Once
	answers chan answer
}

// New creates a Confirmer reading from in and writing questions to out.
func New(in io.Reader, out *output.Writer) *Confirmer {
	return &Confirmer{in: bufio.NewReader(in), out: out}
}

// readLines delivers input lines in order until the first read error.
// A line that arrives after a canceled question answers the next one.
func (c *Confirmer) readLines() {
	c.answers = make(chan answer)
	go func() {
		defer close(c.answers)
		for {
			line, err := c.in.ReadString('\n')
			c.answers <- answer{line: line, err: err}
			if err != nil {
				return
			}
		}
	}()
}

// Confirm prints question and reports whether the answer starts with y or Y.
// EOF without input counts as a negative answer. Canceling ctx while
// waiting returns a canceled error.
func (c *Confirmer) Confirm(ctx context.Context, question string) (bool, error) {
	c.out.Prompt("%s [y/N]", question)
	c.once.Do(c.readLines)

	var a answer
	select {
	case <-ctx.Done():
		c.out.Println("")
		return false, doerrors.Canceled(ctx.Err())
	case got, ok := <-c.answers:
		if !ok {
			got = answer{err: io.EOF}
		}
		a = got
	}

	if a.err != nil && !errors.Is(a.err, io.EOF) {
		return false, fmt.Errorf("failed to read answer: %w", a.err)
	}
	if errors.Is(a.err, io.EOF) && a.line == "" {
		// Keep the terminal tidy when stdin is closed.
		c.out.Println("")
	}
	return Affirmative(a.line), nil
}

// Affirmative reports whether answer's first character is y or Y.
func Affirmative(answer string) bool {
	return strings.HasPrefix(answer, "y") || strings.HasPrefix(answer, "Y")
}
