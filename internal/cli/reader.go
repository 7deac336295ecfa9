package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

// ErrInputCancelled is returned when input is canceled by context.
var ErrInputCancelled = errors.New("input canceled")

// Reader provides context-aware line reading that can be interrupted.
type Reader struct {
	reader      *bufio.Reader
	readingLock sync.Mutex
}

// NewReader creates a new context-aware reader.
func NewReader(r io.Reader) *Reader {
	if r == nil {
		panic("reader cannot be nil")
	}
	return &Reader{reader: bufio.NewReader(r)}
}

// ReadLine reads one line of input, trimmed of surrounding whitespace,
// respecting context cancellation. io.EOF is passed through so menu loops
// can treat end of input as exit.
func (r *Reader) ReadLine(ctx context.Context) (string, error) {
	type result struct {
		err   error
		value string
	}
	resultCh := make(chan result, 1)

	go func() {
		r.readingLock.Lock()
		defer r.readingLock.Unlock()

		value, err := r.reader.ReadString('\n')
		resultCh <- result{value: value, err: err}
	}()

	select {
	case <-ctx.Done():
		// The reading goroutine keeps running until its Read returns, but
		// the caller is released immediately.
		return "", ErrInputCancelled
	case res := <-resultCh:
		line := strings.TrimSpace(res.value)
		if res.err != nil {
			if errors.Is(res.err, io.EOF) && line != "" {
				// Final unterminated line still counts.
				return line, nil
			}
			return "", res.err
		}
		return line, nil
	}
}
