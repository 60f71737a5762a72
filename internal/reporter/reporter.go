// Package reporter provides Reporter implementations for core services.
//
// Services never check whether a UI is present; the caller injects either
// the interactive Stream reporter or the headless Nop reporter.
package reporter

import (
	"fmt"
	"io"
	"sync"

	"github.com/kotae-labs/kotae-cli/internal/core/ports/driven"
)

// Ensure both implementations satisfy the port.
var (
	_ driven.Reporter = (*Stream)(nil)
	_ driven.Reporter = Nop{}
)

// Stream is the interactive reporter: it writes status lines to a
// writer, typically stderr.
type Stream struct {
	mu  sync.Mutex
	out io.Writer
}

// NewStream creates a reporter writing to out.
func NewStream(out io.Writer) *Stream {
	return &Stream{out: out}
}

// Infof reports normal progress.
func (s *Stream) Infof(format string, args ...any) {
	s.write("", format, args...)
}

// Warnf reports recoverable conditions.
func (s *Stream) Warnf(format string, args ...any) {
	s.write("warning: ", format, args...)
}

// Errorf reports failures that were handled locally.
func (s *Stream) Errorf(format string, args ...any) {
	s.write("error: ", format, args...)
}

func (s *Stream) write(prefix, format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, prefix+format+"\n", args...)
}

// Nop is the headless reporter: it discards everything.
type Nop struct{}

// Infof discards the message.
func (Nop) Infof(string, ...any) {}

// Warnf discards the message.
func (Nop) Warnf(string, ...any) {}

// Errorf discards the message.
func (Nop) Errorf(string, ...any) {}
