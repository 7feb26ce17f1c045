package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/storyspoiler/api-tests/test/pkg/auth"
)

// httpLog receives the client's debug output. Each line is redacted,
// written to the output of the running step and forwarded to slog.
type httpLog struct {
	mu  sync.Mutex
	log *slog.Logger
	out io.Writer
}

// capture directs output to w and returns the previous writer.
func (h *httpLog) capture(w io.Writer) io.Writer {
	h.mu.Lock()
	defer h.mu.Unlock()
	prev := h.out
	h.out = w
	return prev
}

func (h *httpLog) Errorf(format string, v ...interface{}) {
	h.output(slog.LevelError, format, v...)
}

func (h *httpLog) Warnf(format string, v ...interface{}) {
	h.output(slog.LevelWarn, format, v...)
}

func (h *httpLog) Debugf(format string, v ...interface{}) {
	h.output(slog.LevelDebug, format, v...)
}

func (h *httpLog) output(lvl slog.Level, format string, v ...interface{}) {
	msg := strings.TrimRight(auth.Redact(fmt.Sprintf(format, v...)), "\n")
	h.mu.Lock()
	out := h.out
	h.mu.Unlock()
	if out != nil {
		fmt.Fprintln(out, msg)
	}
	h.log.Log(context.Background(), lvl, "http", "output", msg)
}
