// Package notify delivers toast and alert style feedback to the user.
package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/eduzap/eduzap/utils/logger"
	"go.uber.org/zap"
)

type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelDanger  Level = "danger"
)

type Notice struct {
	Level   Level
	Title   string
	Message string
}

type Notifier interface {
	Notify(n Notice)
}

// WriterNotifier prints notices as single lines and mirrors them to the log.
type WriterNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterNotifier(w io.Writer) *WriterNotifier {
	return &WriterNotifier{w: w}
}

func (n *WriterNotifier) Notify(notice Notice) {
	n.mu.Lock()
	defer n.mu.Unlock()

	line := notice.Title
	if notice.Message != "" {
		if line != "" {
			line += ": "
		}
		line += notice.Message
	}
	fmt.Fprintf(n.w, "%s %s\n", badge(notice.Level), line)

	logger.Debug("notice",
		zap.String("level", string(notice.Level)),
		zap.String("title", notice.Title),
		zap.String("message", notice.Message),
	)
}

func badge(l Level) string {
	switch l {
	case LevelSuccess:
		return "[ok]"
	case LevelWarning:
		return "[!]"
	case LevelDanger:
		return "[x]"
	default:
		return "[i]"
	}
}

// Discard drops every notice.
var Discard Notifier = discard{}

type discard struct{}

func (discard) Notify(Notice) {}
