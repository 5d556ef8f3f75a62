package notify

import (
	"sync"
	"time"

	"github.com/eduard-zxc/auctionfront/internal/shared/logger"
	"go.uber.org/zap"
)

var log = logger.GetLogger()

// Level classifies a notice for rendering
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notice is a transient, dismissible user-facing message. Nothing reported
// here is fatal; every notice is scoped to the interaction that raised it.
type Notice struct {
	Level   Level
	Message string
	At      time.Time
}

// Center collects notices and fans them out to subscribed renderers
type Center struct {
	mu      sync.Mutex
	notices []Notice
	sinks   []func(Notice)
}

func NewCenter() *Center {
	return &Center{}
}

// Subscribe registers a renderer called for every subsequent notice
func (c *Center) Subscribe(fn func(Notice)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sinks = append(c.sinks, fn)
}

// Notify records a notice and delivers it to subscribers
func (c *Center) Notify(level Level, message string) {
	n := Notice{Level: level, Message: message, At: time.Now()}

	c.mu.Lock()
	c.notices = append(c.notices, n)
	sinks := append(([]func(Notice))(nil), c.sinks...)
	c.mu.Unlock()

	log.Debug("notice raised", zap.String("level", string(level)), zap.String("message", message))
	for _, fn := range sinks {
		fn(n)
	}
}

// Pending returns the undismissed notices in arrival order
func (c *Center) Pending() []Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Notice(nil), c.notices...)
}

// Dismiss drops every pending notice
func (c *Center) Dismiss() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notices = nil
}
