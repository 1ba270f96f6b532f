// Package notify keeps transient, dismissible notifications that expire on
// their own after a TTL.
package notify

import (
	"sync"
	"time"

	"github.com/kailas-cloud/searchdemo/internal/metrics"
)

// DefaultTTL is how long a notice stays up unless dismissed.
const DefaultTTL = 5 * time.Second

// Severity is the notice level.
type Severity string

// Severity constants.
const (
	Info    Severity = "info"
	Warning Severity = "warning"
	Error   Severity = "error"
)

// Class returns the alert style class for the severity.
func (s Severity) Class() string {
	if s == Error {
		return "alert-danger"
	}
	return "alert-" + string(s)
}

// Notice is one notification.
type Notice struct {
	ID       uint64
	Severity Severity
	Message  string
	PostedAt time.Time
}

// Listener is told when notices appear and disappear.
// Callbacks run with the Center locked and must not call back into it.
type Listener interface {
	NoticeShown(n Notice)
	NoticeHidden(n Notice)
}

// Center owns the set of visible notices.
type Center struct {
	mu       sync.Mutex
	ttl      time.Duration
	listener Listener
	nextID   uint64
	active   []Notice
	timers   map[uint64]*time.Timer
	closed   bool
}

// New creates a Center. ttl <= 0 means DefaultTTL; listener can be nil.
func New(ttl time.Duration, listener Listener) *Center {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Center{
		ttl:      ttl,
		listener: listener,
		timers:   make(map[uint64]*time.Timer),
	}
}

// Post shows a notice and schedules its expiry.
func (c *Center) Post(sev Severity, message string) Notice {
	metrics.NotificationsTotal.WithLabelValues(string(sev)).Inc()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	n := Notice{ID: c.nextID, Severity: sev, Message: message, PostedAt: time.Now()}
	if c.closed {
		return n
	}

	c.active = append(c.active, n)
	id := n.ID
	c.timers[id] = time.AfterFunc(c.ttl, func() { c.remove(id) })

	if c.listener != nil {
		c.listener.NoticeShown(n)
	}
	return n
}

// Dismiss removes a notice before it expires. Reports whether it was visible.
func (c *Center) Dismiss(id uint64) bool {
	return c.remove(id)
}

// Active returns the visible notices, oldest first.
func (c *Center) Active() []Notice {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Notice, len(c.active))
	copy(out, c.active)
	return out
}

// Close stops all expiry timers and hides every visible notice.
func (c *Center) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	for id, t := range c.timers {
		t.Stop()
		delete(c.timers, id)
	}
	for _, n := range c.active {
		if c.listener != nil {
			c.listener.NoticeHidden(n)
		}
	}
	c.active = nil
}

func (c *Center) remove(id uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := -1
	for i := range c.active {
		if c.active[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	n := c.active[idx]
	c.active = append(c.active[:idx], c.active[idx+1:]...)
	if t, ok := c.timers[id]; ok {
		t.Stop()
		delete(c.timers, id)
	}
	if c.listener != nil {
		c.listener.NoticeHidden(n)
	}
	return true
}
