package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kailas-cloud/searchdemo/internal/metrics"
)

type recordingListener struct {
	mu     sync.Mutex
	shown  []Notice
	hidden []Notice
}

func (l *recordingListener) NoticeShown(n Notice) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.shown = append(l.shown, n)
}

func (l *recordingListener) NoticeHidden(n Notice) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.hidden = append(l.hidden, n)
}

func (l *recordingListener) counts() (int, int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.shown), len(l.hidden)
}

func TestPost_ShowsAndCounts(t *testing.T) {
	l := &recordingListener{}
	c := New(time.Hour, l)
	defer c.Close()

	before := testutil.ToFloat64(metrics.NotificationsTotal.WithLabelValues("warning"))
	n := c.Post(Warning, "Please enter a search query")

	if n.ID == 0 || n.Severity != Warning || n.Message != "Please enter a search query" {
		t.Errorf("unexpected notice: %+v", n)
	}
	if active := c.Active(); len(active) != 1 || active[0].ID != n.ID {
		t.Errorf("Active() = %+v", active)
	}
	if shown, _ := l.counts(); shown != 1 {
		t.Errorf("listener shown = %d, want 1", shown)
	}
	if got := testutil.ToFloat64(metrics.NotificationsTotal.WithLabelValues("warning")); got != before+1 {
		t.Errorf("notifications_total = %f, want %f", got, before+1)
	}
}

func TestPost_MultipleCoexist(t *testing.T) {
	c := New(time.Hour, nil)
	defer c.Close()

	a := c.Post(Info, "a")
	b := c.Post(Error, "b")
	if a.ID == b.ID {
		t.Fatal("notice ids must be unique")
	}
	if len(c.Active()) != 2 {
		t.Fatalf("Active() len = %d, want 2", len(c.Active()))
	}

	if !c.Dismiss(a.ID) {
		t.Fatal("Dismiss(a) = false")
	}
	active := c.Active()
	if len(active) != 1 || active[0].ID != b.ID {
		t.Errorf("after dismiss Active() = %+v", active)
	}
	if c.Dismiss(a.ID) {
		t.Error("second Dismiss of the same notice should report false")
	}
}

func TestPost_Expires(t *testing.T) {
	l := &recordingListener{}
	c := New(20*time.Millisecond, l)
	defer c.Close()

	c.Post(Error, "Search failed. Please try again.")

	deadline := time.Now().Add(2 * time.Second)
	for len(c.Active()) > 0 {
		if time.Now().After(deadline) {
			t.Fatal("notice did not expire")
		}
		time.Sleep(5 * time.Millisecond)
	}
	if _, hidden := l.counts(); hidden != 1 {
		t.Errorf("listener hidden = %d, want 1", hidden)
	}
}

func TestDismiss_UnknownID(t *testing.T) {
	c := New(0, nil)
	defer c.Close()
	if c.Dismiss(42) {
		t.Error("Dismiss of unknown id should report false")
	}
}

func TestClose_HidesAll(t *testing.T) {
	l := &recordingListener{}
	c := New(time.Hour, l)
	c.Post(Info, "a")
	c.Post(Info, "b")

	c.Close()
	c.Close()

	if len(c.Active()) != 0 {
		t.Error("Active() should be empty after Close")
	}
	if _, hidden := l.counts(); hidden != 2 {
		t.Errorf("listener hidden = %d, want 2", hidden)
	}

	c.Post(Info, "after close")
	if len(c.Active()) != 0 {
		t.Error("Post after Close must not show anything")
	}
}

func TestSeverity_Class(t *testing.T) {
	tests := map[Severity]string{
		Info:    "alert-info",
		Warning: "alert-warning",
		Error:   "alert-danger",
	}
	for s, want := range tests {
		if got := s.Class(); got != want {
			t.Errorf("%q.Class() = %q, want %q", s, got, want)
		}
	}
}

func TestNew_DefaultTTL(t *testing.T) {
	c := New(0, nil)
	if c.ttl != DefaultTTL {
		t.Errorf("ttl = %v, want %v", c.ttl, DefaultTTL)
	}
}
