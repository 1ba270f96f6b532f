package terminal

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/searchdemo/internal/domain/search/mode"
	"github.com/kailas-cloud/searchdemo/internal/ui"
	"github.com/kailas-cloud/searchdemo/internal/ui/event"
	"github.com/kailas-cloud/searchdemo/internal/ui/notify"
	"github.com/kailas-cloud/searchdemo/internal/usecase/health"
)

const prompt = "search> "

const helpText = `Type a query and press Enter to search.
Commands:
  :mode            toggle keyword / vector search
  :keyword         switch to keyword search
  :vector          switch to vector search
  :examples        list example queries
  :try N           search example query N
  :notices         list visible notifications
  :dismiss N       dismiss notification N
  :health          check the backend again
  :help            show this help
  :quit            exit
`

// Client is the part of the search client the loop reads from.
type Client interface {
	Mode() mode.Mode
	CheckHealth(ctx context.Context) health.Report
	Notices() []notify.Notice
	Wait()
}

// Loop turns input lines into interaction events.
type Loop struct {
	in      io.Reader
	surface *Surface
	reg     *event.Registry
	client  Client
	logger  *zap.Logger

	// readerDone is closed when the input goroutine of the last Run exits.
	readerDone chan struct{}
}

// NewLoop creates a Loop. logger can be nil.
func NewLoop(in io.Reader, surface *Surface, reg *event.Registry, client Client, logger *zap.Logger) *Loop {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loop{in: in, surface: surface, reg: reg, client: client, logger: logger}
}

// Run reads lines until EOF, :quit or ctx is done. Outstanding searches are
// joined before it returns.
//
// A Read blocked on in cannot be interrupted: the input goroutine exits at
// the next line or EOF after Run returns. Close in to release it at once.
func (l *Loop) Run(ctx context.Context) error {
	lines := make(chan string)
	errc := make(chan error, 1)
	done := make(chan struct{})
	l.readerDone = make(chan struct{})

	go func() {
		defer close(l.readerDone)
		defer close(lines)
		sc := bufio.NewScanner(l.in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				errc <- nil
				return
			case <-done:
				errc <- nil
				return
			}
		}
		errc <- sc.Err()
	}()

	defer l.client.Wait()
	defer close(done)
	for {
		l.surface.Printf("%s", prompt)
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				l.surface.Printf("\n")
				return <-errc
			}
			if quit := l.handle(ctx, line); quit {
				return nil
			}
		}
	}
}

func (l *Loop) handle(ctx context.Context, line string) (quit bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, ":") {
		l.reg.Dispatch(ctx, event.Event{Name: event.InputChanged, Value: line})
		l.reg.Dispatch(ctx, event.Event{Name: event.KeyPressed, Key: event.KeyEnter})
		// Wait so results print before the next prompt.
		l.client.Wait()
		return false
	}

	cmd, arg, _ := strings.Cut(strings.TrimPrefix(line, ":"), " ")
	arg = strings.TrimSpace(arg)
	l.logger.Debug("command", zap.String("cmd", cmd), zap.String("arg", arg))

	switch cmd {
	case "q", "quit", "exit":
		return true
	case "mode":
		l.setMode(ctx, l.client.Mode().Toggle())
	case "keyword":
		l.setMode(ctx, mode.Keyword)
	case "vector":
		l.setMode(ctx, mode.Vector)
	case "examples":
		for i, q := range ui.Examples {
			l.surface.Printf("  %2d. %s\n", i+1, q)
		}
	case "try":
		n, err := strconv.Atoi(arg)
		q, ok := ui.Example(n)
		if err != nil || !ok {
			l.surface.Printf("usage: :try N (1-%d)\n", len(ui.Examples))
			return false
		}
		l.reg.Dispatch(ctx, event.Event{Name: event.ExampleClicked, Value: q})
		l.client.Wait()
	case "notices":
		for _, n := range l.client.Notices() {
			l.surface.Printf("  #%d [%s] %s\n", n.ID, n.Severity, n.Message)
		}
	case "dismiss":
		id, err := strconv.ParseUint(arg, 10, 64)
		if err != nil {
			l.surface.Printf("usage: :dismiss N\n")
			return false
		}
		l.reg.Dispatch(ctx, event.Event{Name: event.NoticeDismissed, ID: id})
	case "health":
		l.client.CheckHealth(ctx)
	case "help", "h", "?":
		l.surface.Printf("%s", helpText)
	default:
		l.surface.Printf("unknown command %q, try :help\n", cmd)
	}
	return false
}

func (l *Loop) setMode(ctx context.Context, m mode.Mode) {
	l.reg.Dispatch(ctx, event.Event{Name: event.ModeChanged, Checked: m == mode.Vector})
}
