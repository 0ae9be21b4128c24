package cli

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/eduzap/eduzap/application/filter"
	"github.com/eduzap/eduzap/application/listing"
	"github.com/eduzap/eduzap/constant"
	"github.com/eduzap/eduzap/model"
	"github.com/eduzap/eduzap/thirdparty/rabbitmq"
	"github.com/eduzap/eduzap/utils/logger"
	"go.uber.org/zap"
)

const browseHelp = `commands:
  search TEXT   filter by title (applied after typing pauses)
  clear         clear the search
  sort          toggle ascending/descending
  next, prev    change page
  page N        jump to page N
  del ID        ask to delete a request
  yes, no       confirm or cancel the pending delete
  dismiss       hide the delete error
  refresh       reload the current page
  quit          leave
`

// Session is one interactive browse screen. Filter changes made by a
// command are loaded once the command finishes; changes that arrive from
// timers or events are loaded immediately.
type Session struct {
	cli     *CLI
	ctx     context.Context
	filters *filter.Controller
	list    *listing.Controller

	mu    sync.Mutex
	busy  bool
	dirty bool
}

func (c *CLI) NewSession(ctx context.Context) *Session {
	s := &Session{cli: c, ctx: ctx}
	s.filters = c.newFilters(filter.WithOnChange(func(model.ListParams) { s.changed() }))
	s.list = listing.New(c.remote, s.filters, listing.WithNotifier(c.notifier))
	return s
}

// Browse runs a session over the lines read from in.
func (c *CLI) Browse(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s := c.NewSession(ctx)
	defer s.Close()

	if c.events != nil {
		if err := c.events.Start(ctx, s.onEvent); err != nil {
			logger.Warn("[Browse] live updates unavailable", zap.String("error", err.Error()))
		}
	}

	c.printf("%s", browseHelp)
	s.reload()

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if !s.Exec(sc.Text()) {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return sc.Err()
}

// Exec runs one command line and reports whether the session continues.
func (s *Session) Exec(line string) bool {
	s.mu.Lock()
	s.busy = true
	s.mu.Unlock()

	cont, show := s.exec(strings.TrimSpace(line))

	s.mu.Lock()
	s.busy = false
	dirty := s.dirty
	s.dirty = false
	s.mu.Unlock()

	if dirty {
		s.reload()
	} else if show {
		s.cli.render(s.list.View())
	}
	return cont
}

func (s *Session) exec(line string) (cont, show bool) {
	cmd, arg := line, ""
	if i := strings.IndexByte(line, ' '); i >= 0 {
		cmd, arg = line[:i], strings.TrimSpace(line[i+1:])
	}

	switch strings.ToLower(cmd) {
	case "":
		return true, false
	case "quit", "exit", "q":
		return false, false
	case "help", "?":
		s.cli.printf("%s", browseHelp)
	case "search", "s", "/":
		s.filters.SetSearch(arg)
	case "clear":
		s.filters.ClearSearch()
	case "sort":
		s.filters.ToggleSort()
	case "next", "n":
		if !s.list.NextPage() {
			s.cli.printf("Already on the last page\n")
		}
	case "prev", "p":
		if !s.list.PrevPage() {
			s.cli.printf("Already on the first page\n")
		}
	case "page":
		n, err := strconv.Atoi(arg)
		if err != nil || !s.list.GoToPage(n) {
			s.cli.printf("No page %s\n", arg)
		}
	case "del", "delete":
		if arg == "" {
			s.cli.printf("usage: del ID\n")
			return true, false
		}
		s.list.RequestDelete(arg)
		return true, true
	case "yes", "y":
		if s.list.Pending() == "" {
			s.cli.printf("Nothing to delete\n")
			return true, false
		}
		_ = s.list.ConfirmDelete(s.ctx)
		return true, true
	case "no":
		s.list.CancelDelete()
		return true, true
	case "dismiss":
		s.list.DismissDeleteError()
		return true, true
	case "refresh", "r":
		_ = s.list.Refresh(s.ctx)
		return true, true
	default:
		s.cli.printf("Unknown command %q, type help\n", cmd)
	}
	return true, false
}

func (s *Session) changed() {
	s.mu.Lock()
	if s.busy {
		s.dirty = true
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()
	s.reload()
}

func (s *Session) onEvent(msg rabbitmq.RequestEventMessage) {
	s.cli.noticeForEvent(msg)
	s.cli.remote.Invalidate(constant.RequestsQueryPrefix)
	s.changed()
}

func (s *Session) reload() {
	_ = s.list.Load(s.ctx)
	s.cli.render(s.list.View())
}

// View exposes the current screen state.
func (s *Session) View() listing.View {
	return s.list.View()
}

func (s *Session) Close() {
	s.filters.Close()
}
