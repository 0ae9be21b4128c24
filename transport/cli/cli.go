// Package cli is the terminal front end for the requests client.
package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/eduzap/eduzap/application/filter"
	"github.com/eduzap/eduzap/application/form"
	"github.com/eduzap/eduzap/application/listing"
	"github.com/eduzap/eduzap/application/remote"
	"github.com/eduzap/eduzap/constant"
	"github.com/eduzap/eduzap/model"
	"github.com/eduzap/eduzap/thirdparty/media"
	"github.com/eduzap/eduzap/thirdparty/rabbitmq"
	"github.com/eduzap/eduzap/utils/debounce"
	"github.com/eduzap/eduzap/utils/notify"
)

// ErrUsage is returned for unknown subcommands or bad flags.
var ErrUsage = errors.New("usage: eduzap <list|create|delete|browse|watch> [flags]")

// EventSource streams request change events. *rabbitmq.Consumer satisfies it.
type EventSource interface {
	Start(ctx context.Context, handle rabbitmq.Handler) error
}

type CLI struct {
	remote   remote.RemoteState
	out      io.Writer
	notifier notify.Notifier
	events   EventSource
	pageSize int
	after    debounce.AfterFunc
	now      func() time.Time

	outMu sync.Mutex
}

type Option func(*CLI)

func WithNotifier(n notify.Notifier) Option {
	return func(c *CLI) { c.notifier = n }
}

func WithEvents(src EventSource) Option {
	return func(c *CLI) { c.events = src }
}

func WithPageSize(n int) Option {
	return func(c *CLI) { c.pageSize = n }
}

// WithScheduler replaces the timers behind search debounce and the success flag.
func WithScheduler(after debounce.AfterFunc) Option {
	return func(c *CLI) { c.after = after }
}

func WithClock(now func() time.Time) Option {
	return func(c *CLI) { c.now = now }
}

func New(rs remote.RemoteState, out io.Writer, opts ...Option) *CLI {
	c := &CLI{
		remote:   rs,
		out:      &lockedWriter{w: out},
		pageSize: constant.DefaultPageSize,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.notifier == nil {
		c.notifier = notify.NewWriterNotifier(c.out)
	}
	return c
}

// Run dispatches a subcommand. in is read by interactive commands.
func (c *CLI) Run(ctx context.Context, args []string, in io.Reader) error {
	if len(args) == 0 {
		return ErrUsage
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "list":
		fs := flag.NewFlagSet("list", flag.ContinueOnError)
		fs.SetOutput(c.out)
		search := fs.String("search", "", "title search")
		sort := fs.String("sort", string(model.SortAsc), "sort order: asc or desc")
		page := fs.Int("page", 1, "page number")
		if err := fs.Parse(rest); err != nil {
			return ErrUsage
		}
		return c.List(ctx, *search, model.SortOrder(*sort), *page)
	case "create":
		fs := flag.NewFlagSet("create", flag.ContinueOnError)
		fs.SetOutput(c.out)
		name := fs.String("name", "", "requester name")
		phone := fs.String("phone", "", "10-digit phone number")
		title := fs.String("title", "", "requested title")
		image := fs.String("image", "", "path to an image to attach")
		if err := fs.Parse(rest); err != nil {
			return ErrUsage
		}
		return c.Create(ctx, model.RequestInput{Name: *name, Phone: *phone, Title: *title}, *image)
	case "delete":
		fs := flag.NewFlagSet("delete", flag.ContinueOnError)
		fs.SetOutput(c.out)
		id := fs.String("id", "", "request id")
		yes := fs.Bool("yes", false, "skip the confirmation prompt")
		if err := fs.Parse(rest); err != nil || *id == "" {
			return ErrUsage
		}
		return c.Delete(ctx, *id, *yes, in)
	case "browse":
		return c.Browse(ctx, in)
	case "watch":
		return c.Watch(ctx)
	default:
		return ErrUsage
	}
}

func (c *CLI) newFilters(opts ...filter.Option) *filter.Controller {
	return filter.New(append([]filter.Option{
		filter.WithPageSize(c.pageSize),
		filter.WithScheduler(c.after),
	}, opts...)...)
}

// List prints one page. Out-of-range pages are ignored.
func (c *CLI) List(ctx context.Context, search string, order model.SortOrder, page int) error {
	fc := c.newFilters()
	defer fc.Close()
	fc.SetSortOrder(order)
	if search != "" {
		fc.SubmitSearch(search)
	}

	lc := listing.New(c.remote, fc, listing.WithNotifier(c.notifier))
	if err := lc.Load(ctx); err != nil {
		c.render(lc.View())
		return err
	}
	if page > 1 && lc.GoToPage(page) {
		if err := lc.Load(ctx); err != nil {
			c.render(lc.View())
			return err
		}
	}
	c.render(lc.View())
	return nil
}

// Create submits one request through the form controller.
func (c *CLI) Create(ctx context.Context, input model.RequestInput, imagePath string) error {
	var created *model.Request
	fc := form.New(c.remote,
		form.WithPicker(media.NewFilePicker(imagePath)),
		form.WithNotifier(c.notifier),
		form.WithScheduler(c.after),
		form.WithOnSuccess(func(r *model.Request) { created = r }),
	)
	defer fc.Close()

	fc.SetField(model.FieldName, input.Name)
	fc.SetField(model.FieldPhone, input.Phone)
	fc.SetField(model.FieldTitle, input.Title)
	if imagePath != "" {
		if err := fc.PickImage(ctx); err != nil {
			c.printErrors(fc.State())
			return err
		}
	}

	if err := fc.Submit(ctx); err != nil {
		c.printf("Could not submit request:\n")
		c.printErrors(fc.State())
		return err
	}
	if created != nil {
		c.printf("Created %s\n", created.ID)
	}
	return nil
}

// Delete removes a request, asking on in unless confirmed is set.
func (c *CLI) Delete(ctx context.Context, id string, confirmed bool, in io.Reader) error {
	lc := listing.New(c.remote, c.newFilters(), listing.WithNotifier(c.notifier))
	defer lc.Filters().Close()

	lc.RequestDelete(id)
	if !confirmed {
		c.printf("Delete request %s? (yes/no) ", id)
		answer := ""
		if sc := bufio.NewScanner(in); sc.Scan() {
			answer = strings.TrimSpace(sc.Text())
		}
		if !isYes(answer) {
			lc.CancelDelete()
			c.printf("Cancelled\n")
			return nil
		}
	}
	if err := lc.ConfirmDelete(ctx); err != nil {
		c.printf("Error: %s\n", lc.DeleteError())
		return err
	}
	return nil
}

// Watch prints request events until ctx is done.
func (c *CLI) Watch(ctx context.Context) error {
	if c.events == nil {
		return errors.New("event stream not configured")
	}
	if err := c.events.Start(ctx, c.noticeForEvent); err != nil {
		return err
	}
	<-ctx.Done()
	return nil
}

func (c *CLI) noticeForEvent(msg rabbitmq.RequestEventMessage) {
	n := notify.Notice{Level: notify.LevelInfo, Message: msg.Title}
	switch msg.Event {
	case constant.EventRequestCreated:
		n.Title = "New request"
	case constant.EventRequestDeleted:
		n.Title = "Request removed"
	default:
		n.Title = msg.Event
	}
	c.notifier.Notify(n)
}

func (c *CLI) render(v listing.View) {
	c.outMu.Lock()
	defer c.outMu.Unlock()
	RenderList(c.out, v, c.now())
}

func (c *CLI) printErrors(st form.State) {
	c.outMu.Lock()
	defer c.outMu.Unlock()
	RenderFormErrors(c.out, st)
}

func (c *CLI) printf(format string, args ...interface{}) {
	c.outMu.Lock()
	defer c.outMu.Unlock()
	fmt.Fprintf(c.out, format, args...)
}

// lockedWriter serializes writes from renders, notices and prompts.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

func isYes(s string) bool {
	switch strings.ToLower(s) {
	case "y", "yes":
		return true
	}
	return false
}
