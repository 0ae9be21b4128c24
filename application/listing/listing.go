// Package listing drives the paginated request list: loading the current
// page, refreshing it and the two-step delete flow.
package listing

import (
	"context"
	"sync"

	"github.com/eduzap/eduzap/application/filter"
	"github.com/eduzap/eduzap/application/remote"
	"github.com/eduzap/eduzap/constant"
	"github.com/eduzap/eduzap/model"
	"github.com/eduzap/eduzap/utils/errors"
	"github.com/eduzap/eduzap/utils/logger"
	"github.com/eduzap/eduzap/utils/notify"
	"go.uber.org/zap"
)

// View is everything needed to render the list screen.
type View struct {
	Filters     filter.State
	Items       []model.Request
	Loading     bool
	Refreshing  bool
	ListError   string
	PendingID   string
	Deleting    bool
	DeleteError string
}

type Controller struct {
	remote   remote.RemoteState
	filters  *filter.Controller
	notifier notify.Notifier

	mu          sync.Mutex
	loadSeq     uint64
	items       []model.Request
	loading     bool
	refreshing  bool
	listErr     string
	pendingID   string
	deleting    bool
	deleteError string
}

type Option func(*Controller)

func WithNotifier(n notify.Notifier) Option {
	return func(c *Controller) { c.notifier = n }
}

// New binds a list controller to the filter state it reads its query from.
func New(rs remote.RemoteState, filters *filter.Controller, opts ...Option) *Controller {
	c := &Controller{
		remote:   rs,
		filters:  filters,
		notifier: notify.Discard,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load fetches the page for the current filters. A result that arrives after
// the filters moved on is discarded.
func (c *Controller) Load(ctx context.Context) error {
	return c.load(ctx, false)
}

// Refresh bypasses the cache for the current filters.
func (c *Controller) Refresh(ctx context.Context) error {
	return c.load(ctx, true)
}

func (c *Controller) load(ctx context.Context, refresh bool) error {
	params, gen := c.filters.Snapshot()

	c.mu.Lock()
	c.loadSeq++
	seq := c.loadSeq
	if refresh {
		c.refreshing = true
	} else {
		c.loading = true
	}
	// a retry replaces the old error with the loading state
	c.listErr = ""
	c.mu.Unlock()

	var (
		res *model.ListResponse
		err error
	)
	if refresh {
		res, err = c.remote.Refetch(ctx, params)
	} else {
		res, err = c.remote.Query(ctx, params)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// only the most recent load owns the in-flight flags
	if seq == c.loadSeq {
		c.loading = false
		c.refreshing = false
	}

	if c.filters.Generation() != gen || seq != c.loadSeq {
		logger.Debug("[Load] discarded result for superseded filters", zap.Uint64("gen", gen))
		return nil
	}
	if err != nil {
		logger.Error("[Load] err remote.Query", zap.String("error", err.Error()))
		c.listErr = errors.UserMessage(err)
		return err
	}

	c.listErr = ""
	c.items = nil
	var total int64
	if res != nil {
		c.items = res.Data
		if res.Meta != nil {
			total = res.Meta.TotalCount
		}
	}
	c.filters.ApplyTotalCount(gen, total)
	return nil
}

// RequestDelete marks id for deletion, replacing any earlier selection.
func (c *Controller) RequestDelete(id string) {
	if id == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.deleting {
		return
	}
	c.pendingID = id
}

func (c *Controller) CancelDelete() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.deleting {
		return
	}
	c.pendingID = ""
}

func (c *Controller) Pending() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pendingID
}

// ConfirmDelete deletes the pending request. The selection is cleared
// whether or not the delete succeeds; on success the list returns to the
// first page and reloads.
func (c *Controller) ConfirmDelete(ctx context.Context) error {
	c.mu.Lock()
	if c.pendingID == "" || c.deleting {
		c.mu.Unlock()
		return nil
	}
	id := c.pendingID
	c.deleting = true
	c.deleteError = ""
	c.mu.Unlock()

	_, err := c.remote.Delete(ctx, id)

	c.mu.Lock()
	c.deleting = false
	c.pendingID = ""
	if err != nil {
		c.deleteError = constant.MsgDeleteFailed
		c.mu.Unlock()
		logger.Error("[ConfirmDelete] err remote.Delete", zap.String("id", id), zap.String("error", err.Error()))
		return err
	}
	c.mu.Unlock()

	c.notifier.Notify(notify.Notice{Level: notify.LevelSuccess, Title: "Deleted", Message: constant.MsgDeleteSuccess})
	c.filters.ResetPage()
	return c.Load(ctx)
}

func (c *Controller) DeleteError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deleteError
}

func (c *Controller) DismissDeleteError() {
	c.mu.Lock()
	c.deleteError = ""
	c.mu.Unlock()
}

// GoToPage moves to page p and drops any pending delete.
func (c *Controller) GoToPage(p int) bool {
	return c.navigate(func() bool { return c.filters.SetPage(p) })
}

func (c *Controller) NextPage() bool {
	return c.navigate(c.filters.NextPage)
}

func (c *Controller) PrevPage() bool {
	return c.navigate(c.filters.PrevPage)
}

func (c *Controller) navigate(move func() bool) bool {
	if !move() {
		return false
	}
	c.mu.Lock()
	if !c.deleting {
		c.pendingID = ""
	}
	c.mu.Unlock()
	return true
}

func (c *Controller) Filters() *filter.Controller {
	return c.filters
}

func (c *Controller) View() View {
	fs := c.filters.State()
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]model.Request, len(c.items))
	copy(items, c.items)
	return View{
		Filters:     fs,
		Items:       items,
		Loading:     c.loading,
		Refreshing:  c.refreshing,
		ListError:   c.listErr,
		PendingID:   c.pendingID,
		Deleting:    c.deleting,
		DeleteError: c.deleteError,
	}
}
