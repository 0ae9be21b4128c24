// Package filter owns the search, sort and page state that parameterizes the
// request list query.
package filter

import (
	"strings"
	"sync"
	"time"

	"github.com/eduzap/eduzap/constant"
	"github.com/eduzap/eduzap/model"
	"github.com/eduzap/eduzap/utils/debounce"
	"github.com/eduzap/eduzap/utils/logger"
	"go.uber.org/zap"
)

// State is a read-only snapshot of the controller.
type State struct {
	Draft      string
	Search     string
	SortOrder  model.SortOrder
	Page       int
	PageSize   int
	TotalCount int64
	TotalPages int
	CanPrev    bool
	CanNext    bool
	Generation uint64
}

type Controller struct {
	mu         sync.Mutex
	pageSize   int
	draft      string
	search     string
	sortOrder  model.SortOrder
	page       int
	totalCount int64
	generation uint64
	onChange   func(model.ListParams)

	debouncer *debounce.Debouncer
}

type Option func(*options)

type options struct {
	pageSize int
	delay    time.Duration
	after    debounce.AfterFunc
	onChange func(model.ListParams)
}

func WithPageSize(n int) Option {
	return func(o *options) { o.pageSize = n }
}

// WithScheduler replaces the timer used to debounce search input.
func WithScheduler(after debounce.AfterFunc) Option {
	return func(o *options) { o.after = after }
}

func WithDebounce(d time.Duration) Option {
	return func(o *options) { o.delay = d }
}

// WithOnChange registers a callback run after every committed change. It is
// called without the controller lock held.
func WithOnChange(fn func(model.ListParams)) Option {
	return func(o *options) { o.onChange = fn }
}

func New(opts ...Option) *Controller {
	o := options{pageSize: constant.DefaultPageSize, delay: constant.SearchDebounce}
	for _, opt := range opts {
		opt(&o)
	}
	if o.pageSize <= 0 {
		o.pageSize = constant.DefaultPageSize
	}
	return &Controller{
		pageSize:  o.pageSize,
		sortOrder: model.SortAsc,
		page:      1,
		onChange:  o.onChange,
		debouncer: debounce.New(o.delay, o.after),
	}
}

// SetOnChange replaces the change callback.
func (c *Controller) SetOnChange(fn func(model.ListParams)) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// SetSearch records typed text. Non-empty text is committed once input has
// been quiet for the debounce period; empty text commits at once.
// Whitespace-only text is never committed.
func (c *Controller) SetSearch(text string) {
	c.mu.Lock()
	c.draft = text
	c.mu.Unlock()

	if text == "" {
		c.debouncer.Cancel()
		c.commitSearch("")
		return
	}
	if strings.TrimSpace(text) == "" {
		c.debouncer.Cancel()
		return
	}
	c.debouncer.Trigger(func() { c.commitSearch(text) })
}

// SubmitSearch commits text at once, skipping the debounce.
func (c *Controller) SubmitSearch(text string) {
	c.mu.Lock()
	c.draft = text
	c.mu.Unlock()
	c.debouncer.Cancel()
	if text != "" && strings.TrimSpace(text) == "" {
		return
	}
	c.commitSearch(text)
}

// ClearSearch empties the search immediately.
func (c *Controller) ClearSearch() {
	c.mu.Lock()
	c.draft = ""
	c.mu.Unlock()
	c.debouncer.Cancel()
	c.commitSearch("")
}

// ToggleSort flips the order and returns to the first page, since a new
// order moves items across page boundaries.
func (c *Controller) ToggleSort() model.SortOrder {
	c.mu.Lock()
	order := c.sortOrder.Toggle()
	c.mu.Unlock()
	c.SetSortOrder(order)
	return order
}

func (c *Controller) SetSortOrder(order model.SortOrder) {
	if !order.Valid() {
		return
	}
	c.mu.Lock()
	if order == c.sortOrder {
		c.mu.Unlock()
		return
	}
	c.sortOrder = order
	c.page = 1
	params := c.bumpLocked()
	fn := c.onChange
	c.mu.Unlock()
	notify(fn, params)
}

// SetPage moves to p when it lies within [1, TotalPages] and reports whether
// it did.
func (c *Controller) SetPage(p int) bool {
	c.mu.Lock()
	if p < 1 || p > c.totalPagesLocked() || p == c.page {
		c.mu.Unlock()
		return false
	}
	c.page = p
	params := c.bumpLocked()
	fn := c.onChange
	c.mu.Unlock()
	notify(fn, params)
	return true
}

func (c *Controller) NextPage() bool {
	return c.SetPage(c.currentPage() + 1)
}

func (c *Controller) PrevPage() bool {
	return c.SetPage(c.currentPage() - 1)
}

// ResetPage returns to page 1 unconditionally, e.g. after the list shrank.
func (c *Controller) ResetPage() {
	c.mu.Lock()
	if c.page == 1 {
		c.mu.Unlock()
		return
	}
	c.page = 1
	params := c.bumpLocked()
	fn := c.onChange
	c.mu.Unlock()
	notify(fn, params)
}

// Snapshot returns the active query parameters and their generation.
func (c *Controller) Snapshot() (model.ListParams, uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paramsLocked(), c.generation
}

func (c *Controller) Params() model.ListParams {
	p, _ := c.Snapshot()
	return p
}

func (c *Controller) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// ApplyTotalCount records the server-reported total for the query issued at
// generation gen. Results for an older generation are ignored.
func (c *Controller) ApplyTotalCount(gen uint64, total int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		logger.Debug("[ApplyTotalCount] stale generation", zap.Uint64("gen", gen), zap.Uint64("current", c.generation))
		return false
	}
	if total < 0 {
		total = 0
	}
	c.totalCount = total
	return true
}

func (c *Controller) TotalPages() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalPagesLocked()
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	pages := c.totalPagesLocked()
	return State{
		Draft:      c.draft,
		Search:     c.search,
		SortOrder:  c.sortOrder,
		Page:       c.page,
		PageSize:   c.pageSize,
		TotalCount: c.totalCount,
		TotalPages: pages,
		CanPrev:    pages > 1 && c.page > 1,
		CanNext:    pages > 1 && c.page < pages,
		Generation: c.generation,
	}
}

// Close cancels any pending search commit.
func (c *Controller) Close() {
	c.debouncer.Stop()
}

func (c *Controller) commitSearch(text string) {
	c.mu.Lock()
	c.search = text
	c.page = 1
	params := c.bumpLocked()
	fn := c.onChange
	c.mu.Unlock()
	logger.Debug("[commitSearch] search committed", zap.String("search", text))
	notify(fn, params)
}

func (c *Controller) currentPage() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

func (c *Controller) bumpLocked() model.ListParams {
	c.generation++
	return c.paramsLocked()
}

func (c *Controller) paramsLocked() model.ListParams {
	return model.ListParams{
		Search:    c.search,
		SortOrder: c.sortOrder,
		Page:      c.page,
		Limit:     c.pageSize,
	}
}

func (c *Controller) totalPagesLocked() int {
	if c.totalCount <= 0 {
		return 0
	}
	return int((c.totalCount + int64(c.pageSize) - 1) / int64(c.pageSize))
}

func notify(fn func(model.ListParams), params model.ListParams) {
	if fn != nil {
		fn(params)
	}
}
