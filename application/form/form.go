// Package form drives the request submission form: field edits, validation,
// image attachment and the create call.
package form

import (
	"context"
	"sync"

	"github.com/eduzap/eduzap/application/remote"
	"github.com/eduzap/eduzap/application/validation"
	"github.com/eduzap/eduzap/constant"
	"github.com/eduzap/eduzap/model"
	"github.com/eduzap/eduzap/utils/debounce"
	"github.com/eduzap/eduzap/utils/errors"
	"github.com/eduzap/eduzap/utils/logger"
	"github.com/eduzap/eduzap/utils/notify"
	"go.uber.org/zap"
)

// ImagePicker is the platform media library: a permission gate plus a
// selection surface. Pick returns nil when the user cancels.
type ImagePicker interface {
	RequestPermission(ctx context.Context) (bool, error)
	Pick(ctx context.Context) (*model.ImageAttachment, error)
}

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseValidating
	PhaseSubmitting
)

func (p Phase) String() string {
	switch p {
	case PhaseValidating:
		return "validating"
	case PhaseSubmitting:
		return "submitting"
	default:
		return "idle"
	}
}

// Outcome is the result of the last submission attempt.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeSuccess
	OutcomeFailed
)

// State is a snapshot of the form for rendering.
type State struct {
	Input      model.RequestInput
	Image      *model.ImageAttachment
	Errors     model.FieldErrors
	Focus      string
	Phase      Phase
	Outcome    Outcome
	Submitting bool
	Success    bool
}

type Controller struct {
	remote    remote.RemoteState
	picker    ImagePicker
	notifier  notify.Notifier
	onSuccess func(*model.Request)

	mu         sync.Mutex
	input      model.RequestInput
	image      *model.ImageAttachment
	errs       model.FieldErrors
	focus      string
	phase      Phase
	outcome    Outcome
	submitting bool
	success    bool

	successTimer *debounce.Debouncer
}

type Option func(*Controller)

func WithPicker(p ImagePicker) Option {
	return func(c *Controller) { c.picker = p }
}

func WithNotifier(n notify.Notifier) Option {
	return func(c *Controller) { c.notifier = n }
}

// WithOnSuccess registers a callback run after a request was created.
func WithOnSuccess(fn func(*model.Request)) Option {
	return func(c *Controller) { c.onSuccess = fn }
}

// WithScheduler replaces the timer that clears the success flag.
func WithScheduler(after debounce.AfterFunc) Option {
	return func(c *Controller) { c.successTimer = debounce.New(constant.SuccessFlashTime, after) }
}

func New(rs remote.RemoteState, opts ...Option) *Controller {
	c := &Controller{
		remote:       rs,
		notifier:     notify.Discard,
		errs:         model.FieldErrors{},
		successTimer: debounce.New(constant.SuccessFlashTime, nil),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetField updates one text field and clears its error. Edits are ignored
// while a submission is in flight.
func (c *Controller) SetField(field, value string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.submitting {
		return false
	}
	switch field {
	case model.FieldName:
		c.input.Name = value
	case model.FieldPhone:
		c.input.Phone = value
	case model.FieldTitle:
		c.input.Title = value
	default:
		return false
	}
	delete(c.errs, field)
	return true
}

// PickImage asks for media access and attaches the chosen image.
func (c *Controller) PickImage(ctx context.Context) error {
	if c.picker == nil {
		return errors.SetCustomError(constant.ErrPermissionDenied)
	}
	if c.isSubmitting() {
		return nil
	}

	granted, err := c.picker.RequestPermission(ctx)
	if err != nil {
		logger.Error("[PickImage] err picker.RequestPermission", zap.String("error", err.Error()))
		granted = false
	}
	if !granted {
		c.notifier.Notify(notify.Notice{
			Level:   notify.LevelWarning,
			Title:   "Permission required",
			Message: constant.ErrorTypeMessage[constant.ErrPermissionDenied],
		})
		return errors.SetCustomError(constant.ErrPermissionDenied)
	}

	img, err := c.picker.Pick(ctx)
	if err != nil {
		logger.Error("[PickImage] err picker.Pick", zap.String("error", err.Error()))
		c.mu.Lock()
		c.errs[model.FieldImage] = constant.MsgPickFailed
		c.mu.Unlock()
		return errors.SetCustomError(constant.ErrInvalidRequest).WithMessage(constant.MsgPickFailed).WithCause(err)
	}
	if img == nil {
		return nil
	}

	c.mu.Lock()
	c.image = img
	delete(c.errs, model.FieldImage)
	c.mu.Unlock()
	return nil
}

// RemoveImage detaches the image and clears any image error.
func (c *Controller) RemoveImage() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.submitting {
		return
	}
	c.image = nil
	delete(c.errs, model.FieldImage)
}

// Submit validates and sends the form. It is a no-op returning nil while a
// previous submission is still in flight.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return nil
	}
	c.phase = PhaseValidating
	delete(c.errs, model.FieldSubmit)
	payload, fields := validation.Validate(c.input)
	if fields != nil {
		for f, msg := range fields {
			c.errs[f] = msg
		}
		c.focus = validation.FirstInvalid(fields)
		c.phase = PhaseIdle
		c.outcome = OutcomeFailed
		c.mu.Unlock()
		return errors.SetCustomError(constant.ErrValidation).WithFields(fields)
	}
	c.focus = ""
	c.phase = PhaseSubmitting
	c.submitting = true
	image := c.image
	c.mu.Unlock()

	res, err := c.remote.Create(ctx, payload, image)

	if err == nil && (res == nil || res.Data == nil) {
		logger.Warn("[Submit] create returned no data")
		err = errors.SetCustomError(constant.ErrMalformedResponse).WithMessage(constant.MsgSubmitFailed)
	}
	if err != nil {
		c.mu.Lock()
		c.errs[model.FieldSubmit] = submitMessage(err)
		c.outcome = OutcomeFailed
		c.submitting = false
		c.phase = PhaseIdle
		c.mu.Unlock()
		return err
	}

	c.mu.Lock()
	c.input = model.RequestInput{}
	c.image = nil
	c.errs = model.FieldErrors{}
	c.outcome = OutcomeSuccess
	c.success = true
	c.submitting = false
	c.phase = PhaseIdle
	c.mu.Unlock()

	c.successTimer.Trigger(c.clearSuccess)
	c.notifier.Notify(notify.Notice{Level: notify.LevelSuccess, Title: "Success", Message: constant.MsgSubmitSuccess})
	logger.Info("[Submit] request created", zap.String("id", res.Data.ID))
	if c.onSuccess != nil {
		c.onSuccess(res.Data)
	}
	return nil
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	errs := make(model.FieldErrors, len(c.errs))
	for k, v := range c.errs {
		errs[k] = v
	}
	var img *model.ImageAttachment
	if c.image != nil {
		cp := *c.image
		img = &cp
	}
	return State{
		Input:      c.input,
		Image:      img,
		Errors:     errs,
		Focus:      c.focus,
		Phase:      c.phase,
		Outcome:    c.outcome,
		Submitting: c.submitting,
		Success:    c.success,
	}
}

// Close stops the success flag timer.
func (c *Controller) Close() {
	c.successTimer.Stop()
}

func (c *Controller) clearSuccess() {
	c.mu.Lock()
	c.success = false
	c.mu.Unlock()
}

func (c *Controller) isSubmitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitting
}

// submitMessage prefers what the server said, then the error's own text.
func submitMessage(err error) string {
	if msg := errors.UserMessage(err); msg != "" && msg != constant.MsgUnknownError {
		return msg
	}
	return constant.MsgSubmitFailed
}
