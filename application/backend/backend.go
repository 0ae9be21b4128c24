package backend

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strings"
	"time"

	"github.com/eduzap/eduzap/application/validation"
	"github.com/eduzap/eduzap/cmd/config"
	redisclient "github.com/eduzap/eduzap/cmd/redis"
	"github.com/eduzap/eduzap/constant"
	"github.com/eduzap/eduzap/model"
	imagerepo "github.com/eduzap/eduzap/repository/image"
	requestrepo "github.com/eduzap/eduzap/repository/request"
	"github.com/eduzap/eduzap/thirdparty/rabbitmq"
	"github.com/eduzap/eduzap/utils/errors"
	"github.com/eduzap/eduzap/utils/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	msgRequestNotFound = "Request not found"
	msgImageNotFound   = "Image not found"
	msgImageOnly       = "Only image uploads are allowed"
)

// EventPublisher is satisfied by *rabbitmq.Publisher.
type EventPublisher interface {
	PublishRequestEvent(ctx context.Context, msg rabbitmq.RequestEventMessage) error
}

// BackendApp serves the requests REST contract for local development.
type BackendApp interface {
	ListRequests(ctx context.Context, params model.ListParams) (*model.ListResponse, error)
	CreateRequest(ctx context.Context, cmd *model.CreateRequestCommand) (*model.Request, error)
	DeleteRequest(ctx context.Context, id string) (*model.Request, error)
	GetImage(ctx context.Context, id string) (*model.StoredImage, error)
	Health(ctx context.Context) model.HealthStatus
}

type backendAppImpl struct {
	config      *config.Config
	requestRepo requestrepo.RequestRepository
	imageRepo   imagerepo.ImageRepository
	publisher   EventPublisher
	now         func() time.Time
	newID       func() string
}

type Option func(*backendAppImpl)

func WithClock(now func() time.Time) Option {
	return func(s *backendAppImpl) { s.now = now }
}

func WithIDGenerator(fn func() string) Option {
	return func(s *backendAppImpl) { s.newID = fn }
}

// NewBackendApp wires the app. publisher may be nil.
func NewBackendApp(config *config.Config, requestRepo requestrepo.RequestRepository, imageRepo imagerepo.ImageRepository, publisher EventPublisher, opts ...Option) BackendApp {
	s := &backendAppImpl{
		config:      config,
		requestRepo: requestRepo,
		imageRepo:   imageRepo,
		publisher:   publisher,
		now:         time.Now,
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *backendAppImpl) ListRequests(ctx context.Context, params model.ListParams) (*model.ListResponse, error) {
	filter := model.RequestFilter{
		Search:    strings.TrimSpace(params.Search),
		SortOrder: params.SortOrder,
		Page:      params.Page,
		Limit:     params.Limit,
	}
	if !filter.SortOrder.Valid() {
		filter.SortOrder = model.SortAsc
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = constant.DefaultPageSize
	}
	if filter.Limit > constant.MaxPageSize {
		filter.Limit = constant.MaxPageSize
	}

	items, total, err := s.requestRepo.List(ctx, filter)
	if err != nil {
		logger.Error("[ListRequests] error requestRepo.List", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	data := make([]model.Request, 0, len(items))
	for _, it := range items {
		data = append(data, it.ToRequest())
	}

	return &model.ListResponse{
		Data: data,
		Meta: &model.Meta{
			TotalCount: total,
			Page:       filter.Page,
			Limit:      filter.Limit,
			HasMore:    int64(filter.Page*filter.Limit) < total,
		},
	}, nil
}

func (s *backendAppImpl) CreateRequest(ctx context.Context, cmd *model.CreateRequestCommand) (*model.Request, error) {
	if cmd == nil {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	payload, fields := validation.Validate(cmd.Input)
	if fields != nil {
		logger.Info("[CreateRequest] validation failed", zap.Any("fields", fields))
		return nil, errors.SetCustomError(constant.ErrValidation).
			WithMessage(fields[validation.FirstInvalid(fields)]).
			WithFields(fields)
	}

	id := s.newID()
	entity := &model.RequestEntity{
		ID:        id,
		Name:      payload.Name,
		Phone:     payload.Phone,
		Title:     payload.Title,
		CreatedAt: s.now().UTC().Format(time.RFC3339),
	}

	stored, err := s.storeImage(ctx, id, cmd.Image)
	if err != nil {
		return nil, err
	}
	if stored {
		entity.Image = s.imageURL(id)
	}

	if err := s.requestRepo.Create(ctx, entity); err != nil {
		logger.Error("[CreateRequest] error requestRepo.Create", zap.String("error", err.Error()))
		if stored {
			_ = s.imageRepo.Delete(ctx, id)
		}
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	s.publish(ctx, constant.EventRequestCreated, entity)

	req := entity.ToRequest()
	return &req, nil
}

func (s *backendAppImpl) DeleteRequest(ctx context.Context, id string) (*model.Request, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	entity, err := s.requestRepo.GetByID(ctx, id)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.SetCustomError(constant.ErrNotFound).WithMessage(msgRequestNotFound)
	}
	if err != nil {
		logger.Error("[DeleteRequest] error requestRepo.GetByID", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.requestRepo.Delete(ctx, id); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.SetCustomError(constant.ErrNotFound).WithMessage(msgRequestNotFound)
		}
		logger.Error("[DeleteRequest] error requestRepo.Delete", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if entity.Image != "" {
		if err := s.imageRepo.Delete(ctx, id); err != nil {
			logger.Warn("[DeleteRequest] error imageRepo.Delete", zap.String("error", err.Error()))
		}
	}

	s.publish(ctx, constant.EventRequestDeleted, entity)

	req := entity.ToRequest()
	return &req, nil
}

func (s *backendAppImpl) GetImage(ctx context.Context, id string) (*model.StoredImage, error) {
	img, err := s.imageRepo.Get(ctx, id)
	if stderrors.Is(err, imagerepo.ErrNotFound) {
		return nil, errors.SetCustomError(constant.ErrNotFound).WithMessage(msgImageNotFound)
	}
	if err != nil {
		logger.Error("[GetImage] error imageRepo.Get", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	return img, nil
}

// storeImage keeps the upload and reports whether it was stored. Uploads are
// dropped when no image store is configured.
func (s *backendAppImpl) storeImage(ctx context.Context, id string, img *model.UploadedImage) (bool, error) {
	if img == nil || len(img.Data) == 0 {
		return false, nil
	}
	if !strings.HasPrefix(img.ContentType, "image/") {
		return false, errors.SetCustomError(constant.ErrInvalidRequest).WithMessage(msgImageOnly)
	}
	if !s.imageRepo.Enabled() {
		logger.Warn("[CreateRequest] image store disabled, dropping upload", zap.String("file", img.FileName))
		return false, nil
	}

	err := s.imageRepo.Save(ctx, id, model.StoredImage{
		ContentType: img.ContentType,
		Data:        img.Data,
		UploadedAt:  s.now().UTC(),
	})
	if err != nil {
		logger.Error("[CreateRequest] error imageRepo.Save", zap.String("error", err.Error()))
		return false, errors.SetCustomError(constant.ErrInternal)
	}
	return true, nil
}

func (s *backendAppImpl) imageURL(id string) string {
	base := ""
	if s.config != nil {
		base = s.config.Server.PublicURL
	}
	return base + "/uploads/" + id
}

func (s *backendAppImpl) publish(ctx context.Context, event string, entity *model.RequestEntity) {
	if s.publisher == nil {
		return
	}
	msg := rabbitmq.RequestEventMessage{
		Event:      event,
		RequestID:  entity.ID,
		Title:      entity.Title,
		OccurredAt: s.now().UTC(),
	}
	if err := s.publisher.PublishRequestEvent(ctx, msg); err != nil {
		logger.Error("[publish] error publisher.PublishRequestEvent", zap.String("event", event), zap.String("error", err.Error()))
	}
}

// Health pings the database and the image store. Only the database decides
// the overall status; a missing image store is reported as disabled.
func (s *backendAppImpl) Health(ctx context.Context) model.HealthStatus {
	st := model.HealthStatus{Status: model.HealthOK, Database: model.HealthOK, ImageStore: model.HealthOK}

	if err := s.requestRepo.Ping(ctx); err != nil {
		logger.Error("[Health] err requestRepo.Ping", zap.String("error", err.Error()))
		st.Status = model.HealthDown
		st.Database = model.HealthDown
	}

	switch err := s.imageRepo.Ping(ctx); {
	case err == nil:
	case stderrors.Is(err, redisclient.ErrDisabled):
		st.ImageStore = model.HealthDisabled
	default:
		logger.Warn("[Health] err imageRepo.Ping", zap.String("error", err.Error()))
		st.ImageStore = model.HealthDown
	}
	return st
}
