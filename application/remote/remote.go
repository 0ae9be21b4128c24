// Package remote caches list queries against the requests API and runs the
// create/delete mutations that invalidate them.
package remote

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/eduzap/eduzap/constant"
	"github.com/eduzap/eduzap/model"
	"github.com/eduzap/eduzap/utils/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// API is the subset of the requests API the cache drives.
type API interface {
	ListRequests(ctx context.Context, params model.ListParams) (*model.ListResponse, error)
	CreateRequest(ctx context.Context, payload *model.RequestPayload, image *model.ImageAttachment) (*model.RequestResponse, error)
	DeleteRequest(ctx context.Context, id string) (*model.RequestResponse, error)
}

type RemoteState interface {
	// Query returns the cached result for params, fetching it when missing
	// or errored. Concurrent identical queries share one call.
	Query(ctx context.Context, params model.ListParams) (*model.ListResponse, error)
	// Refetch ignores any cached result for params.
	Refetch(ctx context.Context, params model.ListParams) (*model.ListResponse, error)
	State(params model.ListParams) QueryState
	// Invalidate drops every entry whose key starts with prefix. Fetches
	// already in flight will not be stored.
	Invalidate(prefix string)
	Create(ctx context.Context, payload *model.RequestPayload, image *model.ImageAttachment) (*model.RequestResponse, error)
	Delete(ctx context.Context, id string) (*model.RequestResponse, error)
}

type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

type QueryState struct {
	Status    Status
	Data      *model.ListResponse
	Err       error
	UpdatedAt time.Time
}

type entry struct {
	state   QueryState
	version uint64
}

type remoteStateImpl struct {
	api   API
	group singleflight.Group
	now   func() time.Time

	mu      sync.Mutex
	version uint64
	entries map[string]*entry
}

func NewRemoteState(api API) RemoteState {
	return &remoteStateImpl{
		api:     api,
		now:     time.Now,
		entries: make(map[string]*entry),
	}
}

func (s *remoteStateImpl) Query(ctx context.Context, params model.ListParams) (*model.ListResponse, error) {
	key := params.Key()

	s.mu.Lock()
	if e, ok := s.entries[key]; ok && e.state.Status == StatusSuccess {
		data := e.state.Data
		s.mu.Unlock()
		return data, nil
	}
	version := s.markLoadingLocked(key, false)
	s.mu.Unlock()

	return s.fetch(ctx, key, version, params)
}

func (s *remoteStateImpl) Refetch(ctx context.Context, params model.ListParams) (*model.ListResponse, error) {
	key := params.Key()

	s.mu.Lock()
	version := s.markLoadingLocked(key, true)
	s.mu.Unlock()

	return s.fetch(ctx, key, version, params)
}

func (s *remoteStateImpl) State(params model.ListParams) QueryState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[params.Key()]; ok {
		return e.state
	}
	return QueryState{Status: StatusIdle}
}

func (s *remoteStateImpl) Invalidate(prefix string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.version++
	dropped := 0
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
			dropped++
		}
	}
	logger.Debug("[Invalidate] dropped cached queries", zap.String("prefix", prefix), zap.Int("count", dropped))
}

func (s *remoteStateImpl) Create(ctx context.Context, payload *model.RequestPayload, image *model.ImageAttachment) (*model.RequestResponse, error) {
	res, err := s.api.CreateRequest(ctx, payload, image)
	if err != nil {
		logger.Error("[Create] err api.CreateRequest", zap.String("error", err.Error()))
		return nil, err
	}
	s.Invalidate(constant.RequestsQueryPrefix)
	return res, nil
}

func (s *remoteStateImpl) Delete(ctx context.Context, id string) (*model.RequestResponse, error) {
	res, err := s.api.DeleteRequest(ctx, id)
	if err != nil {
		logger.Error("[Delete] err api.DeleteRequest", zap.String("id", id), zap.String("error", err.Error()))
		return nil, err
	}
	s.Invalidate(constant.RequestsQueryPrefix)
	return res, nil
}

// markLoadingLocked returns the version the caller fetches under. A query
// for a key already loading joins that flight; fresh forces a new version
// for this key alone, leaving other keys' flights untouched.
func (s *remoteStateImpl) markLoadingLocked(key string, fresh bool) uint64 {
	e, ok := s.entries[key]
	if ok && !fresh && e.state.Status == StatusLoading {
		return e.version
	}
	if !ok {
		e = &entry{}
		s.entries[key] = e
	}
	if fresh {
		s.version++
	}
	e.state.Status = StatusLoading
	e.state.Err = nil
	e.version = s.version
	return e.version
}

func (s *remoteStateImpl) fetch(ctx context.Context, key string, version uint64, params model.ListParams) (*model.ListResponse, error) {
	flightKey := fmt.Sprintf("%s#%d", key, version)
	// the shared call must not die with whichever caller started it
	flightCtx := context.WithoutCancel(ctx)

	v, err, shared := s.group.Do(flightKey, func() (interface{}, error) {
		// an identical flight may have finished between our lock and Do
		if res, ok := s.cached(key, version); ok {
			return res, nil
		}
		res, err := s.api.ListRequests(flightCtx, params)
		s.store(key, version, res, err)
		return res, err
	})
	if shared {
		logger.Debug("[Query] joined in-flight fetch", zap.String("key", key))
	}
	if err != nil {
		return nil, err
	}
	return v.(*model.ListResponse), nil
}

func (s *remoteStateImpl) cached(key string, version uint64) (*model.ListResponse, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok || e.version != version || e.state.Status != StatusSuccess {
		return nil, false
	}
	return e.state.Data, true
}

func (s *remoteStateImpl) store(key string, version uint64, res *model.ListResponse, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok || e.version != version {
		logger.Debug("[Query] discarded stale response", zap.String("key", key), zap.Uint64("version", version))
		return
	}
	if err != nil {
		e.state = QueryState{Status: StatusError, Err: err, Data: e.state.Data, UpdatedAt: s.now()}
		return
	}
	e.state = QueryState{Status: StatusSuccess, Data: res, UpdatedAt: s.now()}
}
