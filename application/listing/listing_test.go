package listing_test

import (
	"context"
	"testing"

	"github.com/eduzap/eduzap/application/filter"
	"github.com/eduzap/eduzap/application/listing"
	"github.com/eduzap/eduzap/constant"
	remotemocks "github.com/eduzap/eduzap/mocks/application/remote"
	notifymocks "github.com/eduzap/eduzap/mocks/utils/notify"
	"github.com/eduzap/eduzap/model"
	"github.com/eduzap/eduzap/utils/debounce/debouncetest"
	cerr "github.com/eduzap/eduzap/utils/errors"
	"github.com/eduzap/eduzap/utils/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func params(page int) model.ListParams {
	return model.ListParams{SortOrder: model.SortAsc, Page: page, Limit: 5}
}

func pageOf(total int64, ids ...string) *model.ListResponse {
	res := &model.ListResponse{Meta: &model.Meta{TotalCount: total, Limit: 5}}
	for _, id := range ids {
		res.Data = append(res.Data, model.Request{ID: id, Name: "Asha", Phone: "9876543210", Title: "Algebra " + id})
	}
	return res
}

type fixture struct {
	remote   *remotemocks.RemoteState
	notifier *notifymocks.Notifier
	filters  *filter.Controller
	ctrl     *listing.Controller
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	rs := remotemocks.NewRemoteState(t)
	n := notifymocks.NewNotifier(t)
	fc := filter.New(filter.WithScheduler(debouncetest.New().AfterFunc))
	t.Cleanup(fc.Close)
	return fixture{
		remote:   rs,
		notifier: n,
		filters:  fc,
		ctrl:     listing.New(rs, fc, listing.WithNotifier(n)),
	}
}

func TestController_Load(t *testing.T) {
	tests := []struct {
		name      string
		mockCall  func(rs *remotemocks.RemoteState)
		wantErr   bool
		wantItems int
		wantPages int
		wantMsg   string
	}{
		{
			name: "success: first page with total",
			mockCall: func(rs *remotemocks.RemoteState) {
				rs.On("Query", mock.Anything, params(1)).Return(pageOf(12, "a", "b", "c", "d", "e"), nil).Once()
			},
			wantItems: 5,
			wantPages: 3,
		},
		{
			name: "success: missing meta means no pages",
			mockCall: func(rs *remotemocks.RemoteState) {
				rs.On("Query", mock.Anything, params(1)).Return(&model.ListResponse{}, nil).Once()
			},
		},
		{
			name: "error: network failure surfaces a message",
			mockCall: func(rs *remotemocks.RemoteState) {
				rs.On("Query", mock.Anything, params(1)).Return(nil, cerr.SetCustomError(constant.ErrNetwork)).Once()
			},
			wantErr: true,
			wantMsg: constant.ErrorTypeMessage[constant.ErrNetwork],
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture(t)
			tt.mockCall(fx.remote)

			err := fx.ctrl.Load(context.Background())
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			v := fx.ctrl.View()
			assert.Len(t, v.Items, tt.wantItems)
			assert.Equal(t, tt.wantPages, v.Filters.TotalPages)
			assert.Equal(t, tt.wantMsg, v.ListError)
			assert.False(t, v.Loading)
		})
	}
}

func TestController_LoadDiscardsSupersededResult(t *testing.T) {
	fx := newFixture(t)
	_, gen := fx.filters.Snapshot()
	fx.filters.ApplyTotalCount(gen, 12)

	fx.remote.On("Query", mock.Anything, params(1)).
		Run(func(mock.Arguments) {
			// the user paged while the request was in flight
			fx.filters.SetPage(2)
		}).
		Return(pageOf(12, "old"), nil).Once()

	require.NoError(t, fx.ctrl.Load(context.Background()))
	assert.Empty(t, fx.ctrl.View().Items)

	fx.remote.On("Query", mock.Anything, params(2)).Return(pageOf(12, "f", "g"), nil).Once()
	require.NoError(t, fx.ctrl.Load(context.Background()))
	v := fx.ctrl.View()
	require.Len(t, v.Items, 2)
	assert.Equal(t, "f", v.Items[0].ID)
}

func TestController_LateSupersededLoadKeepsLoading(t *testing.T) {
	fx := newFixture(t)
	_, gen := fx.filters.Snapshot()
	fx.filters.ApplyTotalCount(gen, 12)

	hold := func(page int, ids ...string) (started, release chan struct{}) {
		started, release = make(chan struct{}), make(chan struct{})
		fx.remote.On("Query", mock.Anything, params(page)).
			Run(func(mock.Arguments) {
				close(started)
				<-release
			}).
			Return(pageOf(12, ids...), nil).Once()
		return started, release
	}
	started2, release2 := hold(2, "f", "g", "h", "i", "j")
	started3, release3 := hold(3, "k", "l")

	done := make(chan error, 2)
	require.True(t, fx.ctrl.NextPage())
	go func() { done <- fx.ctrl.Load(context.Background()) }()
	<-started2
	require.True(t, fx.ctrl.NextPage())
	go func() { done <- fx.ctrl.Load(context.Background()) }()
	<-started3

	close(release2)
	require.NoError(t, <-done)
	v := fx.ctrl.View()
	assert.Equal(t, 3, v.Filters.Page)
	assert.True(t, v.Loading, "page 3 is still in flight")
	assert.Empty(t, v.Items, "the page 2 result must not be shown")

	close(release3)
	require.NoError(t, <-done)
	v = fx.ctrl.View()
	assert.False(t, v.Loading)
	require.Len(t, v.Items, 2)
	assert.Equal(t, "k", v.Items[0].ID)
}

func TestController_RetryClearsListError(t *testing.T) {
	fx := newFixture(t)
	fx.remote.On("Query", mock.Anything, params(1)).Return(nil, cerr.SetCustomError(constant.ErrNetwork)).Once()
	require.Error(t, fx.ctrl.Load(context.Background()))
	require.NotEmpty(t, fx.ctrl.View().ListError)

	started, release := make(chan struct{}), make(chan struct{})
	fx.remote.On("Refetch", mock.Anything, params(1)).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(pageOf(1, "a"), nil).Once()

	done := make(chan error)
	go func() { done <- fx.ctrl.Refresh(context.Background()) }()
	<-started
	v := fx.ctrl.View()
	assert.Equal(t, "", v.ListError, "the old error gives way to the loading state")
	assert.True(t, v.Refreshing)

	close(release)
	require.NoError(t, <-done)
	assert.Len(t, fx.ctrl.View().Items, 1)
}

func TestController_Refresh(t *testing.T) {
	fx := newFixture(t)
	fx.remote.On("Refetch", mock.Anything, params(1)).Return(pageOf(1, "a"), nil).Once()

	require.NoError(t, fx.ctrl.Refresh(context.Background()))
	v := fx.ctrl.View()
	assert.Len(t, v.Items, 1)
	assert.False(t, v.Refreshing)
}

func TestController_RequestDelete(t *testing.T) {
	fx := newFixture(t)

	fx.ctrl.RequestDelete("")
	assert.Equal(t, "", fx.ctrl.Pending())

	fx.ctrl.RequestDelete("a")
	fx.ctrl.RequestDelete("b")
	assert.Equal(t, "b", fx.ctrl.Pending(), "a new selection replaces the old one")

	fx.ctrl.CancelDelete()
	assert.Equal(t, "", fx.ctrl.Pending())
}

func TestController_ConfirmDelete(t *testing.T) {
	tests := []struct {
		name        string
		pending     string
		mockCall    func(fx fixture)
		wantErr     bool
		wantDelErr  string
		wantPage    int
		wantItemIDs []string
	}{
		{
			name:    "success: deletes, resets page and reloads",
			pending: "c",
			mockCall: func(fx fixture) {
				fx.remote.On("Delete", mock.Anything, "c").Return(&model.RequestResponse{Data: &model.Request{ID: "c"}}, nil).Once()
				fx.notifier.On("Notify", mock.MatchedBy(func(n notify.Notice) bool {
					return n.Level == notify.LevelSuccess && n.Message == constant.MsgDeleteSuccess
				})).Once()
				fx.remote.On("Query", mock.Anything, params(1)).Return(pageOf(11, "a", "b", "d", "e", "f"), nil).Once()
			},
			wantPage:    1,
			wantItemIDs: []string{"a", "b", "d", "e", "f"},
		},
		{
			name:    "error: failed delete keeps the page and shows an error",
			pending: "gone",
			mockCall: func(fx fixture) {
				fx.remote.On("Delete", mock.Anything, "gone").
					Return(nil, cerr.SetCustomError(constant.ErrServer).WithStatus(404).WithMessage("Request not found")).Once()
			},
			wantErr:    true,
			wantDelErr: constant.MsgDeleteFailed,
			wantPage:   2,
		},
		{
			name:     "success: nothing pending is a no-op",
			mockCall: func(fx fixture) {},
			wantPage: 2,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture(t)
			_, gen := fx.filters.Snapshot()
			fx.filters.ApplyTotalCount(gen, 12)
			require.True(t, fx.filters.SetPage(2))
			tt.mockCall(fx)

			fx.ctrl.RequestDelete(tt.pending)
			err := fx.ctrl.ConfirmDelete(context.Background())
			if (err != nil) != tt.wantErr {
				t.Fatalf("ConfirmDelete() error = %v, wantErr %v", err, tt.wantErr)
			}

			v := fx.ctrl.View()
			assert.Equal(t, "", v.PendingID, "selection is always cleared")
			assert.False(t, v.Deleting)
			assert.Equal(t, tt.wantDelErr, v.DeleteError)
			assert.Equal(t, tt.wantPage, v.Filters.Page)
			var ids []string
			for _, it := range v.Items {
				ids = append(ids, it.ID)
			}
			assert.Equal(t, tt.wantItemIDs, ids)
		})
	}
}

func TestController_DismissDeleteError(t *testing.T) {
	fx := newFixture(t)
	fx.remote.On("Delete", mock.Anything, "x").Return(nil, cerr.SetCustomError(constant.ErrNetwork)).Once()

	fx.ctrl.RequestDelete("x")
	_ = fx.ctrl.ConfirmDelete(context.Background())
	require.Equal(t, constant.MsgDeleteFailed, fx.ctrl.DeleteError())

	fx.ctrl.DismissDeleteError()
	assert.Equal(t, "", fx.ctrl.DeleteError())
}

func TestController_ConfirmDeleteWhileDeleting(t *testing.T) {
	fx := newFixture(t)
	started := make(chan struct{})
	release := make(chan struct{})
	fx.remote.On("Delete", mock.Anything, "a").
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(nil, cerr.SetCustomError(constant.ErrServer)).Once()

	fx.ctrl.RequestDelete("a")
	done := make(chan error)
	go func() { done <- fx.ctrl.ConfirmDelete(context.Background()) }()
	<-started

	assert.True(t, fx.ctrl.View().Deleting)
	assert.NoError(t, fx.ctrl.ConfirmDelete(context.Background()))
	fx.ctrl.RequestDelete("b")
	fx.ctrl.CancelDelete()
	assert.Equal(t, "a", fx.ctrl.Pending())

	close(release)
	assert.Error(t, <-done)
}

func TestController_NavigationClearsPendingDelete(t *testing.T) {
	fx := newFixture(t)
	_, gen := fx.filters.Snapshot()
	fx.filters.ApplyTotalCount(gen, 12)

	fx.ctrl.RequestDelete("a")
	assert.False(t, fx.ctrl.PrevPage())
	assert.Equal(t, "a", fx.ctrl.Pending(), "a refused move keeps the selection")

	assert.True(t, fx.ctrl.NextPage())
	assert.Equal(t, "", fx.ctrl.Pending())

	fx.ctrl.RequestDelete("b")
	assert.True(t, fx.ctrl.GoToPage(3))
	assert.Equal(t, "", fx.ctrl.Pending())
	assert.False(t, fx.ctrl.GoToPage(4))
}
