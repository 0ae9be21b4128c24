package listing_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/eduzap/eduzap/application/filter"
	"github.com/eduzap/eduzap/application/form"
	"github.com/eduzap/eduzap/application/listing"
	"github.com/eduzap/eduzap/application/remote"
	"github.com/eduzap/eduzap/constant"
	"github.com/eduzap/eduzap/model"
	"github.com/eduzap/eduzap/thirdparty/eduzapapi"
	"github.com/eduzap/eduzap/transport/transporttest"
	"github.com/eduzap/eduzap/utils/debounce/debouncetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stack struct {
	sched   *debouncetest.Scheduler
	remote  remote.RemoteState
	filters *filter.Controller
	list    *listing.Controller
	form    *form.Controller
}

func newStack(t *testing.T) stack {
	t.Helper()
	srv := transporttest.NewServer(t)
	rs := remote.NewRemoteState(eduzapapi.NewClient(srv.URL))
	sched := debouncetest.New()
	fc := filter.New(filter.WithScheduler(sched.AfterFunc))
	fm := form.New(rs, form.WithScheduler(sched.AfterFunc))
	t.Cleanup(func() {
		fc.Close()
		fm.Close()
	})
	return stack{sched: sched, remote: rs, filters: fc, list: listing.New(rs, fc), form: fm}
}

func (s stack) submit(t *testing.T, name, phone, title string) {
	t.Helper()
	s.form.SetField(model.FieldName, name)
	s.form.SetField(model.FieldPhone, phone)
	s.form.SetField(model.FieldTitle, title)
	require.NoError(t, s.form.Submit(context.Background()))
}

func ids(items []model.Request) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestIntegration_SearchPagination(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	for i := 0; i < 12; i++ {
		s.submit(t, "Asha Rao", "9876543210", fmt.Sprintf("Algebra volume %02d", i))
	}
	s.submit(t, "Asha Rao", "9876543210", "Physics")

	s.filters.SetSearch("algebra")
	s.sched.Advance(constant.SearchDebounce)
	require.NoError(t, s.list.Load(ctx))

	v := s.list.View()
	assert.Len(t, v.Items, 5)
	assert.Equal(t, int64(12), v.Filters.TotalCount)
	assert.Equal(t, 3, v.Filters.TotalPages)
	assert.False(t, v.Filters.CanPrev)
	assert.True(t, v.Filters.CanNext)

	require.True(t, s.list.GoToPage(3))
	require.NoError(t, s.list.Load(ctx))
	v = s.list.View()
	assert.Len(t, v.Items, 2)
	assert.Equal(t, "Algebra volume 10", v.Items[0].Title)
	assert.False(t, v.Filters.CanNext)

	assert.False(t, s.list.GoToPage(4))
}

func TestIntegration_DuplicateSubmissionsAreDistinct(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	require.NoError(t, s.list.Load(ctx))
	assert.Empty(t, s.list.View().Items)

	s.submit(t, "Asha Rao", "9876543210", "Linear Algebra")
	s.submit(t, "Asha Rao", "9876543210", "Linear Algebra")

	// the create invalidated the cached empty page
	require.NoError(t, s.list.Load(ctx))
	v := s.list.View()
	require.Len(t, v.Items, 2)
	assert.NotEqual(t, v.Items[0].ID, v.Items[1].ID)
	assert.True(t, v.Items[0].IsRecent(time.Now(), constant.RecentWindow))
}

func TestIntegration_Delete(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	for i := 0; i < 6; i++ {
		s.submit(t, "Asha Rao", "9876543210", fmt.Sprintf("Geometry %d", i))
	}
	require.NoError(t, s.list.Load(ctx))
	require.True(t, s.list.NextPage())
	require.NoError(t, s.list.Load(ctx))
	target := s.list.View().Items[0].ID

	s.list.RequestDelete(target)
	require.NoError(t, s.list.ConfirmDelete(ctx))

	v := s.list.View()
	assert.Equal(t, 1, v.Filters.Page, "a delete returns to the first page")
	assert.Equal(t, int64(5), v.Filters.TotalCount)
	assert.NotContains(t, ids(v.Items), target)
	assert.Equal(t, "", v.PendingID)
}

func TestIntegration_DeleteMissingIsDismissible(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()
	s.submit(t, "Asha Rao", "9876543210", "Linear Algebra")
	require.NoError(t, s.list.Load(ctx))

	s.list.RequestDelete("does-not-exist")
	require.Error(t, s.list.ConfirmDelete(ctx))

	v := s.list.View()
	assert.Equal(t, constant.MsgDeleteFailed, v.DeleteError)
	assert.Equal(t, "", v.PendingID)
	assert.Len(t, v.Items, 1)

	s.list.DismissDeleteError()
	assert.Equal(t, "", s.list.View().DeleteError)
}

func TestIntegration_InvalidSubmissionNeverReachesServer(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	s.form.SetField(model.FieldName, "Jo")
	s.form.SetField(model.FieldPhone, "12345")
	s.form.SetField(model.FieldTitle, "Book")
	require.Error(t, s.form.Submit(ctx))
	assert.Equal(t, model.FieldPhone, s.form.State().Focus)

	require.NoError(t, s.list.Load(ctx))
	assert.Empty(t, s.list.View().Items)
}
