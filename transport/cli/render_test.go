package cli_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/eduzap/eduzap/application/filter"
	"github.com/eduzap/eduzap/application/form"
	"github.com/eduzap/eduzap/application/listing"
	"github.com/eduzap/eduzap/model"
	"github.com/eduzap/eduzap/transport/cli"
	"github.com/stretchr/testify/assert"
)

func TestRenderList(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		name     string
		view     listing.View
		contains []string
		excludes []string
	}{
		{
			name:     "empty",
			view:     listing.View{Filters: filter.State{SortOrder: model.SortAsc, Page: 1}},
			contains: []string{"Requests (sort: asc)", "No requests found"},
			excludes: []string{"Page "},
		},
		{
			name:     "list error",
			view:     listing.View{Filters: filter.State{SortOrder: model.SortAsc}, ListError: "Network error"},
			contains: []string{"error: Network error"},
		},
		{
			name: "pending delete and error",
			view: listing.View{
				Filters: filter.State{SortOrder: model.SortDesc, Search: "alg", Page: 2, TotalPages: 3, TotalCount: 12, CanPrev: true, CanNext: true},
				Items: []model.Request{
					{ID: "a1", Title: "Algebra", Name: "Asha", Phone: "9876543210", Timestamp: "2026-03-02T08:00:00Z", Image: "http://x/uploads/a1"},
					{ID: "b2", Title: "Algebra II", Name: "Ravi", Phone: "9123456780", Timestamp: "2026-02-01T08:00:00Z"},
				},
				PendingID:   "b2",
				DeleteError: "Failed to delete request. Please try again.",
			},
			contains: []string{
				`Requests (sort: desc, search: "alg")`,
				"Algebra [new]",
				"> ",
				"Page 2 of 3 (12 total) [prev | next]",
				"Delete request b2? (yes/no)",
				"Error: Failed to delete request. Please try again. (dismiss)",
			},
			excludes: []string{"Algebra II [new]"},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			cli.RenderList(&buf, tt.view, now)
			for _, s := range tt.contains {
				assert.Contains(t, buf.String(), s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, buf.String(), s)
			}
		})
	}
}

func TestRenderFormErrors(t *testing.T) {
	var buf bytes.Buffer
	cli.RenderFormErrors(&buf, form.State{Errors: model.FieldErrors{
		model.FieldSubmit: "Failed to submit request. Please try again.",
		model.FieldTitle:  "Title must be at least 3 characters",
		model.FieldName:   "Name must be at least 2 characters",
	}})
	assert.Equal(t, "  name: Name must be at least 2 characters\n"+
		"  title: Title must be at least 3 characters\n"+
		"  submit: Failed to submit request. Please try again.\n", buf.String())
}
