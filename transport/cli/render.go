package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/eduzap/eduzap/application/form"
	"github.com/eduzap/eduzap/application/listing"
	"github.com/eduzap/eduzap/constant"
	"github.com/eduzap/eduzap/model"
)

// RenderList writes one page of requests followed by the pager line.
func RenderList(w io.Writer, v listing.View, now time.Time) {
	fs := v.Filters
	header := fmt.Sprintf("Requests (sort: %s", fs.SortOrder)
	if fs.Search != "" {
		header += fmt.Sprintf(", search: %q", fs.Search)
	}
	header += ")"
	fmt.Fprintln(w, header)

	switch {
	case v.ListError != "":
		fmt.Fprintf(w, "  error: %s\n", v.ListError)
	case v.Loading && len(v.Items) == 0:
		fmt.Fprintln(w, "  loading...")
	case len(v.Items) == 0:
		fmt.Fprintln(w, "  No requests found")
	default:
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "  \tID\tTITLE\tNAME\tPHONE\tCREATED\tIMAGE")
		for _, it := range v.Items {
			marker := " "
			if it.ID == v.PendingID {
				marker = ">"
			}
			title := it.Title
			if it.IsRecent(now, constant.RecentWindow) {
				title += " [new]"
			}
			image := ""
			if it.Image != "" {
				image = "yes"
			}
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\t%s\t%s\n", marker, it.ID, title, it.Name, it.Phone, it.FormatTimestamp(), image)
		}
		tw.Flush()
	}

	if fs.TotalPages > 0 {
		fmt.Fprintf(w, "Page %d of %d (%d total)%s\n", fs.Page, fs.TotalPages, fs.TotalCount, pagerHints(fs.CanPrev, fs.CanNext))
	}
	if v.Refreshing {
		fmt.Fprintln(w, "Refreshing...")
	}
	if v.PendingID != "" {
		fmt.Fprintf(w, "Delete request %s? (yes/no)\n", v.PendingID)
	}
	if v.Deleting {
		fmt.Fprintln(w, "Deleting...")
	}
	if v.DeleteError != "" {
		fmt.Fprintf(w, "Error: %s (dismiss)\n", v.DeleteError)
	}
}

func pagerHints(canPrev, canNext bool) string {
	var hints []string
	if canPrev {
		hints = append(hints, "prev")
	}
	if canNext {
		hints = append(hints, "next")
	}
	if len(hints) == 0 {
		return ""
	}
	return " [" + strings.Join(hints, " | ") + "]"
}

// RenderFormErrors prints field errors in display order, then image and
// submit errors.
func RenderFormErrors(w io.Writer, st form.State) {
	order := append(append([]string{}, model.InputFields...), model.FieldImage, model.FieldSubmit)
	for _, field := range order {
		if msg, ok := st.Errors[field]; ok {
			fmt.Fprintf(w, "  %s: %s\n", field, msg)
		}
	}
}
