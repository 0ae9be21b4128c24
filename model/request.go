package model

import (
	"net/url"
	"strconv"
	"time"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Toggle returns the opposite order.
func (o SortOrder) Toggle() SortOrder {
	if o == SortDesc {
		return SortAsc
	}
	return SortDesc
}

// Valid reports whether o is one of the orders the API understands.
func (o SortOrder) Valid() bool {
	return o == SortAsc || o == SortDesc
}

// Request is the client-side view of a submitted request. ID is the canonical
// identifier regardless of which field name the server used.
type Request struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Title     string `json:"title"`
	Image     string `json:"image,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// IsRecent reports whether the request was created within window of now.
func (r Request) IsRecent(now time.Time, window time.Duration) bool {
	ts, err := time.Parse(time.RFC3339, r.Timestamp)
	if err != nil {
		return false
	}
	age := now.Sub(ts)
	return age >= 0 && age <= window
}

// FormatTimestamp renders the creation time for display, falling back to the
// raw value when it is not RFC 3339.
func (r Request) FormatTimestamp() string {
	ts, err := time.Parse(time.RFC3339, r.Timestamp)
	if err != nil {
		return r.Timestamp
	}
	return ts.Local().Format("Jan 2, 2006 3:04 PM")
}

// RequestInput is the raw, untrimmed form input.
type RequestInput struct {
	Name  string `json:"name" validate:"min=2,max=60"`
	Phone string `json:"phone" validate:"digits10"`
	Title string `json:"title" validate:"min=3,max=120"`
}

// RequestPayload is a validated, trimmed request ready to be sent.
type RequestPayload struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Title string `json:"title"`
}

// ImageAttachment references a locally picked image. The bytes are only read
// when the request is submitted.
type ImageAttachment struct {
	URI         string
	Name        string
	ContentType string
}

type ListParams struct {
	Search    string
	SortOrder SortOrder
	Page      int
	Limit     int
}

// Query returns the params as URL query values.
func (p ListParams) Query() url.Values {
	v := url.Values{}
	v.Set("search", p.Search)
	v.Set("sortOrder", string(p.SortOrder))
	v.Set("page", strconv.Itoa(p.Page))
	v.Set("limit", strconv.Itoa(p.Limit))
	return v
}

// Key is the cache key for the query; equal params give equal keys.
func (p ListParams) Key() string {
	return "requests?" + p.Query().Encode()
}

type Meta struct {
	TotalCount int64 `json:"totalCount"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	HasMore    bool  `json:"hasMore"`
}

type ListResponse struct {
	Data []Request `json:"data"`
	Meta *Meta     `json:"meta,omitempty"`
}

type RequestResponse struct {
	Data *Request `json:"data"`
}

// FieldErrors maps a form field to its error message.
type FieldErrors map[string]string

const (
	FieldName   = "name"
	FieldPhone  = "phone"
	FieldTitle  = "title"
	FieldImage  = "image"
	FieldSubmit = "submit"
)

// InputFields lists the editable text fields in display order.
var InputFields = []string{FieldName, FieldPhone, FieldTitle}
