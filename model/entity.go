package model

import "time"

// RequestEntity represents the requests table of the development backend
type RequestEntity struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Phone     string `db:"phone" json:"phone"`
	Title     string `db:"title" json:"title"`
	Image     string `db:"image" json:"image,omitempty"`
	CreatedAt string `db:"created_at" json:"timestamp"`
}

// ToRequest converts the stored row to the API shape
func (e RequestEntity) ToRequest() Request {
	return Request{
		ID:        e.ID,
		Name:      e.Name,
		Phone:     e.Phone,
		Title:     e.Title,
		Image:     e.Image,
		Timestamp: e.CreatedAt,
	}
}

// RequestFilter for listing stored requests
type RequestFilter struct {
	Search    string
	SortOrder SortOrder
	Page      int
	Limit     int
}

// StoredImage is an uploaded image kept by the development backend
type StoredImage struct {
	ContentType string    `json:"content_type"`
	Data        []byte    `json:"data"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// CreateRequestCommand carries a validated submission plus an optional upload
type CreateRequestCommand struct {
	Input RequestInput
	Image *UploadedImage
}

type UploadedImage struct {
	FileName    string
	ContentType string
	Data        []byte
}

// Component states reported by the health endpoint.
const (
	HealthOK       = "ok"
	HealthDown     = "down"
	HealthDisabled = "disabled"
)

// HealthStatus is the body of GET /health. Status is "ok" when the database
// answers, whatever the image store says.
type HealthStatus struct {
	Status     string `json:"status"`
	Database   string `json:"database"`
	ImageStore string `json:"image_store"`
}
