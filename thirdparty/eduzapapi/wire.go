package eduzapapi

import (
	"bytes"
	"encoding/json"

	"github.com/eduzap/eduzap/model"
)

// wireRequest is a request as the server sends it: the identifier comes as
// either "id" or "_id", as a string or a number.
type wireRequest struct {
	ID        json.RawMessage `json:"id"`
	MongoID   json.RawMessage `json:"_id"`
	Name      string          `json:"name"`
	Phone     string          `json:"phone"`
	Title     string          `json:"title"`
	Image     string          `json:"image"`
	Timestamp string          `json:"timestamp"`
}

func (w wireRequest) normalize() model.Request {
	id := rawID(w.ID)
	if id == "" {
		id = rawID(w.MongoID)
	}
	return model.Request{
		ID:        id,
		Name:      w.Name,
		Phone:     w.Phone,
		Title:     w.Title,
		Image:     w.Image,
		Timestamp: w.Timestamp,
	}
}

func rawID(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	// e.g. {"$oid": "..."} from a Mongo extended-JSON encoder
	var oid struct {
		OID string `json:"$oid"`
	}
	if err := json.Unmarshal(raw, &oid); err == nil {
		return oid.OID
	}
	return ""
}
