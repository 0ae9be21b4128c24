package transport

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/eduzap/eduzap/application/backend"
	"github.com/eduzap/eduzap/constant"
	"github.com/eduzap/eduzap/model"
	"github.com/eduzap/eduzap/utils/errors"
	"github.com/eduzap/eduzap/utils/logger"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const maxUploadBytes = 10 << 20

type RestHandler struct {
	BackendApp backend.BackendApp
}

func NewTransport(BackendApp backend.BackendApp) http.Handler {
	mux := mux.NewRouter()

	rh := &RestHandler{
		BackendApp: BackendApp,
	}

	mux.HandleFunc("/health", rh.Health).Methods(http.MethodGet)

	mux.HandleFunc("/requests", rh.ListRequests).Methods(http.MethodGet)
	mux.HandleFunc("/requests", rh.CreateRequest).Methods(http.MethodPost)
	mux.HandleFunc("/requests/{id}", rh.DeleteRequest).Methods(http.MethodDelete)
	mux.HandleFunc("/uploads/{id}", rh.GetUpload).Methods(http.MethodGet)

	mux.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, errors.SetCustomError(constant.ErrNotFound))
	})

	// middleware
	mux.Use(LoggingMiddleware())

	return mux
}

// Health handles GET /health, 503 when the database is unreachable
func (s *RestHandler) Health(w http.ResponseWriter, r *http.Request) {
	st := s.BackendApp.Health(r.Context())
	code := http.StatusOK
	if st.Status != model.HealthOK {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, st)
}

// ListRequests handles GET /requests?search=&sortOrder=&page=&limit=
func (s *RestHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := model.ListParams{
		Search:    q.Get("search"),
		SortOrder: model.SortOrder(q.Get("sortOrder")),
		Page:      atoiOrZero(q.Get("page")),
		Limit:     atoiOrZero(q.Get("limit")),
	}

	res, err := s.BackendApp.ListRequests(r.Context(), params)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// CreateRequest accepts either a JSON body or a multipart form with an
// optional "image" file part.
func (s *RestHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	cmd, err := parseCreate(w, r)
	if err != nil {
		logger.Info("[CreateRequest] bad body", zap.String("error", err.Error()))
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.BackendApp.CreateRequest(r.Context(), cmd)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, model.RequestResponse{Data: res})
}

func (s *RestHandler) DeleteRequest(w http.ResponseWriter, r *http.Request) {
	res, err := s.BackendApp.DeleteRequest(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.RequestResponse{Data: res})
}

func (s *RestHandler) GetUpload(w http.ResponseWriter, r *http.Request) {
	img, err := s.BackendApp.GetImage(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", img.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(img.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img.Data)
}

func parseCreate(w http.ResponseWriter, r *http.Request) (*model.CreateRequestCommand, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		var in model.RequestInput
		if err := json.NewDecoder(io.LimitReader(r.Body, maxUploadBytes)).Decode(&in); err != nil {
			return nil, err
		}
		return &model.CreateRequestCommand{Input: in}, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, err
	}
	cmd := &model.CreateRequestCommand{Input: model.RequestInput{
		Name:  r.FormValue(model.FieldName),
		Phone: r.FormValue(model.FieldPhone),
		Title: r.FormValue(model.FieldTitle),
	}}

	file, header, err := r.FormFile(model.FieldImage)
	if err == http.ErrMissingFile {
		return cmd, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	cmd.Image = &model.UploadedImage{
		FileName:    header.Filename,
		ContentType: contentType,
		Data:        data,
	}
	return cmd, nil
}

type errorBody struct {
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Errors  model.FieldErrors `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("[writeJSON] err Encode", zap.String("error", err.Error()))
	}
}

func writeError(w http.ResponseWriter, err error) {
	ce, ok := err.(errors.CustomError)
	if !ok {
		logger.Error("[writeError] unexpected error", zap.String("error", err.Error()))
		ce = errors.SetCustomError(constant.ErrInternal)
	}
	writeJSON(w, ce.ErrorHTTPCode(), errorBody{
		Message: ce.Error(),
		Code:    ce.ErrorCode(),
		Errors:  ce.Fields(),
	})
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
