// Package eduzapapi is the HTTP client for the EduZap requests API. It owns
// the wire format: envelopes, multipart uploads and id normalization.
package eduzapapi

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"strings"

	"github.com/eduzap/eduzap/constant"
	"github.com/eduzap/eduzap/model"
	"github.com/eduzap/eduzap/thirdparty/media"
	"github.com/eduzap/eduzap/utils/errors"
	"github.com/eduzap/eduzap/utils/logger"
	"go.uber.org/zap"
)

// ImageOpener reads the bytes behind an attachment URI.
type ImageOpener func(uri string) (io.ReadCloser, error)

// OpenFile opens local paths and file:// URIs.
func OpenFile(uri string) (io.ReadCloser, error) {
	return os.Open(strings.TrimPrefix(uri, "file://"))
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	openImage  ImageOpener
}

type Option func(*Client)

// WithHTTPClient replaces the underlying client. Its timeout is kept as is.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithImageOpener(open ImageOpener) Option {
	return func(c *Client) { c.openImage = open }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: constant.RequestTimeout},
		openImage:  OpenFile,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListRequests fetches one page of requests.
func (c *Client) ListRequests(ctx context.Context, params model.ListParams) (*model.ListResponse, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/requests?"+params.Query().Encode(), nil)
	if err != nil {
		return nil, err
	}

	var env struct {
		Data []wireRequest `json:"data"`
		Meta *model.Meta   `json:"meta"`
	}
	if err := c.do(req, &env); err != nil {
		return nil, err
	}

	res := &model.ListResponse{Data: make([]model.Request, 0, len(env.Data)), Meta: env.Meta}
	for _, w := range env.Data {
		res.Data = append(res.Data, w.normalize())
	}
	return res, nil
}

// CreateRequest submits a validated payload, as multipart when an image is attached.
func (c *Client) CreateRequest(ctx context.Context, payload *model.RequestPayload, image *model.ImageAttachment) (*model.RequestResponse, error) {
	var (
		body        io.Reader
		contentType string
	)
	if image != nil {
		buf, ct, err := c.multipartBody(payload, image)
		if err != nil {
			return nil, err
		}
		body, contentType = buf, ct
	} else {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, errors.SetCustomError(constant.ErrInternal).WithCause(err)
		}
		body, contentType = bytes.NewReader(raw), "application/json"
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/requests", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	return c.doSingle(req)
}

// DeleteRequest removes a request by its canonical id.
func (c *Client) DeleteRequest(ctx context.Context, id string) (*model.RequestResponse, error) {
	req, err := c.newRequest(ctx, http.MethodDelete, "/requests/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	return c.doSingle(req)
}

func (c *Client) multipartBody(payload *model.RequestPayload, image *model.ImageAttachment) (*bytes.Buffer, string, error) {
	f, err := c.openImage(image.URI)
	if err != nil {
		logger.Error("[CreateRequest] err openImage", zap.String("uri", image.URI), zap.String("error", err.Error()))
		return nil, "", errors.SetCustomError(constant.ErrInvalidRequest).WithMessage(constant.MsgPickFailed).WithCause(err)
	}
	defer f.Close()

	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	for _, field := range [][2]string{
		{model.FieldName, payload.Name},
		{model.FieldPhone, payload.Phone},
		{model.FieldTitle, payload.Title},
	} {
		if err := mw.WriteField(field[0], field[1]); err != nil {
			return nil, "", errors.SetCustomError(constant.ErrInternal).WithCause(err)
		}
	}

	name := image.Name
	if name == "" {
		name = "image"
	}
	ct := image.ContentType
	if ct == "" {
		ct = media.InferImageType(name)
	}
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, model.FieldImage, escapeQuotes(name)))
	h.Set("Content-Type", ct)
	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, "", errors.SetCustomError(constant.ErrInternal).WithCause(err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", errors.SetCustomError(constant.ErrInvalidRequest).WithMessage(constant.MsgPickFailed).WithCause(err)
	}
	if err := mw.Close(); err != nil {
		return nil, "", errors.SetCustomError(constant.ErrInternal).WithCause(err)
	}
	return buf, mw.FormDataContentType(), nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, errors.SetCustomError(constant.ErrNetwork).WithCause(err)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *Client) doSingle(req *http.Request) (*model.RequestResponse, error) {
	var env struct {
		Data *wireRequest `json:"data"`
	}
	if err := c.do(req, &env); err != nil {
		return nil, err
	}
	res := &model.RequestResponse{}
	if env.Data != nil {
		r := env.Data.normalize()
		res.Data = &r
	}
	return res, nil
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classifyTransport(req, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return classifyTransport(req, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Warn("[eduzapapi] non-2xx response",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Int("status", resp.StatusCode),
		)
		ce := errors.SetCustomError(constant.ErrServer).WithStatus(resp.StatusCode)
		if msg := serverMessage(raw); msg != "" {
			ce = ce.WithMessage(msg)
		}
		return ce
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		logger.Error("[eduzapapi] err json.Unmarshal", zap.String("path", req.URL.Path), zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrMalformedResponse).WithCause(err)
	}
	return nil
}

func classifyTransport(req *http.Request, err error) error {
	var netErr net.Error
	timeout := stderrors.Is(err, context.DeadlineExceeded) || (stderrors.As(err, &netErr) && netErr.Timeout())
	logger.Warn("[eduzapapi] transport failure",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Bool("timeout", timeout),
		zap.String("error", err.Error()),
	)
	if timeout {
		return errors.SetCustomError(constant.ErrTimeout).WithCause(err)
	}
	return errors.SetCustomError(constant.ErrNetwork).WithCause(err)
}

// serverMessage extracts a human message from an error body, if there is one.
func serverMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}

func escapeQuotes(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}
