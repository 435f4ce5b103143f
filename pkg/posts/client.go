package posts

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-formkit/internal/logging"
	"github.com/goliatone/go-formkit/pkg/interfaces"
	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/render"
)

const (
	defaultTimeout = 15 * time.Second
	maxErrorBody   = 1 << 20
)

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient swaps the transport.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithHeader sets a header sent with every request.
func WithHeader(name, value string) ClientOption {
	return func(c *Client) {
		if name = strings.TrimSpace(name); name != "" {
			c.headers.Set(name, value)
		}
	}
}

// WithClientLogger attaches a logger.
func WithClientLogger(logger interfaces.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Client talks to the posts endpoints of the storefront API.
type Client struct {
	base    *url.URL
	http    *http.Client
	headers http.Header
	logger  interfaces.Logger
}

// NewClient targets baseURL; posts live under <baseURL>/posts.
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	parsed, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("posts: invalid base URL %q", baseURL)
	}
	c := &Client{
		base:    parsed,
		http:    &http.Client{Timeout: defaultTimeout},
		headers: make(http.Header),
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	c.logger = logging.WithFields(c.logger, map[string]any{"module": logging.PostsModule})
	return c, nil
}

// CreatePost persists a new post.
func (c *Client) CreatePost(ctx context.Context, data CreatePostData) (Post, error) {
	return c.send(ctx, http.MethodPost, "posts", data)
}

// UpdatePost replaces the post identified by id.
func (c *Client) UpdatePost(ctx context.Context, id string, data CreatePostData) (Post, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Post{}, goerrors.New("post id is required", goerrors.CategoryBadInput).WithTextCode("POST_ID_REQUIRED")
	}
	return c.send(ctx, http.MethodPut, "posts/"+url.PathEscape(id), data)
}

func (c *Client) send(ctx context.Context, method, path string, data CreatePostData) (Post, error) {
	body, err := Encode(data)
	if err != nil {
		return Post{}, err
	}
	endpoint := c.base.JoinPath(path).String()

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(body))
	if err != nil {
		return Post{}, fmt.Errorf("posts: build request: %w", err)
	}
	for name, values := range c.headers {
		req.Header[name] = append([]string(nil), values...)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("posts.request.failed", "method", method, "url", endpoint, "error", err)
		return Post{}, goerrors.Wrap(err, goerrors.CategoryExternal, "posts API request failed").
			WithTextCode("POST_API_UNREACHABLE")
	}
	defer resp.Body.Close()
	c.logger.Debug("posts.request.done", "method", method, "url", endpoint, "status", resp.StatusCode, "elapsed", time.Since(started))

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return Post{}, fmt.Errorf("posts: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Post{}, decodeAPIError(resp.StatusCode, raw)
	}

	var post Post
	if err := json.Unmarshal(raw, &post); err != nil {
		return Post{}, fmt.Errorf("posts: decode response: %w", err)
	}
	return post, nil
}

// APIError is a non-2xx answer from the API. Fields holds per-field
// messages keyed by the server's paths.
type APIError struct {
	Status  int
	Message string
	Fields  map[string][]string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("posts: API error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("posts: API error %d", e.Status)
}

// Category maps the status onto the error taxonomy.
func (e *APIError) Category() goerrors.Category {
	switch {
	case e.Status == http.StatusBadRequest || e.Status == http.StatusUnprocessableEntity:
		return goerrors.CategoryValidation
	case e.Status == http.StatusUnauthorized:
		return goerrors.CategoryAuth
	case e.Status == http.StatusForbidden:
		return goerrors.CategoryAuthz
	case e.Status == http.StatusNotFound:
		return goerrors.CategoryNotFound
	case e.Status == http.StatusConflict:
		return goerrors.CategoryConflict
	case e.Status == http.StatusTooManyRequests:
		return goerrors.CategoryRateLimit
	default:
		return goerrors.CategoryExternal
	}
}

// Mapping places the field errors on the fields of form; anything that
// matches no field, plus the top-level message, becomes a form message.
func (e *APIError) Mapping(form model.FormModel) render.ErrorMapping {
	mapping := render.MapErrorPayload(form, e.Fields)
	if e.Message != "" {
		mapping.Form = render.MergeFormErrors([]string{e.Message}, mapping.Form...)
	}
	return mapping
}

// apiErrorBody accepts the error envelopes the API emits: a message plus
// either an "errors" map or a list of {field, message} entries.
type apiErrorBody struct {
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Errors  json.RawMessage `json:"errors"`
}

type apiFieldError struct {
	Field   string `json:"field"`
	Path    string `json:"path"`
	Message string `json:"message"`
}

func decodeAPIError(status int, raw []byte) error {
	out := &APIError{Status: status}
	var body apiErrorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		out.Message = strings.TrimSpace(string(raw))
		if out.Message == "" {
			out.Message = http.StatusText(status)
		}
		return out
	}
	out.Message = strings.TrimSpace(body.Message)
	if out.Message == "" {
		out.Message = strings.TrimSpace(body.Error)
	}
	if len(body.Errors) == 0 {
		return out
	}

	var byField map[string]json.RawMessage
	if err := json.Unmarshal(body.Errors, &byField); err == nil {
		out.Fields = make(map[string][]string, len(byField))
		for key, value := range byField {
			var list []string
			if err := json.Unmarshal(value, &list); err == nil {
				out.Fields[key] = list
				continue
			}
			var single string
			if err := json.Unmarshal(value, &single); err == nil {
				out.Fields[key] = []string{single}
			}
		}
		return out
	}

	var list []apiFieldError
	if err := json.Unmarshal(body.Errors, &list); err == nil {
		out.Fields = make(map[string][]string, len(list))
		for _, item := range list {
			key := item.Field
			if key == "" {
				key = item.Path
			}
			if key == "" {
				key = "form"
			}
			out.Fields[key] = append(out.Fields[key], item.Message)
		}
	}
	return out
}
