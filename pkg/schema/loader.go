package schema

import (
	"context"
	"io/fs"
	"net/http"
	"time"
)

// Loader fetches raw schema documents.
type Loader interface {
	Load(ctx context.Context, src Source) (Document, error)
}

// LoaderOptions configures the default loader. HTTP access is off unless a
// client is supplied or AllowHTTP is set.
type LoaderOptions struct {
	FileSystem     fs.FS
	Builtins       fs.FS
	HTTPClient     *http.Client
	AllowHTTP      bool
	RequestTimeout time.Duration
}

// LoaderOption mutates LoaderOptions prior to construction.
type LoaderOption func(*LoaderOptions)

// WithFileSystem resolves fs sources against files.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// WithBuiltins resolves builtin sources as "<name>.yaml" inside files.
func WithBuiltins(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.Builtins = files
	}
}

// WithHTTPClient enables URL sources through client.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.HTTPClient = client
	}
}

// WithHTTPFallback enables URL sources with a default client and timeout.
func WithHTTPFallback(timeout time.Duration) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.AllowHTTP = true
		opts.RequestTimeout = timeout
	}
}

// NewLoaderOptions applies options over the zero configuration.
func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	var cfg LoaderOptions
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
