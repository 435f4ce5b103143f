package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/goliatone/go-formkit/pkg/schema"
)

// Loader resolves schema sources from disk, an fs.FS, the builtin set, or
// HTTP(S).
type Loader struct {
	fs       fs.FS
	builtins fs.FS
	http     *http.Client
	timeout  time.Duration
}

var _ schema.Loader = (*Loader)(nil)

// New constructs a Loader from resolved options.
func New(options schema.LoaderOptions) *Loader {
	var client *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if options.RequestTimeout > 0 && clone.Timeout == 0 {
			clone.Timeout = options.RequestTimeout
		}
		client = &clone
	case options.AllowHTTP:
		client = &http.Client{Timeout: options.RequestTimeout}
	}

	return &Loader{
		fs:       options.FileSystem,
		builtins: options.Builtins,
		http:     client,
		timeout:  options.RequestTimeout,
	}
}

// Load fetches the raw document behind src.
func (l *Loader) Load(ctx context.Context, src schema.Source) (schema.Document, error) {
	if src == nil {
		return schema.Document{}, errors.New("schema loader: source is nil")
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case schema.SourceKindFile:
		data, err = loadFile(ctx, src.Location())
	case schema.SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	case schema.SourceKindBuiltin:
		data, err = loadFromFS(ctx, l.builtins, src.Location()+".yaml")
	case schema.SourceKindURL:
		data, err = loadHTTP(ctx, l.http, src.Location(), l.timeout)
	default:
		err = fmt.Errorf("schema loader: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return schema.Document{}, err
	}
	return schema.NewDocument(src, data)
}
