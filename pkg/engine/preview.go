package engine

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// File is an attached upload. The handle becomes the field value.
type File struct {
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
	Data        []byte `json:"-"`
}

// IsImage reports whether the file can be previewed as an image.
func (f File) IsImage() bool {
	return strings.HasPrefix(strings.ToLower(f.ContentType), "image/")
}

// PreviewStore issues transient local preview URLs for attached files.
type PreviewStore interface {
	Create(file File) (string, error)
	Revoke(url string)
}

// MemoryPreviews keeps previews in memory under blob: URLs.
type MemoryPreviews struct {
	mu    sync.RWMutex
	files map[string]File
}

// NewMemoryPreviews returns an empty store.
func NewMemoryPreviews() *MemoryPreviews {
	return &MemoryPreviews{files: make(map[string]File)}
}

// Create registers file and returns its blob: URL.
func (m *MemoryPreviews) Create(file File) (string, error) {
	url := "blob:formkit/" + uuid.NewString()
	m.mu.Lock()
	m.files[url] = file
	m.mu.Unlock()
	return url, nil
}

// Revoke forgets url.
func (m *MemoryPreviews) Revoke(url string) {
	m.mu.Lock()
	delete(m.files, url)
	m.mu.Unlock()
}

// Lookup returns the file behind url.
func (m *MemoryPreviews) Lookup(url string) (File, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	file, ok := m.files[url]
	return file, ok
}

// Len reports how many previews are live.
func (m *MemoryPreviews) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.files)
}
