// Package media persists binaries picked in the content form and turns them
// into reference URLs before items reach the content store.
package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/lumenworks/sitecms/backend/go-services/internal/content"
	"github.com/lumenworks/sitecms/backend/go-services/internal/storage"
)

// Store persists a binary under key and returns where it can be fetched.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
}

var _ Store = (*storage.MinIOStorage)(nil)

// Key builds a collision-free object key that keeps the file extension.
// kind is "images" or "documents".
func Key(kind, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("%s/%s%s", kind, uuid.NewString(), ext)
}

func kindOf(contentType string) string {
	if strings.HasPrefix(contentType, "image/") {
		return "images"
	}
	return "documents"
}

// Uploader adapts a Store to the content service's pending-media hook.
type Uploader struct {
	store Store
}

func NewUploader(s Store) *Uploader { return &Uploader{store: s} }

func (u *Uploader) Upload(ctx context.Context, up content.Upload) (string, error) {
	if len(up.Data) == 0 {
		return "", fmt.Errorf("%s is empty", up.Filename)
	}
	key := Key(kindOf(up.ContentType), up.Filename)
	return u.store.Put(ctx, key, bytes.NewReader(up.Data), int64(len(up.Data)), up.ContentType)
}

// Object is a binary held by MemoryStore.
type Object struct {
	ContentType string
	Data        []byte
}

// MemoryStore keeps objects in process. URLs are BaseURL + "/" + key.
type MemoryStore struct {
	BaseURL string

	mu      sync.RWMutex
	objects map[string]Object
}

func NewMemoryStore(baseURL string) *MemoryStore {
	if baseURL == "" {
		baseURL = "/media"
	}
	return &MemoryStore{BaseURL: strings.TrimRight(baseURL, "/"), objects: make(map[string]Object)}
}

func (m *MemoryStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", key, err)
	}
	m.mu.Lock()
	m.objects[key] = Object{ContentType: contentType, Data: data}
	m.mu.Unlock()
	return storage.ObjectURL(m.BaseURL, key), nil
}

// Get returns a stored object by key.
func (m *MemoryStore) Get(key string) (Object, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.objects[key]
	return o, ok
}

// Len reports how many objects are stored.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
