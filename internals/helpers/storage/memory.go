package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryStorage keeps objects in process memory. Used when no bucket is
// configured in development and by tests.
type MemoryStorage struct {
	BaseURL string

	mu      sync.RWMutex
	objects map[string]memoryObject
	now     func() time.Time
}

type memoryObject struct {
	data         []byte
	contentType  string
	lastModified time.Time
}

func NewMemoryStorage(baseURL string) *MemoryStorage {
	if baseURL == "" {
		baseURL = "http://localhost/storage"
	}
	return &MemoryStorage{
		BaseURL: strings.TrimRight(baseURL, "/"),
		objects: map[string]memoryObject{},
		now:     time.Now,
	}
}

func (m *MemoryStorage) PutObject(ctx context.Context, key string, r io.Reader, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.Put(key, data, contentType, m.now())
	return nil
}

// Put stores an object with an explicit modification time.
func (m *MemoryStorage) Put(key string, data []byte, contentType string, modified time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = memoryObject{data: bytes.Clone(data), contentType: contentType, lastModified: modified}
}

func (m *MemoryStorage) Get(key string) ([]byte, string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.objects[key]
	return o.data, o.contentType, ok
}

func (m *MemoryStorage) signed(key, method string, expires time.Duration) string {
	q := url.Values{}
	q.Set("method", method)
	q.Set("expires", fmt.Sprint(m.now().Add(expires).Unix()))
	return m.PublicURL(key) + "?" + q.Encode()
}

func (m *MemoryStorage) SignPutURL(key, contentType string, expires time.Duration) (string, error) {
	return m.signed(key, "PUT", expires), nil
}

func (m *MemoryStorage) SignGetURL(key string, expires time.Duration) (string, error) {
	return m.signed(key, "GET", expires), nil
}

func (m *MemoryStorage) PublicURL(key string) string {
	return m.BaseURL + "/" + key
}

func (m *MemoryStorage) KeyFromURL(publicURL string) (string, error) {
	return keyFromURL(publicURL, m.BaseURL)
}

func (m *MemoryStorage) ListObjects(ctx context.Context, prefix string, visit func(ObjectInfo) error) error {
	m.mu.RLock()
	infos := make([]ObjectInfo, 0, len(m.objects))
	for k, o := range m.objects {
		if strings.HasPrefix(k, prefix) {
			infos = append(infos, ObjectInfo{Key: k, Size: int64(len(o.data)), LastModified: o.lastModified})
		}
	}
	m.mu.RUnlock()

	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })
	for _, info := range infos {
		if err := visit(info); err != nil {
			return err
		}
	}
	return nil
}

func (m *MemoryStorage) DeleteObjects(ctx context.Context, keys []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.objects, k)
	}
	return nil
}
