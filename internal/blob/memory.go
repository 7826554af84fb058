package blob

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

const memoryBaseURL = "https://blob.local/"

type memoryObject struct {
	entry Entry
	data  []byte
}

// MemoryStore keeps blobs in process for BACKEND=memory and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]memoryObject

	// FailWith, when set, is returned by every operation.
	FailWith error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: map[string]memoryObject{}}
}

func (m *MemoryStore) Put(_ context.Context, filename, contentType string, data io.Reader) (Entry, error) {
	if m.FailWith != nil {
		return Entry{}, m.FailWith
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, data); err != nil {
		return Entry{}, fmt.Errorf("read upload: %w", err)
	}

	key := objectKey(filename)
	entry := Entry{
		Pathname:    key,
		URL:         memoryBaseURL + url.PathEscape(key),
		ContentType: contentType,
		Size:        int64(buf.Len()),
		UploadedAt:  time.Now().UTC(),
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = memoryObject{entry: entry, data: buf.Bytes()}
	return entry, nil
}

func (m *MemoryStore) List(_ context.Context) ([]Entry, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Entry, 0, len(m.objects))
	for _, o := range m.objects {
		out = append(out, o.entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Pathname < out[j].Pathname })
	return out, nil
}

func (m *MemoryStore) Delete(_ context.Context, rawURL string) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	if !strings.HasPrefix(rawURL, memoryBaseURL) {
		return ErrInvalidURL
	}
	key, err := url.PathUnescape(strings.TrimPrefix(rawURL, memoryBaseURL))
	if err != nil {
		return ErrInvalidURL
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[key]; !ok {
		return ErrNotFound
	}
	delete(m.objects, key)
	return nil
}
