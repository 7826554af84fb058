package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// MemoryTree is an in-process Tree with Realtime Database semantics: values
// are normalized through JSON, writing null or an empty object removes the
// node, and emptied parents disappear. Used by BACKEND=memory and tests.
type MemoryTree struct {
	mu   sync.RWMutex
	root map[string]interface{}

	// FailWith, when set, is returned by every operation.
	FailWith error
}

func NewMemoryTree() *MemoryTree {
	return &MemoryTree{root: map[string]interface{}{}}
}

func segments(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

func normalize(v interface{}) (interface{}, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return prune(out), nil
}

// prune drops nulls and empty objects the way the database does.
func prune(v interface{}) interface{} {
	m, ok := v.(map[string]interface{})
	if !ok {
		return v
	}
	for k, child := range m {
		child = prune(child)
		if child == nil {
			delete(m, k)
			continue
		}
		m[k] = child
	}
	if len(m) == 0 {
		return nil
	}
	return m
}

func (m *MemoryTree) lookup(path string) interface{} {
	var cur interface{} = m.root
	for _, seg := range segments(path) {
		node, ok := cur.(map[string]interface{})
		if !ok {
			return nil
		}
		cur = node[seg]
	}
	if root, ok := cur.(map[string]interface{}); ok && len(root) == 0 {
		return nil
	}
	return cur
}

// write stores value (already normalized) at path, creating or pruning parents.
func (m *MemoryTree) write(path string, value interface{}) {
	segs := segments(path)
	if len(segs) == 0 {
		if root, ok := value.(map[string]interface{}); ok {
			m.root = root
		} else {
			m.root = map[string]interface{}{}
		}
		return
	}

	parents := []map[string]interface{}{m.root}
	cur := m.root
	for _, seg := range segs[:len(segs)-1] {
		next, ok := cur[seg].(map[string]interface{})
		if !ok {
			if value == nil {
				return
			}
			next = map[string]interface{}{}
			cur[seg] = next
		}
		parents = append(parents, next)
		cur = next
	}

	last := segs[len(segs)-1]
	if value == nil {
		delete(cur, last)
	} else {
		cur[last] = value
	}

	for i := len(parents) - 1; i > 0; i-- {
		if len(parents[i]) > 0 {
			break
		}
		delete(parents[i-1], segs[i-1])
	}
}

func (m *MemoryTree) Get(_ context.Context, path string, v interface{}) (bool, error) {
	if m.FailWith != nil {
		return false, m.FailWith
	}
	m.mu.RLock()
	node := m.lookup(path)
	var data []byte
	var err error
	if node != nil {
		data, err = json.Marshal(node)
	}
	m.mu.RUnlock()

	if node == nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("encode %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", path, err)
	}
	return true, nil
}

func (m *MemoryTree) Set(_ context.Context, path string, v interface{}) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	value, err := normalize(v)
	if err != nil {
		return fmt.Errorf("set %s: %w", path, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.write(path, value)
	return nil
}

// Update writes each field as a child of path; keys may be nested paths.
func (m *MemoryTree) Update(_ context.Context, path string, fields map[string]interface{}) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	normalized := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		value, err := normalize(v)
		if err != nil {
			return fmt.Errorf("update %s/%s: %w", path, k, err)
		}
		normalized[k] = value
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for k, value := range normalized {
		m.write(Join(path, k), value)
	}
	return nil
}

func (m *MemoryTree) Delete(_ context.Context, path string) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.write(path, nil)
	return nil
}

func (m *MemoryTree) QueryEqual(_ context.Context, path, child string, value interface{}) ([]Node, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	want, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("query %s by %s: %w", path, child, err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	parent, _ := m.lookup(path).(map[string]interface{})
	keys := make([]string, 0, len(parent))
	for k := range parent {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var nodes []Node
	for _, k := range keys {
		obj, ok := parent[k].(map[string]interface{})
		if !ok {
			continue
		}
		got, err := json.Marshal(obj[child])
		if err != nil || !bytes.Equal(got, want) {
			continue
		}
		raw, err := json.Marshal(obj)
		if err != nil {
			return nil, fmt.Errorf("encode %s/%s: %w", path, k, err)
		}
		nodes = append(nodes, Node{Key: k, Value: raw})
	}
	return nodes, nil
}
