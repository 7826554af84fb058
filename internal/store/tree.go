// Package store abstracts the hierarchical key-value database the API keeps
// agendas and memberships in. Paths are slash separated, e.g. "agenda/<id>/tarefas".
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Tree is the subset of Realtime Database operations the services need.
type Tree interface {
	// Get decodes the node at path into v. It reports false when the node is absent.
	Get(ctx context.Context, path string, v interface{}) (bool, error)
	Set(ctx context.Context, path string, v interface{}) error
	Update(ctx context.Context, path string, fields map[string]interface{}) error
	Delete(ctx context.Context, path string) error
	// QueryEqual returns the children of path whose child field equals value,
	// ordered by key.
	QueryEqual(ctx context.Context, path, child string, value interface{}) ([]Node, error)
}

// Node is a single query result.
type Node struct {
	Key   string
	Value json.RawMessage
}

func (n Node) Unmarshal(v interface{}) error {
	return json.Unmarshal(n.Value, v)
}

// Join builds a store path from segments.
func Join(parts ...string) string {
	trimmed := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(p, "/")
		if p != "" {
			trimmed = append(trimmed, p)
		}
	}
	return strings.Join(trimmed, "/")
}

// ValidKey reports whether s can be used as a single path segment.
func ValidKey(s string) bool {
	if s == "" || len(s) > 768 {
		return false
	}
	for _, r := range s {
		if r < 0x20 || r == 0x7f || strings.ContainsRune(".$#[]/", r) {
			return false
		}
	}
	return true
}

// Exists reports whether any value is stored at path.
func Exists(ctx context.Context, t Tree, path string) (bool, error) {
	var raw json.RawMessage
	return t.Get(ctx, path, &raw)
}

// MutateExisting runs mutate only when a node is stored at path and returns
// notFound otherwise. Every update and delete on agendas, their children and
// memberships goes through here.
func MutateExisting(ctx context.Context, t Tree, path string, notFound error, mutate func(ctx context.Context) error) error {
	ok, err := Exists(ctx, t, path)
	if err != nil {
		return fmt.Errorf("check %s: %w", path, err)
	}
	if !ok {
		return notFound
	}
	return mutate(ctx)
}

func isNull(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}
