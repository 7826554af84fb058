package store

import (
	"context"
	"encoding/json"
	"fmt"

	"firebase.google.com/go/v4/db"
)

// FirebaseTree is a Tree backed by the Firebase Realtime Database.
type FirebaseTree struct {
	client *db.Client
}

func NewFirebaseTree(client *db.Client) *FirebaseTree {
	return &FirebaseTree{client: client}
}

func (f *FirebaseTree) ref(path string) *db.Ref {
	return f.client.NewRef("/" + path)
}

func (f *FirebaseTree) Get(ctx context.Context, path string, v interface{}) (bool, error) {
	var raw json.RawMessage
	if err := f.ref(path).Get(ctx, &raw); err != nil {
		return false, fmt.Errorf("get %s: %w", path, err)
	}
	if isNull(raw) {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", path, err)
	}
	return true, nil
}

func (f *FirebaseTree) Set(ctx context.Context, path string, v interface{}) error {
	if err := f.ref(path).Set(ctx, v); err != nil {
		return fmt.Errorf("set %s: %w", path, err)
	}
	return nil
}

func (f *FirebaseTree) Update(ctx context.Context, path string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	if err := f.ref(path).Update(ctx, fields); err != nil {
		return fmt.Errorf("update %s: %w", path, err)
	}
	return nil
}

func (f *FirebaseTree) Delete(ctx context.Context, path string) error {
	if err := f.ref(path).Delete(ctx); err != nil {
		return fmt.Errorf("delete %s: %w", path, err)
	}
	return nil
}

// QueryEqual needs an ".indexOn" rule for child on path in the database rules.
func (f *FirebaseTree) QueryEqual(ctx context.Context, path, child string, value interface{}) ([]Node, error) {
	results, err := f.ref(path).OrderByChild(child).EqualTo(value).GetOrdered(ctx)
	if err != nil {
		return nil, fmt.Errorf("query %s by %s: %w", path, child, err)
	}

	nodes := make([]Node, 0, len(results))
	for _, r := range results {
		var raw json.RawMessage
		if err := r.Unmarshal(&raw); err != nil {
			return nil, fmt.Errorf("decode %s/%s: %w", path, r.Key(), err)
		}
		nodes = append(nodes, Node{Key: r.Key(), Value: raw})
	}
	return nodes, nil
}
