package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Paths holds the endpoint templates of one collection. Item, Update and
// Delete take a single %d verb. An empty path means the operation is not
// exposed by the API.
type Paths struct {
	List   string
	Item   string
	Create string
	Update string
	Delete string
}

// Resource is a typed view over one collection endpoint family.
type Resource[T any] struct {
	client *Client
	name   string
	paths  Paths
}

func newResource[T any](c *Client, name string, paths Paths) *Resource[T] {
	return &Resource[T]{client: c, name: name, paths: paths}
}

func (r *Resource[T]) Name() string { return r.name }

// CanDelete reports whether the API exposes a delete endpoint for this collection.
func (r *Resource[T]) CanDelete() bool { return r.paths.Delete != "" }

// List fetches the full collection.
func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.client.do(ctx, r.name, "list", call{method: "GET", path: r.paths.List}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches a single record by id.
func (r *Resource[T]) Get(ctx context.Context, id int64) (T, error) {
	var out T
	if r.paths.Item == "" {
		return out, ErrUnsupported
	}
	err := r.client.do(ctx, r.name, "get", call{method: "GET", path: fmt.Sprintf(r.paths.Item, id)}, &out)
	return out, err
}

// Create posts body to the create endpoint. The response body, when it
// decodes as a record, is returned with ok set.
func (r *Resource[T]) Create(ctx context.Context, body any, query url.Values) (created T, ok bool, err error) {
	if r.paths.Create == "" {
		return created, false, ErrUnsupported
	}
	var raw rawBody
	if err := r.client.do(ctx, r.name, "create", call{method: "POST", path: r.paths.Create, query: query, body: body}, &raw); err != nil {
		return created, false, err
	}
	ok = raw.decode(&created)
	return created, ok, nil
}

// Update puts body to the update endpoint keyed by key. For most
// collections key is the record id; patients are keyed by section id.
func (r *Resource[T]) Update(ctx context.Context, key int64, body any, query url.Values) error {
	if r.paths.Update == "" {
		return ErrUnsupported
	}
	return r.client.do(ctx, r.name, "update", call{method: "PUT", path: fmt.Sprintf(r.paths.Update, key), query: query, body: body}, nil)
}

// Delete removes a record by id.
func (r *Resource[T]) Delete(ctx context.Context, id int64) error {
	if r.paths.Delete == "" {
		return ErrUnsupported
	}
	return r.client.do(ctx, r.name, "delete", call{method: "DELETE", path: fmt.Sprintf(r.paths.Delete, id)}, nil)
}

// IDList renders ids as the comma separated form used by personnelsIds.
func IDList(ids []int64) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, ",")
}

// rawBody keeps a create response undecoded; some endpoints answer with
// an empty or non-JSON body.
type rawBody []byte

func (b rawBody) decode(v any) bool {
	data := bytes.TrimSpace(b)
	if len(data) == 0 || data[0] != '{' {
		return false
	}
	return json.Unmarshal(data, v) == nil
}
