// Package join builds read views of records by replacing reference fields
// with projections of the records they point to.
//
// A reference whose target no longer exists is replaced by an absent marker
// {"$absent": true, "$oid": "<id>"} so callers can render a placeholder
// instead of failing. Populating never writes to the store.
package join

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/yigit/facultyhub/internal/store"
)

// Source is the read side of the store the engine resolves against.
type Source interface {
	Documents(ctx context.Context, kind store.Kind) (map[string]map[string]any, error)
}

// View is a record rendered as a generic JSON object.
type View map[string]any

// Field describes one reference field of a record.
type Field struct {
	// Path is the key holding a reference or an array of references.
	Path string
	// From is the collection the reference points into.
	From store.Kind
	// Project lists the target keys to keep. Empty keeps the whole target.
	// "_id" is always kept.
	Project []string
	// Nested populates references of the target in turn.
	Nested Spec
	// As is the output key. Defaults to Path, replacing the reference.
	As string
}

// Spec lists the reference fields to populate.
type Spec []Field

const (
	absentKey = "$absent"
	oidKey    = "$oid"
)

// Absent returns the marker used for a reference that did not resolve.
func Absent(id string) map[string]any {
	return map[string]any{absentKey: true, oidKey: id}
}

// IsAbsent reports whether v is an absent marker.
func IsAbsent(v any) bool {
	m, ok := v.(map[string]any)
	if !ok {
		return false
	}
	absent, _ := m[absentKey].(bool)
	return absent
}

// Engine resolves references against a Source.
type Engine struct {
	src Source
}

// New creates an Engine.
func New(src Source) *Engine {
	return &Engine{src: src}
}

// Populate renders one record with the references in spec resolved.
func (e *Engine) Populate(ctx context.Context, record any, spec Spec) (View, error) {
	view, err := ToView(record)
	if err != nil {
		return nil, err
	}
	r := e.resolver(ctx)
	if err := r.apply(view, spec); err != nil {
		return nil, err
	}
	return view, nil
}

// PopulateAll renders records with spec, loading every referenced
// collection once for the whole batch.
func PopulateAll[T any](ctx context.Context, e *Engine, records []T, spec Spec) ([]View, error) {
	r := e.resolver(ctx)
	views := make([]View, 0, len(records))
	for i := range records {
		view, err := ToView(records[i])
		if err != nil {
			return nil, err
		}
		if err := r.apply(view, spec); err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// ToView converts a record into its generic JSON object form.
func ToView(record any) (View, error) {
	if v, ok := record.(View); ok {
		return copyDoc(v), nil
	}
	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("encoding record: %w", err)
	}
	var view View
	if err := json.Unmarshal(data, &view); err != nil {
		return nil, fmt.Errorf("record is not an object: %w", err)
	}
	return view, nil
}

// resolver caches collections for the duration of one populate call.
type resolver struct {
	ctx  context.Context
	src  Source
	docs map[store.Kind]map[string]map[string]any
}

func (e *Engine) resolver(ctx context.Context) *resolver {
	return &resolver{ctx: ctx, src: e.src, docs: make(map[store.Kind]map[string]map[string]any)}
}

func (r *resolver) collection(kind store.Kind) (map[string]map[string]any, error) {
	if docs, ok := r.docs[kind]; ok {
		return docs, nil
	}
	docs, err := r.src.Documents(r.ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("populating from %s: %w", kind, err)
	}
	r.docs[kind] = docs
	return docs, nil
}

func (r *resolver) apply(view map[string]any, spec Spec) error {
	for _, f := range spec {
		raw, ok := view[f.Path]
		if !ok || raw == nil {
			continue
		}
		out := f.As
		if out == "" {
			out = f.Path
		}
		if list, isList := raw.([]any); isList {
			resolved := make([]any, 0, len(list))
			for _, item := range list {
				v, err := r.resolve(item, f)
				if err != nil {
					return err
				}
				resolved = append(resolved, v)
			}
			view[out] = resolved
			continue
		}
		v, err := r.resolve(raw, f)
		if err != nil {
			return err
		}
		view[out] = v
	}
	return nil
}

func (r *resolver) resolve(ref any, f Field) (any, error) {
	id := store.DocumentID(ref)
	if id == "" {
		return nil, nil
	}
	docs, err := r.collection(f.From)
	if err != nil {
		return nil, err
	}
	target, ok := docs[id]
	if !ok {
		return Absent(id), nil
	}
	projected := project(target, f)
	if err := r.apply(projected, f.Nested); err != nil {
		return nil, err
	}
	return projected, nil
}

// project copies the kept keys of doc. Keys needed by nested fields are
// kept as well.
func project(doc map[string]any, f Field) map[string]any {
	if len(f.Project) == 0 {
		return copyDoc(doc)
	}
	out := make(map[string]any, len(f.Project)+1)
	out["_id"] = doc["_id"]
	for _, key := range f.Project {
		if v, ok := doc[key]; ok {
			out[key] = v
		}
	}
	for _, n := range f.Nested {
		if v, ok := doc[n.Path]; ok {
			out[n.Path] = v
		}
	}
	return out
}

func copyDoc(doc map[string]any) map[string]any {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}
