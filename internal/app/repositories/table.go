package repositories

import (
	"context"

	"github.com/yigit/facultyhub/internal/app/models"
	"github.com/yigit/facultyhub/internal/pkg/apperrors"
	"github.com/yigit/facultyhub/internal/store"
)

// table holds the lookup and mutation helpers shared by every repository.
// All mutations run inside Collection.Update, so a uniqueness check and the
// write that depends on it happen under the same lock.
type table[T models.Entity] struct {
	col    *store.Collection[T]
	entity string
}

func newTable[T models.Entity](db *store.DB, kind store.Kind, entity string) table[T] {
	return table[T]{col: store.NewCollection[T](db, kind), entity: entity}
}

func (t table[T]) nextID() models.ObjectID {
	return models.ObjectID(t.col.NextID())
}

func (t table[T]) all(ctx context.Context) ([]T, error) {
	return t.col.LoadAll(ctx)
}

func (t table[T]) filter(ctx context.Context, keep func(*T) bool) ([]T, error) {
	records, err := t.col.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(records))
	for i := range records {
		if keep(&records[i]) {
			out = append(out, records[i])
		}
	}
	return out, nil
}

// find returns the first record matching pred, or nil.
func (t table[T]) find(ctx context.Context, pred func(*T) bool) (*T, error) {
	records, err := t.col.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if pred(&records[i]) {
			return &records[i], nil
		}
	}
	return nil, nil
}

func (t table[T]) get(ctx context.Context, id models.ObjectID) (*T, error) {
	rec, err := t.find(ctx, func(r *T) bool { return (*r).EntityID() == id })
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, apperrors.NotFound(t.entity, id.String())
	}
	return rec, nil
}

// exists reports whether id resolves, without failing on a miss.
func (t table[T]) exists(ctx context.Context, id models.ObjectID) (bool, error) {
	rec, err := t.find(ctx, func(r *T) bool { return (*r).EntityID() == id })
	return rec != nil, err
}

// insert appends rec after check accepted the current contents.
func (t table[T]) insert(ctx context.Context, rec T, check func(records []T) error) error {
	return t.col.Update(ctx, func(records []T) ([]T, error) {
		if check != nil {
			if err := check(records); err != nil {
				return nil, err
			}
		}
		return append(records, rec), nil
	})
}

// modify applies fn to the record with the given id. check sees the other
// records after fn ran, so it can enforce uniqueness of changed fields.
func (t table[T]) modify(ctx context.Context, id models.ObjectID, fn func(*T) error, check func(updated *T, others []T) error) (*T, error) {
	var result T
	err := t.col.Update(ctx, func(records []T) ([]T, error) {
		idx := indexOf(records, id)
		if idx < 0 {
			return nil, apperrors.NotFound(t.entity, id.String())
		}
		rec := records[idx]
		if err := fn(&rec); err != nil {
			return nil, err
		}
		if check != nil {
			others := make([]T, 0, len(records)-1)
			others = append(others, records[:idx]...)
			others = append(others, records[idx+1:]...)
			if err := check(&rec, others); err != nil {
				return nil, err
			}
		}
		records[idx] = rec
		result = rec
		return records, nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// remove deletes the record with the given id after guard accepted it.
func (t table[T]) remove(ctx context.Context, id models.ObjectID, guard func(*T) error) (*T, error) {
	var removed T
	err := t.col.Update(ctx, func(records []T) ([]T, error) {
		idx := indexOf(records, id)
		if idx < 0 {
			return nil, apperrors.NotFound(t.entity, id.String())
		}
		if guard != nil {
			if err := guard(&records[idx]); err != nil {
				return nil, err
			}
		}
		removed = records[idx]
		return append(records[:idx], records[idx+1:]...), nil
	})
	if err != nil {
		return nil, err
	}
	return &removed, nil
}

// removeIDs deletes every listed id that exists and returns how many went.
func (t table[T]) removeIDs(ctx context.Context, ids ...models.ObjectID) (int, error) {
	drop := make(map[models.ObjectID]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	removed := 0
	err := t.col.Update(ctx, func(records []T) ([]T, error) {
		kept := records[:0]
		for _, r := range records {
			if _, ok := drop[r.EntityID()]; ok {
				removed++
				continue
			}
			kept = append(kept, r)
		}
		return kept, nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

func indexOf[T models.Entity](records []T, id models.ObjectID) int {
	for i := range records {
		if records[i].EntityID() == id {
			return i
		}
	}
	return -1
}
