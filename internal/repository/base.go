package repository

import "context"

// Base is the generic repository embedded by the entity repositories.
//
// Values returned by the Find methods are detached copies; changing them
// has no effect until they are passed to Update.
type Base[T any] struct {
	gateway Gateway
}

func NewBase[T any](gateway Gateway) Base[T] {
	return Base[T]{gateway: gateway}
}

func (r Base[T]) FindAll(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.gateway.FindAll(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r Base[T]) FindBy(ctx context.Context, scopes ...Scope) ([]T, error) {
	var out []T
	if err := r.gateway.FindBy(ctx, &out, scopes...); err != nil {
		return nil, err
	}
	return out, nil
}

// FindOne returns the first match, or nil when nothing matches.
func (r Base[T]) FindOne(ctx context.Context, scopes ...Scope) (*T, error) {
	out, err := r.FindBy(ctx, append(scopes[:len(scopes):len(scopes)], Limit(1))...)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return &out[0], nil
}

func (r Base[T]) Create(entity *T) {
	r.gateway.Add(entity)
}

// Update stages a write of every column of entity.
func (r Base[T]) Update(entity *T) {
	r.gateway.MarkUpdated(entity)
}

func (r Base[T]) Delete(entity *T) {
	r.gateway.Remove(entity)
}
