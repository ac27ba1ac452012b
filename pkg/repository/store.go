package repository

import (
	"context"
	"errors"
	"iter"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Store is a scoped gorm store for estate-owned rows of type T.
type Store[T any] struct {
	estateColumn string
	ordering     Ordering
}

// NewStore returns a store whose scope is enforced on estateColumn.
func NewStore[T any](estateColumn string, ordering Ordering) *Store[T] {
	return &Store[T]{estateColumn: estateColumn, ordering: ordering}
}

func (s *Store[T]) scoped(ctx context.Context, db *gorm.DB, scope Scope) *gorm.DB {
	stmt := db.WithContext(ctx).Model(new(T))
	if scope == nil {
		// No scope means no rows: an unscoped read is a programming error.
		return stmt.Where("1 = 0")
	}
	return scope.Apply(stmt, s.estateColumn)
}

// List validates the query and returns a lazy sequence over matching rows.
// Iteration stops at the first error, which is yielded with a nil row.
func (s *Store[T]) List(ctx context.Context, db *gorm.DB, scope Scope, q Query) (iter.Seq2[*T, error], error) {
	order, err := s.ordering.Resolve(q.OrderBy)
	if err != nil {
		return nil, err
	}

	return func(yield func(*T, error) bool) {
		stmt := s.scoped(ctx, db, scope)
		for _, cond := range q.Conditions {
			if cond != nil {
				stmt = cond(stmt)
			}
		}
		stmt = stmt.Order(order)
		if q.Limit > 0 {
			stmt = stmt.Limit(q.Limit)
		}

		rows, err := stmt.Rows()
		if err != nil {
			yield(nil, err)
			return
		}
		defer rows.Close()

		for rows.Next() {
			item := new(T)
			if err := db.ScanRows(rows, item); err != nil {
				yield(nil, err)
				return
			}
			if !yield(item, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(nil, err)
		}
	}, nil
}

// FindByID returns ErrNotFound when the row is absent or out of scope.
func (s *Store[T]) FindByID(ctx context.Context, db *gorm.DB, scope Scope, id snowflake.ID) (*T, error) {
	var result T
	err := s.scoped(ctx, db, scope).Where("id = ?", id).Take(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}

func (s *Store[T]) Insert(ctx context.Context, db *gorm.DB, resource *T) error {
	return db.WithContext(ctx).Create(resource).Error
}

// Updates applies fields to the scoped row. Zero affected rows is ErrNotFound.
func (s *Store[T]) Updates(ctx context.Context, db *gorm.DB, scope Scope, id snowflake.ID, fields map[string]any) error {
	res := s.scoped(ctx, db, scope).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the scoped row. Zero affected rows is ErrNotFound.
func (s *Store[T]) Delete(ctx context.Context, db *gorm.DB, scope Scope, id snowflake.ID) error {
	res := s.scoped(ctx, db, scope).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store[T]) Count(ctx context.Context, db *gorm.DB, scope Scope, conds ...Condition) (int64, error) {
	var count int64
	stmt := s.scoped(ctx, db, scope)
	for _, cond := range conds {
		if cond != nil {
			stmt = cond(stmt)
		}
	}
	err := stmt.Count(&count).Error
	return count, err
}

// Collect drains a sequence into a slice.
func Collect[T any](seq iter.Seq2[*T, error]) ([]T, error) {
	items := make([]T, 0)
	for item, err := range seq {
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, nil
}
