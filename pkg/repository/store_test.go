package repository

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/estatehub/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type widget struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	EstateID  snowflake.ID `gorm:"not null;index"`
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type estateScope struct {
	all bool
	id  snowflake.ID
}

func (s estateScope) Apply(db *gorm.DB, column string) *gorm.DB {
	if s.all {
		return db
	}
	return db.Where(column+" = ?", s.id)
}

func seedWidgets(t *testing.T) (*gorm.DB, *Store[widget]) {
	t.Helper()
	conn := db.NewTest(t, &widget{})
	store := NewStore[widget]("estate_id", Ordering{"name": "name", "created_at": "created_at"})

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []widget{
		{ID: 1, EstateID: 10, Name: "beta", CreatedAt: base},
		{ID: 2, EstateID: 10, Name: "alpha", CreatedAt: base.Add(time.Minute)},
		{ID: 3, EstateID: 20, Name: "gamma", CreatedAt: base.Add(2 * time.Minute)},
	}
	for i := range rows {
		require.NoError(t, store.Insert(context.Background(), conn, &rows[i]))
	}
	return conn, store
}

func TestStoreListAppliesScopeBeforeConditions(t *testing.T) {
	conn, store := seedWidgets(t)
	ctx := context.Background()

	seq, err := store.List(ctx, conn, estateScope{id: 10}, Query{
		Conditions: []Condition{Where("estate_id = ? OR 1 = 1", 20)},
	})
	require.NoError(t, err)
	items, err := Collect(seq)
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, item := range items {
		assert.Equal(t, snowflake.ID(10), item.EstateID)
	}
}

func TestStoreListNilScopeReturnsNothing(t *testing.T) {
	conn, store := seedWidgets(t)

	seq, err := store.List(context.Background(), conn, nil, Query{})
	require.NoError(t, err)
	items, err := Collect(seq)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestStoreListOrdering(t *testing.T) {
	conn, store := seedWidgets(t)
	ctx := context.Background()

	seq, err := store.List(ctx, conn, estateScope{all: true}, Query{OrderBy: "-name"})
	require.NoError(t, err)
	items, err := Collect(seq)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, []string{"gamma", "beta", "alpha"}, []string{items[0].Name, items[1].Name, items[2].Name})

	seq, err = store.List(ctx, conn, estateScope{all: true}, Query{})
	require.NoError(t, err)
	items, err = Collect(seq)
	require.NoError(t, err)
	assert.Equal(t, snowflake.ID(1), items[0].ID)

	_, err = store.List(ctx, conn, estateScope{all: true}, Query{OrderBy: "occupant_phone"})
	assert.True(t, IsValidationError(err))
}

func TestStoreListStopsEarly(t *testing.T) {
	conn, store := seedWidgets(t)

	seq, err := store.List(context.Background(), conn, estateScope{all: true}, Query{})
	require.NoError(t, err)

	seen := 0
	for item, err := range seq {
		require.NoError(t, err)
		require.NotNil(t, item)
		seen++
		break
	}
	assert.Equal(t, 1, seen)

	// The connection is released after an early break.
	count, err := store.Count(context.Background(), conn, estateScope{all: true})
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestStoreFindByIDOutOfScopeIsNotFound(t *testing.T) {
	conn, store := seedWidgets(t)
	ctx := context.Background()

	got, err := store.FindByID(ctx, conn, estateScope{id: 10}, 1)
	require.NoError(t, err)
	assert.Equal(t, "beta", got.Name)

	_, err = store.FindByID(ctx, conn, estateScope{id: 10}, 3)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.FindByID(ctx, conn, estateScope{id: 10}, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreScopedWrites(t *testing.T) {
	conn, store := seedWidgets(t)
	ctx := context.Background()

	err := store.Updates(ctx, conn, estateScope{id: 10}, 3, map[string]any{"name": "hijacked"})
	assert.ErrorIs(t, err, ErrNotFound)

	err = store.Delete(ctx, conn, estateScope{id: 10}, 3)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := store.FindByID(ctx, conn, estateScope{all: true}, 3)
	require.NoError(t, err)
	assert.Equal(t, "gamma", got.Name)

	require.NoError(t, store.Updates(ctx, conn, estateScope{id: 20}, 3, map[string]any{"name": "delta"}))
	require.NoError(t, store.Delete(ctx, conn, estateScope{id: 10}, 1))
	assert.ErrorIs(t, store.Delete(ctx, conn, nil, 2), ErrNotFound)

	count, err := store.Count(ctx, conn, estateScope{all: true})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	conn, store := seedWidgets(t)

	seq, err := store.List(context.Background(), conn, estateScope{all: true}, Query{
		Conditions: []Condition{Search("ALP", "name")},
	})
	require.NoError(t, err)
	items, err := Collect(seq)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "alpha", items[0].Name)
}
