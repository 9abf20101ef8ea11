package repository

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"gorm.io/gorm"

	"mini-mcu/pkg/cache"
)

// ColumnSet is the set of column names of a table.
type ColumnSet map[string]struct{}

// Has reports whether the table has column name.
func (s ColumnSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// SchemaInspector reports the columns that exist in the live database.
type SchemaInspector interface {
	Columns(ctx context.Context, table string) (ColumnSet, error)
}

type gormSchemaInspector struct {
	db *gorm.DB
}

// NewSchemaInspector reads column metadata through the gorm migrator.
func NewSchemaInspector(db *gorm.DB) SchemaInspector {
	return &gormSchemaInspector{db: db}
}

func (i *gormSchemaInspector) Columns(ctx context.Context, table string) (ColumnSet, error) {
	types, err := i.db.WithContext(ctx).Migrator().ColumnTypes(table)
	if err != nil {
		return nil, err
	}
	set := make(ColumnSet, len(types))
	for _, t := range types {
		set[strings.ToLower(t.Name())] = struct{}{}
	}
	return set, nil
}

// cachedSchemaInspector memoizes another inspector in a cache.Store.
type cachedSchemaInspector struct {
	inner SchemaInspector
	store cache.Store
	ttl   time.Duration
}

// NewCachedSchemaInspector wraps inner so each table is introspected at most
// once per ttl. Empty results are not cached.
func NewCachedSchemaInspector(inner SchemaInspector, store cache.Store, ttl time.Duration) SchemaInspector {
	return &cachedSchemaInspector{inner: inner, store: store, ttl: ttl}
}

func (c *cachedSchemaInspector) Columns(ctx context.Context, table string) (ColumnSet, error) {
	key := "schema:" + table
	if b, ok := c.store.Get(ctx, key); ok {
		var names []string
		if err := json.Unmarshal(b, &names); err == nil && len(names) > 0 {
			set := make(ColumnSet, len(names))
			for _, n := range names {
				set[n] = struct{}{}
			}
			return set, nil
		}
		c.store.Delete(ctx, key)
	}

	set, err := c.inner.Columns(ctx, table)
	if err != nil {
		return nil, err
	}
	if len(set) == 0 {
		return set, nil
	}

	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	if b, err := json.Marshal(names); err == nil {
		c.store.Set(ctx, key, b, c.ttl)
	}
	return set, nil
}
