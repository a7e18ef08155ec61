package option

import "gorm.io/gorm"

// QueryOption mutates a query statement before execution.
type QueryOption interface {
	Apply(db *gorm.DB) *gorm.DB
}

type orderBy struct {
	expr string
}

func (o orderBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Order(o.expr)
}

func WithOrderBy(expr string) QueryOption {
	return orderBy{expr: expr}
}

type limit struct {
	n int
}

func (l limit) Apply(db *gorm.DB) *gorm.DB {
	return db.Limit(l.n)
}

func WithLimit(n int) QueryOption {
	return limit{n: n}
}

type where struct {
	query string
	args  []any
}

func (w where) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(w.query, w.args...)
}

func WithWhere(query string, args ...any) QueryOption {
	return where{query: query, args: args}
}
