package db

import (
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // registers the postgres dialect
)

// Dialect builds prepared statements with $n placeholders, the form pgx expects.
var Dialect = goqu.Dialect("postgres")

type sqlBuilder interface {
	ToSQL() (string, []any, error)
}

type preparable[T sqlBuilder] interface {
	sqlBuilder
	Prepared(bool) T
}

// Build renders a goqu dataset as a prepared statement.
func Build[T preparable[T]](ds T) (string, []any, error) {
	return ds.Prepared(true).ToSQL()
}
