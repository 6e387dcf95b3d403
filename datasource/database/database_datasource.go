// Package database provides a Dataset which reads the result of a SQL query,
// through any database/sql driver.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/batch"
	"github.com/go-sif/tabular/datasource"
	"github.com/go-sif/tabular/errors"
)

// Conf configures a database Dataset
type Conf struct {
	BatchSize int           // The maximum number of rows per Batch. Defaults to 128.
	Args      []interface{} // Arguments for placeholders in the query
}

// Dataset is the result of a query, whose columns are matched to Schema columns by position
type Dataset struct {
	db     *sql.DB
	query  string
	schema tabular.Schema
	conf   *Conf
}

// CreateDataset is a factory for database Datasets. The query is re-run each time the Dataset is read.
func CreateDataset(db *sql.DB, query string, schema tabular.Schema, conf *Conf) *Dataset {
	if conf == nil {
		conf = &Conf{}
	}
	if conf.BatchSize == 0 {
		conf.BatchSize = 128
	}
	return &Dataset{db: db, query: query, schema: schema, conf: conf}
}

// Batches runs the query and iterates over its result
func (d *Dataset) Batches() (tabular.BatchIterator, error) {
	return d.BatchesContext(context.Background())
}

// BatchesContext runs the query with a Context and iterates over its result
func (d *Dataset) BatchesContext(ctx context.Context) (tabular.BatchIterator, error) {
	rows, err := d.db.QueryContext(ctx, d.query, d.conf.Args...)
	if err != nil {
		return nil, fmt.Errorf("database: query: %w", err)
	}
	cols, err := rows.Columns()
	if err != nil {
		rows.Close()
		return nil, err
	}
	if len(cols) != d.schema.NumColumns() {
		rows.Close()
		return nil, fmt.Errorf("database: query returns %d columns, schema has %d", len(cols), d.schema.NumColumns())
	}
	iter := &rowsIterator{rows: rows, schema: d.schema, batchSize: d.conf.BatchSize, hasNext: true}
	return datasource.ChainLoaders(func() (tabular.BatchIterator, func() error, error) {
		return iter, rows.Close, nil
	}), nil
}

type rowsIterator struct {
	rows      *sql.Rows
	schema    tabular.Schema
	batchSize int
	hasNext   bool
}

func (it *rowsIterator) HasNextBatch() bool {
	return it.hasNext
}

func (it *rowsIterator) NextBatch() (tabular.Batch, error) {
	if !it.hasNext {
		return nil, errors.NoMoreBatchesError{}
	}
	builder := batch.CreateBuilder(it.schema, it.batchSize)
	names := builder.ColumnNames()
	dest := make([]interface{}, len(names))
	floats := make([]sql.NullFloat64, len(names))
	strs := make([]sql.NullString, len(names))
	for i := range names {
		if builder.ColumnType(i) == tabular.StringColumnType {
			dest[i] = &strs[i]
		} else {
			dest[i] = &floats[i]
		}
	}
	for !builder.IsFull() {
		if !it.rows.Next() {
			it.hasNext = false
			if err := it.rows.Err(); err != nil {
				return nil, err
			}
			break
		}
		if err := it.rows.Scan(dest...); err != nil {
			it.hasNext = false
			return nil, fmt.Errorf("database: scan: %w", err)
		}
		for i := range names {
			var err error
			if builder.ColumnType(i) == tabular.StringColumnType {
				if strs[i].Valid {
					err = builder.SetString(i, strs[i].String)
				} else {
					builder.SetNil(i)
				}
			} else {
				if floats[i].Valid {
					err = builder.SetFloat64(i, floats[i].Float64)
				} else {
					err = builder.SetFloat64(i, math.NaN())
				}
			}
			if err != nil {
				return nil, err
			}
		}
		if err := builder.EndRow(); err != nil {
			return nil, err
		}
	}
	return builder.Build()
}
