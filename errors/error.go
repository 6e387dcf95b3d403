package errors

import (
	"fmt"
	"strings"
)

// SchemaError occurs when an Op's column selection cannot be resolved against a Schema,
// either because explicitly selected columns are absent (or of the wrong class), or
// because a predicate matches none of the candidate columns
type SchemaError struct {
	Op      string
	Columns []string
	Reason  string
}

// Error returns a textual representation of this SchemaError
func (e SchemaError) Error() string {
	if len(e.Columns) == 0 {
		return fmt.Sprintf("Op %s: %s", e.Op, e.Reason)
	}
	return fmt.Sprintf("Op %s: %s: %s", e.Op, e.Reason, strings.Join(e.Columns, ", "))
}

// StatsMissingError occurs when an Op which requires statistics is applied without
// a stats context, or the context has no (or incomplete) statistics for the Op
type StatsMissingError struct {
	Op     string
	Reason string
}

// Error returns a textual representation of this StatsMissingError
func (e StatsMissingError) Error() string {
	return fmt.Sprintf("Op %s is missing required statistics: %s", e.Op, e.Reason)
}

// StateMismatchError occurs when fitted state is reused (by a warm-start fit, or by a
// restore) with a Workflow it is not compatible with
type StateMismatchError struct {
	Op     string
	Reason string
}

// Error returns a textual representation of this StateMismatchError
func (e StateMismatchError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("Fitted state does not match workflow: %s", e.Reason)
	}
	return fmt.Sprintf("Fitted state does not match workflow at op %s: %s", e.Op, e.Reason)
}

// UnseenCategoryError occurs when a categorical value has no code assigned in the fitted mapping
type UnseenCategoryError struct {
	Op     string
	Column string
	Value  string
}

// Error returns a textual representation of this UnseenCategoryError
func (e UnseenCategoryError) Error() string {
	return fmt.Sprintf("Op %s: column %s contains category %q which was not seen while fitting", e.Op, e.Column, e.Value)
}

// NameCollisionError occurs when an Op would create a column which already exists
type NameCollisionError struct {
	Op     string
	Column string
}

// Error returns a textual representation of this NameCollisionError
func (e NameCollisionError) Error() string {
	return fmt.Sprintf("Op %s would overwrite existing column %s", e.Op, e.Column)
}

// DuplicateOpError occurs when two Ops requiring statistics share an identity within a Workflow
type DuplicateOpError struct {
	Op string
}

// Error returns a textual representation of this DuplicateOpError
func (e DuplicateOpError) Error() string {
	return fmt.Sprintf("Workflow already contains an op with id %s which requires statistics. Name one of them explicitly", e.Op)
}

// StatsDependencyError occurs when an Op requiring statistics consumes a column
// whose values depend upon statistics which are still being fitted
type StatsDependencyError struct {
	Op     string
	Column string
}

// Error returns a textual representation of this StatsDependencyError
func (e StatsDependencyError) Error() string {
	return fmt.Sprintf("Op %s requires statistics for column %s, which relies on statistics fitted earlier in the same pass", e.Op, e.Column)
}

// ConcurrentFitError occurs when a fitting pass is started on a stats context which is already being fitted
type ConcurrentFitError struct{}

// Error returns a textual representation of this ConcurrentFitError
func (e ConcurrentFitError) Error() string {
	return "Stats context is already being fitted"
}

// ColumnTypeError occurs when a Column does not have the type an operation expects
type ColumnTypeError struct {
	Column   string
	Expected string
	Actual   string
}

// Error returns a textual representation of this ColumnTypeError
func (e ColumnTypeError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("Column has type %s, expected %s", e.Actual, e.Expected)
	}
	return fmt.Sprintf("Column %s has type %s, expected %s", e.Column, e.Actual, e.Expected)
}

// NoMoreBatchesError occurs when there are no more batches in a BatchIterator
type NoMoreBatchesError struct{}

// Error returns a textual representation of this NoMoreBatchesError
func (e NoMoreBatchesError) Error() string {
	return "No more batches"
}
