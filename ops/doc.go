// Package ops contains the engine which resolves, names and executes Ops
// against Schemas and Batches, and the built-in Ops: Log, Normalize,
// Categorify and FillMissing.
package ops
