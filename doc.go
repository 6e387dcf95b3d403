// Package tabular contains the core components of a declarative preprocessing pipeline for tabular data.
// This root package defines types which are employed during the regular use of the pipeline, as well as
// in its extension with new Ops and Stats, and is an excellent overview of the key concepts: Schemas,
// Batches, Datasets, Ops, Stats and the StatStates which connect a fitting pass to a transform pass.
package tabular
