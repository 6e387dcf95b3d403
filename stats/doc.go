// Package stats contains the built-in streaming statistics: running moments
// (count, mean and variance) and label encoding of categorical values.
package stats
