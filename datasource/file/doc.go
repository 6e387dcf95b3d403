// Package file provides a Dataset which reads data from a set of files on disk,
// matched by a glob and read one after the other, in lexical order.
package file
