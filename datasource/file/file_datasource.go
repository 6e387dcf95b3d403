package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-sif/tabular"
	"github.com/go-sif/tabular/datasource"
)

// Dataset is a set of files containing data which will be parsed into Batches
type Dataset struct {
	glob   string
	parser tabular.DataSourceParser
	schema tabular.Schema
}

// CreateDataset is a factory for file Datasets
func CreateDataset(glob string, parser tabular.DataSourceParser, schema tabular.Schema) *Dataset {
	return &Dataset{glob: glob, parser: parser, schema: schema}
}

// Files lists the files currently matched by this Dataset's glob
func (d *Dataset) Files() ([]string, error) {
	matches, err := filepath.Glob(d.glob)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("glob %s produced 0 files", d.glob)
	}
	return matches, nil
}

// Batches starts a new iteration over the files matched by this Dataset's glob
func (d *Dataset) Batches() (tabular.BatchIterator, error) {
	files, err := d.Files()
	if err != nil {
		return nil, err
	}
	loaders := make([]datasource.Loader, len(files))
	for i, path := range files {
		path := path
		loaders[i] = func() (tabular.BatchIterator, func() error, error) {
			f, err := os.Open(path)
			if err != nil {
				return nil, nil, err
			}
			iter, err := d.parser.Parse(f, d.schema)
			if err != nil {
				f.Close()
				return nil, nil, fmt.Errorf("Unable to parse %s: %w", path, err)
			}
			return iter, f.Close, nil
		}
	}
	return datasource.ChainLoaders(loaders...), nil
}
