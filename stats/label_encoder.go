package stats

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"sort"

	"github.com/go-sif/tabular"
)

// LabelEncoderID is the type tag of the LabelEncoder Stat
const LabelEncoderID = "label_encoder"

type labelEncoderStat struct{}

// LabelEncoder returns a Stat assigning an integer code to every category of a categorical column
func LabelEncoder() tabular.Stat {
	return labelEncoderStat{}
}

// ID returns the type tag of this Stat
func (labelEncoderStat) ID() string {
	return LabelEncoderID
}

// Initialize produces a fresh, empty LabelEncoderAccumulator
func (labelEncoderStat) Initialize() tabular.Accumulator {
	return &LabelEncoderAccumulator{codes: make(map[string]int64)}
}

// LabelEncoderAccumulator maps categories to codes. The mapping only ever grows:
// a code, once assigned, never changes, and new categories receive the next
// unused codes in sorted order, so that fitting the same Batches in the same
// order always yields the same mapping.
type LabelEncoderAccumulator struct {
	categories []string // categories[code] is the category assigned that code
	codes      map[string]int64
}

// GetCode returns the code assigned to a category, if any
func (a *LabelEncoderAccumulator) GetCode(category string) (int64, bool) {
	code, ok := a.codes[category]
	return code, ok
}

// GetCategories returns all known categories, in code order
func (a *LabelEncoderAccumulator) GetCategories() []string {
	return append([]string(nil), a.categories...)
}

// Len returns the number of known categories
func (a *LabelEncoderAccumulator) Len() int {
	return len(a.categories)
}

// Accumulate assigns codes to the categories of a Batch which have not been seen before
func (a *LabelEncoderAccumulator) Accumulate(values tabular.Column) error {
	keys, err := tabular.AsKeys("", values)
	if err != nil {
		return err
	}
	unseen := make(map[string]struct{})
	for _, k := range keys {
		if _, ok := a.codes[k]; !ok {
			unseen[k] = struct{}{}
		}
	}
	newCategories := make([]string, 0, len(unseen))
	for k := range unseen {
		newCategories = append(newCategories, k)
	}
	sort.Strings(newCategories)
	a.extend(newCategories)
	return nil
}

// Merge merges another LabelEncoderAccumulator into this one. Categories unknown to
// this Accumulator are assigned codes in the order of the incoming Accumulator's codes.
func (a *LabelEncoderAccumulator) Merge(o tabular.Accumulator) error {
	la, ok := o.(*LabelEncoderAccumulator)
	if !ok {
		return fmt.Errorf("Incoming accumulator is not a LabelEncoder Accumulator")
	}
	a.extend(la.categories)
	return nil
}

func (a *LabelEncoderAccumulator) extend(categories []string) {
	for _, c := range categories {
		if _, ok := a.codes[c]; !ok {
			a.codes[c] = int64(len(a.categories))
			a.categories = append(a.categories, c)
		}
	}
}

// Clone returns a deep copy of this Accumulator
func (a *LabelEncoderAccumulator) Clone() tabular.Accumulator {
	c := &LabelEncoderAccumulator{
		categories: append([]string(nil), a.categories...),
		codes:      make(map[string]int64, len(a.codes)),
	}
	for k, v := range a.codes {
		c.codes[k] = v
	}
	return c
}

// ToBytes serializes this Accumulator
func (a *LabelEncoderAccumulator) ToBytes() ([]byte, error) {
	buff := new(bytes.Buffer)
	e := gob.NewEncoder(buff)
	err := e.Encode(a.categories)
	if err != nil {
		return nil, err
	}
	return buff.Bytes(), nil
}

// FromBytes produce a new Accumulator from serialized data
func (a *LabelEncoderAccumulator) FromBytes(buff []byte) (tabular.Accumulator, error) {
	var categories []string
	d := gob.NewDecoder(bytes.NewBuffer(buff))
	err := d.Decode(&categories)
	if err != nil {
		return nil, err
	}
	result := &LabelEncoderAccumulator{codes: make(map[string]int64, len(categories))}
	result.extend(categories)
	if result.Len() != len(categories) {
		return nil, fmt.Errorf("Serialized LabelEncoder Accumulator contains duplicate categories")
	}
	return result, nil
}
