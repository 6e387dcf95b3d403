package stats

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-sif/tabular"
)

// MomentsID is the type tag of the Moments Stat
const MomentsID = "moments"

type momentsStat struct{}

// Moments returns a Stat tracking the count, mean and (population) variance of a numeric column
func Moments() tabular.Stat {
	return momentsStat{}
}

// ID returns the type tag of this Stat
func (momentsStat) ID() string {
	return MomentsID
}

// Initialize produces a fresh, empty MomentsAccumulator
func (momentsStat) Initialize() tabular.Accumulator {
	return &MomentsAccumulator{}
}

// MomentsAccumulator tracks the count, mean and population variance of the
// values it has seen. NaN values are treated as missing and skipped.
type MomentsAccumulator struct {
	count    int64
	mean     float64
	variance float64
}

// GetCount returns the number of values seen by this Accumulator
func (a *MomentsAccumulator) GetCount() int64 {
	return a.count
}

// GetMean returns the mean of the values seen by this Accumulator
func (a *MomentsAccumulator) GetMean() float64 {
	return a.mean
}

// GetVariance returns the population variance of the values seen by this Accumulator
func (a *MomentsAccumulator) GetVariance() float64 {
	return a.variance
}

// GetStd returns the population standard deviation of the values seen by this Accumulator
func (a *MomentsAccumulator) GetStd() float64 {
	return math.Sqrt(a.variance)
}

// Accumulate computes the moments of a Batch's values directly, then merges them into this Accumulator
func (a *MomentsAccumulator) Accumulate(values tabular.Column) error {
	vals, err := tabular.AsFloat64s("", values)
	if err != nil {
		return err
	}
	var count int64
	var sum float64
	for _, v := range vals {
		if !math.IsNaN(v) {
			count++
			sum += v
		}
	}
	if count == 0 {
		return nil
	}
	mean := sum / float64(count)
	var sqdev float64
	for _, v := range vals {
		if !math.IsNaN(v) {
			sqdev += (v - mean) * (v - mean)
		}
	}
	a.combine(count, mean, sqdev/float64(count))
	return nil
}

// Merge merges another MomentsAccumulator into this one
func (a *MomentsAccumulator) Merge(o tabular.Accumulator) error {
	ma, ok := o.(*MomentsAccumulator)
	if !ok {
		return fmt.Errorf("Incoming accumulator is not a Moments Accumulator")
	}
	a.combine(ma.count, ma.mean, ma.variance)
	return nil
}

// combine applies Chan et al.'s pairwise update, which is exact for any split of the data
func (a *MomentsAccumulator) combine(count int64, mean float64, variance float64) {
	if count == 0 {
		return
	}
	if a.count == 0 {
		a.count, a.mean, a.variance = count, mean, variance
		return
	}
	n1, n2 := float64(a.count), float64(count)
	n := n1 + n2
	delta := mean - a.mean
	a.mean = a.mean*(n1/n) + mean*(n2/n)
	a.variance = a.variance*(n1/n) + variance*(n2/n) + (n1*n2/(n*n))*delta*delta
	a.count += count
}

// Clone returns a copy of this Accumulator
func (a *MomentsAccumulator) Clone() tabular.Accumulator {
	c := *a
	return &c
}

// ToBytes serializes this Accumulator
func (a *MomentsAccumulator) ToBytes() ([]byte, error) {
	buff := make([]byte, 24)
	binary.LittleEndian.PutUint64(buff[0:8], uint64(a.count))
	binary.LittleEndian.PutUint64(buff[8:16], math.Float64bits(a.mean))
	binary.LittleEndian.PutUint64(buff[16:24], math.Float64bits(a.variance))
	return buff, nil
}

// FromBytes produce a new Accumulator from serialized data
func (a *MomentsAccumulator) FromBytes(buff []byte) (tabular.Accumulator, error) {
	if len(buff) != 24 {
		return nil, fmt.Errorf("Serialized Moments Accumulator must be 24 bytes, was %d", len(buff))
	}
	return &MomentsAccumulator{
		count:    int64(binary.LittleEndian.Uint64(buff[0:8])),
		mean:     math.Float64frombits(binary.LittleEndian.Uint64(buff[8:16])),
		variance: math.Float64frombits(binary.LittleEndian.Uint64(buff[16:24])),
	}, nil
}
