package entity

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-echarts/go-echarts/v2/opts"
)

type Line struct {
	name   string
	values []float64
	data   []opts.LineData
}

func NewLine(name string, values []float64) (*Line, error) {
	if name == "" {
		return nil, errors.New("name is empty")
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("line %q has no data", name)
	}
	l := &Line{name: name, values: values, data: make([]opts.LineData, len(values))}
	for i, v := range values {
		l.data[i] = opts.LineData{Value: v}
	}
	return l, nil
}

func (l *Line) Name() string {
	return l.name
}

func (l *Line) Data() []opts.LineData {
	return l.data
}

func (l *Line) Values() []float64 {
	return l.values
}

// MaxIdx returns the index of the largest value.
func (l *Line) MaxIdx() int {
	maxIdx := 0
	for i, v := range l.values {
		if v > l.values[maxIdx] {
			maxIdx = i
		}
	}
	return maxIdx
}

// Visibility returns the fringe visibility (max-min)/(max+min) of each
// complete window of winSize consecutive samples. A trailing partial window
// is dropped.
func (l *Line) Visibility(name string, winSize int) (*Line, error) {
	if winSize < 2 {
		return nil, fmt.Errorf("window size %d is too small", winSize)
	}
	visibility := make([]float64, 0, len(l.values)/winSize)
	minimum, maximum := math.Inf(1), math.Inf(-1)
	i := 0
	for _, v := range l.values {
		minimum = math.Min(minimum, v)
		maximum = math.Max(maximum, v)
		i++
		if i == winSize {
			value := 0.
			if maximum+minimum > 0 {
				value = (maximum - minimum) / (maximum + minimum)
			}
			visibility = append(visibility, value)

			i = 0
			minimum, maximum = math.Inf(1), math.Inf(-1)
		}
	}
	return NewLine(name, visibility)
}
