package charts

import (
	"math"
	"strconv"
)

// ValueFormatter turns a raw value into display text. axis is nil when the
// value belongs to a data set rather than an axis.
type ValueFormatter interface {
	StringForValue(v float64, axis *XAxis) string
}

// FormatterFunc adapts a plain function to ValueFormatter.
type FormatterFunc func(v float64, axis *XAxis) string

func (f FormatterFunc) StringForValue(v float64, axis *XAxis) string { return f(v, axis) }

// DefaultValueFormatter prints fixed-point decimals. A negative Decimals
// uses the axis' computed decimals, or 1 without an axis.
type DefaultValueFormatter struct {
	Decimals int
}

func (f DefaultValueFormatter) StringForValue(v float64, axis *XAxis) string {
	d := f.Decimals
	if d < 0 {
		d = 1
		if axis != nil {
			d = axis.Decimals()
		}
	}
	return strconv.FormatFloat(v, 'f', d, 64)
}

// IndexLabelFormatter maps a value to the label at its rounded index.
// Values outside the label range format as "".
type IndexLabelFormatter struct {
	Labels []string
}

func (f IndexLabelFormatter) StringForValue(v float64, _ *XAxis) string {
	i := int(math.Round(v))
	if i < 0 || i >= len(f.Labels) {
		return ""
	}
	return f.Labels[i]
}
