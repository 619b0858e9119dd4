package stacked

// RangeModel describes the value range covered by the stack.
type RangeModel struct {
	Lo      float64 `json:"lo"`
	Hi      float64 `json:"hi"`
	ValueLo float64 `json:"value_lo"`
	ValueHi float64 `json:"value_hi"`
}

// NewRangeModel returns the unit range a layout starts with.
func NewRangeModel() RangeModel {
	return RangeModel{Lo: 0, Hi: 1, ValueLo: 0, ValueHi: 1}
}

// SetValueRange replaces all four bounds.
func (m *RangeModel) SetValueRange(lo, hi, valueLo, valueHi float64) {
	m.Lo, m.Hi, m.ValueLo, m.ValueHi = lo, hi, valueLo, valueHi
}

// Extent returns ValueHi - ValueLo.
func (m RangeModel) Extent() float64 { return m.ValueHi - m.ValueLo }
