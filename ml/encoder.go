package ml

import (
	"errors"
	"fmt"
)

// Scaler holds per-column standardisation parameters.
type Scaler struct {
	Mean  map[string]float64 `json:"mean"`
	Scale map[string]float64 `json:"scale"`
}

// Encoder turns a Row into the numeric vector a fitted model was trained on.
// Categorical columns are one-hot encoded in the order of their known categories,
// numeric columns are optionally standardised.
type Encoder struct {
	Columns     []string            `json:"columns,omitempty"`
	Categorical map[string][]string `json:"categorical,omitempty"`
	Scaler      *Scaler             `json:"scaler,omitempty"`
}

func (e Encoder) FeatureColumns() []string {
	return e.Columns
}

// Width is the length of the encoded vector, or -1 if the encoder has no declared columns.
func (e Encoder) Width() int {
	if len(e.Columns) == 0 {
		return -1
	}
	width := 0
	for _, col := range e.Columns {
		if cats, ok := e.Categorical[col]; ok {
			width += len(cats)
			continue
		}
		width++
	}
	return width
}

func (e Encoder) Encode(row Row) ([]float64, error) {
	if len(row.Columns) != len(row.Values) {
		return nil, errors.New("row columns and values size mismatch")
	}
	if len(e.Columns) > 0 {
		if err := e.checkColumns(row.Columns); err != nil {
			return nil, err
		}
	}

	out := make([]float64, 0, len(row.Values))
	for i, v := range row.Values {
		col := row.column(i)
		if cats, ok := e.Categorical[col]; ok {
			s, isString := v.(string)
			if !isString {
				return nil, fmt.Errorf("column %q: expected category string, got %T", col, v)
			}
			idx := indexOf(cats, s)
			if idx < 0 {
				return nil, fmt.Errorf("column %q: unknown category %q", col, s)
			}
			for j := range cats {
				if j == idx {
					out = append(out, 1)
				} else {
					out = append(out, 0)
				}
			}
			continue
		}

		f, err := toFloat(v)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", col, err)
		}
		out = append(out, e.scale(col, f))
	}
	return out, nil
}

func (e Encoder) checkColumns(columns []string) error {
	if len(columns) != len(e.Columns) {
		return fmt.Errorf("feature names mismatch: model expects %v, got %v", e.Columns, columns)
	}
	for i := range columns {
		if columns[i] != e.Columns[i] {
			return fmt.Errorf("feature names mismatch: model expects %v, got %v", e.Columns, columns)
		}
	}
	return nil
}

func (e Encoder) scale(col string, v float64) float64 {
	if e.Scaler == nil {
		return v
	}
	mean := e.Scaler.Mean[col]
	scale, ok := e.Scaler.Scale[col]
	// zero variance columns are left unscaled
	if !ok || scale == 0 {
		scale = 1
	}
	return (v - mean) / scale
}

func indexOf(values []string, target string) int {
	for i, v := range values {
		if v == target {
			return i
		}
	}
	return -1
}
