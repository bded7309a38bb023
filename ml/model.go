package ml

import "fmt"

// Row is a single-row feature table: column names and their values in column order.
// Values are either strings (categorical) or numbers.
type Row struct {
	Columns []string
	Values  []any
}

// Floats returns the row values as a numeric vector.
func (r Row) Floats() ([]float64, error) {
	out := make([]float64, len(r.Values))
	for i, v := range r.Values {
		f, err := toFloat(v)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", r.column(i), err)
		}
		out[i] = f
	}
	return out, nil
}

func (r Row) column(i int) string {
	if i < len(r.Columns) {
		return r.Columns[i]
	}
	return fmt.Sprintf("#%d", i)
}

// Model assigns a label to a row.
type Model interface {
	Predict(row Row) (int, error)
}

// ProbabilisticModel also reports the probability of the positive class.
type ProbabilisticModel interface {
	Model
	PredictProba(row Row) (int, float64, error)
}

// Described is implemented by every artifact kind the loader knows.
type Described interface {
	Kind() string
	FeatureColumns() []string
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("expected number, got %T", v)
	}
}
