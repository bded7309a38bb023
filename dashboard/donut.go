package dashboard

import (
	"fmt"
	"math"
)

const (
	colorConfidence = "#00CC96"
	colorRisk       = "#EF553B"
)

// Segment is one arc of a donut drawn on an SVG circle whose circumference is 100.
type Segment struct {
	Name       string
	Value      float64
	Color      string
	DashArray  string
	DashOffset string
}

type Donut struct {
	Segments []Segment
}

// NewConfidenceDonut splits 100 into [p, 100-p] as Confiance and Risque.
func NewConfidenceDonut(p float64) *Donut {
	return newDonut(
		[]string{"Confiance", "Risque"},
		[]float64{p, 100 - p},
		[]string{colorConfidence, colorRisk},
	)
}

func newDonut(names []string, values []float64, colors []string) *Donut {
	total := 0.0
	for _, v := range values {
		total += math.Max(v, 0)
	}

	donut := &Donut{Segments: make([]Segment, 0, len(values))}
	offset := 0.0
	for i, v := range values {
		share := 0.0
		if total > 0 {
			share = math.Max(v, 0) / total * 100
		}
		donut.Segments = append(donut.Segments, Segment{
			Name:       names[i],
			Value:      v,
			Color:      colors[i],
			DashArray:  fmt.Sprintf("%.2f %.2f", share, 100-share),
			DashOffset: fmt.Sprintf("%.2f", 25-offset),
		})
		offset += share
	}
	return donut
}

func (d *Donut) Values() []float64 {
	values := make([]float64, len(d.Segments))
	for i, s := range d.Segments {
		values[i] = s.Value
	}
	return values
}
