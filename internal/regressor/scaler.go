package regressor

import "fmt"

// MinMaxScaler rescales vectors column-wise into [0, 1] using recorded data
// ranges: (x − min) / (max − min). A zero-width column scales to 0. The
// conventions match scikit-learn's MinMaxScaler so exported artifacts
// reproduce training-time behavior exactly.
type MinMaxScaler struct {
	Min []float64 `json:"min"`
	Max []float64 `json:"max"`
}

// Transform scales a raw vector into model space.
func (s MinMaxScaler) Transform(x []float64) ([]float64, error) {
	if len(x) != len(s.Min) {
		return nil, fmt.Errorf("scaler: expected %d values, got %d", len(s.Min), len(x))
	}
	out := make([]float64, len(x))
	for i := range x {
		span := s.Max[i] - s.Min[i]
		if span == 0 {
			out[i] = 0
			continue
		}
		out[i] = (x[i] - s.Min[i]) / span
	}
	return out, nil
}

// Inverse maps a scaled vector back to original units.
func (s MinMaxScaler) Inverse(x []float64) ([]float64, error) {
	if len(x) != len(s.Min) {
		return nil, fmt.Errorf("scaler: expected %d values, got %d", len(s.Min), len(x))
	}
	out := make([]float64, len(x))
	for i := range x {
		out[i] = x[i]*(s.Max[i]-s.Min[i]) + s.Min[i]
	}
	return out, nil
}

// FitMinMax records the per-column ranges of a sample matrix.
func FitMinMax(samples [][]float64) (MinMaxScaler, error) {
	if len(samples) == 0 {
		return MinMaxScaler{}, fmt.Errorf("scaler: no samples")
	}
	width := len(samples[0])
	s := MinMaxScaler{Min: make([]float64, width), Max: make([]float64, width)}
	copy(s.Min, samples[0])
	copy(s.Max, samples[0])
	for _, row := range samples[1:] {
		if len(row) != width {
			return MinMaxScaler{}, fmt.Errorf("scaler: ragged sample width %d, expected %d", len(row), width)
		}
		for i, v := range row {
			if v < s.Min[i] {
				s.Min[i] = v
			}
			if v > s.Max[i] {
				s.Max[i] = v
			}
		}
	}
	return s, nil
}
