package detector

import "testing"

func TestAnomalyDetector_Detect(t *testing.T) {
	d := NewAnomalyDetector(5, 2.5)

	tests := []struct {
		name    string
		history []float64
		current float64
		want    bool
	}{
		{
			name:    "no history",
			history: nil,
			current: 1000000,
			want:    false,
		},
		{
			name:    "single amount is insufficient data",
			history: []float64{10},
			current: 1000000,
			want:    false,
		},
		{
			name:    "zero variance window never flags",
			history: []float64{100, 100, 100, 100, 100},
			current: 99999,
			want:    false,
		},
		{
			name:    "zero variance with distant current amount",
			history: []float64{10, 10, 10, 10, 10},
			current: 100,
			want:    false,
		},
		{
			name:    "outlier against varied history",
			history: []float64{10, 20, 10, 20, 10},
			current: 200,
			want:    true,
		},
		{
			name:    "amount within normal spread",
			history: []float64{10, 20, 10, 20, 10},
			current: 15,
			want:    false,
		},
		{
			name:    "only last window amounts count",
			history: []float64{100000, 100000, 10, 20, 10, 20, 10},
			current: 200,
			want:    true,
		},
		{
			name:    "two amounts are enough to estimate spread",
			history: []float64{10, 20},
			current: 500,
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.Detect(tt.history, tt.current)
			if got != tt.want {
				t.Errorf("Detect(%v, %v) = %v, want %v", tt.history, tt.current, got, tt.want)
			}
		})
	}
}

func TestNewAnomalyDetector_Defaults(t *testing.T) {
	d := NewAnomalyDetector(0, 0)
	if d.Window != DefaultWindow {
		t.Errorf("Window = %d, want %d", d.Window, DefaultWindow)
	}
	if d.ZThreshold != DefaultZThreshold {
		t.Errorf("ZThreshold = %v, want %v", d.ZThreshold, DefaultZThreshold)
	}
}
