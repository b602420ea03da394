package model

import "testing"

func TestClassifyVolatility(t *testing.T) {
	tests := []struct {
		value float64
		want  IndicatorStatus
	}{
		{5, StatusLow},
		{14.9, StatusLow},
		{15, StatusNormal},
		{20, StatusNormal},
		{25, StatusNormal},
		{25.1, StatusHigh},
		{80, StatusHigh},
	}

	for _, tt := range tests {
		if got := ClassifyVolatility(tt.value); got != tt.want {
			t.Errorf("ClassifyVolatility(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestFloat(t *testing.T) {
	p := Float(1.5)
	if p == nil || *p != 1.5 {
		t.Errorf("Float(1.5) = %v, want pointer to 1.5", p)
	}

	// Each call returns an independent pointer.
	if Float(1.5) == p {
		t.Error("Float() returned a shared pointer")
	}
}
