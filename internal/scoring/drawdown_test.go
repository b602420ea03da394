package scoring

import (
	"testing"

	"github.com/quantive/marketcore/internal/model"
)

func TestDrawdown(t *testing.T) {
	tests := []struct {
		name  string
		price *float64
		high  *float64
		want  *float64
	}{
		{"20 percent off the high", model.Float(80), model.Float(100), model.Float(20)},
		{"at the high", model.Float(100), model.Float(100), model.Float(0)},
		{"above the high", model.Float(110), model.Float(100), model.Float(-10)},
		{"nil price", nil, model.Float(100), nil},
		{"nil high", model.Float(80), nil, nil},
		{"zero high", model.Float(80), model.Float(0), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Drawdown(tt.price, tt.high)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("Drawdown() = %v, want %v", got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Errorf("Drawdown() = %v, want %v", *got, *tt.want)
			}
		})
	}
}
