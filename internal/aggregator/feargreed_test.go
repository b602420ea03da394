package aggregator

import "testing"

func TestFearGreedFromVolatility(t *testing.T) {
	tests := []struct {
		name       string
		volatility float64
		wantScore  int
		wantLabel  string
	}{
		{"very calm market", 10, 100, "extreme greed"},
		{"below the calm end clamps", 5, 100, "extreme greed"},
		{"mild volatility", 15, 75, "greed"},
		{"normal volatility", 20, 50, "neutral"},
		{"elevated volatility", 25, 25, "fear"},
		{"high volatility", 30, 10, "extreme fear"},
		{"panic levels", 40, 0, "extreme fear"},
		{"beyond panic clamps", 80, 0, "extreme fear"},
		{"interpolated between 10 and 15", 12.5, 88, "extreme greed"},
		{"interpolated between 20 and 25", 22.5, 38, "fear"},
		{"interpolated between 30 and 40", 35, 5, "extreme fear"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FearGreedFromVolatility(tt.volatility)
			if got.Score != tt.wantScore {
				t.Errorf("FearGreedFromVolatility(%v).Score = %d, want %d", tt.volatility, got.Score, tt.wantScore)
			}
			if got.Label != tt.wantLabel {
				t.Errorf("FearGreedFromVolatility(%v).Label = %q, want %q", tt.volatility, got.Label, tt.wantLabel)
			}
		})
	}
}

func TestFearGreedFromVolatility_Extremes(t *testing.T) {
	// A calm market must read as strong greed, a panicked one as deep fear.
	if got := FearGreedFromVolatility(10); got.Score < 90 {
		t.Errorf("score at volatility 10 = %d, want >= 90", got.Score)
	}
	if got := FearGreedFromVolatility(35); got.Score > 10 {
		t.Errorf("score at volatility 35 = %d, want <= 10", got.Score)
	}
}

func TestFearGreedFromVolatility_Monotonic(t *testing.T) {
	prev := FearGreedFromVolatility(0).Score
	for v := 0.5; v <= 60; v += 0.5 {
		cur := FearGreedFromVolatility(v).Score
		if cur > prev {
			t.Fatalf("score rose from %d to %d as volatility rose to %v", prev, cur, v)
		}
		prev = cur
	}
}

func TestFearGreedFromVolatility_ScoreBounds(t *testing.T) {
	for v := -5.0; v <= 100; v += 1.0 {
		got := FearGreedFromVolatility(v)
		if got.Score < 0 || got.Score > 100 {
			t.Errorf("score at volatility %v = %d, out of [0,100]", v, got.Score)
		}
	}
}

func TestFearGreedLabel(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{100, "extreme greed"},
		{80, "extreme greed"},
		{79.9, "greed"},
		{60, "greed"},
		{59.9, "neutral"},
		{40, "neutral"},
		{39.9, "fear"},
		{20, "fear"},
		{19.9, "extreme fear"},
		{0, "extreme fear"},
	}

	for _, tt := range tests {
		if got := fearGreedLabel(tt.score); got != tt.want {
			t.Errorf("fearGreedLabel(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}
