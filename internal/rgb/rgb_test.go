package rgb

import (
	"image/color"
	"math"
	"testing"
)

func TestAdjustLightIntensity(t *testing.T) {
	tests := []struct {
		name      string
		in        Color
		intensity float64
		want      Color
	}{
		{"full", Red, 1.0, Red},
		{"half", Color{200, 100, 50}, 0.5, Color{100, 50, 25}},
		{"truncates", Color{255, 185, 3}, 0.5, Color{127, 92, 1}},
		{"never brighter", Blue, 3.0, Blue},
		{"negative clamps to black", Yellow, -1, Black},
		{"zero", Orange, 0, Black},
		{"nan is black", Green, math.NaN(), Black},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.AdjustLightIntensity(tt.intensity)
			if got != tt.want {
				t.Errorf("%v.AdjustLightIntensity(%v) = %v, want %v", tt.in, tt.intensity, got, tt.want)
			}
		})
	}
}

func TestRGBA(t *testing.T) {
	got := Color{1, 2, 3}.RGBA()
	want := color.RGBA{R: 1, G: 2, B: 3, A: 255}
	if got != want {
		t.Errorf("RGBA() = %v, want %v", got, want)
	}
}
