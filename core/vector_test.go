package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeVector(t *testing.T) {
	tests := []struct {
		name  string
		input []float32
		want  []float32
	}{
		{"already unit length", []float32{1, 0, 0}, []float32{1, 0, 0}},
		{"3-4-5 triangle", []float32{3, 4}, []float32{0.6, 0.8}},
		{"negative components", []float32{-2, 2}, []float32{-float32(math.Sqrt2) / 2, float32(math.Sqrt2) / 2}},
		{"tiny components", []float32{0.001, 0.002, 0.003}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeVector(tt.input)
			require.Len(t, got, len(tt.input))

			if tt.want != nil {
				for i := range tt.want {
					assert.InDelta(t, tt.want[i], got[i], 1e-6, "element %d", i)
				}
			}

			var sumSquares float64
			for _, x := range got {
				sumSquares += float64(x) * float64(x)
			}
			assert.InDelta(t, 1.0, math.Sqrt(sumSquares), 1e-6, "result should have unit length")
		})
	}
}

func TestNormalizeVector_PreservesDirection(t *testing.T) {
	input := []float32{2, -3, 6}
	got := NormalizeVector(input)

	// Components keep their ratios after scaling
	for i := 1; i < len(input); i++ {
		assert.InDelta(t, float64(input[i])/float64(input[0]), float64(got[i])/float64(got[0]), 1e-6)
	}
}

func TestNormalizeVector_DoesNotMutateInput(t *testing.T) {
	input := []float32{3, 4}
	_ = NormalizeVector(input)

	assert.Equal(t, []float32{3, 4}, input)
}

func TestNormalizeVector_ZeroVector(t *testing.T) {
	got := NormalizeVector([]float32{0, 0, 0})
	assert.Equal(t, []float32{0, 0, 0}, got)
}

func TestNormalizeVector_Empty(t *testing.T) {
	assert.Empty(t, NormalizeVector(nil))
	assert.Empty(t, NormalizeVector([]float32{}))
}
