package proximity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabel(t *testing.T) {
	tests := []struct {
		distance float64
		want     string
	}{
		{0, "At the gym"},
		{100, "At the gym"},
		{150, "Almost there"},
		{900, "Nearby"},
		{5000, "Away"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Label(tt.distance, 100), "distance %v", tt.distance)
	}
	assert.Empty(t, Label(10, 0))
}

func TestProgress(t *testing.T) {
	assert.Equal(t, 100.0, Progress(50, 100))
	assert.Equal(t, 0.0, Progress(1000, 100))
	assert.Equal(t, 0.0, Progress(5000, 100))
	assert.InDelta(t, 50.0, Progress(550, 100), 0.001)
	assert.Equal(t, 0.0, Progress(10, 0))
}
