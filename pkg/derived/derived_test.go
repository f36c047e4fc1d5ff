package derived_test

import (
	"math"
	"testing"

	"github.com/aretw0/algoviz/pkg/derived"
	"github.com/stretchr/testify/assert"
)

func TestZeroDenominators(t *testing.T) {
	assert.Equal(t, derived.Undefined, derived.Ratio(3, 0))
	assert.Equal(t, derived.Undefined, derived.Ratio(math.Inf(1), 2))
	assert.Equal(t, derived.Undefined, derived.Utilization(5, 0, 10))
	assert.Equal(t, derived.Undefined, derived.Utilization(5, 4, 0))
	assert.Equal(t, derived.Undefined, derived.Speedup(10, 0))
	assert.Equal(t, derived.Undefined, derived.Speedup(0, 5))
	assert.Equal(t, derived.Undefined, derived.Progress(1, 0))
}

func TestValues(t *testing.T) {
	assert.InDelta(t, 0.5, derived.Utilization(20, 4, 10), 1e-9)
	assert.InDelta(t, 1.0, derived.Utilization(50, 4, 10), 1e-9, "clamped")
	assert.InDelta(t, 2.5, derived.Speedup(10, 4), 1e-9)
	assert.InDelta(t, 0.25, derived.Progress(1, 4), 1e-9)
	assert.Equal(t, 25, derived.Percent(derived.Progress(1, 4)))
}
