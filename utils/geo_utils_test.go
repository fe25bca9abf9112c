package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistance(t *testing.T) {
	// 同一点
	assert.Equal(t, 0.0, HaversineDistance(30.25, 120.15, 30.25, 120.15))

	// 纬度相差1度约111.2公里
	dist := HaversineDistance(30.0, 120.0, 31.0, 120.0)
	assert.InDelta(t, 111195, dist, 200)

	// 约120米的两个点
	dist = HaversineDistance(30.0, 120.0, 30.00108, 120.0)
	assert.InDelta(t, 120, dist, 5)
}
