package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travel_planner/models"
)

func coords(lat, lon float64) *models.Coordinates {
	return &models.Coordinates{Latitude: lat, Longitude: lon}
}

func TestNormalizeLocationsMergeByName(t *testing.T) {
	locations := []models.Location{
		{Name: "West Lake", Type: models.LocationTypeAttraction},
		{Name: "  west   lake ", Address: "杭州市西湖区", Type: models.LocationTypeAttraction},
		{Name: "雷峰塔", Type: models.LocationTypeAttraction},
	}

	result := NormalizeLocations(locations)
	require.Len(t, result, 2)
	// 带地址的变体信息更全，应被保留
	assert.Equal(t, "杭州市西湖区", result[0].Address)
	assert.Equal(t, "雷峰塔", result[1].Name)
}

func TestNormalizeLocationsMergeByDistance(t *testing.T) {
	locations := []models.Location{
		{Name: "断桥", Coordinates: coords(30.2591, 120.1515), Type: models.LocationTypeAttraction},
		// 距离约120米，视为同一地点
		{Name: "断桥残雪", Coordinates: coords(30.26018, 120.1515), Type: models.LocationTypeAttraction},
	}

	result := NormalizeLocations(locations)
	assert.Len(t, result, 1)
}

func TestNormalizeLocationsKeepDistant(t *testing.T) {
	locations := []models.Location{
		{Name: "灵隐寺", Coordinates: coords(30.2419, 120.0963), Type: models.LocationTypeAttraction},
		// 距离远超150米，不合并
		{Name: "飞来峰", Coordinates: coords(30.25, 120.11), Type: models.LocationTypeAttraction},
	}

	result := NormalizeLocations(locations)
	assert.Len(t, result, 2)
}

func TestNormalizeLocationsTiePrefersFirst(t *testing.T) {
	locations := []models.Location{
		{Name: "Su Causeway", Type: models.LocationTypeAttraction},
		{Name: "su causeway", Type: models.LocationTypeAttraction},
	}

	result := NormalizeLocations(locations)
	require.Len(t, result, 1)
	// 完整度相同时保留先出现的变体
	assert.Equal(t, "Su Causeway", result[0].Name)
}

func TestNormalizeLocationsIdempotent(t *testing.T) {
	locations := []models.Location{
		{Name: "西湖", Coordinates: coords(30.2591, 120.1515), Type: models.LocationTypeAttraction},
		{Name: "West Lake", Coordinates: coords(30.2594, 120.1516), Address: "杭州"},
		{Name: "楼外楼", Type: models.LocationTypeRestaurant},
		{Name: "楼外楼", Address: "孤山路30号", Type: models.LocationTypeRestaurant},
	}

	once := NormalizeLocations(locations)
	twice := NormalizeLocations(once)
	assert.Equal(t, once, twice)
}

func TestNormalizeActivities(t *testing.T) {
	cost := 88.0
	activities := []models.Activity{
		{Name: "西湖游船", Category: "Sightseeing"},
		{Name: "西湖游船", Category: "sightseeing", EstimatedCost: &cost},
		{Name: "龙井品茶", Category: "Food"},
	}

	result := NormalizeActivities(activities)
	require.Len(t, result, 2)
	// 类别规范化为小写token
	assert.Equal(t, "sightseeing", result[0].Category)
	// 带费用的变体信息更全，应被保留
	require.NotNil(t, result[0].EstimatedCost)
	assert.Equal(t, 88.0, *result[0].EstimatedCost)
	assert.Equal(t, "food", result[1].Category)
}

func TestNormalizeActivitiesEmptyInput(t *testing.T) {
	assert.Empty(t, NormalizeActivities(nil))
	assert.Empty(t, NormalizeLocations(nil))
}
