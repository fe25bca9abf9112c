package services

import (
	"travel_planner/models"
	"travel_planner/utils"
)

// 坐标距离在此范围内的两个地点视为同一地点（米）
const samePlaceDistanceMeters = 150.0

// sameLocation 判断两个地点是否为同一地点：
// 名称规范化后相同，或坐标距离在150米以内
func sameLocation(a, b *models.Location) bool {
	if utils.NormalizeName(a.Name) == utils.NormalizeName(b.Name) {
		return true
	}
	if a.Coordinates != nil && b.Coordinates != nil {
		dist := utils.HaversineDistance(
			a.Coordinates.Latitude, a.Coordinates.Longitude,
			b.Coordinates.Latitude, b.Coordinates.Longitude)
		if dist <= samePlaceDistanceMeters {
			return true
		}
	}
	return false
}

// locationCompleteness 统计地点的非空字段数，用于合并时挑选信息更全的变体
func locationCompleteness(loc *models.Location) int {
	score := 0
	if loc.Address != "" {
		score++
	}
	if loc.Coordinates != nil {
		score++
	}
	if loc.Type != "" {
		score++
	}
	return score
}

// NormalizeLocations 合并重复地点，保留字段最完整的变体。
// 字段完整度相同时保留先出现的。纯函数，对同一输入顺序结果确定，且幂等。
func NormalizeLocations(locations []models.Location) []models.Location {
	result := normalizeLocationsOnce(locations)
	// 合并时替换为信息更全的变体可能引入新的坐标匹配，循环直到不再合并
	for {
		next := normalizeLocationsOnce(result)
		if len(next) == len(result) {
			return next
		}
		result = next
	}
}

func normalizeLocationsOnce(locations []models.Location) []models.Location {
	result := make([]models.Location, 0, len(locations))

	for _, loc := range locations {
		merged := false
		for i := range result {
			if sameLocation(&result[i], &loc) {
				// 只有信息更全时才替换，平局保留先出现的
				if locationCompleteness(&loc) > locationCompleteness(&result[i]) {
					result[i] = loc
				}
				merged = true
				break
			}
		}
		if !merged {
			result = append(result, loc)
		}
	}

	return result
}

// activityCompleteness 统计活动的非空字段数
func activityCompleteness(act *models.Activity) int {
	score := 0
	if act.Description != "" {
		score++
	}
	if act.EstimatedCost != nil {
		score++
	}
	if act.Duration != nil {
		score++
	}
	if len(act.Tips) > 0 {
		score++
	}
	return score
}

// NormalizeActivities 按规范化名称合并重复活动，保留字段最完整的变体
func NormalizeActivities(activities []models.Activity) []models.Activity {
	result := make([]models.Activity, 0, len(activities))

	for _, act := range activities {
		act.Category = utils.NormalizeCategory(act.Category)

		merged := false
		for i := range result {
			if utils.NormalizeName(result[i].Name) == utils.NormalizeName(act.Name) {
				if activityCompleteness(&act) > activityCompleteness(&result[i]) {
					result[i] = act
				}
				merged = true
				break
			}
		}
		if !merged {
			result = append(result, act)
		}
	}

	return result
}
