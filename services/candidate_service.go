package services

import (
	"travel_planner/models"
	"travel_planner/utils"
)

// Candidate 推荐与行程共用的候选项：来自分析结果的地点或活动
type Candidate struct {
	Target   string // location / activity
	Name     string
	Category string // 规范化后的类别token
	Location *models.Location
	Activity *models.Activity
	Tags     []string // 来源帖子的标签
	Quality  float64  // 来源分析的质量分
	Index    int      // 插入顺序，用于平局排序
	Score    float64  // 评分阶段填充
}

// BuildCandidatePool 汇总所有分析结果中的地点和活动，按同一地点规则去重。
// 重复候选保留先出现的变体，质量分取各来源中的最高值。
func BuildCandidatePool(analyses []models.ContentAnalysis) []Candidate {
	pool := make([]Candidate, 0)

	appendLocation := func(loc models.Location, tags []string, quality float64) {
		for i := range pool {
			if pool[i].Target == models.TargetLocation && sameLocation(pool[i].Location, &loc) {
				if quality > pool[i].Quality {
					pool[i].Quality = quality
				}
				return
			}
		}
		locCopy := loc
		pool = append(pool, Candidate{
			Target:   models.TargetLocation,
			Name:     loc.Name,
			Category: utils.NormalizeCategory(loc.Type),
			Location: &locCopy,
			Tags:     tags,
			Quality:  quality,
			Index:    len(pool),
		})
	}

	appendActivity := func(act models.Activity, tags []string, quality float64) {
		normalized := utils.NormalizeName(act.Name)
		for i := range pool {
			if pool[i].Target == models.TargetActivity && utils.NormalizeName(pool[i].Name) == normalized {
				if quality > pool[i].Quality {
					pool[i].Quality = quality
				}
				return
			}
		}
		actCopy := act
		pool = append(pool, Candidate{
			Target:   models.TargetActivity,
			Name:     act.Name,
			Category: utils.NormalizeCategory(act.Category),
			Activity: &actCopy,
			Tags:     tags,
			Quality:  quality,
			Index:    len(pool),
		})
	}

	for _, analysis := range analyses {
		for _, loc := range analysis.Locations {
			appendLocation(loc, analysis.Tags, analysis.QualityScore)
		}
		for _, act := range analysis.Activities {
			appendActivity(act, analysis.Tags, analysis.QualityScore)
		}
	}

	return pool
}

// AnalysesFromResults 从批量分析结果中提取成功的分析，失败项跳过
func AnalysesFromResults(results []models.AnalysisResult) []models.ContentAnalysis {
	analyses := make([]models.ContentAnalysis, 0, len(results))
	for _, r := range results {
		if r.Analysis != nil {
			analyses = append(analyses, *r.Analysis)
		}
	}
	return analyses
}
