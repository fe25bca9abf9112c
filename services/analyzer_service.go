package services

import (
	"context"
	"fmt"
	"math"
	"sync"

	"travel_planner/config"
	"travel_planner/db"
	"travel_planner/logger"
	"travel_planner/models"
	"travel_planner/repository"
	"travel_planner/utils"
)

// AnalyzePosts 批量分析帖子内容（并发版）。
// 结果与输入一一对应且保持输入顺序；单条帖子分析失败只记录在对应结果槽位，
// 不影响批次中的其他帖子。
func AnalyzePosts(ctx context.Context, cfg *config.Config, posts []models.Post, opts models.ResolvedAnalyzeOptions) ([]models.AnalysisResult, models.AnalysisSummary) {
	logger.Info("开始批量分析帖子内容", "count", len(posts), "depth", opts.AnalysisDepth)

	results := make([]models.AnalysisResult, len(posts))

	concurrency := cfg.Analyzer.Concurrency
	if concurrency <= 0 || concurrency > 8 {
		concurrency = 8
	}
	semaphore := make(chan struct{}, concurrency)

	var wg sync.WaitGroup
	for idx := range posts {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			// 使用信号量限制并发数
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			post := &posts[i]
			contentID := post.ContentID
			if contentID == "" {
				contentID = utils.GenerateContentID(post.URL, post.Title)
			}
			results[i] = models.AnalysisResult{
				ContentID: contentID,
				Title:     post.Title,
				Platform:  post.Platform,
			}

			// 上下文已取消时不再处理剩余帖子
			select {
			case <-ctx.Done():
				results[i].Error = "处理超时: " + ctx.Err().Error()
				return
			default:
			}

			analysis, err := analyzeSinglePost(ctx, cfg, post, contentID, opts)
			if err != nil {
				logger.Warn("单条帖子分析失败", "content_id", contentID, "error", err)
				results[i].Error = err.Error()
				return
			}
			results[i].Analysis = analysis
		}(idx)
	}
	wg.Wait()

	summary := buildAnalysisSummary(results)
	logger.Info("批量分析完成",
		"total", summary.TotalContent,
		"successful", summary.SuccessfulAnalyses,
		"failed", summary.FailedAnalyses,
		"avg_quality", summary.AverageQualityScore)

	return results, summary
}

// analyzeSinglePost 分析单条帖子，返回结构化分析结果
func analyzeSinglePost(ctx context.Context, cfg *config.Config, post *models.Post, contentID string, opts models.ResolvedAnalyzeOptions) (*models.ContentAnalysis, error) {
	if err := validatePost(post); err != nil {
		return nil, err
	}

	// 优先读取缓存，缓存失效或出错时重新计算
	if cacheEnabled(cfg) {
		if cached, err := repository.GetCachedAnalysis(contentID); err == nil {
			logger.Debug("命中分析缓存", "content_id", contentID)
			return cached, nil
		} else if !utils.IsSQLNoRowsError(err) {
			logger.Warn("读取分析缓存失败，重新计算", "content_id", contentID, "error", err)
		}
	}

	locations := NormalizeLocations(post.Locations)
	activities := NormalizeActivities(post.Activities)

	// 质量分基于原始字段完整度计算，需在费用/时长回填之前
	quality := calculateQualityScore(cfg, post, locations, activities, countMedia(post, opts.IncludeImages))

	if opts.AnalysisDepth != models.AnalysisDepthBasic {
		activities = enrichActivities(cfg, activities)
	}

	analysis := &models.ContentAnalysis{
		ContentID:    contentID,
		Locations:    locations,
		Activities:   activities,
		Tags:         utils.DeduplicateSlice(post.Tags),
		QualityScore: quality,
	}

	// comprehensive深度下调用LLM提取内容洞察，失败不影响分析结果
	if opts.ExtractInsights && opts.AnalysisDepth == models.AnalysisDepthComprehensive && cfg.LLM.Enabled {
		insights, err := GenerateInsights(ctx, cfg, post)
		if err != nil {
			logger.Warn("内容洞察提取失败", "content_id", contentID, "error", err)
		} else {
			analysis.Insights = insights
		}
	}

	if cacheEnabled(cfg) {
		if err := repository.SaveAnalysisCache(contentID, analysis); err != nil {
			logger.Warn("写入分析缓存失败", "content_id", contentID, "error", err)
		}
	}

	return analysis, nil
}

// validatePost 校验帖子是否可分析
func validatePost(post *models.Post) error {
	supported := false
	for _, p := range models.SupportedPlatforms {
		if post.Platform == p {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("不支持的平台: %q", post.Platform)
	}
	if post.Title == "" && post.Description == "" && len(post.Locations) == 0 && len(post.Activities) == 0 {
		return fmt.Errorf("帖子内容为空，无法分析")
	}
	return nil
}

// countMedia 统计参与计分的媒体数量，includeImages为false时忽略图片
func countMedia(post *models.Post, includeImages bool) int {
	count := 0
	for _, m := range post.Media {
		if !includeImages && m.Type == models.MediaTypeImage {
			continue
		}
		count++
	}
	return count
}

// calculateQualityScore 计算帖子质量分：
// 结构完整度、媒体丰富度、互动热度的加权和，结果限制在[0,1]。
// 互动热度按固定上限做对数归一化，避免单条爆款帖主导评分。
func calculateQualityScore(cfg *config.Config, post *models.Post, locations []models.Location, activities []models.Activity, mediaCount int) float64 {
	// 结构完整度：有坐标的地点占比、费用和时长齐全的活动占比
	var parts []float64
	if len(locations) > 0 {
		withCoords := 0
		for _, loc := range locations {
			if loc.Coordinates != nil {
				withCoords++
			}
		}
		parts = append(parts, float64(withCoords)/float64(len(locations)))
	}
	if len(activities) > 0 {
		complete := 0
		for _, act := range activities {
			if act.EstimatedCost != nil && act.Duration != nil {
				complete++
			}
		}
		parts = append(parts, float64(complete)/float64(len(activities)))
	}
	structural := 0.0
	for _, p := range parts {
		structural += p
	}
	if len(parts) > 0 {
		structural /= float64(len(parts))
	}

	// 媒体丰富度：对数缩放并设上限
	mediaCap := cfg.Analyzer.MediaCap
	if mediaCap <= 0 {
		mediaCap = 9
	}
	richness := utils.Clamp01(math.Log1p(float64(mediaCount)) / math.Log1p(float64(mediaCap)))

	// 互动热度：likes + comments*2 + shares*3，对数缩放到固定上限
	ceiling := cfg.Analyzer.EngagementCeiling
	if ceiling <= 0 {
		ceiling = 100000
	}
	raw := float64(post.Stats.Likes + post.Stats.Comments*2 + post.Stats.Shares*3)
	engagement := utils.Clamp01(math.Log1p(raw) / math.Log1p(ceiling))

	score := cfg.Analyzer.StructureWeight*structural +
		cfg.Analyzer.RichnessWeight*richness +
		cfg.Analyzer.EngagementWeight*engagement

	return utils.Clamp01(score)
}

// enrichActivities 回填缺失的费用和时长估算
func enrichActivities(cfg *config.Config, activities []models.Activity) []models.Activity {
	for i := range activities {
		if activities[i].EstimatedCost == nil {
			cost := imputeCost(cfg, activities[i].Category)
			activities[i].EstimatedCost = &cost
		}
		if activities[i].Duration == nil {
			duration := cfg.Itinerary.DefaultDuration
			if duration <= 0 {
				duration = 90
			}
			activities[i].Duration = &duration
		}
	}
	return activities
}

// imputeCost 按类别均值表估算费用
func imputeCost(cfg *config.Config, category string) float64 {
	if cost, ok := cfg.Itinerary.CategoryCosts[utils.NormalizeCategory(category)]; ok {
		return cost
	}
	if cfg.Itinerary.DefaultCost > 0 {
		return cfg.Itinerary.DefaultCost
	}
	return 100
}

// buildAnalysisSummary 汇总批量分析的统计信息
func buildAnalysisSummary(results []models.AnalysisResult) models.AnalysisSummary {
	summary := models.AnalysisSummary{TotalContent: len(results)}

	totalQuality := 0.0
	for _, r := range results {
		if r.Analysis == nil {
			summary.FailedAnalyses++
			continue
		}
		summary.SuccessfulAnalyses++
		summary.TotalLocations += len(r.Analysis.Locations)
		summary.TotalActivities += len(r.Analysis.Activities)
		totalQuality += r.Analysis.QualityScore
	}
	if summary.SuccessfulAnalyses > 0 {
		summary.AverageQualityScore = totalQuality / float64(summary.SuccessfulAnalyses)
	}

	return summary
}

// cacheEnabled 缓存开启且数据库可用
func cacheEnabled(cfg *config.Config) bool {
	return cfg.Cache.Enabled && db.DB != nil
}
