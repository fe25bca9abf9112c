package services

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"travel_planner/config"
	"travel_planner/logger"
	"travel_planner/models"
	"travel_planner/utils"
)

// GenerateRecommendations 根据分析结果和用户需求生成带多样性控制的排序推荐。
// 候选池为空时返回ErrInsufficientCandidates，调用方应视为可恢复错误。
func GenerateRecommendations(cfg *config.Config, analyses []models.ContentAnalysis, req *models.UserRequirements, prefs *models.UserPreferences, opts models.ResolvedRecommendOptions) (*models.RecommendResponse, error) {
	pool := BuildCandidatePool(analyses)
	pool = filterAvoided(pool, prefs)
	if len(pool) == 0 {
		return nil, ErrInsufficientCandidates
	}

	logger.Info("开始生成推荐", "candidates", len(pool),
		"max_results", opts.MaxRecommendations, "diversity", opts.DiversityLevel)

	userTokens := buildUserTokens(req, prefs)
	for i := range pool {
		pool[i].Score = scoreCandidate(cfg, &pool[i], req, userTokens, opts.RecommendationType)
	}

	// 按评分降序排序，平局先比来源质量分再比插入顺序
	sort.SliceStable(pool, func(i, j int) bool {
		return candidateLess(&pool[i], &pool[j])
	})

	diversity := opts.DiversityLevel
	if opts.RecommendationType == models.RecommendTypeDiverse && diversity != models.DiversityHigh {
		diversity = models.DiversityHigh
	}
	selected, remaining := selectWithDiversity(pool, opts.MaxRecommendations, diversity)

	recommendations := make([]models.Recommendation, 0, len(selected))
	for _, cand := range selected {
		recommendations = append(recommendations, buildRecommendation(cand, userTokens))
	}

	// 截断后的下一批候选作为备选列表，不再做多样性惩罚
	alternatives := make([]models.Recommendation, 0)
	if opts.IncludeAlternatives {
		limit := utils.Min(opts.MaxRecommendations, len(remaining))
		for _, cand := range remaining[:limit] {
			alternatives = append(alternatives, buildRecommendation(cand, userTokens))
		}
	}

	response := &models.RecommendResponse{
		Recommendations: recommendations,
		Alternatives:    alternatives,
		Metadata: models.RecommendationMetadata{
			ConfidenceScore:    meanScore(recommendations),
			Reasoning:          buildAggregateReasoning(req, prefs, recommendations),
			RecommendationType: opts.RecommendationType,
			DiversityLevel:     diversity,
		},
		Summary: buildRecommendationSummary(recommendations),
	}

	logger.Info("推荐生成完成",
		"recommendations", len(recommendations),
		"alternatives", len(alternatives),
		"confidence", response.Metadata.ConfidenceScore)

	return response, nil
}

// filterAvoided 过滤用户明确回避的候选
func filterAvoided(pool []Candidate, prefs *models.UserPreferences) []Candidate {
	if prefs == nil || len(prefs.AvoidList) == 0 {
		return pool
	}
	filtered := make([]Candidate, 0, len(pool))
	for _, cand := range pool {
		if utils.ContainsNormalized(prefs.AvoidList, cand.Name) ||
			utils.ContainsNormalized(prefs.AvoidList, cand.Category) {
			continue
		}
		filtered = append(filtered, cand)
	}
	return filtered
}

// buildUserTokens 汇总用户的兴趣、出行风格和偏好为匹配token集合
func buildUserTokens(req *models.UserRequirements, prefs *models.UserPreferences) map[string]bool {
	tokens := make(map[string]bool)
	add := func(values ...string) {
		for _, v := range values {
			v = utils.NormalizeName(v)
			if v != "" {
				tokens[v] = true
			}
		}
	}

	add(req.Interests...)
	add(req.TravelStyle...)
	if prefs != nil {
		add(prefs.Interests...)
		add(prefs.ActivityTypes...)
		add(prefs.TravelStyle)
	}

	return tokens
}

// candidateTokens 候选项自身的匹配token：类别、类型和来源标签
func candidateTokens(cand *Candidate) map[string]bool {
	tokens := make(map[string]bool)
	if cand.Category != "" {
		tokens[utils.NormalizeName(cand.Category)] = true
	}
	for _, tag := range cand.Tags {
		tag = utils.NormalizeName(tag)
		if tag != "" {
			tokens[tag] = true
		}
	}
	return tokens
}

// jaccardOverlap Jaccard相似度：交集大小除以并集大小
func jaccardOverlap(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	intersection := 0
	for token := range a {
		if b[token] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// scoreCandidate 计算候选项与用户需求的匹配评分，结果在[0,1]。
// 兴趣匹配、预算匹配（双方都有预算信息时）和来源质量分加权求和，
// 权重按实际参与的项归一化。
func scoreCandidate(cfg *config.Config, cand *Candidate, req *models.UserRequirements, userTokens map[string]bool, recommendType string) float64 {
	overlap := jaccardOverlap(candidateTokens(cand), userTokens)
	// complementary类型下反转兴趣匹配，用于发掘用户画像之外的内容
	if recommendType == models.RecommendTypeComplementary {
		overlap = 1 - overlap
	}

	weightSum := cfg.Recommend.OverlapWeight + cfg.Recommend.QualityWeight
	score := cfg.Recommend.OverlapWeight*overlap + cfg.Recommend.QualityWeight*cand.Quality

	// 预算匹配：候选费用与每日预算越接近评分越高
	perDay := req.PerDayBudget()
	if perDay > 0 && cand.Activity != nil && cand.Activity.EstimatedCost != nil {
		fit := utils.Clamp01(1 - math.Abs(*cand.Activity.EstimatedCost-perDay)/perDay)
		score += cfg.Recommend.BudgetWeight * fit
		weightSum += cfg.Recommend.BudgetWeight
	}

	if weightSum <= 0 {
		return 0
	}
	return utils.Clamp01(score / weightSum)
}

// candidateLess 候选项排序比较：评分降序，平局先比来源质量分再比插入顺序
func candidateLess(a, b *Candidate) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.Quality != b.Quality {
		return a.Quality > b.Quality
	}
	return a.Index < b.Index
}

// categoryCap 每个类别在top结果中的数量上限，级别越高限制越严
func categoryCap(maxResults int, diversity string) int {
	switch diversity {
	case models.DiversityHigh:
		return (maxResults + 1) / 2
	case models.DiversityMedium:
		return (maxResults*3 + 3) / 4
	default:
		return maxResults // low：不限制
	}
}

// selectWithDiversity 贪心重排：同类别候选超过上限时延后选择，
// 避免top结果被单一类别占满；名额未满时再从延后队列补齐。
// 返回选中的候选和剩余候选（保持评分顺序）。
func selectWithDiversity(sorted []Candidate, maxResults int, diversity string) ([]Candidate, []Candidate) {
	limit := categoryCap(maxResults, diversity)
	categoryCount := make(map[string]int)

	selected := make([]Candidate, 0, maxResults)
	deferred := make([]Candidate, 0)
	remaining := make([]Candidate, 0)

	for _, cand := range sorted {
		if len(selected) >= maxResults {
			remaining = append(remaining, cand)
			continue
		}
		if categoryCount[cand.Category] >= limit {
			deferred = append(deferred, cand)
			continue
		}
		categoryCount[cand.Category]++
		selected = append(selected, cand)
	}

	// 其余类别不足以填满结果时，从延后队列按原顺序补齐
	backfilled := false
	for len(selected) < maxResults && len(deferred) > 0 {
		selected = append(selected, deferred[0])
		deferred = deferred[1:]
		backfilled = true
	}
	// 补齐的候选评分可能高于已选中的低分类别，重排保证评分非递增
	if backfilled {
		sort.SliceStable(selected, func(i, j int) bool {
			return candidateLess(&selected[i], &selected[j])
		})
	}
	remaining = append(deferred, remaining...)

	return selected, remaining
}

// buildRecommendation 将候选项转换为推荐结果
func buildRecommendation(cand Candidate, userTokens map[string]bool) models.Recommendation {
	rec := models.Recommendation{
		Type:      cand.Category,
		Target:    cand.Target,
		Name:      cand.Name,
		Location:  cand.Location,
		Activity:  cand.Activity,
		Score:     cand.Score,
		Reasoning: buildItemReasoning(cand, userTokens),
	}
	return rec
}

// buildItemReasoning 生成单条推荐的简短推理说明
func buildItemReasoning(cand Candidate, userTokens map[string]bool) string {
	matched := make([]string, 0)
	for token := range candidateTokens(&cand) {
		if userTokens[token] {
			matched = append(matched, token)
		}
	}
	sort.Strings(matched)

	if len(matched) > 0 {
		return fmt.Sprintf("与您的偏好标签匹配: %s", strings.Join(matched, "、"))
	}
	if cand.Quality >= 0.6 {
		return "来自高质量的旅行内容"
	}
	return "根据内容分析结果推荐"
}

// buildAggregateReasoning 汇总说明哪些需求字段主导了推荐结果
func buildAggregateReasoning(req *models.UserRequirements, prefs *models.UserPreferences, recommendations []models.Recommendation) string {
	drivers := make([]string, 0)
	if len(req.Interests) > 0 {
		drivers = append(drivers, fmt.Sprintf("兴趣(%s)", strings.Join(req.Interests, "、")))
	}
	if len(req.TravelStyle) > 0 {
		drivers = append(drivers, fmt.Sprintf("出行风格(%s)", strings.Join(req.TravelStyle, "、")))
	}
	if req.Budget != nil {
		drivers = append(drivers, "预算匹配度")
	}
	if prefs != nil && len(prefs.ActivityTypes) > 0 {
		drivers = append(drivers, "偏好的活动类型")
	}

	if len(drivers) == 0 {
		return fmt.Sprintf("基于内容质量排序，共%d条推荐", len(recommendations))
	}
	return fmt.Sprintf("推荐主要依据: %s，共%d条推荐", strings.Join(drivers, "、"), len(recommendations))
}

// meanScore 推荐结果的平均评分，作为整体置信度
func meanScore(recommendations []models.Recommendation) float64 {
	if len(recommendations) == 0 {
		return 0
	}
	total := 0.0
	for _, rec := range recommendations {
		total += rec.Score
	}
	return total / float64(len(recommendations))
}

// buildRecommendationSummary 按置信度分层统计推荐结果
func buildRecommendationSummary(recommendations []models.Recommendation) models.RecommendationSummary {
	summary := models.RecommendationSummary{
		TotalRecommendations: len(recommendations),
		AverageConfidence:    meanScore(recommendations),
	}

	categories := make([]string, 0)
	for _, rec := range recommendations {
		switch {
		case rec.Score > 0.8:
			summary.HighConfidenceCount++
		case rec.Score > 0.6:
			summary.MediumConfidenceCount++
		default:
			summary.LowConfidenceCount++
		}
		categories = append(categories, rec.Type)
	}
	summary.CategoriesRepresented = utils.DeduplicateSlice(categories)

	return summary
}
