package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"travel_planner/config"
	"travel_planner/logger"
	"travel_planner/models"
	"travel_planner/utils"
)

// scheduledItem 装箱阶段的内部表示，地点类候选会被合成为游览活动
type scheduledItem struct {
	activity    models.Activity
	score       float64
	location    *models.Location
	coordinates *models.Coordinates
	duration    int
}

// GenerateItinerary 根据分析结果和用户需求生成逐日行程计划。
// 天数槽位始终等于requirements.duration；装箱后没有任何一天
// 包含活动时返回ErrNoFeasibleItinerary。
func GenerateItinerary(ctx context.Context, cfg *config.Config, analyses []models.ContentAnalysis, req *models.UserRequirements, opts models.ResolvedPlanOptions) (*models.TravelPlan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.Info("开始生成行程计划",
		"days", req.Duration, "travelers", req.Travelers,
		"include_flights", opts.IncludeFlights, "include_hotels", opts.IncludeHotels)

	pool := BuildCandidatePool(analyses)
	items := buildScheduledItems(cfg, pool, req)

	// 天数槽位数固定等于需求天数，允许某些天为空
	days := make([]models.Day, req.Duration)
	for i := range days {
		days[i] = models.Day{DayIndex: i + 1, Activities: []models.ScheduledActivity{}}
	}

	dayItems := packItemsIntoDays(cfg, items, req.Duration)

	feasible := false
	for i := range days {
		if len(dayItems[i]) == 0 {
			continue
		}
		feasible = true
		if opts.OptimizeRoute {
			dayItems[i] = optimizeDayRoute(dayItems[i])
		}
		for _, item := range dayItems[i] {
			days[i].Activities = append(days[i].Activities, models.ScheduledActivity{
				Activity: item.activity,
				Score:    item.score,
			})
			if item.location != nil {
				days[i].Locations = append(days[i].Locations, *item.location)
			}
		}
	}
	if !feasible {
		return nil, ErrNoFeasibleItinerary
	}

	plan := &models.TravelPlan{
		ID:        uuid.NewString(),
		Title:     fmt.Sprintf("%d日旅行计划", req.Duration),
		TotalDays: req.Duration,
		Days:      days,
	}

	// 机票和酒店搜索各自独立超时，失败只记录警告不影响行程
	if opts.IncludeFlights || opts.IncludeHotels {
		fetchOffers(ctx, cfg, req, opts, plan)
	}

	plan.EstimatedBudget = estimateBudget(cfg, plan)

	logger.Info("行程计划生成完成",
		"plan_id", plan.ID,
		"days", plan.TotalDays,
		"activities", plan.ActivityCount(),
		"estimated_budget", plan.EstimatedBudget)

	return plan, nil
}

// buildScheduledItems 评分并转换候选项：活动直接使用，
// 地点合成为对应的游览活动（合成填充项）
func buildScheduledItems(cfg *config.Config, pool []Candidate, req *models.UserRequirements) []scheduledItem {
	userTokens := buildUserTokens(req, nil)
	items := make([]scheduledItem, 0, len(pool))

	for i := range pool {
		cand := &pool[i]
		cand.Score = scoreCandidate(cfg, cand, req, userTokens, models.RecommendTypeSimilar)

		item := scheduledItem{score: cand.Score}
		if cand.Activity != nil {
			item.activity = *cand.Activity
		} else {
			cost := imputeCost(cfg, cand.Category)
			duration := defaultDuration(cfg)
			item.activity = models.Activity{
				Name:          fmt.Sprintf("游览%s", cand.Location.Name),
				Category:      cand.Category,
				EstimatedCost: &cost,
				Duration:      &duration,
			}
			item.location = cand.Location
			item.coordinates = cand.Location.Coordinates
		}

		item.duration = defaultDuration(cfg)
		if item.activity.Duration != nil && *item.activity.Duration > 0 {
			item.duration = *item.activity.Duration
		}
		items = append(items, item)
	}

	// 高分优先排入
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].score > items[j].score
	})

	return items
}

func defaultDuration(cfg *config.Config) int {
	if cfg.Itinerary.DefaultDuration > 0 {
		return cfg.Itinerary.DefaultDuration
	}
	return 90
}

// packItemsIntoDays 贪心装箱：按天序将条目填入未达目标时长的一天，
// 使高分条目集中在行程前段；所有天都接近目标后退回到总时长最小的一天，
// 不超过每日硬上限。放不下的低分条目直接丢弃。
func packItemsIntoDays(cfg *config.Config, items []scheduledItem, totalDays int) [][]scheduledItem {
	maxMinutes := cfg.Itinerary.MaxDayMinutes
	if maxMinutes <= 0 {
		maxMinutes = 480
	}
	targetMinutes := cfg.Itinerary.TargetDayMinutes
	if targetMinutes <= 0 || targetMinutes > maxMinutes {
		targetMinutes = maxMinutes
	}

	dayItems := make([][]scheduledItem, totalDays)
	dayLoad := make([]int, totalDays)

	for _, item := range items {
		best := -1
		for d := 0; d < totalDays; d++ {
			if dayLoad[d]+item.duration <= targetMinutes {
				best = d
				break
			}
		}
		if best < 0 {
			for d := 0; d < totalDays; d++ {
				if dayLoad[d]+item.duration > maxMinutes {
					continue
				}
				if best < 0 || dayLoad[d] < dayLoad[best] {
					best = d
				}
			}
		}
		if best < 0 {
			continue // 所有天都已排满，丢弃剩余候选
		}
		dayItems[best] = append(dayItems[best], item)
		dayLoad[best] += item.duration
	}

	return dayItems
}

// optimizeDayRoute 对有坐标的条目做最近邻重排，从当天评分最高的
// 条目出发，减少直线距离总和。启发式算法，不保证全局最优。
// 无坐标的条目保持评分顺序排在路线之后。
func optimizeDayRoute(items []scheduledItem) []scheduledItem {
	withCoords := make([]scheduledItem, 0, len(items))
	withoutCoords := make([]scheduledItem, 0)
	for _, item := range items {
		if item.coordinates != nil {
			withCoords = append(withCoords, item)
		} else {
			withoutCoords = append(withoutCoords, item)
		}
	}
	if len(withCoords) < 2 {
		return items
	}

	// 起点为评分最高的条目（输入已按评分降序）
	route := make([]scheduledItem, 0, len(withCoords))
	route = append(route, withCoords[0])
	rest := withCoords[1:]

	for len(rest) > 0 {
		last := route[len(route)-1].coordinates
		nearest := 0
		nearestDist := utils.HaversineDistance(
			last.Latitude, last.Longitude,
			rest[0].coordinates.Latitude, rest[0].coordinates.Longitude)
		for i := 1; i < len(rest); i++ {
			dist := utils.HaversineDistance(
				last.Latitude, last.Longitude,
				rest[i].coordinates.Latitude, rest[i].coordinates.Longitude)
			// 平局保持原评分顺序，因此只在严格更近时替换
			if dist < nearestDist {
				nearest = i
				nearestDist = dist
			}
		}
		route = append(route, rest[nearest])
		rest = append(rest[:nearest], rest[nearest+1:]...)
	}

	return append(route, withoutCoords...)
}

// fetchOffers 并发查询机票和酒店报价，单方超时或失败降级为省略该类目
func fetchOffers(ctx context.Context, cfg *config.Config, req *models.UserRequirements, opts models.ResolvedPlanOptions, plan *models.TravelPlan) {
	params := BookingParams{
		Days:      req.Duration,
		Travelers: req.Travelers,
		Budget:    req.Budget,
	}

	var wg sync.WaitGroup
	var mu sync.Mutex

	if opts.IncludeFlights {
		wg.Add(1)
		go func() {
			defer wg.Done()
			offers, err := SearchFlights(ctx, cfg, params)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				logger.Warn("机票搜索失败，行程中省略机票", "error", err)
				plan.Warnings = append(plan.Warnings, fmt.Sprintf("机票搜索失败: %v", err))
				return
			}
			plan.Flights = offers
		}()
	}

	if opts.IncludeHotels {
		wg.Add(1)
		go func() {
			defer wg.Done()
			offers, err := SearchHotels(ctx, cfg, params)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				logger.Warn("酒店搜索失败，行程中省略酒店", "error", err)
				plan.Warnings = append(plan.Warnings, fmt.Sprintf("酒店搜索失败: %v", err))
				return
			}
			plan.Hotels = offers
		}()
	}

	wg.Wait()
}

// estimateBudget 预算估算：已排入活动的费用之和（缺失时按类别估算），
// 加上机票和酒店中最便宜的报价。只是尽力估算，不保证精确。
func estimateBudget(cfg *config.Config, plan *models.TravelPlan) float64 {
	total := 0.0
	for _, day := range plan.Days {
		for _, scheduled := range day.Activities {
			if scheduled.Activity.EstimatedCost != nil {
				total += *scheduled.Activity.EstimatedCost
			} else {
				total += imputeCost(cfg, scheduled.Activity.Category)
			}
		}
	}

	if offer := cheapestOffer(plan.Flights); offer != nil {
		total += offer.Price
	}
	if offer := cheapestOffer(plan.Hotels); offer != nil {
		total += offer.Price
	}

	if total < 0 {
		return 0
	}
	return total
}

// cheapestOffer 返回价格最低的报价
func cheapestOffer(offers []models.Offer) *models.Offer {
	if len(offers) == 0 {
		return nil
	}
	cheapest := &offers[0]
	for i := 1; i < len(offers); i++ {
		if offers[i].Price < cheapest.Price {
			cheapest = &offers[i]
		}
	}
	return cheapest
}

// BuildPlanMetadata 计算行程的派生元数据
func BuildPlanMetadata(plan *models.TravelPlan, analyses []models.ContentAnalysis) models.PlanMetadata {
	sources := make([]string, 0, len(analyses))
	for _, analysis := range analyses {
		sources = append(sources, analysis.ContentID)
	}

	// 规划耗时按天数和活动数粗略估计
	planningMinutes := plan.TotalDays*20 + plan.ActivityCount()*5

	return models.PlanMetadata{
		GeneratedAt:           time.Now().Format(time.RFC3339),
		ContentSources:        utils.DeduplicateSlice(sources),
		PlanComplexity:        plan.Complexity(),
		EstimatedPlanningTime: fmt.Sprintf("%d分钟", planningMinutes),
	}
}
