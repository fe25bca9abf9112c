package services

import (
	"context"

	"travel_planner/config"
	"travel_planner/models"
)

// ContentAnalyzer 内容分析服务接口
type ContentAnalyzer interface {
	// 批量分析帖子，结果保持输入顺序，单条失败不中断批次
	AnalyzePosts(ctx context.Context, cfg *config.Config, posts []models.Post, opts models.ResolvedAnalyzeOptions) ([]models.AnalysisResult, models.AnalysisSummary)
}

// Recommender 推荐服务接口
type Recommender interface {
	// 根据分析结果和用户需求生成排序推荐
	GenerateRecommendations(cfg *config.Config, analyses []models.ContentAnalysis, req *models.UserRequirements, prefs *models.UserPreferences, opts models.ResolvedRecommendOptions) (*models.RecommendResponse, error)
}

// ItineraryPlanner 行程生成服务接口
type ItineraryPlanner interface {
	// 生成逐日行程计划
	GenerateItinerary(ctx context.Context, cfg *config.Config, analyses []models.ContentAnalysis, req *models.UserRequirements, opts models.ResolvedPlanOptions) (*models.TravelPlan, error)
}

// Extractor 内容提取服务接口（外部协作方）
type Extractor interface {
	// 将帖子URL转换为结构化Post
	ExtractPost(ctx context.Context, cfg *config.Config, url string) (*models.Post, error)
}

// BookingSearcher 预订搜索服务接口（外部协作方）
type BookingSearcher interface {
	SearchFlights(ctx context.Context, cfg *config.Config, params BookingParams) ([]models.Offer, error)
	SearchHotels(ctx context.Context, cfg *config.Config, params BookingParams) ([]models.Offer, error)
}
