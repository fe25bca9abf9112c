package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	httpSwagger "github.com/swaggo/http-swagger"

	"travel_planner/config"
	_ "travel_planner/docs" // 导入 swagger 文档
	"travel_planner/models"
	"travel_planner/services"
	"travel_planner/utils"
)

// validate 边界层的结构体校验器，非法输入不会进入核心流程
var validate = validator.New()

// validateRequest 校验请求结构体，失败时写入参数错误响应
func validateRequest(w http.ResponseWriter, req interface{}) bool {
	if err := validate.Struct(req); err != nil {
		utils.WriteCustomErrorResponse(w, http.StatusBadRequest, models.CodeInvalidParams,
			"参数校验失败: "+err.Error(), map[string]interface{}{})
		return false
	}
	return true
}

// requestTimeout 单次请求的总超时：覆盖分析worker和外部协作方调用
func requestTimeout(cfg *config.Config) time.Duration {
	if cfg.Analyzer.TimeoutSec > 0 {
		return time.Duration(cfg.Analyzer.TimeoutSec) * time.Second
	}
	return 60 * time.Second
}

// AnalyzeHandler godoc
// @Summary 批量分析社交媒体旅行内容
// @Description 对已提取的帖子做结构化分析：地点去重、活动费用/时长回填、质量评分。单条失败不影响其他帖子
// @Tags 内容分析
// @Accept json
// @Produce json
// @Param request body models.AnalyzeRequest true "帖子列表及分析选项"
// @Success 200 {object} models.AnalyzeAPIResponse "成功"
// @Failure 400 {object} models.APIResponse "参数错误"
// @Router /api/travel/analyze [post]
func AnalyzeHandler(w http.ResponseWriter, r *http.Request, cfg *config.Config) {
	var req models.AnalyzeRequest
	if !utils.DecodeJSONBody(w, r, &req) {
		return
	}
	if !validateRequest(w, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(cfg))
	defer cancel()

	opts := req.Options.Resolve()
	results, summary := services.AnalyzePosts(ctx, cfg, req.Posts, opts)

	utils.WriteSuccessResponse(w, models.AnalyzeResponse{
		Results: results,
		Summary: summary,
	})
}

// PlanHandler godoc
// @Summary 生成逐日旅行行程计划
// @Description 基于内容分析结果和用户需求生成行程，可选机票/酒店搜索与路线优化。预订搜索失败时降级为省略对应类目
// @Tags 行程生成
// @Accept json
// @Produce json
// @Param request body models.PlanRequest true "已提取内容、用户需求及生成选项"
// @Success 200 {object} models.PlanAPIResponse "成功"
// @Failure 400 {object} models.APIResponse "参数错误"
// @Failure 500 {object} models.APIResponse "无法生成可行行程"
// @Failure 504 {object} models.APIResponse "处理超时"
// @Router /api/travel/plan [post]
func PlanHandler(w http.ResponseWriter, r *http.Request, cfg *config.Config) {
	var req models.PlanRequest
	if !utils.DecodeJSONBody(w, r, &req) {
		return
	}
	if !validateRequest(w, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(cfg))
	defer cancel()

	// 先分析内容再生成行程，分析选项使用缺省值
	results, _ := services.AnalyzePosts(ctx, cfg, req.ExtractedContent, (&models.AnalyzeOptions{}).Resolve())
	analyses := services.AnalysesFromResults(results)

	// 分析阶段超时会使所有结果槽位失败，需与候选不足区分开
	if ctx.Err() != nil {
		utils.WriteErrorResponse(w, http.StatusGatewayTimeout, models.CodeTimeout, map[string]interface{}{})
		return
	}

	opts := req.Options.Resolve()
	plan, err := services.GenerateItinerary(ctx, cfg, analyses, &req.UserRequirements, opts)
	if err != nil {
		if errors.Is(err, services.ErrNoFeasibleItinerary) {
			// 行程生成失败对单次请求是致命的，回显需求便于调用方调整后重试
			utils.WriteErrorResponse(w, http.StatusInternalServerError, models.CodeNoFeasibleItinerary, map[string]interface{}{
				"requirements":    req.UserRequirements,
				"analyzedContent": len(analyses),
			})
			return
		}
		if errors.Is(err, context.DeadlineExceeded) {
			utils.WriteErrorResponse(w, http.StatusGatewayTimeout, models.CodeTimeout, map[string]interface{}{})
			return
		}
		utils.WriteCustomErrorResponse(w, http.StatusInternalServerError, models.CodePlanGenError, err.Error(), map[string]interface{}{})
		return
	}

	utils.WriteSuccessResponse(w, models.PlanResponse{
		TravelPlan: *plan,
		Metadata:   services.BuildPlanMetadata(plan, analyses),
	})
}

// RecommendHandler godoc
// @Summary 生成个性化旅行推荐
// @Description 基于内容分析结果、用户需求和偏好生成带多样性控制的排序推荐及备选列表
// @Tags 推荐内容
// @Accept json
// @Produce json
// @Param request body models.RecommendRequest true "已提取内容、用户需求、偏好及推荐选项"
// @Success 200 {object} models.RecommendAPIResponse "成功"
// @Failure 400 {object} models.APIResponse "参数错误"
// @Failure 422 {object} models.APIResponse "候选池为空"
// @Failure 504 {object} models.APIResponse "处理超时"
// @Router /api/travel/recommend [post]
func RecommendHandler(w http.ResponseWriter, r *http.Request, cfg *config.Config) {
	var req models.RecommendRequest
	if !utils.DecodeJSONBody(w, r, &req) {
		return
	}
	if !validateRequest(w, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(cfg))
	defer cancel()

	results, _ := services.AnalyzePosts(ctx, cfg, req.ExtractedContent, (&models.AnalyzeOptions{}).Resolve())
	analyses := services.AnalysesFromResults(results)

	// 分析阶段超时会使所有结果槽位失败，需与候选池为空区分开
	if ctx.Err() != nil {
		utils.WriteErrorResponse(w, http.StatusGatewayTimeout, models.CodeTimeout, map[string]interface{}{})
		return
	}

	opts := req.Options.Resolve()
	response, err := services.GenerateRecommendations(cfg, analyses, &req.UserRequirements, req.UserPreferences, opts)
	if err != nil {
		if errors.Is(err, services.ErrInsufficientCandidates) {
			// 候选池为空是可恢复错误，回显上下文便于调用方更换内容后重试
			utils.WriteErrorResponse(w, http.StatusUnprocessableEntity, models.CodeInsufficientCandidates, map[string]interface{}{
				"totalContent":    len(req.ExtractedContent),
				"analyzedContent": len(analyses),
				"requirements":    req.UserRequirements,
			})
			return
		}
		utils.WriteCustomErrorResponse(w, http.StatusInternalServerError, models.CodeRecommendError, err.Error(), map[string]interface{}{})
		return
	}

	utils.WriteSuccessResponse(w, response)
}

// ExtractHandler godoc
// @Summary 批量提取帖子URL为结构化内容
// @Description 调用外部提取服务将社交媒体帖子URL转换为结构化Post，单条失败不影响其他URL
// @Tags 内容提取
// @Accept json
// @Produce json
// @Param request body models.ExtractRequest true "URL列表"
// @Success 200 {object} models.APIResponse "成功"
// @Failure 400 {object} models.APIResponse "参数错误"
// @Router /api/travel/extract [post]
func ExtractHandler(w http.ResponseWriter, r *http.Request, cfg *config.Config) {
	var req models.ExtractRequest
	if !utils.DecodeJSONBody(w, r, &req) {
		return
	}
	if !validateRequest(w, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(cfg))
	defer cancel()

	response := services.ExtractPosts(ctx, cfg, req.URLs)
	utils.WriteSuccessResponse(w, response)
}

// HealthHandler godoc
// @Summary 健康检查
// @Tags 系统
// @Produce json
// @Success 200 {object} models.APIResponse "成功"
// @Router /api/health [get]
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccessResponse(w, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// RegisterRoutes 注册所有路由
func RegisterRoutes(r chi.Router, cfg *config.Config) {
	r.Get("/api/health", HealthHandler)

	r.Post("/api/travel/analyze", func(w http.ResponseWriter, r *http.Request) {
		AnalyzeHandler(w, r, cfg)
	})
	r.Post("/api/travel/plan", func(w http.ResponseWriter, r *http.Request) {
		PlanHandler(w, r, cfg)
	})
	r.Post("/api/travel/recommend", func(w http.ResponseWriter, r *http.Request) {
		RecommendHandler(w, r, cfg)
	})
	r.Post("/api/travel/extract", func(w http.ResponseWriter, r *http.Request) {
		ExtractHandler(w, r, cfg)
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)
}
