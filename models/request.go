package models

// 分析深度
const (
	AnalysisDepthBasic         = "basic"
	AnalysisDepthDetailed      = "detailed"
	AnalysisDepthComprehensive = "comprehensive"
)

// 推荐多样性级别
const (
	DiversityLow    = "low"
	DiversityMedium = "medium"
	DiversityHigh   = "high"
)

// 推荐类型
const (
	RecommendTypeSimilar       = "similar"
	RecommendTypeComplementary = "complementary"
	RecommendTypeDiverse       = "diverse"
)

// AnalyzeOptions 内容分析选项，缺省值在边界层解析一次后进入核心流程
type AnalyzeOptions struct {
	IncludeImages   *bool  `json:"includeImages,omitempty"`
	AnalysisDepth   string `json:"analysisDepth,omitempty" validate:"omitempty,oneof=basic detailed comprehensive"`
	ExtractInsights *bool  `json:"extractInsights,omitempty"`
}

// ResolvedAnalyzeOptions 解析缺省值后的分析选项
type ResolvedAnalyzeOptions struct {
	IncludeImages   bool
	AnalysisDepth   string
	ExtractInsights bool
}

// Resolve 填充缺省值：{includeImages:true, analysisDepth:"detailed", extractInsights:true}
func (o *AnalyzeOptions) Resolve() ResolvedAnalyzeOptions {
	resolved := ResolvedAnalyzeOptions{
		IncludeImages:   true,
		AnalysisDepth:   AnalysisDepthDetailed,
		ExtractInsights: true,
	}
	if o == nil {
		return resolved
	}
	if o.IncludeImages != nil {
		resolved.IncludeImages = *o.IncludeImages
	}
	if o.AnalysisDepth != "" {
		resolved.AnalysisDepth = o.AnalysisDepth
	}
	if o.ExtractInsights != nil {
		resolved.ExtractInsights = *o.ExtractInsights
	}
	return resolved
}

// AnalyzeRequest 内容分析请求体
type AnalyzeRequest struct {
	Posts   []Post          `json:"posts" validate:"required,min=1,dive"`
	Options *AnalyzeOptions `json:"options,omitempty"`
}

// PlanOptions 行程生成选项
type PlanOptions struct {
	IncludeFlights bool   `json:"includeFlights"`
	IncludeHotels  bool   `json:"includeHotels"`
	OptimizeRoute  *bool  `json:"optimizeRoute,omitempty"`
	DetailLevel    string `json:"detailLevel,omitempty" validate:"omitempty,oneof=basic detailed comprehensive"`
}

// ResolvedPlanOptions 解析缺省值后的行程生成选项
type ResolvedPlanOptions struct {
	IncludeFlights bool
	IncludeHotels  bool
	OptimizeRoute  bool
	DetailLevel    string
}

// Resolve 填充缺省值：{optimizeRoute:true, detailLevel:"detailed"}
func (o *PlanOptions) Resolve() ResolvedPlanOptions {
	resolved := ResolvedPlanOptions{
		OptimizeRoute: true,
		DetailLevel:   AnalysisDepthDetailed,
	}
	if o == nil {
		return resolved
	}
	resolved.IncludeFlights = o.IncludeFlights
	resolved.IncludeHotels = o.IncludeHotels
	if o.OptimizeRoute != nil {
		resolved.OptimizeRoute = *o.OptimizeRoute
	}
	if o.DetailLevel != "" {
		resolved.DetailLevel = o.DetailLevel
	}
	return resolved
}

// PlanRequest 行程生成请求体
type PlanRequest struct {
	ExtractedContent []Post           `json:"extractedContent" validate:"required,min=1,dive"`
	UserRequirements UserRequirements `json:"userRequirements" validate:"required"`
	Options          *PlanOptions     `json:"options,omitempty"`
}

// RecommendOptions 推荐选项
type RecommendOptions struct {
	MaxRecommendations  int    `json:"maxRecommendations,omitempty" validate:"omitempty,min=1,max=50"`
	IncludeAlternatives *bool  `json:"includeAlternatives,omitempty"`
	DiversityLevel      string `json:"diversityLevel,omitempty" validate:"omitempty,oneof=low medium high"`
	RecommendationType  string `json:"recommendationType,omitempty" validate:"omitempty,oneof=similar complementary diverse"`
}

// ResolvedRecommendOptions 解析缺省值后的推荐选项
type ResolvedRecommendOptions struct {
	MaxRecommendations  int
	IncludeAlternatives bool
	DiversityLevel      string
	RecommendationType  string
}

// Resolve 填充缺省值：{maxRecommendations:10, includeAlternatives:true, diversityLevel:"medium", recommendationType:"similar"}
func (o *RecommendOptions) Resolve() ResolvedRecommendOptions {
	resolved := ResolvedRecommendOptions{
		MaxRecommendations:  10,
		IncludeAlternatives: true,
		DiversityLevel:      DiversityMedium,
		RecommendationType:  RecommendTypeSimilar,
	}
	if o == nil {
		return resolved
	}
	if o.MaxRecommendations > 0 {
		resolved.MaxRecommendations = o.MaxRecommendations
	}
	if o.IncludeAlternatives != nil {
		resolved.IncludeAlternatives = *o.IncludeAlternatives
	}
	if o.DiversityLevel != "" {
		resolved.DiversityLevel = o.DiversityLevel
	}
	if o.RecommendationType != "" {
		resolved.RecommendationType = o.RecommendationType
	}
	return resolved
}

// RecommendRequest 推荐请求体
type RecommendRequest struct {
	ExtractedContent []Post            `json:"extractedContent" validate:"required,min=1,dive"`
	UserRequirements UserRequirements  `json:"userRequirements" validate:"required"`
	UserPreferences  *UserPreferences  `json:"userPreferences,omitempty"`
	Options          *RecommendOptions `json:"options,omitempty"`
}

// ExtractRequest 内容提取请求体
type ExtractRequest struct {
	URLs []string `json:"urls" validate:"required,min=1,max=20,dive,url"`
}

// ExtractResult 批量提取中的单项结果
type ExtractResult struct {
	URL   string `json:"url"`
	Post  *Post  `json:"post"`
	Error string `json:"error,omitempty"`
}

// ExtractResponse 内容提取接口的响应数据
type ExtractResponse struct {
	Results    []ExtractResult `json:"results"`
	TotalURLs  int             `json:"totalUrls"`
	Successful int             `json:"successful"`
	Failed     int             `json:"failed"`
}
