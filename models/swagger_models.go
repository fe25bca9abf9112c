package models

// APIResponse 通用API响应
type APIResponse struct {
	Code    int         `json:"code" example:"0"`
	Message string      `json:"message" example:"success"`
	Data    interface{} `json:"data,omitempty"`
}

// AnalyzeAPIResponse 内容分析响应
type AnalyzeAPIResponse struct {
	Code    int             `json:"code" example:"0"`
	Message string          `json:"message" example:"success"`
	Data    AnalyzeResponse `json:"data"`
}

// PlanAPIResponse 行程生成响应
type PlanAPIResponse struct {
	Code    int          `json:"code" example:"0"`
	Message string       `json:"message" example:"success"`
	Data    PlanResponse `json:"data"`
}

// RecommendAPIResponse 推荐内容响应
type RecommendAPIResponse struct {
	Code    int               `json:"code" example:"0"`
	Message string            `json:"message" example:"success"`
	Data    RecommendResponse `json:"data"`
}
