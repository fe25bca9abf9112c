package models

// 推荐目标类型
const (
	TargetLocation = "location"
	TargetActivity = "activity"
)

// Recommendation 单条推荐结果
type Recommendation struct {
	Type      string    `json:"type"`   // 类别标签
	Target    string    `json:"target"` // location / activity
	Name      string    `json:"name"`
	Location  *Location `json:"location,omitempty"`
	Activity  *Activity `json:"activity,omitempty"`
	Score     float64   `json:"score"` // [0,1]
	Reasoning string    `json:"reasoning"`
}

// RecommendationMetadata 推荐集合的置信度与推理说明
type RecommendationMetadata struct {
	ConfidenceScore    float64 `json:"confidenceScore"` // [0,1]
	Reasoning          string  `json:"reasoning"`
	RecommendationType string  `json:"recommendationType"`
	DiversityLevel     string  `json:"diversityLevel"`
}

// RecommendationSummary 推荐结果的分层统计
type RecommendationSummary struct {
	TotalRecommendations  int      `json:"totalRecommendations"`
	HighConfidenceCount   int      `json:"highConfidenceCount"`   // score > 0.8
	MediumConfidenceCount int      `json:"mediumConfidenceCount"` // 0.6 < score <= 0.8
	LowConfidenceCount    int      `json:"lowConfidenceCount"`    // score <= 0.6
	AverageConfidence     float64  `json:"averageConfidence"`
	CategoriesRepresented []string `json:"categoriesRepresented"`
}

// RecommendResponse 推荐接口的响应数据
type RecommendResponse struct {
	Recommendations []Recommendation       `json:"recommendations"`
	Alternatives    []Recommendation       `json:"alternatives"`
	Metadata        RecommendationMetadata `json:"metadata"`
	Summary         RecommendationSummary  `json:"summary"`
}
