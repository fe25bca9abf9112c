package models

// ContentAnalysis 单条帖子的结构化分析结果，生成后不再被下游修改
type ContentAnalysis struct {
	ContentID    string     `json:"contentId"`
	Locations    []Location `json:"locations"`
	Activities   []Activity `json:"activities"`
	Tags         []string   `json:"tags,omitempty"`
	QualityScore float64    `json:"qualityScore"` // [0,1]
	Insights     string     `json:"insights,omitempty"`
}

// AnalysisResult 批量分析中的单项结果，失败时Analysis为nil且Error非空
type AnalysisResult struct {
	ContentID string           `json:"contentId"`
	Title     string           `json:"title"`
	Platform  string           `json:"platform"`
	Analysis  *ContentAnalysis `json:"analysis"`
	Error     string           `json:"error,omitempty"`
}

// AnalysisSummary 批量分析的汇总统计
type AnalysisSummary struct {
	TotalContent        int     `json:"totalContent"`
	SuccessfulAnalyses  int     `json:"successfulAnalyses"`
	FailedAnalyses      int     `json:"failedAnalyses"`
	TotalLocations      int     `json:"totalLocations"`
	TotalActivities     int     `json:"totalActivities"`
	AverageQualityScore float64 `json:"averageQualityScore"`
}

// AnalyzeResponse 内容分析接口的响应数据
type AnalyzeResponse struct {
	Results []AnalysisResult `json:"results"`
	Summary AnalysisSummary  `json:"summary"`
}
