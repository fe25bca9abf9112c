package models

// 行程复杂度，按天数划分
const (
	PlanComplexitySimple   = "simple"   // <= 3天
	PlanComplexityModerate = "moderate" // <= 7天
	PlanComplexityComplex  = "complex"  // > 7天
)

// Offer 机票或酒店搜索返回的报价
type Offer struct {
	ID          string  `json:"id"`
	Provider    string  `json:"provider"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency,omitempty"`
}

// ScheduledActivity 排入某一天的活动及其排序信息
type ScheduledActivity struct {
	Activity Activity `json:"activity"`
	Score    float64  `json:"score"`
}

// Day 行程中的一天
type Day struct {
	DayIndex   int                 `json:"dayIndex"` // 从1开始
	Activities []ScheduledActivity `json:"activities"`
	Locations  []Location          `json:"locations,omitempty"` // 当天的路线地点序列
}

// TravelPlan 完整的逐日旅行计划
type TravelPlan struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	TotalDays       int      `json:"totalDays"`
	EstimatedBudget float64  `json:"estimatedBudget"`
	Days            []Day    `json:"days"`
	Flights         []Offer  `json:"flights,omitempty"`
	Hotels          []Offer  `json:"hotels,omitempty"`
	Warnings        []string `json:"warnings,omitempty"`
}

// PlanMetadata 行程生成的附加信息
type PlanMetadata struct {
	GeneratedAt           string   `json:"generatedAt"`
	ContentSources        []string `json:"contentSources"`
	PlanComplexity        string   `json:"planComplexity"`
	EstimatedPlanningTime string   `json:"estimatedPlanningTime"`
}

// PlanResponse 行程生成接口的响应数据
type PlanResponse struct {
	TravelPlan TravelPlan   `json:"travelPlan"`
	Metadata   PlanMetadata `json:"metadata"`
}

// Complexity 根据天数计算行程复杂度
func (p *TravelPlan) Complexity() string {
	switch {
	case p.TotalDays <= 3:
		return PlanComplexitySimple
	case p.TotalDays <= 7:
		return PlanComplexityModerate
	default:
		return PlanComplexityComplex
	}
}

// ActivityCount 统计计划中已排入的活动总数
func (p *TravelPlan) ActivityCount() int {
	count := 0
	for _, day := range p.Days {
		count += len(day.Activities)
	}
	return count
}
