package models

// UserRequirements 用户的出行需求，在边界层校验后进入核心流程
type UserRequirements struct {
	Duration            int      `json:"duration" validate:"required,min=1,max=30"`  // 行程天数
	Travelers           int      `json:"travelers" validate:"required,min=1,max=20"` // 出行人数
	Budget              *float64 `json:"budget,omitempty" validate:"omitempty,gte=0"`
	TravelStyle         []string `json:"travelStyle" validate:"required,min=1,max=5,dive,required"`
	Interests           []string `json:"interests" validate:"max=10"`
	DietaryRestrictions []string `json:"dietaryRestrictions,omitempty" validate:"max=5"`
	Accessibility       []string `json:"accessibility,omitempty" validate:"max=5"`
	FreeText            string   `json:"freeText,omitempty"`
}

// UserPreferences 可选的偏好细化信息
type UserPreferences struct {
	BudgetRange   string   `json:"budget_range,omitempty" validate:"omitempty,oneof=low medium high"`
	ActivityTypes []string `json:"activity_types,omitempty"`
	TravelStyle   string   `json:"travel_style,omitempty" validate:"omitempty,oneof=relaxed adventure cultural luxury"`
	GroupType     string   `json:"group_type,omitempty" validate:"omitempty,oneof=solo couple family friends"`
	Interests     []string `json:"interests,omitempty"`
	AvoidList     []string `json:"avoid_list,omitempty"`
}

// PerDayBudget 计算每日预算，预算缺失时返回0
func (r *UserRequirements) PerDayBudget() float64 {
	if r.Budget == nil || r.Duration <= 0 {
		return 0
	}
	return *r.Budget / float64(r.Duration)
}
