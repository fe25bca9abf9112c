package services

import "errors"

// 核心流程的哨兵错误，handler层据此映射响应码
var (
	// ErrInsufficientCandidates 候选池为空，无法生成有意义的推荐
	ErrInsufficientCandidates = errors.New("候选池为空，无法生成推荐")

	// ErrNoFeasibleItinerary 装箱后没有任何一天包含活动，无法生成行程
	ErrNoFeasibleItinerary = errors.New("无法生成可行的行程安排")
)
