package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"travel_planner/config"
	"travel_planner/logger"
	"travel_planner/models"
)

// BookingParams 机票/酒店搜索的查询参数
type BookingParams struct {
	Days      int      `json:"days"`
	Travelers int      `json:"travelers"`
	Budget    *float64 `json:"budget,omitempty"`
}

// bookingResp 预订搜索服务的响应结构
type bookingResp struct {
	Offers    []models.Offer `json:"offers"`
	Providers []string       `json:"providers"`
}

// SearchFlights 调用机票搜索服务，返回按供应商排序的报价列表
func SearchFlights(ctx context.Context, cfg *config.Config, params BookingParams) ([]models.Offer, error) {
	if cfg.Booking.FlightsURL == "" {
		return nil, fmt.Errorf("未配置机票搜索服务")
	}
	return searchOffers(ctx, cfg, cfg.Booking.FlightsURL, "flights", params)
}

// SearchHotels 调用酒店搜索服务，返回按供应商排序的报价列表
func SearchHotels(ctx context.Context, cfg *config.Config, params BookingParams) ([]models.Offer, error) {
	if cfg.Booking.HotelsURL == "" {
		return nil, fmt.Errorf("未配置酒店搜索服务")
	}
	return searchOffers(ctx, cfg, cfg.Booking.HotelsURL, "hotels", params)
}

// searchOffers 向预订搜索服务发起请求并解析报价
func searchOffers(ctx context.Context, cfg *config.Config, url, category string, params BookingParams) ([]models.Offer, error) {
	b, _ := json.Marshal(params)

	logger.Info("调用预订搜索服务", "category", category, "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		logger.Error("创建预订搜索请求失败", "category", category, "error", err)
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if cfg.Booking.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+cfg.Booking.APIKey)
	}

	// 使用配置的超时时间
	timeout := time.Duration(cfg.Booking.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	client := &http.Client{Timeout: timeout}

	startTime := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		logger.Error("预订搜索请求失败", "category", category, "error", err,
			"duration_ms", time.Since(startTime).Milliseconds())
		return nil, fmt.Errorf("预订搜索服务连接失败: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error("读取预订搜索响应失败", "category", category, "error", err)
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		logger.Error("预订搜索服务返回错误状态码",
			"category", category, "status_code", resp.StatusCode)
		return nil, fmt.Errorf("预订搜索服务错误 (HTTP %d)", resp.StatusCode)
	}

	var br bookingResp
	if err := json.Unmarshal(body, &br); err != nil {
		logger.Error("解析预订搜索响应失败", "category", category, "error", err)
		return nil, err
	}

	logger.Info("预订搜索完成",
		"category", category,
		"offers", len(br.Offers),
		"providers", len(br.Providers),
		"duration_ms", time.Since(startTime).Milliseconds())

	return br.Offers, nil
}
