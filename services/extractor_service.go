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

// extractResp 提取服务的响应结构
type extractResp struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    models.Post `json:"data"`
}

// ExtractPost 调用外部提取服务，将帖子URL转换为结构化的Post
func ExtractPost(ctx context.Context, cfg *config.Config, url string) (*models.Post, error) {
	if cfg.Extractor.URL == "" {
		return nil, fmt.Errorf("未配置内容提取服务")
	}

	logger.Info("调用内容提取服务", "url", url)

	payload := map[string]any{"url": url}
	b, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.Extractor.URL, bytes.NewReader(b))
	if err != nil {
		logger.Error("创建提取请求失败", "error", err)
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if cfg.Extractor.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+cfg.Extractor.APIKey)
	}

	timeout := time.Duration(cfg.Extractor.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	client := &http.Client{Timeout: timeout}

	resp, err := client.Do(req)
	if err != nil {
		logger.Error("提取请求失败", "url", url, "error", err)
		return nil, fmt.Errorf("提取服务连接失败: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error("读取提取响应失败", "error", err)
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		logger.Error("提取服务返回错误状态码", "status_code", resp.StatusCode, "url", url)
		return nil, fmt.Errorf("提取服务错误 (HTTP %d)", resp.StatusCode)
	}

	var er extractResp
	if err := json.Unmarshal(body, &er); err != nil {
		logger.Error("解析提取响应失败", "error", err)
		return nil, err
	}
	if er.Code != 0 {
		return nil, fmt.Errorf("提取失败: %s", er.Message)
	}

	post := er.Data
	logger.Info("内容提取完成", "url", url, "platform", post.Platform,
		"locations", len(post.Locations), "activities", len(post.Activities))

	return &post, nil
}

// ExtractPosts 批量提取URL，逐条处理，单条失败不影响其他URL
func ExtractPosts(ctx context.Context, cfg *config.Config, urls []string) models.ExtractResponse {
	response := models.ExtractResponse{
		Results:   make([]models.ExtractResult, 0, len(urls)),
		TotalURLs: len(urls),
	}

	for _, url := range urls {
		result := models.ExtractResult{URL: url}
		post, err := ExtractPost(ctx, cfg, url)
		if err != nil {
			logger.Warn("单条URL提取失败", "url", url, "error", err)
			result.Error = err.Error()
			response.Failed++
		} else {
			result.Post = post
			response.Successful++
		}
		response.Results = append(response.Results, result)
	}

	return response
}
