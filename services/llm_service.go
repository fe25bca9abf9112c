package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"travel_planner/config"
	"travel_planner/logger"
	"travel_planner/models"
)

// 定义OpenAI兼容的chat接口请求和响应结构
type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// GenerateInsights 调用LLM为单条帖子提取旅行洞察摘要。
// 仅在comprehensive分析深度下使用，失败由调用方降级处理。
func GenerateInsights(ctx context.Context, cfg *config.Config, post *models.Post) (string, error) {
	prompt := buildInsightPrompt(post)

	content, err := callChatAPI(ctx, cfg, prompt)
	if err != nil {
		return "", err
	}

	// LLM返回JSON时取insights字段，否则使用原始文本
	jsonContent := extractJSONFromText(content)
	var parsed struct {
		Insights string `json:"insights"`
	}
	if err := json.Unmarshal([]byte(jsonContent), &parsed); err == nil && parsed.Insights != "" {
		return parsed.Insights, nil
	}
	return strings.TrimSpace(content), nil
}

// buildInsightPrompt 构建洞察提取提示词
func buildInsightPrompt(post *models.Post) string {
	var b strings.Builder
	fmt.Fprintf(&b, "请分析以下来自%s的旅行内容，用一段话总结值得注意的旅行洞察（最佳游览时间、隐藏玩法、避坑提示等），以JSON格式返回，字段名为insights。\n\n", post.Platform)
	fmt.Fprintf(&b, "标题: %s\n", post.Title)
	if post.Description != "" {
		fmt.Fprintf(&b, "描述: %s\n", post.Description)
	}
	for _, loc := range post.Locations {
		fmt.Fprintf(&b, "地点: %s\n", loc.Name)
	}
	for _, act := range post.Activities {
		fmt.Fprintf(&b, "活动: %s\n", act.Name)
	}
	if len(post.Tags) > 0 {
		fmt.Fprintf(&b, "标签: %s\n", strings.Join(post.Tags, "、"))
	}
	return b.String()
}

// callChatAPI 调用OpenAI兼容的chat接口
func callChatAPI(ctx context.Context, cfg *config.Config, prompt string) (string, error) {
	logger.Info("调用LLM提取内容洞察", "model", cfg.LLM.Model)

	reqBody := chatRequest{
		Model: cfg.LLM.Model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
	}

	reqJSON, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		cfg.LLM.BaseURL+"/v1/chat/completions", bytes.NewBuffer(reqJSON))
	if err != nil {
		logger.Error("创建LLM请求失败", "error", err)
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+cfg.LLM.APIKey)

	timeout := time.Duration(cfg.LLM.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	client := &http.Client{Timeout: timeout}

	startTime := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		logger.Error("LLM请求失败", "error", err,
			"duration_ms", time.Since(startTime).Milliseconds())
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error("读取LLM响应失败", "error", err)
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		responsePreview := string(body)
		if len(responsePreview) > 500 {
			responsePreview = responsePreview[:500] + "..."
		}
		logger.Error("LLM API请求失败", "status", resp.StatusCode, "response", responsePreview)
		return "", fmt.Errorf("LLM API请求失败: %d", resp.StatusCode)
	}

	var cr chatResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		logger.Error("解析LLM响应失败", "error", err)
		return "", err
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("LLM响应中没有内容")
	}

	logger.Info("成功获取LLM响应",
		"tokens_total", cr.Usage.TotalTokens,
		"finish_reason", cr.Choices[0].FinishReason,
		"duration_ms", time.Since(startTime).Milliseconds())

	return cr.Choices[0].Message.Content, nil
}

// extractJSONFromText 从文本中提取JSON部分
func extractJSONFromText(text string) string {
	// 查找文本中的JSON部分
	startIdx := strings.Index(text, "{")
	endIdx := strings.LastIndex(text, "}")
	if startIdx >= 0 && endIdx > startIdx {
		return text[startIdx : endIdx+1]
	}

	// 如果找不到JSON部分，尝试查找```json和```之间的内容
	startMarker := "```json"
	endMarker := "```"
	startIdx = strings.Index(text, startMarker)
	if startIdx >= 0 {
		startIdx += len(startMarker)
		endIdx = strings.Index(text[startIdx:], endMarker)
		if endIdx > 0 {
			return strings.TrimSpace(text[startIdx : startIdx+endIdx])
		}
	}

	// 如果仍然找不到，返回原始文本
	return text
}
