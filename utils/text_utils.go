package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// DeduplicateSlice 去重字符串切片，保留首次出现的顺序
func DeduplicateSlice(input []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0)

	for _, val := range input {
		val = strings.TrimSpace(val)
		if val != "" && !seen[val] {
			result = append(result, val)
			seen[val] = true
		}
	}

	return result
}

// NormalizeName 规范化名称用于比较：去掉音调符号、统一小写、压缩空白
func NormalizeName(name string) string {
	// NFKD分解后去掉组合音调符号
	decomposed := norm.NFKD.String(name)
	var b strings.Builder
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	// 统一小写并压缩空白
	fields := strings.Fields(strings.ToLower(b.String()))
	return strings.Join(fields, " ")
}

// NormalizeCategory 规范化活动类别为小写token
func NormalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}

// ContainsNormalized 判断切片中是否存在规范化后相等的字符串
func ContainsNormalized(slice []string, target string) bool {
	normalized := NormalizeName(target)
	for _, s := range slice {
		if NormalizeName(s) == normalized {
			return true
		}
	}
	return false
}

// Min 返回两个整数中的较小值
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Clamp01 将浮点值限制在[0,1]区间
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
