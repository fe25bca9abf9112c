package repository

import (
	"encoding/json"
	"fmt"

	"travel_planner/db"
	"travel_planner/models"
)

// GetCachedAnalysis 按contentId读取缓存的分析结果
func GetCachedAnalysis(contentID string) (*models.ContentAnalysis, error) {
	var analysisJSON string
	err := db.DB.QueryRow(`
		SELECT analysis
		FROM analysis_cache
		WHERE content_id = ?
		ORDER BY generated_at DESC
		LIMIT 1
	`, contentID).Scan(&analysisJSON)
	if err != nil {
		return nil, err
	}

	var analysis models.ContentAnalysis
	if err := json.Unmarshal([]byte(analysisJSON), &analysis); err != nil {
		return nil, fmt.Errorf("解析缓存的分析结果失败: %w", err)
	}
	return &analysis, nil
}

// SaveAnalysisCache 保存或更新分析结果缓存
func SaveAnalysisCache(contentID string, analysis *models.ContentAnalysis) error {
	b, err := json.Marshal(analysis)
	if err != nil {
		return err
	}

	// 检查是否已存在缓存记录
	var count int
	if err := db.DB.QueryRow(`SELECT COUNT(*) FROM analysis_cache WHERE content_id = ?`, contentID).Scan(&count); err != nil {
		return err
	}

	if count > 0 {
		_, err = db.DB.Exec(`
			UPDATE analysis_cache
			SET analysis = CAST(? AS JSON), generated_at = NOW()
			WHERE content_id = ?
		`, string(b), contentID)
	} else {
		_, err = db.DB.Exec(`
			INSERT INTO analysis_cache (content_id, analysis, generated_at)
			VALUES (?, CAST(? AS JSON), NOW())
		`, contentID, string(b))
	}

	return err
}

// PurgeExpiredAnalyses 清理超过保留天数的缓存记录，返回删除的行数
func PurgeExpiredAnalyses(ttlDays int) (int64, error) {
	if ttlDays <= 0 {
		return 0, nil
	}
	result, err := db.DB.Exec(`
		DELETE FROM analysis_cache
		WHERE generated_at < DATE_SUB(NOW(), INTERVAL ? DAY)
	`, ttlDays)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
