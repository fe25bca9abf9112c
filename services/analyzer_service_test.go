package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travel_planner/config"
	"travel_planner/models"
)

func defaultAnalyzeOpts() models.ResolvedAnalyzeOptions {
	return (&models.AnalyzeOptions{}).Resolve()
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

// richPost 构造一条字段齐全、互动量高的帖子
func richPost(id string) models.Post {
	return models.Post{
		ContentID:   id,
		Title:       "杭州三日游攻略",
		Description: "西湖边的深度玩法",
		Platform:    models.PlatformXiaohongshu,
		Locations: []models.Location{
			{Name: "西湖", Coordinates: coords(30.2591, 120.1515), Type: models.LocationTypeAttraction},
			{Name: "楼外楼", Address: "孤山路30号", Coordinates: coords(30.2540, 120.1400), Type: models.LocationTypeRestaurant},
		},
		Activities: []models.Activity{
			{Name: "西湖游船", Category: "sightseeing", EstimatedCost: floatPtr(55), Duration: intPtr(60)},
		},
		Media: []models.MediaItem{
			{Type: models.MediaTypeImage, URL: "https://example.com/1.jpg"},
			{Type: models.MediaTypeVideo, URL: "https://example.com/1.mp4"},
		},
		Tags:   []string{"杭州", "美食", "西湖"},
		Author: models.Author{Name: "旅行博主"},
		Stats:  models.Stats{Likes: 12000, Comments: 800, Shares: 300},
	}
}

// poorPost 构造一条字段缺失、零互动的同主题帖子
func poorPost(id string) models.Post {
	return models.Post{
		ContentID: id,
		Title:     "杭州三日游攻略",
		Platform:  models.PlatformXiaohongshu,
		Locations: []models.Location{
			{Name: "西湖", Type: models.LocationTypeAttraction},
			{Name: "楼外楼", Type: models.LocationTypeRestaurant},
		},
		Activities: []models.Activity{
			{Name: "西湖游船", Category: "sightseeing"},
		},
	}
}

func TestAnalyzePostsOrderPreserved(t *testing.T) {
	cfg := config.Default()
	posts := make([]models.Post, 20)
	for i := range posts {
		posts[i] = richPost(fmt.Sprintf("post-%02d", i))
	}

	results, summary := AnalyzePosts(context.Background(), cfg, posts, defaultAnalyzeOpts())
	require.Len(t, results, 20)
	for i, r := range results {
		assert.Equal(t, fmt.Sprintf("post-%02d", i), r.ContentID)
	}
	assert.Equal(t, 20, summary.SuccessfulAnalyses)
}

func TestAnalyzePostsPartialFailure(t *testing.T) {
	cfg := config.Default()
	posts := []models.Post{
		richPost("p1"),
		richPost("p2"),
		{ContentID: "p3", Title: "无效帖子", Platform: "WEIBO"}, // 不支持的平台
		richPost("p4"),
		richPost("p5"),
	}

	results, summary := AnalyzePosts(context.Background(), cfg, posts, defaultAnalyzeOpts())
	require.Len(t, results, 5)

	assert.Nil(t, results[2].Analysis)
	assert.NotEmpty(t, results[2].Error)
	for _, i := range []int{0, 1, 3, 4} {
		assert.NotNil(t, results[i].Analysis, "结果 %d 应成功", i)
		assert.Empty(t, results[i].Error)
	}

	assert.Equal(t, 5, summary.TotalContent)
	assert.Equal(t, 4, summary.SuccessfulAnalyses)
	assert.Equal(t, 1, summary.FailedAnalyses)
}

func TestAnalyzePostsEmptyPostFails(t *testing.T) {
	cfg := config.Default()
	posts := []models.Post{
		{ContentID: "empty", Platform: models.PlatformBilibili},
	}

	results, summary := AnalyzePosts(context.Background(), cfg, posts, defaultAnalyzeOpts())
	require.Len(t, results, 1)
	assert.Nil(t, results[0].Analysis)
	assert.NotEmpty(t, results[0].Error)
	assert.Equal(t, 1, summary.FailedAnalyses)
}

func TestQualityScoreBoundsAndMonotonicity(t *testing.T) {
	cfg := config.Default()
	posts := []models.Post{richPost("rich"), poorPost("poor")}

	results, _ := AnalyzePosts(context.Background(), cfg, posts, defaultAnalyzeOpts())
	require.NotNil(t, results[0].Analysis)
	require.NotNil(t, results[1].Analysis)

	richScore := results[0].Analysis.QualityScore
	poorScore := results[1].Analysis.QualityScore

	assert.GreaterOrEqual(t, richScore, 0.0)
	assert.LessOrEqual(t, richScore, 1.0)
	assert.GreaterOrEqual(t, poorScore, 0.0)
	assert.LessOrEqual(t, poorScore, 1.0)

	// 字段齐全且互动量高的帖子评分不低于字段缺失的同主题帖子
	assert.GreaterOrEqual(t, richScore, poorScore)
	assert.Greater(t, richScore, poorScore)
}

func TestAnalyzePostsBackfillsCostAndDuration(t *testing.T) {
	cfg := config.Default()
	results, _ := AnalyzePosts(context.Background(), cfg, []models.Post{poorPost("p")}, defaultAnalyzeOpts())
	require.NotNil(t, results[0].Analysis)

	for _, act := range results[0].Analysis.Activities {
		require.NotNil(t, act.EstimatedCost, "费用应被回填")
		require.NotNil(t, act.Duration, "时长应被回填")
		assert.GreaterOrEqual(t, *act.EstimatedCost, 0.0)
		assert.Positive(t, *act.Duration)
	}
}

func TestAnalyzePostsBasicDepthSkipsBackfill(t *testing.T) {
	cfg := config.Default()
	opts := (&models.AnalyzeOptions{AnalysisDepth: models.AnalysisDepthBasic}).Resolve()

	results, _ := AnalyzePosts(context.Background(), cfg, []models.Post{poorPost("p")}, opts)
	require.NotNil(t, results[0].Analysis)
	assert.Nil(t, results[0].Analysis.Activities[0].EstimatedCost)
}

func TestAnalyzePostsDeduplicatesLocations(t *testing.T) {
	cfg := config.Default()
	post := richPost("dup")
	// 追加一条与西湖坐标相距约120米的重复地点
	post.Locations = append(post.Locations, models.Location{
		Name:        "West Lake Scenic Area",
		Coordinates: coords(30.26018, 120.1515),
		Type:        models.LocationTypeAttraction,
	})

	results, _ := AnalyzePosts(context.Background(), cfg, []models.Post{post}, defaultAnalyzeOpts())
	require.NotNil(t, results[0].Analysis)
	assert.Len(t, results[0].Analysis.Locations, 2)
}

func TestAnalyzePostsGeneratesContentID(t *testing.T) {
	cfg := config.Default()
	post := richPost("")
	post.URL = "https://www.xiaohongshu.com/note/abc"

	results, _ := AnalyzePosts(context.Background(), cfg, []models.Post{post}, defaultAnalyzeOpts())
	require.Len(t, results, 1)
	assert.Len(t, results[0].ContentID, 32) // MD5十六进制
}

func TestAnalyzePostsCancelledContext(t *testing.T) {
	cfg := config.Default()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, summary := AnalyzePosts(ctx, cfg, []models.Post{richPost("p1"), richPost("p2")}, defaultAnalyzeOpts())
	require.Len(t, results, 2)
	assert.Equal(t, 2, summary.FailedAnalyses)
	for _, r := range results {
		assert.NotEmpty(t, r.Error)
	}
}
