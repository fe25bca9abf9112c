package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Addr string `yaml:"-"` // 不从配置文件读取，而是在加载后计算
	} `yaml:"server"`
	Log struct {
		Level    string `yaml:"level"`
		Format   string `yaml:"format"`
		Output   string `yaml:"output"`
		FilePath string `yaml:"file_path"`
	} `yaml:"log"`

	DB struct {
		Host            string `yaml:"host"`
		Port            int    `yaml:"port"`
		Username        string `yaml:"username"`
		Password        string `yaml:"password"`
		Database        string `yaml:"database"`
		Charset         string `yaml:"charset"`
		ParseTime       bool   `yaml:"parse_time"`
		DSN             string `yaml:"-"`                 // 不从配置文件读取，而是在加载后计算
		MaxOpenConns    int    `yaml:"max_open_conns"`    // 最大打开连接数
		MaxIdleConns    int    `yaml:"max_idle_conns"`    // 最大空闲连接数
		ConnMaxLifetime int    `yaml:"conn_max_lifetime"` // 连接最大生命周期（分钟）
	} `yaml:"database"`

	Cache struct {
		Enabled bool `yaml:"enabled"`  // 是否启用分析结果缓存
		TTLDays int  `yaml:"ttl_days"` // 缓存保留天数
	} `yaml:"cache"`

	Analyzer struct {
		Concurrency       int     `yaml:"concurrency"`        // 并发分析的最大worker数
		TimeoutSec        int     `yaml:"timeout_sec"`        // 单次批量分析的总超时
		StructureWeight   float64 `yaml:"structure_weight"`   // 结构完整度权重
		RichnessWeight    float64 `yaml:"richness_weight"`    // 媒体丰富度权重
		EngagementWeight  float64 `yaml:"engagement_weight"`  // 互动热度权重
		EngagementCeiling float64 `yaml:"engagement_ceiling"` // 互动归一化上限
		MediaCap          int     `yaml:"media_cap"`          // 媒体数量计分上限
	} `yaml:"analyzer"`

	Recommend struct {
		OverlapWeight float64 `yaml:"overlap_weight"` // 兴趣匹配权重
		BudgetWeight  float64 `yaml:"budget_weight"`  // 预算匹配权重
		QualityWeight float64 `yaml:"quality_weight"` // 来源帖子质量权重
	} `yaml:"recommend"`

	Itinerary struct {
		TargetDayMinutes int                `yaml:"target_day_minutes"` // 每日目标活动时长（分钟）
		MaxDayMinutes    int                `yaml:"max_day_minutes"`    // 每日活动时长上限（分钟）
		DefaultDuration  int                `yaml:"default_duration"`   // 缺省活动时长（分钟）
		DefaultCost      float64            `yaml:"default_cost"`       // 兜底费用估算
		CategoryCosts    map[string]float64 `yaml:"category_costs"`     // 按类别的费用估算表
	} `yaml:"itinerary"`

	Extractor struct {
		URL        string `yaml:"url"`
		APIKey     string `yaml:"api_key"`
		TimeoutSec int    `yaml:"timeout_sec"`
	} `yaml:"extractor"`

	Booking struct {
		FlightsURL string `yaml:"flights_url"`
		HotelsURL  string `yaml:"hotels_url"`
		APIKey     string `yaml:"api_key"`
		TimeoutSec int    `yaml:"timeout_sec"`
	} `yaml:"booking"`

	LLM struct {
		Enabled        bool   `yaml:"enabled"`
		BaseURL        string `yaml:"base_url"`
		APIKey         string `yaml:"api_key"`
		Model          string `yaml:"model"`
		TimeoutSec     int    `yaml:"timeout_sec"`
		MaxConcurrency int    `yaml:"max_concurrency"`
	} `yaml:"llm"`

	Scheduler struct {
		CheckIntervalSec int `yaml:"check_interval_sec"`
		CleanupHour      int `yaml:"cleanup_hour"`
		CleanupMin       int `yaml:"cleanup_min"`
	} `yaml:"scheduler"`

	Debug struct {
		Enabled     bool `yaml:"enabled"`
		CleanupFreq int  `yaml:"cleanup_freq"` // Debug模式下清理任务的间隔（秒）
	} `yaml:"debug"`
}

// Load 加载配置文件，路径优先取环境变量CONFIG_PATH，默认config.yaml
func Load() *Config {
	// .env文件用于覆盖敏感配置（API Key等）
	_ = godotenv.Load()

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.yaml"
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("读取配置文件失败，使用默认配置: %v", err)
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		log.Fatalf("解析配置文件失败: %v", err)
	}

	cfg.applyEnvOverrides()
	cfg.computeDerived()

	return cfg
}

// Default 返回带有全部缺省值的配置，测试中直接使用
func Default() *Config {
	cfg := &Config{}

	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 8080

	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.Log.Output = "stdout"

	cfg.DB.Charset = "utf8mb4"
	cfg.DB.ParseTime = true
	cfg.DB.MaxOpenConns = 50
	cfg.DB.MaxIdleConns = 10
	cfg.DB.ConnMaxLifetime = 60

	cfg.Cache.TTLDays = 7

	cfg.Analyzer.Concurrency = 8
	cfg.Analyzer.TimeoutSec = 60
	cfg.Analyzer.StructureWeight = 0.4
	cfg.Analyzer.RichnessWeight = 0.3
	cfg.Analyzer.EngagementWeight = 0.3
	cfg.Analyzer.EngagementCeiling = 100000
	cfg.Analyzer.MediaCap = 9

	cfg.Recommend.OverlapWeight = 0.6
	cfg.Recommend.BudgetWeight = 0.25
	cfg.Recommend.QualityWeight = 0.15

	cfg.Itinerary.TargetDayMinutes = 420
	cfg.Itinerary.MaxDayMinutes = 480
	cfg.Itinerary.DefaultDuration = 90
	cfg.Itinerary.DefaultCost = 100
	cfg.Itinerary.CategoryCosts = map[string]float64{
		"attraction": 120,
		"restaurant": 80,
		"hotel":      400,
		"transport":  50,
		"activity":   150,
	}

	cfg.Extractor.TimeoutSec = 30
	cfg.Booking.TimeoutSec = 15

	cfg.LLM.Model = "Qwen/Qwen2.5-72B-Instruct"
	cfg.LLM.TimeoutSec = 60
	cfg.LLM.MaxConcurrency = 5

	cfg.Scheduler.CheckIntervalSec = 60
	cfg.Scheduler.CleanupHour = 3
	cfg.Scheduler.CleanupMin = 30

	cfg.Debug.CleanupFreq = 1800

	return cfg
}

// applyEnvOverrides 敏感配置允许通过环境变量覆盖
func (cfg *Config) applyEnvOverrides() {
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("BOOKING_API_KEY"); v != "" {
		cfg.Booking.APIKey = v
	}
	if v := os.Getenv("EXTRACTOR_API_KEY"); v != "" {
		cfg.Extractor.APIKey = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.DB.Password = v
	}
}

// computeDerived 计算加载后派生的字段
func (cfg *Config) computeDerived() {
	cfg.Server.Addr = fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)

	cfg.DB.DSN = fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t",
		cfg.DB.Username, cfg.DB.Password, cfg.DB.Host, cfg.DB.Port,
		cfg.DB.Database, cfg.DB.Charset, cfg.DB.ParseTime)
}
