package scheduler

import (
	"fmt"
	"sync"
	"time"

	"travel_planner/config"
	"travel_planner/db"
	"travel_planner/logger"
	"travel_planner/repository"
)

// 验证小时和分钟是否有效
func validateHourMinute(hour, minute int) (int, int) {
	if hour < 0 || hour > 23 {
		logger.Warn("无效的小时值", "hour", hour)
		hour = 3
	}
	if minute < 0 || minute > 59 {
		logger.Warn("无效的分钟值", "minute", minute)
		minute = 0
	}
	return hour, minute
}

// 计算下一个指定时间点
func getNextTimePoint(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if next.Before(now) {
		next = next.Add(24 * time.Hour)
	}
	return next
}

// 任务类型
type TaskType int

const (
	TaskCacheCleanup TaskType = iota
)

// 任务状态
type TaskStatus struct {
	LastRun     time.Time
	NextRun     time.Time
	IsRunning   bool
	Description string
}

// 任务调度器
type Scheduler struct {
	cfg   *config.Config
	tasks map[TaskType]*TaskStatus
	mutex sync.Mutex
}

// 创建新的调度器
func NewScheduler(cfg *config.Config) *Scheduler {
	return &Scheduler{
		cfg:   cfg,
		tasks: make(map[TaskType]*TaskStatus),
	}
}

// Start 启动调度器，缓存未启用时不做任何事
func Start(cfg *config.Config) {
	if !cfg.Cache.Enabled || db.DB == nil {
		logger.Info("分析缓存未启用，跳过调度器启动")
		return
	}

	scheduler := NewScheduler(cfg)
	scheduler.initTasks()
	go scheduler.run()

	logger.Info("调度器已启动", "check_interval_sec", cfg.Scheduler.CheckIntervalSec)
}

// 初始化任务
func (s *Scheduler) initTasks() {
	now := time.Now()

	if s.cfg.Debug.Enabled {
		// Debug模式：按配置的秒数间隔执行缓存清理
		freqSeconds := s.cfg.Debug.CleanupFreq
		if freqSeconds <= 0 {
			freqSeconds = 1800
		}
		interval := time.Duration(freqSeconds) * time.Second
		s.tasks[TaskCacheCleanup] = &TaskStatus{
			LastRun:     now.Add(-interval),
			NextRun:     now.Add(interval),
			Description: fmt.Sprintf("分析缓存清理 (Debug模式: 每%d秒)", freqSeconds),
		}
		logger.Info("Debug模式已启用", "frequency_seconds", freqSeconds)
	} else {
		// 正常模式：每天在指定时间点清理过期缓存
		hour, minute := validateHourMinute(s.cfg.Scheduler.CleanupHour, s.cfg.Scheduler.CleanupMin)
		nextRun := getNextTimePoint(now, hour, minute)
		s.tasks[TaskCacheCleanup] = &TaskStatus{
			LastRun:     nextRun.Add(-24 * time.Hour),
			NextRun:     nextRun,
			Description: fmt.Sprintf("分析缓存清理 (%02d:%02d)", hour, minute),
		}
	}

	logger.Info("定时任务初始化完成", "task_count", len(s.tasks))
}

// 主循环
func (s *Scheduler) run() {
	checkInterval := s.cfg.Scheduler.CheckIntervalSec
	if checkInterval <= 0 {
		checkInterval = 60
	}
	ticker := time.NewTicker(time.Duration(checkInterval) * time.Second)
	defer ticker.Stop()

	for now := range ticker.C {
		s.checkTasks(now)
	}
}

// 检查任务
func (s *Scheduler) checkTasks(now time.Time) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for taskType, status := range s.tasks {
		if status.IsRunning {
			continue
		}
		if status.NextRun.IsZero() {
			continue
		}
		if now.After(status.NextRun) || now.Equal(status.NextRun) {
			status.IsRunning = true
			go s.runTask(taskType, now)
		}
	}
}

// 运行任务
func (s *Scheduler) runTask(taskType TaskType, now time.Time) {
	defer func() {
		s.mutex.Lock()
		defer s.mutex.Unlock()

		status := s.tasks[taskType]
		status.IsRunning = false
		status.LastRun = now

		// 更新下次运行时间
		if s.cfg.Debug.Enabled {
			freqSeconds := s.cfg.Debug.CleanupFreq
			if freqSeconds <= 0 {
				freqSeconds = 1800
			}
			status.NextRun = now.Add(time.Duration(freqSeconds) * time.Second)
		} else {
			hour, minute := validateHourMinute(s.cfg.Scheduler.CleanupHour, s.cfg.Scheduler.CleanupMin)
			status.NextRun = getNextTimePoint(now, hour, minute)
		}

		logger.Info("任务执行完成", "task", status.Description,
			"next_run", status.NextRun.Format("2006-01-02 15:04:05"))
	}()

	switch taskType {
	case TaskCacheCleanup:
		logger.Info("开始清理过期的分析缓存", "ttl_days", s.cfg.Cache.TTLDays)
		deleted, err := repository.PurgeExpiredAnalyses(s.cfg.Cache.TTLDays)
		if err != nil {
			logger.Error("清理分析缓存失败", "error", err)
			return
		}
		logger.Info("分析缓存清理完成", "deleted_rows", deleted)
	}
}
