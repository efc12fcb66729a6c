package model

import (
	"time"
)

// TaskType selects what a scheduled task crawls
type TaskType string

const (
	TaskCrawlAll  TaskType = "crawl_all"
	TaskCrawlGame TaskType = "crawl_game"
)

// Valid reports whether t is a known task type
func (t TaskType) Valid() bool {
	return t == TaskCrawlAll || t == TaskCrawlGame
}

// ScheduledTask is a trigger source for crawl runs. The cron expression is
// stored for the external scheduler; nothing in this module interprets it.
type ScheduledTask struct {
	ID             int64      `db:"id" json:"id"`
	Name           string     `db:"name" json:"name"`
	Description    *string    `db:"description" json:"description"`
	CronExpression string     `db:"cron_expression" json:"cronExpression"`
	TaskType       TaskType   `db:"task_type" json:"taskType"`
	GameName       *string    `db:"game_name" json:"gameName"`
	IsEnabled      bool       `db:"is_enabled" json:"isEnabled"`
	LastRunAt      *time.Time `db:"last_run_at" json:"lastRunAt"`
	CreatedAt      time.Time  `db:"created_at" json:"createdAt"`
}

// CrawlLog records one crawl run. TaskName is copied so the entry survives
// the task being deleted.
type CrawlLog struct {
	ID         int64     `db:"id" json:"id"`
	TaskID     *int64    `db:"task_id" json:"taskId"`
	TaskName   string    `db:"task_name" json:"taskName"`
	GameName   *string   `db:"game_name" json:"gameName"`
	Fetched    int       `db:"fetched" json:"fetched"`
	Created    int       `db:"created" json:"created"`
	Duplicates int       `db:"duplicates" json:"duplicates"`
	Invalid    int       `db:"invalid" json:"invalid"`
	Error      *string   `db:"error" json:"error"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}

// Succeeded reports whether the run finished without error
func (l CrawlLog) Succeeded() bool {
	return l.Error == nil
}

// Stats summarizes the code store for the admin dashboard
type Stats struct {
	Total     int `db:"total" json:"total"`
	Active    int `db:"active" json:"active"`
	Invalid   int `db:"invalid" json:"invalid"`
	Pending   int `db:"pending" json:"pending"`
	Approved  int `db:"approved" json:"approved"`
	Rejected  int `db:"rejected" json:"rejected"`
	Published int `db:"published" json:"published"`
	Eligible  int `db:"eligible" json:"eligible"`
}
