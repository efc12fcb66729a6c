package model

import (
	"time"
)

// OperationType classifies an audit log entry
type OperationType string

const (
	OpPublish   OperationType = "publish"
	OpUnpublish OperationType = "unpublish"
	OpDelete    OperationType = "delete"
	OpEdit      OperationType = "edit"
	OpBatch     OperationType = "batch"
)

// UpdateLog is an immutable audit record, one per mutating admin operation
type UpdateLog struct {
	ID            int64         `db:"id" json:"id"`
	Title         string        `db:"title" json:"title"`
	Description   string        `db:"description" json:"description"`
	OperationType OperationType `db:"operation_type" json:"operationType"`
	AffectedCount int           `db:"affected_count" json:"affectedCount"`
	CreatedAt     time.Time     `db:"created_at" json:"timestamp"`
}
