// Package adminv1 defines the admin RPC messages and the Connect handler and
// client for gamecode.admin.v1.AdminService.
package adminv1

import (
	"encoding/json"

	"github.com/Jhoney47/GameCodeBase/internal/ingest"
	"github.com/Jhoney47/GameCodeBase/internal/model"
	"github.com/Jhoney47/GameCodeBase/internal/publisher"
)

type ReviewCodeRequest struct {
	CodeID     int64  `json:"codeId"`
	Action     string `json:"action"` // approve or reject
	ReviewNote string `json:"reviewNote,omitempty"`
}

type SetPublishedRequest struct {
	CodeID      int64 `json:"codeId"`
	IsPublished bool  `json:"isPublished"`
}

type DeleteCodeRequest struct {
	CodeID int64 `json:"codeId"`
}

type DeleteCodeResponse struct {
	Deleted bool `json:"deleted"`
}

type MarkInvalidRequest struct {
	CodeID int64  `json:"codeId"`
	Reason string `json:"reason,omitempty"`
}

type ReactivateRequest struct {
	CodeID int64 `json:"codeId"`
}

type SubmitFeedbackRequest struct {
	CodeID  int64 `json:"codeId"`
	Success bool  `json:"success"`
}

// CodeResponse carries a single code after a mutation
type CodeResponse struct {
	Code *model.RedemptionCode `json:"code"`
}

type BatchOperationRequest struct {
	CodeIDs   []int64 `json:"codeIds"`
	Operation string  `json:"operation"` // publish, unpublish or delete
}

type BatchOperationResponse struct {
	Succeeded  int     `json:"succeeded"`
	Skipped    int     `json:"skipped"`
	SkippedIDs []int64 `json:"skippedIds"`
}

type SubmitCodeRequest struct {
	Candidate model.CandidateCode `json:"candidate"`
}

type SubmitCodeResponse struct {
	Code      *model.RedemptionCode `json:"code,omitempty"`
	Duplicate bool                  `json:"duplicate"`
}

type IngestCandidatesRequest struct {
	Candidates []model.CandidateCode `json:"candidates"`
	Source     string                `json:"source,omitempty"`
}

type ImportSnapshotRequest struct {
	Document json.RawMessage `json:"document,omitempty"`
}

// IngestResponse reports an ingestion or import
type IngestResponse struct {
	Result *ingest.Result `json:"result"`
}

type GetCodeRequest struct {
	CodeID int64 `json:"codeId"`
}

type GetCodeResponse struct {
	Code      *model.RedemptionCode `json:"code"`
	Score     int                   `json:"score"`
	Breakdown map[string]int        `json:"breakdown"`
}

type ListCodesRequest struct {
	GameName     string `json:"gameName,omitempty"`
	ReviewStatus string `json:"reviewStatus,omitempty"`
	Limit        int    `json:"limit,omitempty"`
}

type ListPendingRequest struct{}

type ListCodesResponse struct {
	Codes []model.RedemptionCode `json:"codes"`
}

type ListUpdateLogsRequest struct {
	Limit int `json:"limit,omitempty"`
}

type ListUpdateLogsResponse struct {
	Logs []model.UpdateLog `json:"logs"`
}

type GetStatsRequest struct{}

type GetStatsResponse struct {
	Stats *model.Stats `json:"stats"`
}

type PublishNowRequest struct{}

type PublishNowResponse struct {
	Result *publisher.Result `json:"result"`
}

type RescoreRequest struct{}

type RescoreResponse struct {
	Scanned int `json:"scanned"`
	Updated int `json:"updated"`
}

type ListTasksRequest struct{}

type ListTasksResponse struct {
	Tasks []model.ScheduledTask `json:"tasks"`
}

type CreateTaskRequest struct {
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	CronExpression string `json:"cronExpression"`
	TaskType       string `json:"taskType,omitempty"` // crawl_all (default) or crawl_game
	GameName       string `json:"gameName,omitempty"`
}

type SetTaskEnabledRequest struct {
	TaskID    int64 `json:"taskId"`
	IsEnabled bool  `json:"isEnabled"`
}

type TaskResponse struct {
	Task *model.ScheduledTask `json:"task"`
}

type DeleteTaskRequest struct {
	TaskID int64 `json:"taskId"`
}

type DeleteTaskResponse struct{}

type TriggerTaskRequest struct {
	TaskID int64 `json:"taskId"`
}

type TriggerTaskResponse struct {
	Task   *model.ScheduledTask `json:"task"`
	Result *ingest.Result       `json:"result"`
}

type ListCrawlLogsRequest struct {
	Limit int `json:"limit,omitempty"` // 1..100, default 10
}

type ListCrawlLogsResponse struct {
	Logs []model.CrawlLog `json:"logs"`
}
