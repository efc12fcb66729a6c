package adminv1

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// AdminServiceName is the fully-qualified name of the AdminService service.
const AdminServiceName = "gamecode.admin.v1.AdminService"

// Procedure paths of AdminService.
const (
	AdminServiceReviewCodeProcedure       = "/gamecode.admin.v1.AdminService/ReviewCode"
	AdminServiceSetPublishedProcedure     = "/gamecode.admin.v1.AdminService/SetPublished"
	AdminServiceDeleteCodeProcedure       = "/gamecode.admin.v1.AdminService/DeleteCode"
	AdminServiceMarkInvalidProcedure      = "/gamecode.admin.v1.AdminService/MarkInvalid"
	AdminServiceReactivateProcedure       = "/gamecode.admin.v1.AdminService/Reactivate"
	AdminServiceSubmitFeedbackProcedure   = "/gamecode.admin.v1.AdminService/SubmitFeedback"
	AdminServiceBatchOperationProcedure   = "/gamecode.admin.v1.AdminService/BatchOperation"
	AdminServiceSubmitCodeProcedure       = "/gamecode.admin.v1.AdminService/SubmitCode"
	AdminServiceIngestCandidatesProcedure = "/gamecode.admin.v1.AdminService/IngestCandidates"
	AdminServiceImportSnapshotProcedure   = "/gamecode.admin.v1.AdminService/ImportSnapshot"
	AdminServiceGetCodeProcedure          = "/gamecode.admin.v1.AdminService/GetCode"
	AdminServiceListCodesProcedure        = "/gamecode.admin.v1.AdminService/ListCodes"
	AdminServiceListPendingProcedure      = "/gamecode.admin.v1.AdminService/ListPending"
	AdminServiceListUpdateLogsProcedure   = "/gamecode.admin.v1.AdminService/ListUpdateLogs"
	AdminServiceGetStatsProcedure         = "/gamecode.admin.v1.AdminService/GetStats"
	AdminServicePublishNowProcedure       = "/gamecode.admin.v1.AdminService/PublishNow"
	AdminServiceRescoreProcedure          = "/gamecode.admin.v1.AdminService/Rescore"
	AdminServiceListTasksProcedure        = "/gamecode.admin.v1.AdminService/ListTasks"
	AdminServiceCreateTaskProcedure       = "/gamecode.admin.v1.AdminService/CreateTask"
	AdminServiceSetTaskEnabledProcedure   = "/gamecode.admin.v1.AdminService/SetTaskEnabled"
	AdminServiceDeleteTaskProcedure       = "/gamecode.admin.v1.AdminService/DeleteTask"
	AdminServiceTriggerTaskProcedure      = "/gamecode.admin.v1.AdminService/TriggerTask"
	AdminServiceListCrawlLogsProcedure    = "/gamecode.admin.v1.AdminService/ListCrawlLogs"
)

// AdminServiceHandler is implemented by the admin server.
type AdminServiceHandler interface {
	// ReviewCode reviews a pending code.
	ReviewCode(context.Context, *connect.Request[ReviewCodeRequest]) (*connect.Response[CodeResponse], error)
	// SetPublished toggles the publish flag of an approved code.
	SetPublished(context.Context, *connect.Request[SetPublishedRequest]) (*connect.Response[CodeResponse], error)
	// DeleteCode removes a code.
	DeleteCode(context.Context, *connect.Request[DeleteCodeRequest]) (*connect.Response[DeleteCodeResponse], error)
	// MarkInvalid flags a code as no longer redeemable.
	MarkInvalid(context.Context, *connect.Request[MarkInvalidRequest]) (*connect.Response[CodeResponse], error)
	// Reactivate restores an invalid code.
	Reactivate(context.Context, *connect.Request[ReactivateRequest]) (*connect.Response[CodeResponse], error)
	// SubmitFeedback records a user redemption report.
	SubmitFeedback(context.Context, *connect.Request[SubmitFeedbackRequest]) (*connect.Response[CodeResponse], error)
	// BatchOperation publishes, unpublishes or deletes codes in bulk.
	BatchOperation(context.Context, *connect.Request[BatchOperationRequest]) (*connect.Response[BatchOperationResponse], error)
	// SubmitCode stores a user submitted code for review.
	SubmitCode(context.Context, *connect.Request[SubmitCodeRequest]) (*connect.Response[SubmitCodeResponse], error)
	// IngestCandidates stores crawler candidates for review.
	IngestCandidates(context.Context, *connect.Request[IngestCandidatesRequest]) (*connect.Response[IngestResponse], error)
	// ImportSnapshot loads codes from an existing export file.
	ImportSnapshot(context.Context, *connect.Request[ImportSnapshotRequest]) (*connect.Response[IngestResponse], error)
	// GetCode returns a code with its score breakdown.
	GetCode(context.Context, *connect.Request[GetCodeRequest]) (*connect.Response[GetCodeResponse], error)
	// ListCodes lists codes.
	ListCodes(context.Context, *connect.Request[ListCodesRequest]) (*connect.Response[ListCodesResponse], error)
	// ListPending lists codes awaiting review.
	ListPending(context.Context, *connect.Request[ListPendingRequest]) (*connect.Response[ListCodesResponse], error)
	// ListUpdateLogs lists the newest audit entries.
	ListUpdateLogs(context.Context, *connect.Request[ListUpdateLogsRequest]) (*connect.Response[ListUpdateLogsResponse], error)
	// GetStats summarizes the store.
	GetStats(context.Context, *connect.Request[GetStatsRequest]) (*connect.Response[GetStatsResponse], error)
	// PublishNow builds and publishes the snapshot synchronously.
	PublishNow(context.Context, *connect.Request[PublishNowRequest]) (*connect.Response[PublishNowResponse], error)
	// Rescore recomputes every stored score.
	Rescore(context.Context, *connect.Request[RescoreRequest]) (*connect.Response[RescoreResponse], error)
	// ListTasks lists scheduled tasks.
	ListTasks(context.Context, *connect.Request[ListTasksRequest]) (*connect.Response[ListTasksResponse], error)
	// CreateTask registers a scheduled task.
	CreateTask(context.Context, *connect.Request[CreateTaskRequest]) (*connect.Response[TaskResponse], error)
	// SetTaskEnabled enables or disables a task.
	SetTaskEnabled(context.Context, *connect.Request[SetTaskEnabledRequest]) (*connect.Response[TaskResponse], error)
	// DeleteTask removes a task.
	DeleteTask(context.Context, *connect.Request[DeleteTaskRequest]) (*connect.Response[DeleteTaskResponse], error)
	// TriggerTask runs a task's crawl now.
	TriggerTask(context.Context, *connect.Request[TriggerTaskRequest]) (*connect.Response[TriggerTaskResponse], error)
	// ListCrawlLogs lists the newest crawl runs.
	ListCrawlLogs(context.Context, *connect.Request[ListCrawlLogsRequest]) (*connect.Response[ListCrawlLogsResponse], error)
}

// NewAdminServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewAdminServiceHandler(svc AdminServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append(codecOptions{}.handlerOptions(), opts...)

	reviewCodeHandler := connect.NewUnaryHandler(
		AdminServiceReviewCodeProcedure,
		svc.ReviewCode,
		opts...,
	)
	setPublishedHandler := connect.NewUnaryHandler(
		AdminServiceSetPublishedProcedure,
		svc.SetPublished,
		opts...,
	)
	deleteCodeHandler := connect.NewUnaryHandler(
		AdminServiceDeleteCodeProcedure,
		svc.DeleteCode,
		opts...,
	)
	markInvalidHandler := connect.NewUnaryHandler(
		AdminServiceMarkInvalidProcedure,
		svc.MarkInvalid,
		opts...,
	)
	reactivateHandler := connect.NewUnaryHandler(
		AdminServiceReactivateProcedure,
		svc.Reactivate,
		opts...,
	)
	submitFeedbackHandler := connect.NewUnaryHandler(
		AdminServiceSubmitFeedbackProcedure,
		svc.SubmitFeedback,
		opts...,
	)
	batchOperationHandler := connect.NewUnaryHandler(
		AdminServiceBatchOperationProcedure,
		svc.BatchOperation,
		opts...,
	)
	submitCodeHandler := connect.NewUnaryHandler(
		AdminServiceSubmitCodeProcedure,
		svc.SubmitCode,
		opts...,
	)
	ingestCandidatesHandler := connect.NewUnaryHandler(
		AdminServiceIngestCandidatesProcedure,
		svc.IngestCandidates,
		opts...,
	)
	importSnapshotHandler := connect.NewUnaryHandler(
		AdminServiceImportSnapshotProcedure,
		svc.ImportSnapshot,
		opts...,
	)
	getCodeHandler := connect.NewUnaryHandler(
		AdminServiceGetCodeProcedure,
		svc.GetCode,
		opts...,
	)
	listCodesHandler := connect.NewUnaryHandler(
		AdminServiceListCodesProcedure,
		svc.ListCodes,
		opts...,
	)
	listPendingHandler := connect.NewUnaryHandler(
		AdminServiceListPendingProcedure,
		svc.ListPending,
		opts...,
	)
	listUpdateLogsHandler := connect.NewUnaryHandler(
		AdminServiceListUpdateLogsProcedure,
		svc.ListUpdateLogs,
		opts...,
	)
	getStatsHandler := connect.NewUnaryHandler(
		AdminServiceGetStatsProcedure,
		svc.GetStats,
		opts...,
	)
	publishNowHandler := connect.NewUnaryHandler(
		AdminServicePublishNowProcedure,
		svc.PublishNow,
		opts...,
	)
	rescoreHandler := connect.NewUnaryHandler(
		AdminServiceRescoreProcedure,
		svc.Rescore,
		opts...,
	)
	listTasksHandler := connect.NewUnaryHandler(
		AdminServiceListTasksProcedure,
		svc.ListTasks,
		opts...,
	)
	createTaskHandler := connect.NewUnaryHandler(
		AdminServiceCreateTaskProcedure,
		svc.CreateTask,
		opts...,
	)
	setTaskEnabledHandler := connect.NewUnaryHandler(
		AdminServiceSetTaskEnabledProcedure,
		svc.SetTaskEnabled,
		opts...,
	)
	deleteTaskHandler := connect.NewUnaryHandler(
		AdminServiceDeleteTaskProcedure,
		svc.DeleteTask,
		opts...,
	)
	triggerTaskHandler := connect.NewUnaryHandler(
		AdminServiceTriggerTaskProcedure,
		svc.TriggerTask,
		opts...,
	)
	listCrawlLogsHandler := connect.NewUnaryHandler(
		AdminServiceListCrawlLogsProcedure,
		svc.ListCrawlLogs,
		opts...,
	)

	return "/" + AdminServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case AdminServiceReviewCodeProcedure:
			reviewCodeHandler.ServeHTTP(w, r)
		case AdminServiceSetPublishedProcedure:
			setPublishedHandler.ServeHTTP(w, r)
		case AdminServiceDeleteCodeProcedure:
			deleteCodeHandler.ServeHTTP(w, r)
		case AdminServiceMarkInvalidProcedure:
			markInvalidHandler.ServeHTTP(w, r)
		case AdminServiceReactivateProcedure:
			reactivateHandler.ServeHTTP(w, r)
		case AdminServiceSubmitFeedbackProcedure:
			submitFeedbackHandler.ServeHTTP(w, r)
		case AdminServiceBatchOperationProcedure:
			batchOperationHandler.ServeHTTP(w, r)
		case AdminServiceSubmitCodeProcedure:
			submitCodeHandler.ServeHTTP(w, r)
		case AdminServiceIngestCandidatesProcedure:
			ingestCandidatesHandler.ServeHTTP(w, r)
		case AdminServiceImportSnapshotProcedure:
			importSnapshotHandler.ServeHTTP(w, r)
		case AdminServiceGetCodeProcedure:
			getCodeHandler.ServeHTTP(w, r)
		case AdminServiceListCodesProcedure:
			listCodesHandler.ServeHTTP(w, r)
		case AdminServiceListPendingProcedure:
			listPendingHandler.ServeHTTP(w, r)
		case AdminServiceListUpdateLogsProcedure:
			listUpdateLogsHandler.ServeHTTP(w, r)
		case AdminServiceGetStatsProcedure:
			getStatsHandler.ServeHTTP(w, r)
		case AdminServicePublishNowProcedure:
			publishNowHandler.ServeHTTP(w, r)
		case AdminServiceRescoreProcedure:
			rescoreHandler.ServeHTTP(w, r)
		case AdminServiceListTasksProcedure:
			listTasksHandler.ServeHTTP(w, r)
		case AdminServiceCreateTaskProcedure:
			createTaskHandler.ServeHTTP(w, r)
		case AdminServiceSetTaskEnabledProcedure:
			setTaskEnabledHandler.ServeHTTP(w, r)
		case AdminServiceDeleteTaskProcedure:
			deleteTaskHandler.ServeHTTP(w, r)
		case AdminServiceTriggerTaskProcedure:
			triggerTaskHandler.ServeHTTP(w, r)
		case AdminServiceListCrawlLogsProcedure:
			listCrawlLogsHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// AdminServiceClient is a client for gamecode.admin.v1.AdminService.
type AdminServiceClient interface {
	ReviewCode(context.Context, *connect.Request[ReviewCodeRequest]) (*connect.Response[CodeResponse], error)
	SetPublished(context.Context, *connect.Request[SetPublishedRequest]) (*connect.Response[CodeResponse], error)
	DeleteCode(context.Context, *connect.Request[DeleteCodeRequest]) (*connect.Response[DeleteCodeResponse], error)
	MarkInvalid(context.Context, *connect.Request[MarkInvalidRequest]) (*connect.Response[CodeResponse], error)
	Reactivate(context.Context, *connect.Request[ReactivateRequest]) (*connect.Response[CodeResponse], error)
	SubmitFeedback(context.Context, *connect.Request[SubmitFeedbackRequest]) (*connect.Response[CodeResponse], error)
	BatchOperation(context.Context, *connect.Request[BatchOperationRequest]) (*connect.Response[BatchOperationResponse], error)
	SubmitCode(context.Context, *connect.Request[SubmitCodeRequest]) (*connect.Response[SubmitCodeResponse], error)
	IngestCandidates(context.Context, *connect.Request[IngestCandidatesRequest]) (*connect.Response[IngestResponse], error)
	ImportSnapshot(context.Context, *connect.Request[ImportSnapshotRequest]) (*connect.Response[IngestResponse], error)
	GetCode(context.Context, *connect.Request[GetCodeRequest]) (*connect.Response[GetCodeResponse], error)
	ListCodes(context.Context, *connect.Request[ListCodesRequest]) (*connect.Response[ListCodesResponse], error)
	ListPending(context.Context, *connect.Request[ListPendingRequest]) (*connect.Response[ListCodesResponse], error)
	ListUpdateLogs(context.Context, *connect.Request[ListUpdateLogsRequest]) (*connect.Response[ListUpdateLogsResponse], error)
	GetStats(context.Context, *connect.Request[GetStatsRequest]) (*connect.Response[GetStatsResponse], error)
	PublishNow(context.Context, *connect.Request[PublishNowRequest]) (*connect.Response[PublishNowResponse], error)
	Rescore(context.Context, *connect.Request[RescoreRequest]) (*connect.Response[RescoreResponse], error)
	ListTasks(context.Context, *connect.Request[ListTasksRequest]) (*connect.Response[ListTasksResponse], error)
	CreateTask(context.Context, *connect.Request[CreateTaskRequest]) (*connect.Response[TaskResponse], error)
	SetTaskEnabled(context.Context, *connect.Request[SetTaskEnabledRequest]) (*connect.Response[TaskResponse], error)
	DeleteTask(context.Context, *connect.Request[DeleteTaskRequest]) (*connect.Response[DeleteTaskResponse], error)
	TriggerTask(context.Context, *connect.Request[TriggerTaskRequest]) (*connect.Response[TriggerTaskResponse], error)
	ListCrawlLogs(context.Context, *connect.Request[ListCrawlLogsRequest]) (*connect.Response[ListCrawlLogsResponse], error)
}

// NewAdminServiceClient constructs a client for AdminService. baseURL is the
// server root, for example http://localhost:8080.
func NewAdminServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AdminServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{codecOptions{}.clientOption()}, opts...)

	return &adminServiceClient{
		reviewCode: connect.NewClient[ReviewCodeRequest, CodeResponse](
			httpClient,
			baseURL+AdminServiceReviewCodeProcedure,
			opts...,
		),
		setPublished: connect.NewClient[SetPublishedRequest, CodeResponse](
			httpClient,
			baseURL+AdminServiceSetPublishedProcedure,
			opts...,
		),
		deleteCode: connect.NewClient[DeleteCodeRequest, DeleteCodeResponse](
			httpClient,
			baseURL+AdminServiceDeleteCodeProcedure,
			opts...,
		),
		markInvalid: connect.NewClient[MarkInvalidRequest, CodeResponse](
			httpClient,
			baseURL+AdminServiceMarkInvalidProcedure,
			opts...,
		),
		reactivate: connect.NewClient[ReactivateRequest, CodeResponse](
			httpClient,
			baseURL+AdminServiceReactivateProcedure,
			opts...,
		),
		submitFeedback: connect.NewClient[SubmitFeedbackRequest, CodeResponse](
			httpClient,
			baseURL+AdminServiceSubmitFeedbackProcedure,
			opts...,
		),
		batchOperation: connect.NewClient[BatchOperationRequest, BatchOperationResponse](
			httpClient,
			baseURL+AdminServiceBatchOperationProcedure,
			opts...,
		),
		submitCode: connect.NewClient[SubmitCodeRequest, SubmitCodeResponse](
			httpClient,
			baseURL+AdminServiceSubmitCodeProcedure,
			opts...,
		),
		ingestCandidates: connect.NewClient[IngestCandidatesRequest, IngestResponse](
			httpClient,
			baseURL+AdminServiceIngestCandidatesProcedure,
			opts...,
		),
		importSnapshot: connect.NewClient[ImportSnapshotRequest, IngestResponse](
			httpClient,
			baseURL+AdminServiceImportSnapshotProcedure,
			opts...,
		),
		getCode: connect.NewClient[GetCodeRequest, GetCodeResponse](
			httpClient,
			baseURL+AdminServiceGetCodeProcedure,
			opts...,
		),
		listCodes: connect.NewClient[ListCodesRequest, ListCodesResponse](
			httpClient,
			baseURL+AdminServiceListCodesProcedure,
			opts...,
		),
		listPending: connect.NewClient[ListPendingRequest, ListCodesResponse](
			httpClient,
			baseURL+AdminServiceListPendingProcedure,
			opts...,
		),
		listUpdateLogs: connect.NewClient[ListUpdateLogsRequest, ListUpdateLogsResponse](
			httpClient,
			baseURL+AdminServiceListUpdateLogsProcedure,
			opts...,
		),
		getStats: connect.NewClient[GetStatsRequest, GetStatsResponse](
			httpClient,
			baseURL+AdminServiceGetStatsProcedure,
			opts...,
		),
		publishNow: connect.NewClient[PublishNowRequest, PublishNowResponse](
			httpClient,
			baseURL+AdminServicePublishNowProcedure,
			opts...,
		),
		rescore: connect.NewClient[RescoreRequest, RescoreResponse](
			httpClient,
			baseURL+AdminServiceRescoreProcedure,
			opts...,
		),
		listTasks: connect.NewClient[ListTasksRequest, ListTasksResponse](
			httpClient,
			baseURL+AdminServiceListTasksProcedure,
			opts...,
		),
		createTask: connect.NewClient[CreateTaskRequest, TaskResponse](
			httpClient,
			baseURL+AdminServiceCreateTaskProcedure,
			opts...,
		),
		setTaskEnabled: connect.NewClient[SetTaskEnabledRequest, TaskResponse](
			httpClient,
			baseURL+AdminServiceSetTaskEnabledProcedure,
			opts...,
		),
		deleteTask: connect.NewClient[DeleteTaskRequest, DeleteTaskResponse](
			httpClient,
			baseURL+AdminServiceDeleteTaskProcedure,
			opts...,
		),
		triggerTask: connect.NewClient[TriggerTaskRequest, TriggerTaskResponse](
			httpClient,
			baseURL+AdminServiceTriggerTaskProcedure,
			opts...,
		),
		listCrawlLogs: connect.NewClient[ListCrawlLogsRequest, ListCrawlLogsResponse](
			httpClient,
			baseURL+AdminServiceListCrawlLogsProcedure,
			opts...,
		),
	}
}

type adminServiceClient struct {
	reviewCode       *connect.Client[ReviewCodeRequest, CodeResponse]
	setPublished     *connect.Client[SetPublishedRequest, CodeResponse]
	deleteCode       *connect.Client[DeleteCodeRequest, DeleteCodeResponse]
	markInvalid      *connect.Client[MarkInvalidRequest, CodeResponse]
	reactivate       *connect.Client[ReactivateRequest, CodeResponse]
	submitFeedback   *connect.Client[SubmitFeedbackRequest, CodeResponse]
	batchOperation   *connect.Client[BatchOperationRequest, BatchOperationResponse]
	submitCode       *connect.Client[SubmitCodeRequest, SubmitCodeResponse]
	ingestCandidates *connect.Client[IngestCandidatesRequest, IngestResponse]
	importSnapshot   *connect.Client[ImportSnapshotRequest, IngestResponse]
	getCode          *connect.Client[GetCodeRequest, GetCodeResponse]
	listCodes        *connect.Client[ListCodesRequest, ListCodesResponse]
	listPending      *connect.Client[ListPendingRequest, ListCodesResponse]
	listUpdateLogs   *connect.Client[ListUpdateLogsRequest, ListUpdateLogsResponse]
	getStats         *connect.Client[GetStatsRequest, GetStatsResponse]
	publishNow       *connect.Client[PublishNowRequest, PublishNowResponse]
	rescore          *connect.Client[RescoreRequest, RescoreResponse]
	listTasks        *connect.Client[ListTasksRequest, ListTasksResponse]
	createTask       *connect.Client[CreateTaskRequest, TaskResponse]
	setTaskEnabled   *connect.Client[SetTaskEnabledRequest, TaskResponse]
	deleteTask       *connect.Client[DeleteTaskRequest, DeleteTaskResponse]
	triggerTask      *connect.Client[TriggerTaskRequest, TriggerTaskResponse]
	listCrawlLogs    *connect.Client[ListCrawlLogsRequest, ListCrawlLogsResponse]
}

func (c *adminServiceClient) ReviewCode(ctx context.Context, req *connect.Request[ReviewCodeRequest]) (*connect.Response[CodeResponse], error) {
	return c.reviewCode.CallUnary(ctx, req)
}

func (c *adminServiceClient) SetPublished(ctx context.Context, req *connect.Request[SetPublishedRequest]) (*connect.Response[CodeResponse], error) {
	return c.setPublished.CallUnary(ctx, req)
}

func (c *adminServiceClient) DeleteCode(ctx context.Context, req *connect.Request[DeleteCodeRequest]) (*connect.Response[DeleteCodeResponse], error) {
	return c.deleteCode.CallUnary(ctx, req)
}

func (c *adminServiceClient) MarkInvalid(ctx context.Context, req *connect.Request[MarkInvalidRequest]) (*connect.Response[CodeResponse], error) {
	return c.markInvalid.CallUnary(ctx, req)
}

func (c *adminServiceClient) Reactivate(ctx context.Context, req *connect.Request[ReactivateRequest]) (*connect.Response[CodeResponse], error) {
	return c.reactivate.CallUnary(ctx, req)
}

func (c *adminServiceClient) SubmitFeedback(ctx context.Context, req *connect.Request[SubmitFeedbackRequest]) (*connect.Response[CodeResponse], error) {
	return c.submitFeedback.CallUnary(ctx, req)
}

func (c *adminServiceClient) BatchOperation(ctx context.Context, req *connect.Request[BatchOperationRequest]) (*connect.Response[BatchOperationResponse], error) {
	return c.batchOperation.CallUnary(ctx, req)
}

func (c *adminServiceClient) SubmitCode(ctx context.Context, req *connect.Request[SubmitCodeRequest]) (*connect.Response[SubmitCodeResponse], error) {
	return c.submitCode.CallUnary(ctx, req)
}

func (c *adminServiceClient) IngestCandidates(ctx context.Context, req *connect.Request[IngestCandidatesRequest]) (*connect.Response[IngestResponse], error) {
	return c.ingestCandidates.CallUnary(ctx, req)
}

func (c *adminServiceClient) ImportSnapshot(ctx context.Context, req *connect.Request[ImportSnapshotRequest]) (*connect.Response[IngestResponse], error) {
	return c.importSnapshot.CallUnary(ctx, req)
}

func (c *adminServiceClient) GetCode(ctx context.Context, req *connect.Request[GetCodeRequest]) (*connect.Response[GetCodeResponse], error) {
	return c.getCode.CallUnary(ctx, req)
}

func (c *adminServiceClient) ListCodes(ctx context.Context, req *connect.Request[ListCodesRequest]) (*connect.Response[ListCodesResponse], error) {
	return c.listCodes.CallUnary(ctx, req)
}

func (c *adminServiceClient) ListPending(ctx context.Context, req *connect.Request[ListPendingRequest]) (*connect.Response[ListCodesResponse], error) {
	return c.listPending.CallUnary(ctx, req)
}

func (c *adminServiceClient) ListUpdateLogs(ctx context.Context, req *connect.Request[ListUpdateLogsRequest]) (*connect.Response[ListUpdateLogsResponse], error) {
	return c.listUpdateLogs.CallUnary(ctx, req)
}

func (c *adminServiceClient) GetStats(ctx context.Context, req *connect.Request[GetStatsRequest]) (*connect.Response[GetStatsResponse], error) {
	return c.getStats.CallUnary(ctx, req)
}

func (c *adminServiceClient) PublishNow(ctx context.Context, req *connect.Request[PublishNowRequest]) (*connect.Response[PublishNowResponse], error) {
	return c.publishNow.CallUnary(ctx, req)
}

func (c *adminServiceClient) Rescore(ctx context.Context, req *connect.Request[RescoreRequest]) (*connect.Response[RescoreResponse], error) {
	return c.rescore.CallUnary(ctx, req)
}

func (c *adminServiceClient) ListTasks(ctx context.Context, req *connect.Request[ListTasksRequest]) (*connect.Response[ListTasksResponse], error) {
	return c.listTasks.CallUnary(ctx, req)
}

func (c *adminServiceClient) CreateTask(ctx context.Context, req *connect.Request[CreateTaskRequest]) (*connect.Response[TaskResponse], error) {
	return c.createTask.CallUnary(ctx, req)
}

func (c *adminServiceClient) SetTaskEnabled(ctx context.Context, req *connect.Request[SetTaskEnabledRequest]) (*connect.Response[TaskResponse], error) {
	return c.setTaskEnabled.CallUnary(ctx, req)
}

func (c *adminServiceClient) DeleteTask(ctx context.Context, req *connect.Request[DeleteTaskRequest]) (*connect.Response[DeleteTaskResponse], error) {
	return c.deleteTask.CallUnary(ctx, req)
}

func (c *adminServiceClient) TriggerTask(ctx context.Context, req *connect.Request[TriggerTaskRequest]) (*connect.Response[TriggerTaskResponse], error) {
	return c.triggerTask.CallUnary(ctx, req)
}

func (c *adminServiceClient) ListCrawlLogs(ctx context.Context, req *connect.Request[ListCrawlLogsRequest]) (*connect.Response[ListCrawlLogsResponse], error) {
	return c.listCrawlLogs.CallUnary(ctx, req)
}
