// Command gcctl drives the GameCodeBase admin service from the command line.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"maps"
	"net/http"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/Jhoney47/GameCodeBase/internal/adminv1"
)

const defaultTimeout = 30 * time.Second

type command struct {
	usage string
	run   func(ctx context.Context, client adminv1.AdminServiceClient, args []string) (any, error)
}

var commands = map[string]command{
	"review":      {"review <id> approve|reject [note]", runReview},
	"publish":     {"publish <id>", runSetPublished(true)},
	"unpublish":   {"unpublish <id>", runSetPublished(false)},
	"delete":      {"delete <id>", runDelete},
	"invalid":     {"invalid <id> [reason]", runMarkInvalid},
	"reactivate":  {"reactivate <id>", runReactivate},
	"feedback":    {"feedback <id> ok|fail", runFeedback},
	"batch":       {"batch publish|unpublish|delete <id>...", runBatch},
	"submit":      {"submit <game> <code> [reward]", runSubmit},
	"ingest":      {"ingest [-workers n] [-rps n] [-chunk n] [-source s] <file.json>", runIngest},
	"import":      {"import <GameCodeBase.json>", runImport},
	"get":         {"get <id>", runGet},
	"list":        {"list [-game g] [-review s] [-limit n]", runList},
	"pending":     {"pending", runPending},
	"logs":        {"logs [limit]", runLogs},
	"stats":       {"stats", runStats},
	"publish-now": {"publish-now", runPublishNow},
	"rescore":     {"rescore", runRescore},
	"tasks":       {"tasks", runTasks},
	"task-create": {"task-create [-type t] [-game g] [-desc d] <name> <cron>", runTaskCreate},
	"task-enable": {"task-enable <id> on|off", runTaskEnable},
	"task-delete": {"task-delete <id>", runTaskDelete},
	"task-run":    {"task-run <id>", runTaskTrigger},
	"crawl-logs":  {"crawl-logs [limit]", runCrawlLogs},
}

func main() {
	addr := flag.String("addr", envOr("GCCTL_ADDR", "http://localhost:8080"), "admin service base URL")
	timeout := flag.Duration("timeout", defaultTimeout, "per command timeout")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}
	cmd, ok := commands[flag.Arg(0)]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n", flag.Arg(0))
		usage()
		os.Exit(2)
	}

	httpClient := &http.Client{Timeout: *timeout}
	client := adminv1.NewAdminServiceClient(httpClient, strings.TrimRight(*addr, "/"))

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	out, err := cmd.run(ctx, client, flag.Args()[1:])
	if err != nil {
		var usageErr usageError
		if errors.As(err, &usageErr) {
			fmt.Fprintf(os.Stderr, "usage: gcctl %s\n", cmd.usage)
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "%s failed: %v\n", flag.Arg(0), err)
		os.Exit(1)
	}
	if out != nil {
		printJSON(out)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: gcctl [-addr url] [-timeout d] <command> [args]")
	fmt.Fprintln(os.Stderr, "commands:")
	for _, name := range sortedCommands() {
		fmt.Fprintf(os.Stderr, "  %s\n", commands[name].usage)
	}
}

func sortedCommands() []string {
	return slices.Sorted(maps.Keys(commands))
}

type usageError struct{}

func (usageError) Error() string { return "bad usage" }

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode output: %v\n", err)
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// idArg parses the single id argument most commands take
func idArg(args []string, n int) (int64, error) {
	if len(args) < n {
		return 0, usageError{}
	}
	return parseID(args[0])
}

func runReview(ctx context.Context, client adminv1.AdminServiceClient, args []string) (any, error) {
	id, err := idArg(args, 2)
	if err != nil {
		return nil, err
	}
	req := &adminv1.ReviewCodeRequest{CodeID: id, Action: args[1]}
	if len(args) > 2 {
		req.ReviewNote = strings.Join(args[2:], " ")
	}
	res, err := client.ReviewCode(ctx, connect.NewRequest(req))
	if err != nil {
		return nil, err
	}
	return res.Msg.Code, nil
}

func runSetPublished(published bool) func(context.Context, adminv1.AdminServiceClient, []string) (any, error) {
	return func(ctx context.Context, client adminv1.AdminServiceClient, args []string) (any, error) {
		id, err := idArg(args, 1)
		if err != nil {
			return nil, err
		}
		res, err := client.SetPublished(ctx, connect.NewRequest(&adminv1.SetPublishedRequest{CodeID: id, IsPublished: published}))
		if err != nil {
			return nil, err
		}
		return res.Msg.Code, nil
	}
}

func runDelete(ctx context.Context, client adminv1.AdminServiceClient, args []string) (any, error) {
	id, err := idArg(args, 1)
	if err != nil {
		return nil, err
	}
	res, err := client.DeleteCode(ctx, connect.NewRequest(&adminv1.DeleteCodeRequest{CodeID: id}))
	if err != nil {
		return nil, err
	}
	return res.Msg, nil
}

func runMarkInvalid(ctx context.Context, client adminv1.AdminServiceClient, args []string) (any, error) {
	id, err := idArg(args, 1)
	if err != nil {
		return nil, err
	}
	res, err := client.MarkInvalid(ctx, connect.NewRequest(&adminv1.MarkInvalidRequest{
		CodeID: id,
		Reason: strings.Join(args[1:], " "),
	}))
	if err != nil {
		return nil, err
	}
	return res.Msg.Code, nil
}

func runReactivate(ctx context.Context, client adminv1.AdminServiceClient, args []string) (any, error) {
	id, err := idArg(args, 1)
	if err != nil {
		return nil, err
	}
	res, err := client.Reactivate(ctx, connect.NewRequest(&adminv1.ReactivateRequest{CodeID: id}))
	if err != nil {
		return nil, err
	}
	return res.Msg.Code, nil
}

func runFeedback(ctx context.Context, client adminv1.AdminServiceClient, args []string) (any, error) {
	id, err := idArg(args, 2)
	if err != nil {
		return nil, err
	}
	var success bool
	switch args[1] {
	case "ok":
		success = true
	case "fail":
	default:
		return nil, usageError{}
	}
	res, err := client.SubmitFeedback(ctx, connect.NewRequest(&adminv1.SubmitFeedbackRequest{CodeID: id, Success: success}))
	if err != nil {
		return nil, err
	}
	return res.Msg.Code, nil
}

func runBatch(ctx context.Context, client adminv1.AdminServiceClient, args []string) (any, error) {
	if len(args) < 2 {
		return nil, usageError{}
	}
	ids := make([]int64, 0, len(args)-1)
	for _, a := range args[1:] {
		id, err := parseID(a)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	res, err := client.BatchOperation(ctx, connect.NewRequest(&adminv1.BatchOperationRequest{CodeIDs: ids, Operation: args[0]}))
	if err != nil {
		return nil, err
	}
	return res.Msg, nil
}

func runImport(ctx context.Context, client adminv1.AdminServiceClient, args []string) (any, error) {
	if len(args) != 1 {
		return nil, usageError{}
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, err
	}
	res, err := client.ImportSnapshot(ctx, connect.NewRequest(&adminv1.ImportSnapshotRequest{Document: data}))
	if err != nil {
		return nil, err
	}
	return res.Msg.Result, nil
}

func runGet(ctx context.Context, client adminv1.AdminServiceClient, args []string) (any, error) {
	id, err := idArg(args, 1)
	if err != nil {
		return nil, err
	}
	res, err := client.GetCode(ctx, connect.NewRequest(&adminv1.GetCodeRequest{CodeID: id}))
	if err != nil {
		return nil, err
	}
	return res.Msg, nil
}

func runList(ctx context.Context, client adminv1.AdminServiceClient, args []string) (any, error) {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	req := &adminv1.ListCodesRequest{}
	fs.StringVar(&req.GameName, "game", "", "game name")
	fs.StringVar(&req.ReviewStatus, "review", "", "pending, approved or rejected")
	fs.IntVar(&req.Limit, "limit", 0, "maximum rows")
	if err := fs.Parse(args); err != nil {
		return nil, usageError{}
	}
	res, err := client.ListCodes(ctx, connect.NewRequest(req))
	if err != nil {
		return nil, err
	}
	return res.Msg.Codes, nil
}

func runPending(ctx context.Context, client adminv1.AdminServiceClient, args []string) (any, error) {
	res, err := client.ListPending(ctx, connect.NewRequest(&adminv1.ListPendingRequest{}))
	if err != nil {
		return nil, err
	}
	return res.Msg.Codes, nil
}

func runLogs(ctx context.Context, client adminv1.AdminServiceClient, args []string) (any, error) {
	req := &adminv1.ListUpdateLogsRequest{}
	if len(args) > 0 {
		limit, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, usageError{}
		}
		req.Limit = limit
	}
	res, err := client.ListUpdateLogs(ctx, connect.NewRequest(req))
	if err != nil {
		return nil, err
	}
	return res.Msg.Logs, nil
}

func runStats(ctx context.Context, client adminv1.AdminServiceClient, args []string) (any, error) {
	res, err := client.GetStats(ctx, connect.NewRequest(&adminv1.GetStatsRequest{}))
	if err != nil {
		return nil, err
	}
	return res.Msg.Stats, nil
}

func runPublishNow(ctx context.Context, client adminv1.AdminServiceClient, args []string) (any, error) {
	res, err := client.PublishNow(ctx, connect.NewRequest(&adminv1.PublishNowRequest{}))
	if err != nil {
		return nil, err
	}
	return res.Msg.Result, nil
}

func runRescore(ctx context.Context, client adminv1.AdminServiceClient, args []string) (any, error) {
	res, err := client.Rescore(ctx, connect.NewRequest(&adminv1.RescoreRequest{}))
	if err != nil {
		return nil, err
	}
	return res.Msg, nil
}
