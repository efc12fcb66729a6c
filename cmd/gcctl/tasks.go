package main

import (
	"context"
	"flag"
	"strconv"

	"connectrpc.com/connect"

	"github.com/Jhoney47/GameCodeBase/internal/adminv1"
)

func runTasks(ctx context.Context, client adminv1.AdminServiceClient, args []string) (any, error) {
	res, err := client.ListTasks(ctx, connect.NewRequest(&adminv1.ListTasksRequest{}))
	if err != nil {
		return nil, err
	}
	return res.Msg.Tasks, nil
}

func runTaskCreate(ctx context.Context, client adminv1.AdminServiceClient, args []string) (any, error) {
	fs := flag.NewFlagSet("task-create", flag.ContinueOnError)
	req := &adminv1.CreateTaskRequest{}
	fs.StringVar(&req.TaskType, "type", "crawl_all", "crawl_all or crawl_game")
	fs.StringVar(&req.GameName, "game", "", "game to crawl for crawl_game tasks")
	fs.StringVar(&req.Description, "desc", "", "description")
	if err := fs.Parse(args); err != nil || fs.NArg() != 2 {
		return nil, usageError{}
	}
	req.Name = fs.Arg(0)
	req.CronExpression = fs.Arg(1)

	res, err := client.CreateTask(ctx, connect.NewRequest(req))
	if err != nil {
		return nil, err
	}
	return res.Msg.Task, nil
}

func runTaskEnable(ctx context.Context, client adminv1.AdminServiceClient, args []string) (any, error) {
	id, err := idArg(args, 2)
	if err != nil {
		return nil, err
	}
	if args[1] != "on" && args[1] != "off" {
		return nil, usageError{}
	}
	res, err := client.SetTaskEnabled(ctx, connect.NewRequest(&adminv1.SetTaskEnabledRequest{
		TaskID:    id,
		IsEnabled: args[1] == "on",
	}))
	if err != nil {
		return nil, err
	}
	return res.Msg.Task, nil
}

func runTaskDelete(ctx context.Context, client adminv1.AdminServiceClient, args []string) (any, error) {
	id, err := idArg(args, 1)
	if err != nil {
		return nil, err
	}
	if _, err := client.DeleteTask(ctx, connect.NewRequest(&adminv1.DeleteTaskRequest{TaskID: id})); err != nil {
		return nil, err
	}
	return nil, nil
}

func runTaskTrigger(ctx context.Context, client adminv1.AdminServiceClient, args []string) (any, error) {
	id, err := idArg(args, 1)
	if err != nil {
		return nil, err
	}
	res, err := client.TriggerTask(ctx, connect.NewRequest(&adminv1.TriggerTaskRequest{TaskID: id}))
	if err != nil {
		return nil, err
	}
	return res.Msg, nil
}

func runCrawlLogs(ctx context.Context, client adminv1.AdminServiceClient, args []string) (any, error) {
	req := &adminv1.ListCrawlLogsRequest{}
	if len(args) > 0 {
		limit, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, usageError{}
		}
		req.Limit = limit
	}
	res, err := client.ListCrawlLogs(ctx, connect.NewRequest(req))
	if err != nil {
		return nil, err
	}
	return res.Msg.Logs, nil
}
