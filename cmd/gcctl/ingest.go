package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/time/rate"

	"github.com/Jhoney47/GameCodeBase/internal/adminv1"
	"github.com/Jhoney47/GameCodeBase/internal/model"
)

// IngestReport aggregates a bulk ingest run. Counters are updated atomically
// by the workers.
type IngestReport struct {
	Chunks     int64         `json:"chunks"`
	Failed     int64         `json:"failedChunks"`
	Created    int64         `json:"created"`
	Duplicates int64         `json:"duplicates"`
	Invalid    int64         `json:"invalid"`
	Took       time.Duration `json:"took"`
	Errors     []string      `json:"errors,omitempty"`
}

func runSubmit(ctx context.Context, client adminv1.AdminServiceClient, args []string) (any, error) {
	if len(args) < 2 {
		return nil, usageError{}
	}
	candidate := model.CandidateCode{GameName: args[0], Code: args[1]}
	if len(args) > 2 {
		candidate.RewardDescription = args[2]
	}
	res, err := client.SubmitCode(ctx, connect.NewRequest(&adminv1.SubmitCodeRequest{Candidate: candidate}))
	if err != nil {
		return nil, err
	}
	return res.Msg, nil
}

// runIngest streams a JSON array of candidates to the service in chunks,
// using a rate limited worker pool.
func runIngest(ctx context.Context, client adminv1.AdminServiceClient, args []string) (any, error) {
	fs := flag.NewFlagSet("ingest", flag.ContinueOnError)
	workers := fs.Int("workers", 4, "concurrent requests")
	rps := fs.Int("rps", 10, "requests per second")
	chunk := fs.Int("chunk", 50, "candidates per request")
	source := fs.String("source", "", "source platform for candidates without one")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 || *workers < 1 || *rps < 1 || *chunk < 1 {
		return nil, usageError{}
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return nil, err
	}
	var candidates []model.CandidateCode
	if err := json.Unmarshal(data, &candidates); err != nil {
		return nil, fmt.Errorf("failed to decode candidates: %w", err)
	}

	chunks := make(chan []model.CandidateCode)
	go func() {
		defer close(chunks)
		for start := 0; start < len(candidates); start += *chunk {
			end := min(start+*chunk, len(candidates))
			select {
			case chunks <- candidates[start:end]:
			case <-ctx.Done():
				return
			}
		}
	}()

	burst := max(*rps / *workers, 1)
	limiter := rate.NewLimiter(rate.Limit(*rps), burst)

	var (
		report IngestReport
		mu     sync.Mutex
		wg     sync.WaitGroup
	)
	start := time.Now()

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for batch := range chunks {
				if err := limiter.Wait(ctx); err != nil { // context cancelled → exit
					return
				}
				atomic.AddInt64(&report.Chunks, 1)

				res, err := client.IngestCandidates(ctx, connect.NewRequest(&adminv1.IngestCandidatesRequest{
					Candidates: batch,
					Source:     *source,
				}))
				if err != nil {
					atomic.AddInt64(&report.Failed, 1)
					mu.Lock()
					report.Errors = append(report.Errors, err.Error())
					mu.Unlock()
					continue
				}
				atomic.AddInt64(&report.Created, int64(res.Msg.Result.Created))
				atomic.AddInt64(&report.Duplicates, int64(res.Msg.Result.Duplicates))
				atomic.AddInt64(&report.Invalid, int64(res.Msg.Result.Invalid))
			}
		}()
	}

	wg.Wait()
	report.Took = time.Since(start)

	if report.Failed > 0 {
		printJSON(report)
		return nil, fmt.Errorf("%d of %d chunks failed", report.Failed, report.Chunks)
	}
	return report, nil
}
