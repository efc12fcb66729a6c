package publisher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/Jhoney47/GameCodeBase/internal/apperr"
	"github.com/Jhoney47/GameCodeBase/internal/model"
	"github.com/Jhoney47/GameCodeBase/internal/snapshot"
)

func testSnapshot(t *testing.T, at time.Time, verifications int) *snapshot.Snapshot {
	t.Helper()
	published := time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)
	codes := []model.RedemptionCode{{
		ID:                1,
		GameName:          "铃兰之剑",
		Code:              "SWORD2026",
		RewardDescription: "钻石x100",
		SourcePlatform:    "TapTap",
		CodeType:          model.CodePermanent,
		Status:            model.StatusActive,
		ReviewStatus:      model.ReviewApproved,
		IsPublished:       true,
		PublishDate:       &published,
		VerificationCount: verifications,
	}}
	return snapshot.NewBuilder([]string{"铃兰之剑", "杖剑传说"}, false).Build(codes, at)
}

type fakeRemote struct {
	name        string
	err         error
	calls       int
	hadDeadline bool
	last        Artifact
}

func (f *fakeRemote) Name() string { return f.name }

func (f *fakeRemote) Push(ctx context.Context, a Artifact) (bool, error) {
	f.calls++
	_, f.hadDeadline = ctx.Deadline()
	f.last = a
	if f.err != nil {
		return false, f.err
	}
	return true, nil
}

func TestPublishWritesArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "GameCodeBase.json")
	p := NewFilePublisher(path, zaptest.NewLogger(t))

	s := testSnapshot(t, time.Date(2026, 1, 21, 0, 0, 0, 0, time.UTC), 5)
	result, err := p.Publish(context.Background(), s)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if result.NoOp || result.TotalCodes != 1 || result.Digest == "" {
		t.Errorf("Unexpected result %+v", result)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	want, _ := snapshot.Encode(s)
	if string(data) != string(want) {
		t.Errorf("Artifact does not match canonical encoding\n%s", data)
	}
}

func TestSecondIdenticalPublishIsNoOp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "GameCodeBase.json")
	p := NewFilePublisher(path, zaptest.NewLogger(t))
	ctx := context.Background()

	first := testSnapshot(t, time.Date(2026, 1, 21, 0, 0, 0, 0, time.UTC), 5)
	if _, err := p.Publish(ctx, first); err != nil {
		t.Fatalf("first Publish: %v", err)
	}
	before, _ := os.ReadFile(path)

	second := testSnapshot(t, time.Date(2026, 1, 21, 1, 0, 0, 0, time.UTC), 5)
	result, err := p.Publish(ctx, second)
	if err != nil {
		t.Fatalf("second Publish returned error: %v", err)
	}
	if !result.NoOp {
		t.Error("Expected identical content to be reported as a no-op")
	}
	after, _ := os.ReadFile(path)
	if string(before) != string(after) {
		t.Error("No-op publish must not rewrite the artifact")
	}

	changed := testSnapshot(t, time.Date(2026, 1, 21, 2, 0, 0, 0, time.UTC), 6)
	result, err = p.Publish(ctx, changed)
	if err != nil {
		t.Fatalf("third Publish: %v", err)
	}
	if result.NoOp {
		t.Error("Changed content must be written")
	}
}

func TestWriteFailureIsFatal(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "not-a-dir")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	remote := &fakeRemote{name: "fake"}
	p := NewFilePublisher(filepath.Join(blocker, "GameCodeBase.json"), zaptest.NewLogger(t), WithRemote(remote))

	_, err := p.Publish(context.Background(), testSnapshot(t, time.Now(), 1))
	if !errors.Is(err, apperr.ErrPublish) {
		t.Fatalf("Expected ErrPublish, got %v", err)
	}
	if remote.calls != 0 {
		t.Error("Remotes must not be pushed when the local write fails")
	}
}

func TestRemoteFailureDoesNotFailPublish(t *testing.T) {
	path := filepath.Join(t.TempDir(), "GameCodeBase.json")
	broken := &fakeRemote{name: "broken", err: errors.New("authentication required")}
	healthy := &fakeRemote{name: "healthy"}
	p := NewFilePublisher(path, zaptest.NewLogger(t),
		WithRemote(broken), WithRemote(healthy), WithPushTimeout(time.Second))

	result, err := p.Publish(context.Background(), testSnapshot(t, time.Now(), 2))
	if err != nil {
		t.Fatalf("Publish should succeed despite remote failure: %v", err)
	}
	if len(result.Remotes) != 2 {
		t.Fatalf("Expected 2 remote results, got %d", len(result.Remotes))
	}
	if !strings.Contains(result.Remotes[0].Error, "authentication required") {
		t.Errorf("Expected failure to be reported, got %+v", result.Remotes[0])
	}
	if !result.Remotes[1].Changed || result.Remotes[1].Error != "" {
		t.Errorf("Expected healthy remote to succeed, got %+v", result.Remotes[1])
	}
	if !broken.hadDeadline || !healthy.hadDeadline {
		t.Error("Expected pushes to be bounded by a deadline")
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Local artifact must be kept: %v", err)
	}
}

func TestRemotesRetriedOnNoOp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "GameCodeBase.json")
	remote := &fakeRemote{name: "fake"}
	p := NewFilePublisher(path, zaptest.NewLogger(t), WithRemote(remote))
	ctx := context.Background()

	first := testSnapshot(t, time.Date(2026, 1, 21, 0, 0, 0, 0, time.UTC), 5)
	if _, err := p.Publish(ctx, first); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if _, err := p.Publish(ctx, testSnapshot(t, time.Date(2026, 1, 22, 0, 0, 0, 0, time.UTC), 5)); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if remote.calls != 2 {
		t.Errorf("Expected remote to be called on every publish, got %d", remote.calls)
	}
	if remote.last.LastUpdated != "2026-01-22T00:00:00.000Z" {
		t.Errorf("Unexpected artifact timestamp %s", remote.last.LastUpdated)
	}
	if !strings.Contains(string(remote.last.Data), "2026-01-21T00:00:00.000Z") {
		t.Error("Remote should receive the artifact that is on disk")
	}
}
