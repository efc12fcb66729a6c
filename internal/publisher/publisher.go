// Package publisher writes the snapshot artifact and mirrors it to remotes.
//
// The local file is authoritative: a failed write fails the publish call.
// Remotes are best effort; a failed or timed out push is logged and counted
// but never fails the call.
package publisher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/Jhoney47/GameCodeBase/internal/apperr"
	"github.com/Jhoney47/GameCodeBase/internal/metrics"
	"github.com/Jhoney47/GameCodeBase/internal/snapshot"
)

// Publisher persists a snapshot
type Publisher interface {
	Publish(ctx context.Context, s *snapshot.Snapshot) (*Result, error)
}

// Artifact is the written snapshot handed to remotes
type Artifact struct {
	Path        string
	Data        []byte
	Digest      string
	LastUpdated string
}

// Remote mirrors the artifact somewhere else. Push reports whether the remote
// changed; pushing content the remote already has is a quiet success.
type Remote interface {
	Name() string
	Push(ctx context.Context, a Artifact) (bool, error)
}

// RemoteResult is the outcome of one remote push
type RemoteResult struct {
	Name    string `json:"name"`
	Changed bool   `json:"changed"`
	Error   string `json:"error,omitempty"`
}

// Result is the outcome of a publish
type Result struct {
	Path        string         `json:"path"`
	Digest      string         `json:"digest"`
	LastUpdated string         `json:"lastUpdated"`
	TotalCodes  int            `json:"totalCodes"`
	NoOp        bool           `json:"noOp"`
	Remotes     []RemoteResult `json:"remotes"`
}

// FilePublisher writes the artifact to a local path and then pushes it to
// every configured remote. With no remotes it is local-artifact-only.
type FilePublisher struct {
	path        string
	remotes     []Remote
	pushTimeout time.Duration
	logger      *zap.Logger
}

// Option configures a FilePublisher
type Option func(*FilePublisher)

// WithRemote adds a remote
func WithRemote(r Remote) Option {
	return func(p *FilePublisher) { p.remotes = append(p.remotes, r) }
}

// WithPushTimeout bounds each remote push
func WithPushTimeout(d time.Duration) Option {
	return func(p *FilePublisher) { p.pushTimeout = d }
}

// NewFilePublisher creates a publisher writing to path
func NewFilePublisher(path string, logger *zap.Logger, opts ...Option) *FilePublisher {
	p := &FilePublisher{
		path:        path,
		pushTimeout: 30 * time.Second,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Publish writes s unless the artifact already holds the same content, then
// pushes to the remotes. Remotes are pushed on a no-op too, so a push that
// failed earlier is retried by the next publish.
func (p *FilePublisher) Publish(ctx context.Context, s *snapshot.Snapshot) (*Result, error) {
	data, err := snapshot.Encode(s)
	if err != nil {
		return nil, apperr.Publish("failed to serialize snapshot", err)
	}
	digest, err := snapshot.Digest(s)
	if err != nil {
		return nil, apperr.Publish("failed to digest snapshot", err)
	}

	result := &Result{
		Path:        p.path,
		Digest:      digest,
		LastUpdated: s.LastUpdated,
		TotalCodes:  s.TotalCodes,
		Remotes:     []RemoteResult{},
	}

	if current, ok := p.currentDigest(); ok && current == digest {
		result.NoOp = true
		// Remotes see the artifact that is actually on disk.
		if existing, err := os.ReadFile(p.path); err == nil {
			data = existing
		}
		p.logger.Debug("Snapshot unchanged, skipping write", zap.String("digest", digest))
	} else {
		if err := writeFileAtomic(p.path, data); err != nil {
			return nil, apperr.Publish("failed to write artifact", err)
		}
		p.logger.Info("Snapshot written",
			zap.String("path", p.path),
			zap.String("digest", digest),
			zap.Int("totalCodes", s.TotalCodes),
		)
	}

	artifact := Artifact{Path: p.path, Data: data, Digest: digest, LastUpdated: s.LastUpdated}
	for _, r := range p.remotes {
		result.Remotes = append(result.Remotes, p.push(ctx, r, artifact))
	}

	return result, nil
}

func (p *FilePublisher) push(ctx context.Context, r Remote, a Artifact) RemoteResult {
	pushCtx, cancel := context.WithTimeout(ctx, p.pushTimeout)
	defer cancel()

	changed, err := r.Push(pushCtx, a)
	if err != nil {
		metrics.RecordRemotePushFailure(r.Name())
		p.logger.Warn("Remote push failed, local artifact kept",
			zap.String("remote", r.Name()),
			zap.String("digest", a.Digest),
			zap.Error(err),
		)
		return RemoteResult{Name: r.Name(), Error: err.Error()}
	}

	p.logger.Info("Remote push finished", zap.String("remote", r.Name()), zap.Bool("changed", changed))
	return RemoteResult{Name: r.Name(), Changed: changed}
}

// currentDigest returns the content digest of the artifact on disk
func (p *FilePublisher) currentDigest() (string, bool) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			p.logger.Warn("Failed to read existing artifact", zap.String("path", p.path), zap.Error(err))
		}
		return "", false
	}
	existing, err := snapshot.Decode(data)
	if err != nil {
		return "", false
	}
	digest, err := snapshot.Digest(existing)
	if err != nil {
		return "", false
	}
	return digest, true
}

// writeFileAtomic replaces path with data so readers never see a partial file
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create artifact directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace artifact: %w", err)
	}
	return nil
}
