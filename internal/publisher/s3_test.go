package publisher

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/Jhoney47/GameCodeBase/internal/config"
)

type fakeObjectStore struct {
	metadata map[string]string
	body     []byte
	puts     int
	headErr  error
}

func (f *fakeObjectStore) HeadObject(ctx context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if f.headErr != nil {
		return nil, f.headErr
	}
	if f.metadata == nil {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{Metadata: f.metadata}, nil
}

func (f *fakeObjectStore) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.puts++
	f.body = body
	f.metadata = in.Metadata
	return &s3.PutObjectOutput{}, nil
}

func TestS3RemoteUploadsOnlyChangedContent(t *testing.T) {
	store := &fakeObjectStore{}
	remote := newS3Remote(store, "codes", "/GameCodeBase.json")
	ctx := context.Background()

	a := Artifact{Data: []byte(`{"version":"2.0.1"}`), Digest: "abc"}
	changed, err := remote.Push(ctx, a)
	if err != nil || !changed {
		t.Fatalf("Expected first push to upload, got changed=%v err=%v", changed, err)
	}
	if string(store.body) != string(a.Data) || store.metadata["digest"] != "abc" {
		t.Errorf("Unexpected stored object %q %v", store.body, store.metadata)
	}

	changed, err = remote.Push(ctx, a)
	if err != nil || changed {
		t.Errorf("Expected identical digest to skip upload, got changed=%v err=%v", changed, err)
	}

	a.Digest = "def"
	if changed, err = remote.Push(ctx, a); err != nil || !changed {
		t.Errorf("Expected new digest to upload, got changed=%v err=%v", changed, err)
	}
	if store.puts != 2 {
		t.Errorf("Expected 2 uploads, got %d", store.puts)
	}
}

func TestS3RemoteHeadFailure(t *testing.T) {
	store := &fakeObjectStore{headErr: errors.New("access denied")}
	remote := newS3Remote(store, "codes", "GameCodeBase.json")

	if _, err := remote.Push(context.Background(), Artifact{Digest: "abc"}); err == nil {
		t.Error("Expected head failure to be returned")
	}
	if store.puts != 0 {
		t.Error("Expected no upload after a failed head")
	}
}

func TestNewS3RemoteRequiresCredentials(t *testing.T) {
	if _, err := NewS3Remote(config.S3Config{Bucket: "codes", Region: "us-east-1"}); err == nil {
		t.Error("Expected missing credentials to be rejected")
	}
	r, err := NewS3Remote(config.S3Config{
		Bucket:          "codes",
		Region:          "auto",
		Endpoint:        "minio.local:9000",
		AccessKeyID:     "id",
		SecretAccessKey: "secret",
		Key:             "GameCodeBase.json",
	})
	if err != nil {
		t.Fatalf("NewS3Remote: %v", err)
	}
	if r.Name() != "s3" || r.key != "GameCodeBase.json" {
		t.Errorf("Unexpected remote %+v", r)
	}
}
