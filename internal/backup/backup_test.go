package backup

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/coelhor/feira/internal/database"
)

type fakeS3 struct {
	puts []string
	err  error
}

func (f *fakeS3) PutObject(ctx context.Context, input *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	if input.Body != nil {
		io.Copy(io.Discard, input.Body)
	}
	f.puts = append(f.puts, *input.Key)
	return &s3.PutObjectOutput{}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestManagerDisabledWithoutCredentials(t *testing.T) {
	m := NewManager(Config{}, nil, nil, testLogger())

	if m.Enabled() {
		t.Error("manager should be disabled without S3 credentials")
	}
	if m.Status().State != StateDisabled {
		t.Errorf("state = %q, want %q", m.Status().State, StateDisabled)
	}
	if err := m.BackupNow(context.Background()); err == nil {
		t.Error("BackupNow should fail when disabled")
	}
}

func TestBackupNowUploadsSnapshot(t *testing.T) {
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	defer db.Close()

	var statuses []Status
	m := NewManager(Config{S3: S3Config{Bucket: "test"}}, db, func(s Status) {
		statuses = append(statuses, s)
	}, testLogger())

	fake := &fakeS3{}
	m.client = fake
	m.status.State = StateIdle

	if err := m.BackupNow(context.Background()); err != nil {
		t.Fatalf("BackupNow: %v", err)
	}

	if len(fake.puts) != 1 {
		t.Fatalf("uploads = %d, want 1", len(fake.puts))
	}

	final := m.Status()
	if final.State != StateIdle {
		t.Errorf("state = %q, want %q", final.State, StateIdle)
	}
	if final.LastBackup == nil {
		t.Error("LastBackup should be set after a successful backup")
	}
	if len(statuses) < 2 {
		t.Fatalf("status callbacks = %d, want at least 2", len(statuses))
	}
	if statuses[0].State != StateRunning {
		t.Errorf("first callback state = %q, want %q", statuses[0].State, StateRunning)
	}
}
