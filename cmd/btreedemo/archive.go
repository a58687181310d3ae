package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"cloud.google.com/go/storage"

	"github.com/brensch/behaviortree/internal/visualize"
)

// archiver uploads tick-trace snapshots to a Cloud Storage bucket: each
// snapshot is encoded as a JSON trace and a PNG render and written as two
// objects under the session's prefix.
type archiver struct {
	bucket string
}

func newArchiver(bucket string) *archiver {
	return &archiver{bucket: bucket}
}

// ArchiveSnapshot uploads the trace as JSON and its rendered PNG under
// "<sessionID>/tick-<n>.json" and "<sessionID>/tick-<n>.png". A nil
// archiver, or one with an empty bucket name, is a no-op, so the demo runs
// without a GCS project configured.
func (a *archiver) ArchiveSnapshot(ctx context.Context, sessionID string, trace visualize.Trace) error {
	if a == nil || a.bucket == "" {
		return nil
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("create storage client: %w", err)
	}
	defer client.Close()

	bucket := client.Bucket(a.bucket)

	traceJSON, err := json.Marshal(trace)
	if err != nil {
		return fmt.Errorf("marshal trace: %w", err)
	}
	if err := uploadObject(ctx, bucket, fmt.Sprintf("%s/tick-%d.json", sessionID, trace.Tick), traceJSON); err != nil {
		return err
	}

	png, err := visualize.RenderPNG(trace)
	if err != nil {
		return fmt.Errorf("render trace png: %w", err)
	}
	if err := uploadObject(ctx, bucket, fmt.Sprintf("%s/tick-%d.png", sessionID, trace.Tick), png); err != nil {
		return err
	}

	slog.Debug("archived tick snapshot", "session_id", sessionID, "tick", trace.Tick)
	return nil
}

func uploadObject(ctx context.Context, bucket *storage.BucketHandle, name string, data []byte) error {
	writer := bucket.Object(name).NewWriter(ctx)
	if _, err := bytes.NewReader(data).WriteTo(writer); err != nil {
		return fmt.Errorf("write object %s: %w", name, err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close object %s: %w", name, err)
	}
	return nil
}
