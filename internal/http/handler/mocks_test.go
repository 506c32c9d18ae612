package handler_test

import (
	"context"

	"voxel.app/studio/internal/chat"
	"voxel.app/studio/internal/video"
)

type mockCompleter struct {
	completeFn func(ctx context.Context, transcript chat.Transcript, opts chat.Options) (string, error)
}

func (m *mockCompleter) Complete(ctx context.Context, transcript chat.Transcript, opts chat.Options) (string, error) {
	if m.completeFn != nil {
		return m.completeFn(ctx, transcript, opts)
	}
	return "", nil
}

type mockSubmitter struct {
	submitFn func(ctx context.Context, req video.GenerationRequest) (string, error)
}

func (m *mockSubmitter) Submit(ctx context.Context, req video.GenerationRequest) (string, error) {
	if m.submitFn != nil {
		return m.submitFn(ctx, req)
	}
	return "", nil
}

type mockWatcher struct {
	watchFn func(jobID, traceID string)
}

func (m *mockWatcher) Watch(jobID, traceID string) {
	if m.watchFn != nil {
		m.watchFn(jobID, traceID)
	}
}
