package main

import (
	"context"
	"sync"
	"testing"
)

// fakeRunner records every invocation and delegates behavior to run, so
// tests can simulate any yt-dlp outcome without spawning a process.
type fakeRunner struct {
	mu    sync.Mutex
	calls [][]string
	run   func(ctx context.Context, name string, args ...string) ([]byte, []byte, error)
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.mu.Lock()
	call := append([]string{name}, args...)
	f.calls = append(f.calls, call)
	f.mu.Unlock()
	return f.run(ctx, name, args...)
}

func (f *fakeRunner) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeRunner) lastCall() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return nil
	}
	return f.calls[len(f.calls)-1]
}

func isMetadataCall(args []string) bool {
	for _, a := range args {
		if a == "-J" {
			return true
		}
	}
	return false
}

// sampleInfoJSON has two qualifying mp4 formats (one exact size, one
// approximate), plus formats that must be filtered out: audio-only m4a, a
// webm, and an mp4 with no known size.
const sampleInfoJSON = `{
	"title": "Test Video",
	"thumbnail": "https://i.ytimg.com/vi/VALID_ID/default.jpg",
	"duration_string": "03:21",
	"formats": [
		{"format_id": "137", "ext": "mp4", "vcodec": "avc1.640028", "resolution": "1920x1080", "filesize": 10485760},
		{"format_id": "18", "ext": "mp4", "vcodec": "avc1.42001E", "resolution": "640x360", "filesize": null, "filesize_approx": 1572864},
		{"format_id": "140", "ext": "m4a", "vcodec": "none", "resolution": null, "filesize": 3145728},
		{"format_id": "248", "ext": "webm", "vcodec": "vp9", "resolution": "1920x1080", "filesize": 9437184},
		{"format_id": "22", "ext": "mp4", "vcodec": "avc1.64001F", "resolution": "1280x720"}
	]
}`

func newTestService(t *testing.T, cfg Config, fr *fakeRunner) *Service {
	t.Helper()
	pool := NewPool(2)
	t.Cleanup(pool.Close)
	return NewService(cfg, pool, fr)
}
