package main

import (
	"context"
	"errors"
	"os/exec"
	"testing"
)

func TestShapeMetadataFiltering(t *testing.T) {
	size := func(v float64) *float64 { return &v }
	info := &ytdlpInfo{
		Title:          "Test Video",
		Thumbnail:      "https://i.ytimg.com/vi/x/default.jpg",
		DurationString: "03:21",
		Formats: []ytdlpFormat{
			{FormatID: "137", Ext: "mp4", VCodec: "avc1.640028", Resolution: "1920x1080", Filesize: size(10485760)},
			{FormatID: "18", Ext: "mp4", VCodec: "avc1.42001E", Resolution: "640x360", FilesizeApprox: size(1572864)},
			{FormatID: "140", Ext: "m4a", VCodec: "none", Filesize: size(3145728)},
			{FormatID: "248", Ext: "webm", VCodec: "vp9", Resolution: "1920x1080", Filesize: size(9437184)},
			{FormatID: "22", Ext: "mp4", VCodec: "avc1.64001F", Resolution: "1280x720"},
			{FormatID: "599", Ext: "mp4", VCodec: "avc1.4D401E", Filesize: size(1048576)},
		},
	}

	meta := shapeMetadata(info)

	if meta.Title != "Test Video" || meta.Duration != "03:21" {
		t.Fatalf("unexpected shaped metadata: %+v", meta)
	}
	if len(meta.Resolutions) != 3 {
		t.Fatalf("resolutions length = %d, want 3: %+v", len(meta.Resolutions), meta.Resolutions)
	}
	if r := meta.Resolutions[0]; r.ID != "137" || r.Resolution != "1920x1080" || r.Size != 10.0 {
		t.Fatalf("unexpected first resolution: %+v", r)
	}
	// Approximate size is accepted when the exact one is unknown.
	if r := meta.Resolutions[1]; r.ID != "18" || r.Size != 1.5 {
		t.Fatalf("unexpected second resolution: %+v", r)
	}
	// A qualifying format with no resolution string is labeled audio-only.
	if r := meta.Resolutions[2]; r.Resolution != "audio-only" || r.Size != 1.0 {
		t.Fatalf("unexpected third resolution: %+v", r)
	}
}

func TestShapeMetadataRounding(t *testing.T) {
	size := func(v float64) *float64 { return &v }
	info := &ytdlpInfo{Formats: []ytdlpFormat{
		{FormatID: "1", Ext: "mp4", VCodec: "avc1", Resolution: "640x360", Filesize: size(1234567)},
	}}
	meta := shapeMetadata(info)
	// 1234567 / 1048576 = 1.17737..., rounded to 2 decimals.
	if got := meta.Resolutions[0].Size; got != 1.18 {
		t.Fatalf("Size = %v, want 1.18", got)
	}
}

func TestGetVideoInfoSuccess(t *testing.T) {
	fr := &fakeRunner{run: func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		return []byte(sampleInfoJSON), nil, nil
	}}
	svc := newTestService(t, DefaultConfig(), fr)

	meta, err := svc.GetVideoInfo(context.Background(), "https://www.youtube.com/watch?v=VALID_ID")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.Title != "Test Video" || meta.Thumbnail == "" || meta.Duration != "03:21" {
		t.Fatalf("unexpected metadata: %+v", meta)
	}
	if len(meta.Resolutions) != 2 {
		t.Fatalf("resolutions length = %d, want 2", len(meta.Resolutions))
	}
}

func TestGetVideoInfoPassesCanonicalURLToTool(t *testing.T) {
	fr := &fakeRunner{run: func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		return []byte(sampleInfoJSON), nil, nil
	}}
	svc := newTestService(t, DefaultConfig(), fr)

	if _, err := svc.GetVideoInfo(context.Background(), "https://youtube.com/watch?v=ID&list=PLxyz"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	call := fr.lastCall()
	got := call[len(call)-1]
	if want := "https://youtube.com/watch?v=ID"; got != want {
		t.Fatalf("tool received %q, want %q", got, want)
	}
}

func TestGetVideoInfoRejectsInvalidURLWithoutSpawning(t *testing.T) {
	fr := &fakeRunner{run: func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		t.Fatal("runner must not be invoked for an invalid URL")
		return nil, nil, nil
	}}
	svc := newTestService(t, DefaultConfig(), fr)

	_, err := svc.GetVideoInfo(context.Background(), "https://vimeo.com/12345")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("got %v, want NotFoundError", err)
	}
	if nf.Message != "Invalid URL format." {
		t.Fatalf("message = %q, want %q", nf.Message, "Invalid URL format.")
	}
	if fr.callCount() != 0 {
		t.Fatalf("runner was invoked %d times", fr.callCount())
	}
}

func TestGetVideoInfoMapsDownloadFailureToNotFound(t *testing.T) {
	fr := &fakeRunner{run: func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		return nil, []byte("ERROR: [youtube] VALID_ID: Video unavailable"), errors.New("exit status 1")
	}}
	svc := newTestService(t, DefaultConfig(), fr)

	_, err := svc.GetVideoInfo(context.Background(), "https://youtu.be/VALID_ID")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("got %v, want NotFoundError", err)
	}
	if nf.Message != "Video not found or access is denied." {
		t.Fatalf("message = %q", nf.Message)
	}
}

func TestGetVideoInfoMapsOtherToolFailureToConversion(t *testing.T) {
	fr := &fakeRunner{run: func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		return nil, []byte("Killed"), errors.New("signal: killed")
	}}
	svc := newTestService(t, DefaultConfig(), fr)

	_, err := svc.GetVideoInfo(context.Background(), "https://youtu.be/VALID_ID")
	var conv *ConversionError
	if !errors.As(err, &conv) {
		t.Fatalf("got %v, want ConversionError", err)
	}
}

func TestGetVideoInfoMapsUnparsableOutputToConversion(t *testing.T) {
	fr := &fakeRunner{run: func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		return []byte("not json at all"), nil, nil
	}}
	svc := newTestService(t, DefaultConfig(), fr)

	_, err := svc.GetVideoInfo(context.Background(), "https://youtu.be/VALID_ID")
	var conv *ConversionError
	if !errors.As(err, &conv) {
		t.Fatalf("got %v, want ConversionError", err)
	}
}

func TestGetVideoInfoMapsMissingToolToSetup(t *testing.T) {
	fr := &fakeRunner{run: func(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
		return nil, nil, &exec.Error{Name: name, Err: exec.ErrNotFound}
	}}
	svc := newTestService(t, DefaultConfig(), fr)

	_, err := svc.GetVideoInfo(context.Background(), "https://youtu.be/VALID_ID")
	var setup *SetupError
	if !errors.As(err, &setup) {
		t.Fatalf("got %v, want SetupError", err)
	}
}
