package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"math"
	"os/exec"
	"strings"
	"time"
)

// Only formats in this container ever make it into the resolutions list.
const targetContainer = "mp4"

// ytdlpFormat mirrors one entry of yt-dlp's "formats" array. Size fields are
// pointers because yt-dlp reports null when it does not know.
type ytdlpFormat struct {
	FormatID       string   `json:"format_id"`
	Ext            string   `json:"ext"`
	VCodec         string   `json:"vcodec"`
	Resolution     string   `json:"resolution"`
	Filesize       *float64 `json:"filesize"`
	FilesizeApprox *float64 `json:"filesize_approx"`
}

// ytdlpInfo is the slice of yt-dlp -J output this server cares about.
type ytdlpInfo struct {
	Title          string        `json:"title"`
	Thumbnail      string        `json:"thumbnail"`
	DurationString string        `json:"duration_string"`
	Formats        []ytdlpFormat `json:"formats"`
}

// GetVideoInfo validates the URL and fetches shaped metadata through the
// pool so the serving goroutine never waits on yt-dlp directly.
func (s *Service) GetVideoInfo(ctx context.Context, rawURL string) (*VideoMetadata, error) {
	canonical, ok := validateURL(rawURL)
	if !ok {
		return nil, &NotFoundError{Message: "Invalid URL format."}
	}
	return runOnPool(ctx, s.pool, func() (*VideoMetadata, error) {
		return s.fetchMetadata(canonical)
	})
}

func (s *Service) fetchMetadata(videoURL string) (*VideoMetadata, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(s.cfg.MetadataTimeout))
	defer cancel()

	stdout, stderr, err := s.runner.Run(ctx, s.cfg.YTDLPPath, "-J", "--no-warnings", videoURL)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, &SetupError{Message: "Server is not configured correctly to process videos."}
		}
		log.Printf("yt-dlp metadata fetch failed for %s: %v | %s", videoURL, err, strings.TrimSpace(string(stderr)))
		if isDownloadFailure(stderr) {
			return nil, &NotFoundError{Message: "Video not found or access is denied."}
		}
		return nil, &ConversionError{Message: "An unexpected error occurred with the video library."}
	}

	var info ytdlpInfo
	if err := json.Unmarshal(stdout, &info); err != nil {
		log.Printf("yt-dlp metadata parse failed for %s: %v", videoURL, err)
		return nil, &ConversionError{Message: "An unexpected error occurred with the video library."}
	}
	return shapeMetadata(&info), nil
}

// isDownloadFailure distinguishes yt-dlp's download-style errors (video
// gone, private, region-locked) from everything else. The tool prefixes
// those with "ERROR:" on stderr.
func isDownloadFailure(stderr []byte) bool {
	return strings.Contains(string(stderr), "ERROR:")
}

// shapeMetadata keeps only mp4 formats that actually contain video and whose
// size is knowable, exact size preferred over approximate.
func shapeMetadata(info *ytdlpInfo) *VideoMetadata {
	resolutions := make([]Resolution, 0, len(info.Formats))
	for _, f := range info.Formats {
		if f.VCodec == "" || f.VCodec == "none" {
			continue
		}
		if f.Ext != targetContainer {
			continue
		}
		size := f.Filesize
		if size == nil {
			size = f.FilesizeApprox
		}
		if size == nil || *size == 0 {
			continue
		}
		label := f.Resolution
		if label == "" {
			label = "audio-only"
		}
		resolutions = append(resolutions, Resolution{
			ID:         f.FormatID,
			Resolution: label,
			Size:       math.Round(*size/1024/1024*100) / 100,
		})
	}
	return &VideoMetadata{
		Title:       info.Title,
		Thumbnail:   info.Thumbnail,
		Duration:    info.DurationString,
		Resolutions: resolutions,
	}
}
