package main

import (
	"context"
	"errors"
	"log"
	"os/exec"
	"strings"
	"time"
)

// GetMP3 validates the URL and produces the complete MP3 payload through
// the pool. The whole file is buffered in memory before returning; chunked
// streaming straight from the subprocess stdout would avoid that and is a
// possible future optimization.
func (s *Service) GetMP3(ctx context.Context, rawURL string) ([]byte, error) {
	canonical, ok := validateURL(rawURL)
	if !ok {
		return nil, &NotFoundError{Message: "Invalid URL format."}
	}
	return runOnPool(ctx, s.pool, func() ([]byte, error) {
		return s.convertMP3(canonical)
	})
}

func (s *Service) convertMP3(videoURL string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(s.cfg.TranscodeTimeout))
	defer cancel()

	args := []string{
		"--ignore-config",
		"--limit-rate", s.cfg.DownloadRateLimit,
		"-f", "bestaudio",
		"--extract-audio",
		"--audio-format", "mp3",
		"--audio-quality", s.cfg.AudioQuality,
		videoURL,
		"-o", "-",
	}

	start := time.Now()
	stdout, stderr, err := s.runner.Run(ctx, s.cfg.YTDLPPath, args...)
	transcodeDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		switch {
		case errors.Is(err, exec.ErrNotFound):
			return nil, &SetupError{Message: "Server is not configured correctly to process videos."}
		case ctx.Err() == context.DeadlineExceeded:
			// CommandContext has already killed the process and Run reaped it.
			log.Printf("yt-dlp conversion for %s hit the %s timeout and was killed", videoURL, time.Duration(s.cfg.TranscodeTimeout))
			return nil, &ConversionError{Message: "The video conversion process took too long and was terminated."}
		default:
			log.Printf("yt-dlp conversion failed for %s: %v | %s", videoURL, err, strings.TrimSpace(string(stderr)))
			return nil, &ConversionError{Message: "An unexpected error occurred during video conversion."}
		}
	}
	return stdout, nil
}
