package main

// Service orchestrates yt-dlp invocations behind the worker pool. It keeps
// no per-request state; every call shells out to the tool again.
type Service struct {
	cfg    Config
	pool   *Pool
	runner CommandRunner
}

func NewService(cfg Config, pool *Pool, runner CommandRunner) *Service {
	return &Service{cfg: cfg, pool: pool, runner: runner}
}
