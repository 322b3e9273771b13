package main

import (
	"bytes"
	"context"
	"os/exec"
)

// CommandRunner abstracts subprocess execution so tests can stand in for
// yt-dlp without spawning anything.
type CommandRunner interface {
	// Run executes name with args and returns the fully captured stdout and
	// stderr. The process is killed when ctx is cancelled or its deadline
	// passes; Run does not return until the process has been reaped.
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

// ExecRunner is the production CommandRunner backed by os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// DependencyReport says whether the external tool is resolvable on PATH.
type DependencyReport struct {
	Found bool
	Path  string
}

func dependencyStatus(bin string) DependencyReport {
	path, err := exec.LookPath(bin)
	if err != nil {
		return DependencyReport{}
	}
	return DependencyReport{Found: true, Path: path}
}
