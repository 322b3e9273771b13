package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML configs can use "300s" style values.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Config holds every server tunable. The zero config is not usable; start
// from DefaultConfig and override via a YAML file passed with -config.
type Config struct {
	ListenAddr string `yaml:"listen_addr"`
	StaticDir  string `yaml:"static_dir"`

	// Worker Configuration
	WorkerPoolSize int `yaml:"worker_pool_size"`

	// External tool
	YTDLPPath string `yaml:"ytdlp_path"`

	// Timeouts
	MetadataTimeout  Duration `yaml:"metadata_timeout"`
	TranscodeTimeout Duration `yaml:"transcode_timeout"`
	ShutdownGrace    Duration `yaml:"shutdown_grace"`

	// Transcode parameters passed straight to yt-dlp
	DownloadRateLimit string `yaml:"download_rate_limit"`
	AudioQuality      string `yaml:"audio_quality"`
}

func DefaultConfig() Config {
	return Config{
		ListenAddr:        ":8080",
		StaticDir:         "static",
		WorkerPoolSize:    20,
		YTDLPPath:         "yt-dlp",
		MetadataTimeout:   Duration(45 * time.Second),
		TranscodeTimeout:  Duration(300 * time.Second),
		ShutdownGrace:     Duration(10 * time.Second),
		DownloadRateLimit: "5M",
		AudioQuality:      "192K",
	}
}

// LoadConfig reads a YAML config file on top of the defaults. An empty path
// returns the defaults unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}
