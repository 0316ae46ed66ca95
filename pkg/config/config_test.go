package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hoststat.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Sampling.RateWindowD != time.Second {
		t.Errorf("Sampling.RateWindowD = %v, want 1s", cfg.Sampling.RateWindowD)
	}
	if cfg.Sampling.CPUWindowD != time.Second {
		t.Errorf("Sampling.CPUWindowD = %v, want 1s", cfg.Sampling.CPUWindowD)
	}
	if cfg.Sampling.DiskDevice != "sda" {
		t.Errorf("Sampling.DiskDevice = %q, want %q", cfg.Sampling.DiskDevice, "sda")
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "warn")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := writeTempConfig(t, `
[sampling]
rate_window = "2s"
disk_device = "nvme0n1"

[logging]
level = "debug"
format = "json"
`)

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}

	if cfg.Sampling.RateWindowD != 2*time.Second {
		t.Errorf("Sampling.RateWindowD = %v, want 2s", cfg.Sampling.RateWindowD)
	}
	if cfg.Sampling.CPUWindowD != time.Second {
		t.Errorf("Sampling.CPUWindowD = %v, want default 1s", cfg.Sampling.CPUWindowD)
	}
	if cfg.Sampling.DiskDevice != "nvme0n1" {
		t.Errorf("Sampling.DiskDevice = %q, want %q", cfg.Sampling.DiskDevice, "nvme0n1")
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want %q", cfg.Logging.Format, "json")
	}
}

func TestLoadFromFile_BadDuration(t *testing.T) {
	path := writeTempConfig(t, `
[sampling]
rate_window = "soon"
`)

	if _, err := LoadFromFile(path); err == nil {
		t.Error("expected error for unparsable rate_window")
	}
}

func TestLoadFromFile_BadTOML(t *testing.T) {
	path := writeTempConfig(t, `[sampling`)

	if _, err := LoadFromFile(path); err == nil {
		t.Error("expected error for malformed TOML")
	}
}

func TestLoadFromFile_NotExist(t *testing.T) {
	if _, err := LoadFromFile("/nonexistent/hoststat.toml"); err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "all disks",
			modify: func(c *Config) {
				c.Sampling.DiskDevice = "all"
			},
			wantErr: false,
		},
		{
			name: "zero rate window",
			modify: func(c *Config) {
				c.Sampling.RateWindowD = 0
			},
			wantErr: true,
		},
		{
			name: "negative cpu window",
			modify: func(c *Config) {
				c.Sampling.CPUWindowD = -time.Second
			},
			wantErr: true,
		},
		{
			name: "empty disk device",
			modify: func(c *Config) {
				c.Sampling.DiskDevice = ""
			},
			wantErr: true,
		},
		{
			name: "invalid logging level",
			modify: func(c *Config) {
				c.Logging.Level = "invalid"
			},
			wantErr: true,
		},
		{
			name: "invalid logging format",
			modify: func(c *Config) {
				c.Logging.Format = "xml"
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("HOSTSTAT_RATE_WINDOW", "500ms")
	t.Setenv("HOSTSTAT_DISK_DEVICE", "vda")
	t.Setenv("HOSTSTAT_LOG_LEVEL", "debug")

	cfg := Default()
	ApplyEnvOverrides(cfg)

	if cfg.Sampling.RateWindow != "500ms" {
		t.Errorf("Sampling.RateWindow = %q, want %q", cfg.Sampling.RateWindow, "500ms")
	}
	if cfg.Sampling.DiskDevice != "vda" {
		t.Errorf("Sampling.DiskDevice = %q, want %q", cfg.Sampling.DiskDevice, "vda")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoad_NoPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Sampling.RateWindowD != time.Second {
		t.Errorf("Sampling.RateWindowD = %v, want 1s", cfg.Sampling.RateWindowD)
	}
}

func TestLoad_EnvDurationParsed(t *testing.T) {
	t.Setenv("HOSTSTAT_RATE_WINDOW", "250ms")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Sampling.RateWindowD != 250*time.Millisecond {
		t.Errorf("Sampling.RateWindowD = %v, want 250ms", cfg.Sampling.RateWindowD)
	}
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Setenv("HOSTSTAT_LOG_FORMAT", "xml")

	if _, err := Load(""); err == nil {
		t.Error("expected validation error for invalid log format")
	}
}

func TestExpandPath(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got, err := expandPath("~/hoststat.toml")
	if err != nil {
		t.Fatalf("expandPath: %v", err)
	}
	if want := filepath.Join(homeDir, "hoststat.toml"); got != want {
		t.Errorf("expandPath() = %q, want %q", got, want)
	}

	got, _ = expandPath("/etc/hoststat.toml")
	if got != "/etc/hoststat.toml" {
		t.Errorf("expandPath() = %q, want unchanged", got)
	}
}
