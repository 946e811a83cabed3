package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dreamw/travel-quote/internal/domain"
)

func TestParse_DefaultsFillGaps(t *testing.T) {
	cfg, err := Parse([]byte("endpoint: https://formspree.io/f/abcd1234\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Storage != StorageFile {
		t.Errorf("storage = %q", cfg.Storage)
	}
	if cfg.MaxSubmissions != domain.DefaultMaxSubmissions || cfg.Window != domain.DefaultWindow {
		t.Errorf("limits = %d / %s", cfg.MaxSubmissions, cfg.Window)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("timeout = %s", cfg.Timeout)
	}
	if cfg.HistoryFile == "" {
		t.Error("want default history file")
	}
}

func TestParse_FullFile(t *testing.T) {
	data := `
endpoint: https://formspree.io/f/abcd1234
timeout: 10s
storage: Redis
redis_addr: localhost:6379
redis_db: 2
redis_prefix: kiosk
max_submissions: 5
window: 30m
`
	cfg, err := Parse([]byte(data))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Storage != StorageRedis || cfg.RedisAddr != "localhost:6379" || cfg.RedisDB != 2 {
		t.Errorf("redis settings = %+v", cfg)
	}
	if cfg.MaxSubmissions != 5 || cfg.Window != 30*time.Minute || cfg.Timeout != 10*time.Second {
		t.Errorf("limits = %+v", cfg)
	}
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]string{
		"missing endpoint": "storage: file\n",
		"bad scheme":       "endpoint: ftp://example.com\n",
		"bad storage":      "endpoint: https://example.com\nstorage: s3\n",
		"redis no addr":    "endpoint: https://example.com\nstorage: redis\n",
		"zero max":         "endpoint: https://example.com\nmax_submissions: -1\n",
		"bad yaml":         "endpoint: [\n",
	}
	for name, data := range cases {
		if _, err := Parse([]byte(data)); err == nil {
			t.Errorf("%s: want error", name)
		}
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)
	if err := os.WriteFile(path, []byte("endpoint: https://example.com/f/1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Endpoint != "https://example.com/f/1" {
		t.Errorf("endpoint = %q", cfg.Endpoint)
	}

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "read config") {
		t.Errorf("want read error, got %v", err)
	}
}
