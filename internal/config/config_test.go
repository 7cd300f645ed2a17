package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"veritas/internal/config"
)

const baseConfig = `
service = "veritas"
shutdown_timeout = "30s"
version = "0.1.0"

[server]
host = "0.0.0.0"
port = 8080
read_timeout = "1m"
write_timeout = "15m"
shutdown_timeout = "30s"

[storage]
backend = "local"
directory = "uploads"

[api]
base_path = "/api"
max_upload_size = "50MB"

[api.cors]
enabled = true
origins = ["http://localhost:3000"]

[analysis]
provider = "openai"
model = "gpt-4.1-mini"
token = "sk-test"
timeout = "2m"
temperature = 0.2

[analysis.search]
api_key = "serper-test"
max_results = 5

[media]
max_frames = 4
max_image_dimension = 1280
`

const overlayConfig = `
[server]
port = 9090

[analysis]
model = "gpt-4.1"
`

// minimalConfig exercises defaulting: every omitted field must finalize
// to a usable value.
const minimalConfig = `
[server]
port = 8080
`

func writeConfig(t *testing.T, dir, filename, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", filename, err)
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(orig) })
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Service != "veritas" {
		t.Errorf("service: got %s, want veritas", cfg.Service)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("server port: got %d, want 8080", cfg.Server.Port)
	}
	if cfg.Storage.Backend != "local" {
		t.Errorf("storage backend: got %s, want local", cfg.Storage.Backend)
	}
	if cfg.API.BasePath != "/api" {
		t.Errorf("api base_path: got %s, want /api", cfg.API.BasePath)
	}
	if cfg.Analysis.Provider != "openai" {
		t.Errorf("analysis provider: got %s, want openai", cfg.Analysis.Provider)
	}
	if cfg.Analysis.Model != "gpt-4.1-mini" {
		t.Errorf("analysis model: got %s, want gpt-4.1-mini", cfg.Analysis.Model)
	}
	if cfg.Analysis.Search.APIKey != "serper-test" {
		t.Errorf("search api_key: got %s, want serper-test", cfg.Analysis.Search.APIKey)
	}
	if cfg.Media.MaxFrames != 4 {
		t.Errorf("media max_frames: got %d, want 4", cfg.Media.MaxFrames)
	}
}

func TestLoadWithOverlay(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	writeConfig(t, dir, "config.staging.toml", overlayConfig)
	chdir(t, dir)

	t.Setenv("VERITAS_ENV", "staging")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("server port: got %d, want 9090 (from overlay)", cfg.Server.Port)
	}
	if cfg.Analysis.Model != "gpt-4.1" {
		t.Errorf("analysis model: got %s, want gpt-4.1 (from overlay)", cfg.Analysis.Model)
	}
	if cfg.Server.ReadTimeout != "1m" {
		t.Errorf("server read_timeout: got %s, want 1m (from base)", cfg.Server.ReadTimeout)
	}
	if cfg.Analysis.Provider != "openai" {
		t.Errorf("analysis provider: got %s, want openai (from base)", cfg.Analysis.Provider)
	}
}

func TestLoadEnvVarOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	chdir(t, dir)

	t.Setenv("VERITAS_VERSION", "2.0.0")
	t.Setenv("VERITAS_SERVER_PORT", "3000")
	t.Setenv("VERITAS_MODEL_NAME", "gpt-5-mini")
	t.Setenv("VERITAS_MEDIA_MAX_FRAMES", "6")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Version != "2.0.0" {
		t.Errorf("version: got %s, want 2.0.0", cfg.Version)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("server port: got %d, want 3000", cfg.Server.Port)
	}
	if cfg.Analysis.Model != "gpt-5-mini" {
		t.Errorf("analysis model: got %s, want gpt-5-mini", cfg.Analysis.Model)
	}
	if cfg.Media.MaxFrames != 6 {
		t.Errorf("media max_frames: got %d, want 6", cfg.Media.MaxFrames)
	}
}

func TestLoadNoConfigFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load without config.toml failed: %v", err)
	}

	if cfg.Service != "veritas" {
		t.Errorf("service default: got %s, want veritas", cfg.Service)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("server port default: got %d, want 8080", cfg.Server.Port)
	}
	if cfg.Storage.Backend != "local" {
		t.Errorf("storage backend default: got %s, want local", cfg.Storage.Backend)
	}
	if cfg.Storage.Directory != "uploads" {
		t.Errorf("storage directory default: got %s, want uploads", cfg.Storage.Directory)
	}
	if cfg.Analysis.Provider != "openai" {
		t.Errorf("analysis provider default: got %s, want openai", cfg.Analysis.Provider)
	}
	if cfg.Analysis.Model != "gpt-4.1-mini" {
		t.Errorf("analysis model default: got %s, want gpt-4.1-mini", cfg.Analysis.Model)
	}
	if cfg.Analysis.Temperature != 0.2 {
		t.Errorf("analysis temperature default: got %v, want 0.2", cfg.Analysis.Temperature)
	}
	if cfg.Analysis.Search.MaxResults != 5 {
		t.Errorf("search max_results default: got %d, want 5", cfg.Analysis.Search.MaxResults)
	}
	if cfg.Media.MaxFrames != 4 {
		t.Errorf("media max_frames default: got %d, want 4", cfg.Media.MaxFrames)
	}
	if cfg.Media.MaxImageDimension != 1280 {
		t.Errorf("media max_image_dimension default: got %d, want 1280", cfg.Media.MaxImageDimension)
	}
	if cfg.Media.FFmpegPath != "ffmpeg" {
		t.Errorf("media ffmpeg_path default: got %s, want ffmpeg", cfg.Media.FFmpegPath)
	}

	origins := cfg.API.CORS.Origins
	if len(origins) != 1 || origins[0] != "http://localhost:3000" {
		t.Errorf("cors origins default: got %v, want [http://localhost:3000]", origins)
	}
	if cfg.API.Docs.Title != "Veritas API" {
		t.Errorf("docs title default: got %s, want Veritas API", cfg.API.Docs.Title)
	}
}

func TestLoadInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", `invalid = `)
	chdir(t, dir)

	_, err := config.Load()
	if err == nil {
		t.Fatal("expected error for invalid TOML")
	}
}

func TestEnvDefault(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Env() != "local" {
		t.Errorf("env: got %s, want local", cfg.Env())
	}
}

func TestEnvFromEnvVar(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	chdir(t, dir)

	t.Setenv("VERITAS_ENV", "production")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Env() != "production" {
		t.Errorf("env: got %s, want production", cfg.Env())
	}
}

func TestShutdownTimeoutDuration(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if d := cfg.ShutdownTimeoutDuration(); d != 30*time.Second {
		t.Errorf("shutdown timeout: got %v, want 30s", d)
	}
}

func TestServerAddr(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if addr := cfg.Server.Addr(); addr != "0.0.0.0:8080" {
		t.Errorf("addr: got %s, want 0.0.0.0:8080", addr)
	}
}

func TestMaxUploadSizeBytes(t *testing.T) {
	tests := []struct {
		name string
		size string
		want int64
	}{
		{"valid 50MB", "50MB", 50 * 1024 * 1024},
		{"valid 10MB", "10MB", 10 * 1024 * 1024},
		{"valid 1GB", "1GB", 1024 * 1024 * 1024},
		{"invalid falls back to 50MB", "bad", 50 * 1024 * 1024},
		{"empty falls back to 50MB", "", 50 * 1024 * 1024},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.APIConfig{MaxUploadSize: tt.size}
			got := cfg.MaxUploadSizeBytes()
			if got != tt.want {
				t.Errorf("MaxUploadSizeBytes() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMaxUploadSizeEnvOverride(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	chdir(t, dir)

	t.Setenv("VERITAS_API_MAX_UPLOAD_SIZE", "100MB")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	want := int64(100 * 1024 * 1024)
	if got := cfg.API.MaxUploadSizeBytes(); got != want {
		t.Errorf("MaxUploadSizeBytes() = %d, want %d", got, want)
	}
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name    string
		config  string
		wantErr string
	}{
		{
			name: "invalid port",
			config: `
[server]
port = 99999
`,
			wantErr: "invalid port",
		},
		{
			name: "invalid read_timeout",
			config: `
[server]
read_timeout = "bad"
`,
			wantErr: "invalid read_timeout",
		},
		{
			name: "invalid analysis timeout",
			config: `
[analysis]
timeout = "soon"
`,
			wantErr: "invalid timeout",
		},
		{
			name: "temperature out of range",
			config: `
[analysis]
temperature = 3.5
`,
			wantErr: "invalid temperature",
		},
		{
			name: "max_frames out of range",
			config: `
[media]
max_frames = 12
`,
			wantErr: "invalid max_frames",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, "config.toml", tt.config)
			chdir(t, dir)

			_, err := config.Load()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestSearchEnabled(t *testing.T) {
	disabled := &config.SearchConfig{}
	if disabled.Enabled() {
		t.Error("search without api key should be disabled")
	}

	enabled := &config.SearchConfig{APIKey: "serper-test"}
	if !enabled.Enabled() {
		t.Error("search with api key should be enabled")
	}
}

func TestSearchEnabledFromEnv(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", minimalConfig)
	chdir(t, dir)

	t.Setenv("VERITAS_SEARCH_API_KEY", "serper-env")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if !cfg.Analysis.Search.Enabled() {
		t.Error("search should be enabled when api key comes from env")
	}
	if cfg.Analysis.Search.APIKey != "serper-env" {
		t.Errorf("search api_key: got %s, want serper-env", cfg.Analysis.Search.APIKey)
	}
}

func TestAnalysisEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	chdir(t, dir)

	t.Setenv("VERITAS_MODEL_PROVIDER", "gemini")
	t.Setenv("VERITAS_MODEL_NAME", "gemini-2.0-flash")
	t.Setenv("VERITAS_MODEL_TOKEN", "env-token")
	t.Setenv("VERITAS_MODEL_TEMPERATURE", "0.7")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Analysis.Provider != "gemini" {
		t.Errorf("provider: got %s, want gemini", cfg.Analysis.Provider)
	}
	if cfg.Analysis.Model != "gemini-2.0-flash" {
		t.Errorf("model: got %s, want gemini-2.0-flash", cfg.Analysis.Model)
	}
	if cfg.Analysis.Token != "env-token" {
		t.Errorf("token: got %s, want env-token", cfg.Analysis.Token)
	}
	if cfg.Analysis.Temperature != 0.7 {
		t.Errorf("temperature: got %v, want 0.7", cfg.Analysis.Temperature)
	}
}

func TestAnalysisOverlay(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", baseConfig)
	writeConfig(t, dir, "config.staging.toml", `
[analysis]
provider = "gemini"
model = "gemini-2.0-flash"

[analysis.search]
api_key = "staging-key"
`)
	chdir(t, dir)

	t.Setenv("VERITAS_ENV", "staging")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Analysis.Provider != "gemini" {
		t.Errorf("provider: got %s, want gemini", cfg.Analysis.Provider)
	}
	if cfg.Analysis.Search.APIKey != "staging-key" {
		t.Errorf("search api_key: got %s, want staging-key", cfg.Analysis.Search.APIKey)
	}
	// Base config values should be preserved for non-overlay fields.
	if cfg.Server.Port != 8080 {
		t.Errorf("server port: got %d, want 8080 (from base)", cfg.Server.Port)
	}
	if cfg.Analysis.Token != "sk-test" {
		t.Errorf("analysis token: got %s, want sk-test (from base)", cfg.Analysis.Token)
	}
}

func TestModelTokenNotRequired(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", minimalConfig)
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Analysis.Token != "" {
		t.Errorf("token: got %s, want empty", cfg.Analysis.Token)
	}
}

func TestTimeoutDurations(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.toml", minimalConfig)
	chdir(t, dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if d := cfg.Analysis.TimeoutDuration(); d != 2*time.Minute {
		t.Errorf("analysis timeout: got %v, want 2m", d)
	}
	if d := cfg.Analysis.Search.TimeoutDuration(); d != 5*time.Second {
		t.Errorf("search timeout: got %v, want 5s", d)
	}
}
