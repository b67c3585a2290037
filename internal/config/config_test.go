package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mwhitt/arc/internal/archive"
)

// isolate points XDG_CONFIG_HOME at a temp dir and moves the working
// directory away from any real .env file.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv(EnvDatabasePath, "")
	os.Unsetenv(EnvDatabasePath)
	t.Chdir(t.TempDir())
	ResetGlobalConfigCache()
	t.Cleanup(ResetGlobalConfigCache)
	return dir
}

func TestGlobalConfigPath(t *testing.T) {
	dir := isolate(t)
	want := filepath.Join(dir, "arc", "config.yml")
	if got := GlobalConfigPath(); got != want {
		t.Errorf("GlobalConfigPath = %q, want %q", got, want)
	}
}

func TestLoadGlobalConfig_Missing(t *testing.T) {
	isolate(t)
	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig: %v", err)
	}
	if cfg.DatabasePath != "" {
		t.Errorf("DatabasePath = %q, want empty", cfg.DatabasePath)
	}
}

func TestResolveDatabasePath_FlagWins(t *testing.T) {
	isolate(t)
	t.Setenv(EnvDatabasePath, "/env/db.json")

	got, err := ResolveDatabasePath("/flag/db.json")
	if err != nil {
		t.Fatalf("ResolveDatabasePath: %v", err)
	}
	if got != "/flag/db.json" {
		t.Errorf("path = %q, want flag value", got)
	}
}

func TestResolveDatabasePath_Env(t *testing.T) {
	isolate(t)
	t.Setenv(EnvDatabasePath, "/env/db.json")

	got, err := ResolveDatabasePath("")
	if err != nil {
		t.Fatalf("ResolveDatabasePath: %v", err)
	}
	if got != "/env/db.json" {
		t.Errorf("path = %q, want env value", got)
	}
}

func TestResolveDatabasePath_GlobalConfig(t *testing.T) {
	dir := isolate(t)

	cfgDir := filepath.Join(dir, "arc")
	if err := os.MkdirAll(cfgDir, 0755); err != nil {
		t.Fatalf("creating config dir: %v", err)
	}
	yml := "database_path: /configured/db.json\n"
	if err := os.WriteFile(filepath.Join(cfgDir, "config.yml"), []byte(yml), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	got, err := ResolveDatabasePath("")
	if err != nil {
		t.Fatalf("ResolveDatabasePath: %v", err)
	}
	if got != "/configured/db.json" {
		t.Errorf("path = %q, want configured value", got)
	}
}

func TestResolveDatabasePath_Default(t *testing.T) {
	isolate(t)

	got, err := ResolveDatabasePath("")
	if err != nil {
		t.Fatalf("ResolveDatabasePath: %v", err)
	}
	if got != archive.DefaultDatabaseFile {
		t.Errorf("path = %q, want %q", got, archive.DefaultDatabaseFile)
	}
}

func TestResolveDatabasePath_DotEnv(t *testing.T) {
	isolate(t)

	if err := os.WriteFile(".env", []byte(EnvDatabasePath+"=/dotenv/db.json\n"), 0644); err != nil {
		t.Fatalf("writing .env: %v", err)
	}

	got, err := ResolveDatabasePath("")
	if err != nil {
		t.Fatalf("ResolveDatabasePath: %v", err)
	}
	if got != "/dotenv/db.json" {
		t.Errorf("path = %q, want .env value", got)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	if got := ExpandPath("~/archives/db.json"); got != filepath.Join(home, "archives/db.json") {
		t.Errorf("ExpandPath = %q", got)
	}
	if got := ExpandPath("/absolute/db.json"); got != "/absolute/db.json" {
		t.Errorf("ExpandPath should pass through absolute paths, got %q", got)
	}
}
