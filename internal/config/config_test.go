package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{EnvAddr, EnvRPCSocket, EnvDBDriver, EnvDBDSN, EnvDebug, EnvEvidenceBucket} {
		t.Setenv(key, "")
	}
	cfg := FromEnv()
	if cfg != Default() {
		t.Fatalf("FromEnv() = %+v, want defaults", cfg)
	}
	if cfg.Evidence.Enabled() {
		t.Fatalf("evidence storage must be off without a bucket")
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv(EnvAddr, ":9090")
	t.Setenv(EnvDBDriver, "postgres")
	t.Setenv(EnvDBDSN, "postgres://localhost/crime")
	t.Setenv(EnvDebug, "true")
	t.Setenv(EnvEvidenceBucket, "evidence")
	t.Setenv(EnvEvidencePath, "1")

	cfg := FromEnv()
	if cfg.Addr != ":9090" || cfg.DBDriver != "postgres" || cfg.DBDSN != "postgres://localhost/crime" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if !cfg.Debug || !cfg.Evidence.Enabled() || !cfg.Evidence.PathStyle {
		t.Fatalf("flags not applied: %+v", cfg)
	}
}

func TestMalformedBoolFallsBack(t *testing.T) {
	t.Setenv(EnvDebug, "perhaps")
	if GetEnvBool(EnvDebug, false) {
		t.Fatalf("malformed bool should use fallback")
	}
}

func TestLoadEnvKeepsExistingValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "CRIMELINKER_ADDR=:7070\nCRIMELINKER_RPC_SOCKET=/tmp/from-file.sock\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}
	t.Setenv(EnvAddr, ":6060")
	t.Setenv(EnvRPCSocket, "")
	os.Unsetenv(EnvRPCSocket)

	LoadEnv(path)
	t.Cleanup(func() { os.Unsetenv(EnvRPCSocket) })

	if got := GetEnvString(EnvAddr, ""); got != ":6060" {
		t.Fatalf("existing value overwritten: %q", got)
	}
	if got := GetEnvString(EnvRPCSocket, ""); got != "/tmp/from-file.sock" {
		t.Fatalf("value from file missing: %q", got)
	}
}

func TestLoadEnvMissingFile(t *testing.T) {
	LoadEnv(filepath.Join(t.TempDir(), "absent.env"))
}
