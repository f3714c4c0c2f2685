package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestMergeConfig(t *testing.T) {
	t.Run("local values take precedence", func(t *testing.T) {
		global := &Config{
			DefaultAccount: "global-acct",
			DefaultFormat:  "table",
			TimeoutSeconds: 30,
		}
		local := &Config{
			DefaultAccount: "local-acct",
			TimeoutSeconds: 10,
		}

		got := mergeConfig(global, local)
		if got.DefaultAccount != "local-acct" {
			t.Errorf("DefaultAccount = %q, want local-acct", got.DefaultAccount)
		}
		if got.TimeoutSeconds != 10 {
			t.Errorf("TimeoutSeconds = %d, want 10", got.TimeoutSeconds)
		}
		// Unset local value preserves the global one.
		if got.DefaultFormat != "table" {
			t.Errorf("DefaultFormat = %q, want table", got.DefaultFormat)
		}
	})

	t.Run("empty local preserves global", func(t *testing.T) {
		global := &Config{DefaultAccount: "acct", DefaultFormat: "json", TimeoutSeconds: 15}
		got := mergeConfig(global, &Config{})
		if *got != *global {
			t.Errorf("merge with empty local changed config: %+v", got)
		}
	})
}

func TestLoadAppliesDefaults(t *testing.T) {
	// Run from an empty directory so no .mention.yaml is picked up.
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DefaultFormat != "table" {
		t.Errorf("DefaultFormat = %q, want table", cfg.DefaultFormat)
	}
	if cfg.TimeoutSeconds != DefaultTimeoutSeconds {
		t.Errorf("TimeoutSeconds = %d, want %d", cfg.TimeoutSeconds, DefaultTimeoutSeconds)
	}
}

func TestLoadMergesLocalConfig(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	local := "default_account: team-acct\ntimeout_seconds: 5\n"
	if err := os.WriteFile(filepath.Join(dir, LocalConfigPath()), []byte(local), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DefaultAccount != "team-acct" {
		t.Errorf("DefaultAccount = %q, want team-acct", cfg.DefaultAccount)
	}
	if cfg.TimeoutSeconds != 5 {
		t.Errorf("TimeoutSeconds = %d, want 5", cfg.TimeoutSeconds)
	}
}

func TestAccessTokenComesFromEnvironment(t *testing.T) {
	t.Setenv(EnvAccessToken, "env-token")
	cfg := &Config{}
	if got := cfg.AccessToken(); got != "env-token" {
		t.Errorf("AccessToken = %q, want env-token", got)
	}
}

func TestAccountIDResolution(t *testing.T) {
	cfg := &Config{DefaultAccount: "config-acct"}

	t.Run("flag wins", func(t *testing.T) {
		t.Setenv(EnvAccountID, "env-acct")
		if got := cfg.AccountID("flag-acct"); got != "flag-acct" {
			t.Errorf("AccountID = %q, want flag-acct", got)
		}
	})

	t.Run("environment beats config", func(t *testing.T) {
		t.Setenv(EnvAccountID, "env-acct")
		if got := cfg.AccountID(""); got != "env-acct" {
			t.Errorf("AccountID = %q, want env-acct", got)
		}
	})

	t.Run("config default as fallback", func(t *testing.T) {
		t.Setenv(EnvAccountID, "")
		if got := cfg.AccountID(""); got != "config-acct" {
			t.Errorf("AccountID = %q, want config-acct", got)
		}
	})
}

func TestTimeout(t *testing.T) {
	if got := (&Config{TimeoutSeconds: 5}).Timeout(); got != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", got)
	}
	if got := (&Config{}).Timeout(); got != DefaultTimeoutSeconds*time.Second {
		t.Errorf("Timeout = %v, want default", got)
	}
}
