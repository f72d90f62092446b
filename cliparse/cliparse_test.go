// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"testing"
	"time"
)

func TestParseFlags_EnvVars(t *testing.T) {
	// Set env vars
	os.Setenv("PORT", "9000")
	os.Setenv("DATABASE_URL", "postgres://test")
	os.Setenv("DATABASE_TYPE", "postgres")
	os.Setenv("IP_HASH_SALT", "test-salt")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "postgres" {
		t.Errorf("expected postgres, got %s", cfg.DatabaseType)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	os.Setenv("PORT", "9000")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-ip-salt", "s1"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
}

func TestParseFlags_SQLiteDefaults(t *testing.T) {
	os.Clearenv()
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{"-ip-salt", "s1"})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected sqlite default, got %s", cfg.DatabaseType)
	}
	if cfg.DatabaseURL != "versus.db" {
		t.Errorf("expected versus.db default, got %s", cfg.DatabaseURL)
	}
	if cfg.Port != 3318 {
		t.Errorf("expected default port 3318, got %d", cfg.Port)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	defer os.Clearenv()

	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"postgres without url", nil, []string{"-t", "postgres", "-ip-salt", "s"}},
		{"unknown database type", nil, []string{"-t", "mysql", "-ip-salt", "s"}},
		{"missing salt", nil, []string{}},
		{"bad port env", map[string]string{"PORT": "abc", "IP_HASH_SALT": "s"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			for k, v := range tt.env {
				os.Setenv(k, v)
			}
			if _, err := ParseFlags(tt.args); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestParseClientFlags_Defaults(t *testing.T) {
	os.Clearenv()
	defer os.Clearenv()

	cfg, err := ParseClientFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.BackendURL != "http://localhost:3318" {
		t.Errorf("unexpected backend url %s", cfg.BackendURL)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Errorf("expected 10s timeout, got %v", cfg.RequestTimeout)
	}
	if cfg.MinQuestionID != 1 || cfg.MaxQuestionID != 10 {
		t.Errorf("expected range [1, 10], got [%d, %d]", cfg.MinQuestionID, cfg.MaxQuestionID)
	}
	if cfg.LogFile != "versus.log" {
		t.Errorf("unexpected log file %s", cfg.LogFile)
	}
}

func TestParseClientFlags_EnvAndFlags(t *testing.T) {
	os.Clearenv()
	os.Setenv("BACKEND_URL", "http://env:1")
	os.Setenv("REQUEST_TIMEOUT", "2s")
	os.Setenv("MAX_QUESTION_ID", "20")
	defer os.Clearenv()

	cfg, err := ParseClientFlags([]string{"-u", "http://flag:2", "-min-id", "5"})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.BackendURL != "http://flag:2" {
		t.Errorf("flag should override env, got %s", cfg.BackendURL)
	}
	if cfg.RequestTimeout != 2*time.Second {
		t.Errorf("expected 2s, got %v", cfg.RequestTimeout)
	}
	if cfg.MinQuestionID != 5 || cfg.MaxQuestionID != 20 {
		t.Errorf("expected range [5, 20], got [%d, %d]", cfg.MinQuestionID, cfg.MaxQuestionID)
	}
}

func TestParseClientFlags_BadRange(t *testing.T) {
	os.Clearenv()
	defer os.Clearenv()

	if _, err := ParseClientFlags([]string{"-min-id", "8", "-max-id", "3"}); err == nil {
		t.Error("expected error for inverted range")
	}
	if _, err := ParseClientFlags([]string{"-min-id", "-1"}); err == nil {
		t.Error("expected error for negative min")
	}
}
