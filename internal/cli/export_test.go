package cli

import (
	"os"
	"path/filepath"
	"testing"

	zerrors "github.com/zogtools/zog/pkg/errors"
)

// missingConfig returns a path that does not exist, so resolve() sees no
// config file regardless of the test machine's real one.
func missingConfig(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "no-config.toml")
}

func writeTestConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLibraryOptsResolve(t *testing.T) {
	tests := []struct {
		name     string
		opts     libraryOpts
		env      string
		wantErr  bool
		wantKey  string
		wantType string
	}{
		{
			name:     "RemoteWithKey",
			opts:     libraryOpts{id: "123", libType: "user", apiKey: "k"},
			wantKey:  "k",
			wantType: "user",
		},
		{
			name:    "RemoteWithoutKey",
			opts:    libraryOpts{id: "123", libType: "user"},
			wantErr: true,
		},
		{
			name:     "LocalWithoutKey",
			opts:     libraryOpts{id: "123", libType: "user", local: true},
			wantType: "user",
		},
		{
			name:     "KeyFromEnvironment",
			opts:     libraryOpts{id: "123", libType: "user"},
			env:      "env-key",
			wantKey:  "env-key",
			wantType: "user",
		},
		{
			name:    "MissingLibraryID",
			opts:    libraryOpts{libType: "user", apiKey: "k"},
			wantErr: true,
		},
		{
			name:    "InvalidLibraryType",
			opts:    libraryOpts{id: "123", libType: "shared", apiKey: "k"},
			wantErr: true,
		},
		{
			name:     "GroupLibrary",
			opts:     libraryOpts{id: "123", libType: "group", apiKey: "k"},
			wantKey:  "k",
			wantType: "group",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(apiKeyEnv, tt.env)
			tt.opts.configPath = missingConfig(t)

			got, err := tt.opts.resolve()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("resolve() = %+v, want error", got)
				}
				if !zerrors.Is(err, zerrors.ErrCodeInvalidInput) {
					t.Errorf("code = %s, want INVALID_INPUT", zerrors.GetCode(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("resolve(): %v", err)
			}
			if got.apiKey != tt.wantKey {
				t.Errorf("apiKey = %q, want %q", got.apiKey, tt.wantKey)
			}
			if got.libType != tt.wantType {
				t.Errorf("libType = %q, want %q", got.libType, tt.wantType)
			}
		})
	}
}

func TestLibraryOptsResolveConfigFile(t *testing.T) {
	t.Setenv(apiKeyEnv, "")
	path := writeTestConfig(t, `
library_id = "7654321"
library_type = "group"
api_key = "file-key"
`)

	opts := libraryOpts{libType: "user", configPath: path}
	got, err := opts.resolve()
	if err != nil {
		t.Fatalf("resolve(): %v", err)
	}
	if got.id != "7654321" {
		t.Errorf("id = %q, want from config", got.id)
	}
	if got.libType != "group" {
		t.Errorf("libType = %q, want group from config", got.libType)
	}
	if got.apiKey != "file-key" {
		t.Errorf("apiKey = %q, want file-key", got.apiKey)
	}
}

func TestLibraryOptsFlagsOverrideConfig(t *testing.T) {
	t.Setenv(apiKeyEnv, "env-key")
	path := writeTestConfig(t, `
library_id = "7654321"
api_key = "file-key"
`)

	opts := libraryOpts{id: "111", libType: "user", apiKey: "flag-key", configPath: path}
	got, err := opts.resolve()
	if err != nil {
		t.Fatalf("resolve(): %v", err)
	}
	if got.id != "111" {
		t.Errorf("id = %q, flag should win", got.id)
	}
	if got.apiKey != "flag-key" {
		t.Errorf("apiKey = %q, flag should win over env and file", got.apiKey)
	}
}

func TestLibraryOptsEnvBeatsConfig(t *testing.T) {
	t.Setenv(apiKeyEnv, "env-key")
	path := writeTestConfig(t, `
library_id = "7654321"
api_key = "file-key"
`)

	opts := libraryOpts{libType: "user", configPath: path}
	got, err := opts.resolve()
	if err != nil {
		t.Fatalf("resolve(): %v", err)
	}
	if got.apiKey != "env-key" {
		t.Errorf("apiKey = %q, env should win over file", got.apiKey)
	}
}
