package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tempDir := t.TempDir()

	dataDir := filepath.Join(tempDir, "data")
	if err := os.Mkdir(dataDir, 0o755); err != nil {
		t.Fatal(err)
	}
	otherDir := filepath.Join(tempDir, "other")
	if err := os.Mkdir(otherDir, 0o755); err != nil {
		t.Fatal(err)
	}

	notADir := filepath.Join(tempDir, "file.json")
	if err := os.WriteFile(notADir, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		args    []string
		want    *Config
		wantErr bool
	}{
		{
			name: "defaults",
			args: []string{"mcp-json-reader"},
			want: &Config{
				Debug:     false,
				RateLimit: 0,
				Cache:     true,
				Roots:     nil,
			},
		},
		{
			name: "with_debug",
			args: []string{"mcp-json-reader", "--debug"},
			want: &Config{
				Debug: true,
				Cache: true,
			},
		},
		{
			name: "with_rate_limit",
			args: []string{"mcp-json-reader", "--rate-limit", "5"},
			want: &Config{
				RateLimit: 5,
				Cache:     true,
			},
		},
		{
			name: "cache_disabled",
			args: []string{"mcp-json-reader", "--cache=false"},
			want: &Config{
				Cache: false,
			},
		},
		{
			name: "with_roots",
			args: []string{"mcp-json-reader", "--root", dataDir, "--root", otherDir},
			want: &Config{
				Cache: true,
				Roots: []string{dataDir, otherDir},
			},
		},
		{
			name:    "missing_root",
			args:    []string{"mcp-json-reader", "--root", filepath.Join(tempDir, "absent")},
			wantErr: true,
		},
		{
			name:    "root_is_a_file",
			args:    []string{"mcp-json-reader", "--root", notADir},
			wantErr: true,
		},
		{
			name:    "empty_root",
			args:    []string{"mcp-json-reader", "--root", ""},
			wantErr: true,
		},
		{
			name:    "unknown_flag",
			args:    []string{"mcp-json-reader", "--bogus"},
			wantErr: true,
		},
		{
			name:    "no_arguments",
			args:    nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, result := Parse(tt.args)

			if tt.wantErr {
				if result == nil {
					t.Fatalf("Parse(%v) result = nil, want an error result", tt.args)
				}
				if result.ExitCode == 0 {
					t.Fatalf("Parse(%v) exit code = 0, want non-zero", tt.args)
				}
				return
			}

			if result != nil {
				t.Fatalf("Parse(%v) result = %+v, want nil", tt.args, result)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Parse(%v) = %+v, want %+v", tt.args, got, tt.want)
			}
		})
	}
}

func TestParseHelp(t *testing.T) {
	_, result := Parse([]string{"mcp-json-reader", "--help"})
	if result == nil {
		t.Fatal("Parse(--help) result = nil, want a success result")
	}
	if result.ExitCode != 0 {
		t.Fatalf("Parse(--help) exit code = %d, want 0", result.ExitCode)
	}
}

func TestParseConfigFile(t *testing.T) {
	tempDir := t.TempDir()

	dataDir := filepath.Join(tempDir, "data")
	if err := os.Mkdir(dataDir, 0o755); err != nil {
		t.Fatal(err)
	}
	flagDir := filepath.Join(tempDir, "flagged")
	if err := os.Mkdir(flagDir, 0o755); err != nil {
		t.Fatal(err)
	}

	configFile := filepath.Join(tempDir, "server.yaml")
	content := "debug: true\nrate_limit: 2.5\ncache: false\nroots:\n  - " + dataDir + "\n"
	if err := os.WriteFile(configFile, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Run("file_values_apply", func(t *testing.T) {
		got, result := Parse([]string{"mcp-json-reader", "--config", configFile})
		if result != nil {
			t.Fatalf("Parse() result = %+v, want nil", result)
		}

		want := &Config{
			Debug:      true,
			RateLimit:  2.5,
			Cache:      false,
			Roots:      []string{dataDir},
			ConfigFile: configFile,
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("Parse() = %+v, want %+v", got, want)
		}
	})

	t.Run("command_line_wins", func(t *testing.T) {
		got, result := Parse([]string{"mcp-json-reader", "--config", configFile, "--rate-limit", "9", "--root", flagDir})
		if result != nil {
			t.Fatalf("Parse() result = %+v, want nil", result)
		}

		if got.RateLimit != 9 {
			t.Fatalf("RateLimit = %v, want 9", got.RateLimit)
		}
		if want := []string{dataDir, flagDir}; !reflect.DeepEqual(got.Roots, want) {
			t.Fatalf("Roots = %v, want %v", got.Roots, want)
		}
	})

	t.Run("unreadable_file", func(t *testing.T) {
		_, result := Parse([]string{"mcp-json-reader", "--config", filepath.Join(tempDir, "absent.yaml")})
		if result == nil || result.ExitCode == 0 {
			t.Fatalf("Parse() result = %+v, want an error result", result)
		}
	})

	t.Run("malformed_file", func(t *testing.T) {
		malformed := filepath.Join(tempDir, "broken.yaml")
		if err := os.WriteFile(malformed, []byte("roots: {not a list"), 0o644); err != nil {
			t.Fatal(err)
		}

		_, result := Parse([]string{"mcp-json-reader", "--config", malformed})
		if result == nil || result.ExitCode == 0 {
			t.Fatalf("Parse() result = %+v, want an error result", result)
		}
	})
}
