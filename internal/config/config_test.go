// Copyright (c) 2018 Tim Heckman
//
// Use of this source code is governed by the MIT License that can be found in
// the LICENSE file at the root of this repository.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/theckman/chatopera"
)

// isolate keeps the tests from reading the environment or home directory of
// whoever runs them.
func isolate(t *testing.T) {
	t.Helper()

	t.Setenv("HOME", t.TempDir())

	for _, k := range []string{"CLIENT_ID", "CLIENT_SECRET", "BASE_URL", "TIMEOUT", "LOG_LEVEL"} {
		t.Setenv(EnvPrefix+"_"+k, "")
		_ = os.Unsetenv(EnvPrefix + "_" + k)
	}
}

func writeFile(t *testing.T, body string) string {
	t.Helper()

	p := filepath.Join(t.TempDir(), "chatopera.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))

	return p
}

func TestLoad_env(t *testing.T) {
	isolate(t)

	t.Setenv("CHATOPERA_CLIENT_ID", "abc123")
	t.Setenv("CHATOPERA_CLIENT_SECRET", "s3cr3t")
	t.Setenv("CHATOPERA_TIMEOUT", "5s")

	cfg, err := Load(New(""))
	require.NoError(t, err)

	require.Equal(t, "abc123", cfg.ClientID)
	require.Equal(t, "s3cr3t", cfg.ClientSecret)
	require.Equal(t, chatopera.DefaultBaseURL, cfg.BaseURL)
	require.Equal(t, 5*time.Second, cfg.Timeout)
	require.Equal(t, DefaultLogLevel, cfg.LogLevel)
}

func TestLoad_file(t *testing.T) {
	isolate(t)

	p := writeFile(t, `
client_id: fromfile
client_secret: filesecret
base_url: http://localhost:8000/
log_level: debug
`)

	cfg, err := Load(New(p))
	require.NoError(t, err)

	require.Equal(t, "fromfile", cfg.ClientID)
	require.Equal(t, "filesecret", cfg.ClientSecret)
	require.Equal(t, "http://localhost:8000", cfg.BaseURL)
	require.Equal(t, DefaultTimeout, cfg.Timeout)
	require.Equal(t, "debug", cfg.LogLevel)

	// the environment takes precedence over the file
	t.Setenv("CHATOPERA_CLIENT_ID", "fromenv")

	cfg, err = Load(New(p))
	require.NoError(t, err)
	require.Equal(t, "fromenv", cfg.ClientID)
}

func TestLoad_flags(t *testing.T) {
	isolate(t)

	t.Setenv("CHATOPERA_CLIENT_ID", "fromenv")
	t.Setenv("CHATOPERA_CLIENT_SECRET", "s3cr3t")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("client-id", "", "")
	fs.String("log-level", DefaultLogLevel, "")
	require.NoError(t, fs.Parse([]string{"--client-id", "fromflag"}))

	v := New("")
	require.NoError(t, BindFlags(v, fs))

	cfg, err := Load(v)
	require.NoError(t, err)
	require.Equal(t, "fromflag", cfg.ClientID)
	require.Equal(t, DefaultLogLevel, cfg.LogLevel)
}

func TestLoad_invalid(t *testing.T) {
	tests := []struct {
		n   string
		env map[string]string
	}{
		{n: "no_client_id", env: map[string]string{"CLIENT_SECRET": "x"}},
		{n: "no_client_secret", env: map[string]string{"CLIENT_ID": "x"}},
		{n: "bad_url", env: map[string]string{"CLIENT_ID": "x", "CLIENT_SECRET": "x", "BASE_URL": "not a url"}},
		{n: "timeout_too_short", env: map[string]string{"CLIENT_ID": "x", "CLIENT_SECRET": "x", "TIMEOUT": "1ms"}},
		{n: "bad_log_level", env: map[string]string{"CLIENT_ID": "x", "CLIENT_SECRET": "x", "LOG_LEVEL": "loud"}},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.n, func(t *testing.T) {
			isolate(t)

			for k, v := range tt.env {
				t.Setenv(EnvPrefix+"_"+k, v)
			}

			_, err := Load(New(""))
			require.Error(t, err)
		})
	}
}

func TestLoad_missingExplicitFile(t *testing.T) {
	isolate(t)

	_, err := Load(New(filepath.Join(t.TempDir(), "nope.yaml")))
	require.Error(t, err)
}
