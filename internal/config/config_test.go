package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(flags)
	flags.String(KeyListen, DefaultListen, "listen address")
	require.NoError(t, flags.Parse(args))
	return flags
}

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)
	for _, key := range []string{"ERLC_LOG_LEVEL", "ERLC_JSON_LOG", "ERLC_PHP_VERSION", "ERLC_REGISTRY", "ERLC_LISTEN", "ERLC_CONFIG"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	return dir
}

func TestDefaults(t *testing.T) {
	isolate(t)
	v := New()
	require.NoError(t, BindFlags(v, newFlags(t)))

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, Config{LogLevel: DefaultLogLevel, Listen: DefaultListen}, cfg)
}

func TestPrecedence(t *testing.T) {
	dir := isolate(t)
	yaml := "log-level: debug\nphp-version: \"5.2\"\nlisten: \"0.0.0.0:9000\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "erlc.yaml"), []byte(yaml), 0o600))

	t.Setenv("ERLC_PHP_VERSION", "5.0")

	v := New()
	require.NoError(t, BindFlags(v, newFlags(t, "--log-level", "trace")))

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "trace", cfg.LogLevel, "flag wins over file")
	assert.Equal(t, "5.0", cfg.Version, "env wins over file")
	assert.Equal(t, "0.0.0.0:9000", cfg.Listen, "file wins over default")
}

func TestExplicitConfigMissing(t *testing.T) {
	dir := isolate(t)

	v := New()
	require.NoError(t, BindFlags(v, newFlags(t, "--config", filepath.Join(dir, "nope.yaml"))))

	_, err := Load(v)
	assert.Error(t, err)
}

func TestLoadRegistry(t *testing.T) {
	reg, err := Config{}.LoadRegistry()
	require.NoError(t, err)
	assert.Equal(t, "5.4", reg.DefaultVersion().Key)

	_, err = Config{Registry: filepath.Join(t.TempDir(), "missing.yaml")}.LoadRegistry()
	assert.Error(t, err)
}

func TestConfigDirFromEnv(t *testing.T) {
	t.Setenv(EnvConfigDir, "/tmp/erlc-test")
	assert.Equal(t, "/tmp/erlc-test", ConfigDir())
}
