package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/shapegen/compiler/gen"
	"github.com/syssam/shapegen/compiler/gen/customize"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "shapegen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("generate", pflag.ContinueOnError)
	fs.String("target", "", "")
	fs.String("package", "", "")
	fs.Bool("public-constrained-types", false, "")
	fs.StringSlice("decorators", nil, "")
	fs.Int("workers", 0, "")
	return fs
}

func TestFindConfigFile_ExplicitPath(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "target: out")
	got, err := findConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, got)
}

func TestFindConfigFile_ExplicitPathNotFound(t *testing.T) {
	_, err := findConfigFile("/nonexistent/path/shapegen.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestFindConfigFile_AutoDiscovery(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	path := writeConfig(t, root, "target: out")
	nested := filepath.Join(root, "deep", "nested")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	chdir(t, nested)

	got, err := findConfigFile("")
	require.NoError(t, err)
	want, _ := filepath.EvalSymlinks(path)
	got, _ = filepath.EvalSymlinks(got)
	assert.Equal(t, want, got)
}

func TestFindConfigFile_StopsAtRepoRoot(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "target: out")
	repo := filepath.Join(root, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))
	chdir(t, repo)

	got, err := findConfigFile("")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoadConfig_Defaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	chdir(t, dir)

	cfg, path, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.False(t, cfg.PublicConstrainedTypes)
	assert.Equal(t, gen.DefaultRuntimePackage, cfg.RuntimePackage)
	assert.Empty(t, cfg.Decorators)
	assert.Equal(t, customize.DefaultMaxAttempts, cfg.Retry.MaxAttempts)
	assert.Equal(t, customize.DefaultMaxBackoff, cfg.Retry.MaxBackoff)
}

func TestLoadConfig_File(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
model: model.json
target: out
package: example.com/tags/client
public_constrained_types: true
decorators: [retry]
retry:
  max_attempts: 5
  initial_backoff: 250ms
`)
	cfg, got, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, path, got)
	assert.Equal(t, "model.json", cfg.Model)
	assert.Equal(t, "out", cfg.Target)
	assert.Equal(t, "example.com/tags/client", cfg.Package)
	assert.True(t, cfg.PublicConstrainedTypes)
	assert.Equal(t, []string{"retry"}, cfg.Decorators)
	assert.Equal(t, 5, cfg.Retry.MaxAttempts)
	assert.Equal(t, 250*time.Millisecond, cfg.Retry.InitialBackoff)
}

func TestLoadConfig_Precedence(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "target: file\npackage: example.com/file\nworkers: 2\n")
	t.Setenv("SHAPEGEN_TARGET", "env")
	t.Setenv("SHAPEGEN_PUBLIC_CONSTRAINED_TYPES", "true")
	t.Setenv("SHAPEGEN_DECORATORS", "retry,credentials-cache")

	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"--target", "flag"}))

	cfg, _, err := LoadConfig(path, fs)
	require.NoError(t, err)
	assert.Equal(t, "flag", cfg.Target, "flag wins over env")
	assert.Equal(t, "example.com/file", cfg.Package, "file wins over default")
	assert.Equal(t, 2, cfg.Workers, "unset flag does not override file")
	assert.True(t, cfg.PublicConstrainedTypes, "env wins over default")
	assert.Equal(t, []string{"retry", "credentials-cache"}, cfg.Decorators)
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "target: [unterminated")
	_, _, err := LoadConfig(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestConfigOptions(t *testing.T) {
	cfg := &Config{
		Target:                 "out",
		Package:                "example.com/tags/client",
		Header:                 "// header",
		PublicConstrainedTypes: true,
		Workers:                4,
		Decorators:             []string{"retry", "credentials-cache"},
		Retry:                  RetryConfig{MaxAttempts: 7},
	}
	opts, err := cfg.Options()
	require.NoError(t, err)
	gc, err := gen.NewConfig(opts...)
	require.NoError(t, err)
	assert.Equal(t, "out", gc.Target)
	assert.Equal(t, "// header", gc.Header)
	assert.True(t, gc.PublicConstrainedTypes)
	assert.Equal(t, 4, gc.Workers)
	require.Len(t, gc.Decorators, 2)
	assert.Equal(t, "RetryConfig", gc.Decorators[0].Name())
	assert.Equal(t, "CredentialsCache", gc.Decorators[1].Name())

	cfg.Decorators = []string{"unknown"}
	_, err = cfg.Options()
	assert.True(t, gen.IsConfigError(err))
}

func TestResolvedModel(t *testing.T) {
	cfg := &Config{Model: "model.yaml"}
	assert.Equal(t, "model.yaml", cfg.ResolvedModel(""))
	assert.Equal(t, "other.json", cfg.ResolvedModel("other.json"))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, ExitCode(nil))
	assert.Equal(t, ExitConfig, ExitCode(ConfigError("loading", fmt.Errorf("boom"))))
	assert.Equal(t, ExitModel, ExitCode(ModelError("loading", nil)))
	assert.Equal(t, ExitGeneral, ExitCode(GeneralError("writing", nil)))
	assert.Equal(t, ExitConfig, ExitCode(fmt.Errorf("wrapped: %w", gen.NewConfigError("Package", nil, "missing"))))
	assert.Equal(t, ExitConfig, ExitCode(fmt.Errorf("wrapped: %w", gen.ErrUnsupportedConstraint)))
	assert.Equal(t, ExitGeneral, ExitCode(fmt.Errorf("boom")))

	err := ConfigError("loading configuration", fmt.Errorf("boom"))
	assert.Equal(t, "loading configuration: boom", err.Error())
	assert.Equal(t, "loading", ModelError("loading", nil).Error())
}
