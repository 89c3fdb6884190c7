package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/vitrine/pkg/templates"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestVersionCommand(t *testing.T) {
	assert.Contains(t, execute(t, "version"), "vitrine version ")
}

func TestTemplatesCommand(t *testing.T) {
	out := execute(t, "templates")
	for _, name := range templates.Names() {
		assert.Contains(t, out, name)
	}

	body, err := templates.Body("stack")
	require.NoError(t, err)
	assert.Equal(t, body+"\n", execute(t, "templates", "show", "stack"))
}

func TestRenderCommand_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.xaml")
	require.NoError(t, os.WriteFile(path, []byte(`<CheckBox Content="ok"/>`), 0o644))

	out := execute(t, "render", "--json", path)
	assert.Contains(t, out, `"kind": "rendered"`)
	assert.Contains(t, out, `"type_name": "CheckBox"`)
}

func TestLoadConfig_FlagsOverride(t *testing.T) {
	t.Chdir(t.TempDir())

	cmd := &cobra.Command{Use: "probe", RunE: func(*cobra.Command, []string) error { return nil }}
	rootCmd.AddCommand(cmd)
	t.Cleanup(func() { rootCmd.RemoveCommand(cmd) })

	rootCmd.SetArgs([]string{"probe", "--debounce", "50ms", "--auto-run=false", "--template", "stack"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	require.NoError(t, rootCmd.Execute())

	cfg, err := loadConfig(cmd)
	require.NoError(t, err)
	assert.Equal(t, 50*time.Millisecond, cfg.Debounce)
	assert.False(t, cfg.AutoRun)
	assert.True(t, cfg.Wrap)
	assert.Equal(t, "stack", cfg.Template)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Chdir(t.TempDir())

	cmd := &cobra.Command{Use: "probe-invalid", RunE: func(*cobra.Command, []string) error { return nil }}
	rootCmd.AddCommand(cmd)
	t.Cleanup(func() { rootCmd.RemoveCommand(cmd) })

	rootCmd.SetArgs([]string{"probe-invalid", "--template", "nope"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	require.NoError(t, rootCmd.Execute())

	_, err := loadConfig(cmd)
	assert.ErrorContains(t, err, "invalid configuration")
}
