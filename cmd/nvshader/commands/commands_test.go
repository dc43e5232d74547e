package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/nvshader/cmd/nvshader/commands"
	"go.trai.ch/nvshader/internal/app"
	"go.trai.ch/nvshader/internal/build"
)

// mockApp records the last call it received.
type mockApp struct {
	called  string
	opts    app.Options
	list    app.ListOptions
	clean   app.CleanOptions
	size    string
	prewarm app.PrewarmOptions
	watch   app.WatchOptions
	force   bool
	err     error
}

func (m *mockApp) record(name string, opts app.Options) error {
	m.called = name
	m.opts = opts
	return m.err
}

func (m *mockApp) Scan(_ context.Context, opts app.Options) error {
	return m.record("scan", opts)
}

func (m *mockApp) Stats(_ context.Context, opts app.Options) error {
	return m.record("stats", opts)
}

func (m *mockApp) List(_ context.Context, opts app.Options, list app.ListOptions) error {
	m.list = list
	return m.record("list", opts)
}

func (m *mockApp) Clean(_ context.Context, opts app.Options, clean app.CleanOptions) error {
	m.clean = clean
	return m.record("clean", opts)
}

func (m *mockApp) Shrink(_ context.Context, opts app.Options, size string) error {
	m.size = size
	return m.record("shrink", opts)
}

func (m *mockApp) Validate(_ context.Context, opts app.Options) error {
	return m.record("validate", opts)
}

func (m *mockApp) Prewarm(_ context.Context, opts app.Options, pw app.PrewarmOptions) error {
	m.prewarm = pw
	return m.record("prewarm", opts)
}

func (m *mockApp) Watch(_ context.Context, opts app.Options, w app.WatchOptions) error {
	m.watch = w
	return m.record("watch", opts)
}

func (m *mockApp) Info(_ context.Context, opts app.Options) error {
	return m.record("info", opts)
}

func (m *mockApp) ConfigShow(opts app.Options) error {
	return m.record("config show", opts)
}

func (m *mockApp) ConfigInit(opts app.Options, force bool) error {
	m.force = force
	return m.record("config init", opts)
}

func (m *mockApp) ConfigPath(opts app.Options) error {
	return m.record("config path", opts)
}

func execute(t *testing.T, m *mockApp, args ...string) (string, error) {
	t.Helper()
	cli := commands.New(m)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs(args)
	err := cli.Execute(context.Background())
	return buf.String(), err
}

func TestCommands_Dispatch(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"scan"}, "scan"},
		{[]string{"stats"}, "stats"},
		{[]string{"ls"}, "list"},
		{[]string{"validate"}, "validate"},
		{[]string{"info"}, "info"},
		{[]string{"config", "show"}, "config show"},
		{[]string{"config", "path"}, "config path"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			m := &mockApp{}
			_, err := execute(t, m, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.called)
		})
	}
}

func TestCommands_GlobalFlags(t *testing.T) {
	m := &mockApp{}
	_, err := execute(t, m, "stats",
		"--config", "/tmp/nv.yaml",
		"-o", "json",
		"--json-logs",
		"-v",
		"--metrics-file", "/tmp/nv.prom")
	require.NoError(t, err)

	assert.Equal(t, app.Options{
		ConfigPath:  "/tmp/nv.yaml",
		Output:      "json",
		JSONLogs:    true,
		Verbose:     true,
		MetricsFile: "/tmp/nv.prom",
	}, m.opts)
}

func TestCommands_List(t *testing.T) {
	m := &mockApp{}
	_, err := execute(t, m, "list", "-t", "dxvk,fossilize", "--game", "570")
	require.NoError(t, err)

	assert.Equal(t, app.ListOptions{Types: []string{"dxvk", "fossilize"}, Game: "570"}, m.list)
	assert.Equal(t, "auto", m.opts.Output)
}

func TestCommands_Clean(t *testing.T) {
	t.Run("older than", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "clean", "--older-than", "30")
		require.NoError(t, err)
		assert.Equal(t, app.CleanOptions{OlderThanDays: 30}, m.clean)
	})

	t.Run("policy", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "clean", "--policy")
		require.NoError(t, err)
		assert.True(t, m.clean.Policy)
	})

	t.Run("requires a rule", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "clean")
		require.Error(t, err)
		assert.Empty(t, m.called)
	})

	t.Run("rules are exclusive", func(t *testing.T) {
		m := &mockApp{}
		_, err := execute(t, m, "clean", "--policy", "--older-than", "3")
		require.Error(t, err)
		assert.Empty(t, m.called)
	})
}

func TestCommands_Shrink(t *testing.T) {
	m := &mockApp{}
	_, err := execute(t, m, "shrink", "10GiB")
	require.NoError(t, err)
	assert.Equal(t, "10GiB", m.size)

	m = &mockApp{}
	_, err = execute(t, m, "shrink")
	require.Error(t, err)
	assert.Empty(t, m.called)
}

func TestCommands_Prewarm(t *testing.T) {
	m := &mockApp{}
	_, err := execute(t, m, "prewarm")
	require.NoError(t, err)
	assert.Empty(t, m.prewarm.GameID)

	m = &mockApp{}
	_, err = execute(t, m, "prewarm", "570")
	require.NoError(t, err)
	assert.Equal(t, "570", m.prewarm.GameID)
}

func TestCommands_Watch(t *testing.T) {
	m := &mockApp{}
	_, err := execute(t, m, "watch", "--debounce", "500ms")
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, m.watch.Window)
}

func TestCommands_ConfigInit(t *testing.T) {
	m := &mockApp{}
	_, err := execute(t, m, "config", "init", "--force")
	require.NoError(t, err)
	assert.Equal(t, "config init", m.called)
	assert.True(t, m.force)
}

func TestCommands_PropagatesErrors(t *testing.T) {
	m := &mockApp{err: errors.New("simulated error")}
	_, err := execute(t, m, "validate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "simulated error")
}

func TestCommands_Version(t *testing.T) {
	out, err := execute(t, &mockApp{}, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "nvshader version "+build.Version)
}

func TestCommands_VersionFlag(t *testing.T) {
	out, err := execute(t, &mockApp{}, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, build.Commit)
}

func TestCommands_Help(t *testing.T) {
	m := &mockApp{}
	out, err := execute(t, m, "--help")
	require.NoError(t, err)
	assert.Empty(t, m.called)
	assert.Contains(t, out, "-v, --verbose")
	assert.Contains(t, out, "--version")
	assert.Contains(t, out, "shrink")
}

func TestCommands_VerboseShorthand(t *testing.T) {
	m := &mockApp{}
	out, err := execute(t, m, "-v", "stats")
	require.NoError(t, err)
	assert.Equal(t, "stats", m.called)
	assert.True(t, m.opts.Verbose)
	assert.NotContains(t, out, "version")
}
