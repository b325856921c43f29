package cli

import (
	"errors"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carbon-dropins/internal/app"
	"carbon-dropins/tests/testutil"
)

// ---------- Command tree tests ----------

func TestRootCommandHasSubcommands(t *testing.T) {
	root := newRootCommand()
	names := make([]string, 0, len(root.Commands()))
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, name := range []string{"reconcile", "scan", "inspect", "validate"} {
		assert.Contains(t, names, name, "missing subcommand: %s", name)
	}
}

func TestRootCommandVersion(t *testing.T) {
	root := newRootCommand()
	assert.Equal(t, "dev", root.Version)
}

func TestRootCommandLayoutFlags(t *testing.T) {
	root := newRootCommand()
	flags := []string{
		"config", "log-level", "components-dir", "profile",
		"dropins-dir", "ledger", "bundle-pattern", "dropins-prefix",
		"start-level",
	}
	for _, name := range flags {
		assert.NotNil(t, root.PersistentFlags().Lookup(name), "missing flag: %s", name)
	}
}

func TestReconcileCommandFlags(t *testing.T) {
	cmd := newReconcileCommand(&layoutOptions{})
	assert.NotNil(t, cmd.Flags().Lookup("dry-run"))
	assert.NotNil(t, cmd.Flags().Lookup("report"))
}

func TestInspectCommandFlags(t *testing.T) {
	cmd := newInspectCommand(&layoutOptions{})
	assert.NotNil(t, cmd.Flags().Lookup("format"))
}

// ---------- Helper function tests ----------

func TestResolveString(t *testing.T) {
	tests := []struct {
		name     string
		cmd      *cobra.Command
		value    string
		expected string
	}{
		{name: "nil cmd with value returns value", cmd: nil, value: "explicit", expected: "explicit"},
		{name: "nil cmd empty value returns empty", cmd: nil, value: "", expected: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveString(tt.cmd, tt.value, "test_key", "test-flag")
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestResolveIntAndBoolNilCommand(t *testing.T) {
	assert.Equal(t, 7, resolveInt(nil, 7, "test_int", "test-int"))
	assert.True(t, resolveBool(nil, true, "test_bool", "test-bool"))
}

func TestFlagChangedInheritedFlag(t *testing.T) {
	root := newRootCommand()
	root.SetArgs([]string{"scan", "--start-level", "6", "--components-dir", t.TempDir()})
	require.NoError(t, root.Execute())

	scan, _, err := root.Find([]string{"scan"})
	require.NoError(t, err)
	assert.True(t, flagChanged(scan, "start-level"))
	assert.False(t, flagChanged(scan, "profile"))
	assert.False(t, flagChanged(scan, ""))
}

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "invalid argument", err: errbuilder.New().WithCode(errbuilder.CodeInvalidArgument).WithMsg("x"), want: 2},
		{name: "failed precondition", err: errbuilder.New().WithCode(errbuilder.CodeFailedPrecondition).WithMsg("x"), want: 4},
		{name: "not found", err: errbuilder.New().WithCode(errbuilder.CodeNotFound).WithMsg("x"), want: 5},
		{name: "internal", err: errbuilder.New().WithCode(errbuilder.CodeInternal).WithMsg("x"), want: 5},
		{name: "plain error", err: errors.New("boom"), want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCodeForError(tt.err))
		})
	}
}

// ---------- End to end ----------

func useMemFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	previous := newAppService
	newAppService = func() app.Service { return app.NewServiceWithFs(fs) }
	t.Cleanup(func() { newAppService = previous })
	return fs
}

func TestReconcileCommandRewritesLedger(t *testing.T) {
	fs := useMemFs(t)
	ledger := "/c/default/configuration/org.eclipse.equinox.simpleconfigurator/bundles.info"
	require.NoError(t, fs.MkdirAll("/c/default/configuration/org.eclipse.equinox.simpleconfigurator", 0755))
	require.NoError(t, afero.WriteFile(fs, ledger, []byte("#version=1\ncom.stale,1.0.0,../dropins/stale.jar,4,false\n"), 0644))
	testutil.WriteBundle(t, fs, "/c/dropins/com.baz_1.0.0.jar", testutil.BundleHeaders("com.baz", "1.0.0", ""))

	root := newRootCommand()
	root.SetArgs([]string{"reconcile", "--components-dir", "/c"})
	require.NoError(t, root.Execute())

	content, err := afero.ReadFile(fs, ledger)
	require.NoError(t, err)
	assert.Equal(t, "com.baz,1.0.0,../dropins/com.baz_1.0.0.jar,4,false\n", string(content))
}

func TestValidateCommandFailsOnViolations(t *testing.T) {
	fs := useMemFs(t)
	require.NoError(t, afero.WriteFile(fs, "/l/bundles.info", []byte("com.gone,1.0.0,../dropins/gone.jar,4,false\n"), 0644))

	root := newRootCommand()
	root.SetArgs([]string{"validate", "--ledger", "/l/bundles.info", "--dropins-dir", "/d"})
	err := root.Execute()
	require.Error(t, err)
	assert.Equal(t, 4, exitCodeForError(err))
}

func TestInspectCommandRejectsUnknownFormat(t *testing.T) {
	useMemFs(t)
	root := newRootCommand()
	root.SetArgs([]string{"inspect", "--components-dir", "/c", "--format", "xml"})
	err := root.Execute()
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}
