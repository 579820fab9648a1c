package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuthbertlab/college-costs/internal/config"
	"github.com/cuthbertlab/college-costs/internal/reference"
)

const cliCSV = `UNITID,INSTNM,STABBR,PREDDEG,CONTROL,SATVR25,SATMT25,SATVRMID,SATMTMID,C150_4_POOLED_SUPP,NPT41_PUB,NPT42_PUB,NPT41_PRIV,NPT42_PRIV
1,Cheap State University,CA,3,1,350,360,400,400,0.61,5000,6000,NULL,NULL
2,Bay Private College,MA,3,2,360,360,400,400,0.85,NULL,NULL,20000,15000
`

// withTestEnv points the config and reference data at temp directories
// and returns the path of a small scorecard CSV.
func withTestEnv(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.json")
	referencePath := filepath.Join(dir, "reference")

	originalConfig := loadConfig
	originalReference := loadReference
	t.Cleanup(func() {
		loadConfig = originalConfig
		loadReference = originalReference
	})

	loadConfig = func() (*config.Config, error) {
		return config.LoadFrom(configPath)
	}
	loadReference = func(paths ...string) (*reference.Data, error) {
		if len(paths) == 0 {
			paths = []string{referencePath}
		}

		return reference.Load(paths...)
	}

	csv := filepath.Join(dir, "scorecard.csv")
	require.NoError(t, os.WriteFile(csv, []byte(cliCSV), 0o644))
	return csv
}

// enableFeature turns on a feature flag in the test config.
func enableFeature(t *testing.T, name string) {
	t.Helper()

	cfg, err := loadConfig()
	require.NoError(t, err)
	require.NoError(t, cfg.SetFeature(name, true))
}

// resetFlags restores every flag to its default. Cobra keeps parsed flag
// values between Execute calls.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}

	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func executeRootCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeRootCommandWithInput(t, "", args...)
}

func executeRootCommandWithInput(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	resetFlags(rootCmd)
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs([]string{})
		rootCmd.SetIn(nil)
		resetFlags(rootCmd)
	})

	err := rootCmd.Execute()
	output := stdout.String() + stderr.String()

	return output, err
}

func TestRootCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		contains string
	}{
		{
			name:     "version flag",
			args:     []string{"--version"},
			contains: "version",
		},
		{
			name:     "help flag",
			args:     []string{"--help"},
			contains: "college-costs",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := executeRootCommand(t, tt.args...)
			assert.NoError(t, err)
			assert.Contains(t, output, tt.contains)
		})
	}
}

func TestPlainMainMenu_ListsAndExit(t *testing.T) {
	withTestEnv(t)

	output, err := executeRootCommandWithInput(t, "3\n4\nbogus\n5\n")
	require.NoError(t, err)

	assert.Contains(t, output, "Main Menu")
	assert.Contains(t, output, "States:")
	assert.Contains(t, output, "Show All")
	assert.Contains(t, output, "Income levels:")
	assert.Contains(t, output, `Invalid option "bogus". Enter 1-5.`)
	assert.Contains(t, output, "Goodbye.")
}

func TestPlainMainMenu_InversionsWithoutCSV(t *testing.T) {
	withTestEnv(t)

	output, err := executeRootCommandWithInput(t, "2\n5\n")
	require.NoError(t, err)
	assert.Contains(t, output, "Error: a scorecard CSV is required (--csv)")
}

func TestPlainMainMenu_ChooseShowsPage(t *testing.T) {
	csv := withTestEnv(t)

	output, err := executeRootCommandWithInput(t, "1\n1\nca\n5\n", "--csv", csv)
	require.NoError(t, err)

	assert.Contains(t, output, "-> View College Costs! (data/2016_CA1.html)")
	assert.Contains(t, output, "Data page: data/2016_CA1.html")
	assert.Contains(t, output, "California: $0-30k (2016)")
	assert.Contains(t, output, "Cheap State University")
	assert.Contains(t, output, "Goodbye.")
}

func TestPlainMainMenu_EOF(t *testing.T) {
	withTestEnv(t)

	_, err := executeRootCommandWithInput(t, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read menu option")
}

func TestTUICallbacks(t *testing.T) {
	csv := withTestEnv(t)
	csvPath = csv
	t.Cleanup(func() { csvPath = "" })

	s, err := newSession(false)
	require.NoError(t, err)

	cb := tuiCallbacks(s)
	require.NotNil(t, cb.OpenPage)

	var buf bytes.Buffer
	require.NoError(t, cb.RenderStatesList(&buf))
	assert.Contains(t, buf.String(), "California")

	page, err := cb.OpenPage("data/2016_MA2.html")
	require.NoError(t, err)
	assert.Equal(t, "Massachusetts", page.State.Name)
	assert.Equal(t, 2, page.Income.Level)
}

func TestTUICallbacks_NoCSV(t *testing.T) {
	withTestEnv(t)

	s, err := newSession(false)
	require.NoError(t, err)

	cb := tuiCallbacks(s)
	assert.Nil(t, cb.OpenPage)
	assert.ErrorIs(t, cb.RenderInversions(&bytes.Buffer{}), errNoCSV)
}
