package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cuthbertlab/college-costs/internal/reference"
)

func TestListStatesCommand(t *testing.T) {
	withTestEnv(t)

	output, err := executeRootCommand(t, "list", "states")
	require.NoError(t, err)

	assert.Contains(t, output, "States:")
	assert.Contains(t, output, "CA        California")
	assert.Contains(t, output, "Show All  College Costs (all)")

	akIndex := strings.Index(output, "Alaska")
	wyIndex := strings.Index(output, "Wyoming")
	require.NotEqual(t, -1, akIndex)
	assert.Less(t, akIndex, wyIndex)
}

func TestListIncomesCommand(t *testing.T) {
	withTestEnv(t)

	output, err := executeRootCommand(t, "list", "incomes")
	require.NoError(t, err)

	assert.Contains(t, output, "Income levels:")
	assert.Contains(t, output, "  1  $0-30k")
	assert.Contains(t, output, "  5  $110k+")
}

func TestListTestsCommand(t *testing.T) {
	withTestEnv(t)

	output, err := executeRootCommand(t, "list", "tests")
	require.NoError(t, err)

	assert.Contains(t, output, "Test types:")
	assert.Contains(t, output, "SAT  bands 700 to 1400 step 100")
	assert.Contains(t, output, "ACT  bands 14 to 35 step 3")
}

func TestListUsesReferenceOverrides(t *testing.T) {
	withTestEnv(t)

	dir := t.TempDir()
	override := "kind: incomes\nincomes:\n  - level: 1\n    code: \"1\"\n    label: \"Under $30,000\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "incomes.yaml"), []byte(override), 0o644))

	output, err := executeRootCommand(t, "--reference", dir, "list", "incomes")
	require.NoError(t, err)
	assert.Contains(t, output, "Under $30,000")
	assert.NotContains(t, output, "$0-30k")
}

func TestListReferenceLoadError(t *testing.T) {
	withTestEnv(t)
	loadReference = func(...string) (*reference.Data, error) {
		return nil, errors.New("boom")
	}

	_, err := executeRootCommand(t, "list", "states")
	require.Error(t, err)
	assert.Equal(t, "load reference data: boom", err.Error())
}

func TestPrintListsEmpty(t *testing.T) {
	var buf bytes.Buffer
	ref := &reference.Data{}

	printStatesList(&buf, ref)
	printIncomesList(&buf, ref)
	printTestsList(&buf, ref)

	assert.Equal(t, 3, strings.Count(buf.String(), "(none)"))
}
