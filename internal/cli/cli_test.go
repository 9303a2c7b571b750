package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI executes a fresh command tree with args and returns everything
// written to stdout and stderr.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	var buf bytes.Buffer
	root := newRootCmd()
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestHours_Text(t *testing.T) {
	out, err := runCLI(t, "hours",
		"--snapshot", "testdata/places.yaml",
		"--place", "dar-si-said",
		"--at", "2026-06-03T10:00:00+01:00")

	require.NoError(t, err)
	assert.Contains(t, out, "Dar Si Said")
	assert.Contains(t, out, "Status: open")
	assert.Contains(t, out, "Next: closes at 2026-06-03 17:00")
	assert.Contains(t, out, "Open now · Closes 17:00")
	assert.NotContains(t, out, "six months")
}

func TestHours_JSON_Closed(t *testing.T) {
	out, err := runCLI(t, "hours", "--json",
		"--snapshot", "testdata/places.yaml",
		"--place", "dar-si-said",
		"--at", "2026-06-07T12:00:00+01:00")

	require.NoError(t, err)
	var got hoursOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "closed", got.Status)
	require.NotNil(t, got.NextChange)
	assert.Equal(t, "opens", *got.NextChange)
	assert.Equal(t, "2026-06-08 09:00", got.NextAt.Format("2006-01-02 15:04"))
	assert.Equal(t, "Closed · Opens tomorrow 09:00", got.Display)
}

func TestHours_StaleWarning(t *testing.T) {
	out, err := runCLI(t, "hours",
		"--snapshot", "testdata/places.yaml",
		"--place", "chouara-tannery",
		"--at", "2026-06-03T10:00:00+01:00")

	require.NoError(t, err)
	assert.Contains(t, out, "six months")
	assert.Contains(t, out, "Hours may be outdated")
}

func TestHours_Errors(t *testing.T) {
	_, err := runCLI(t, "hours", "--snapshot", "testdata/places.yaml", "--place", "nowhere")
	assert.ErrorContains(t, err, `place "nowhere"`)

	_, err = runCLI(t, "hours", "--snapshot", "testdata/places.yaml", "--place", "dar-si-said", "--at", "tomorrow")
	assert.ErrorContains(t, err, "tomorrow")

	_, err = runCLI(t, "hours", "--snapshot", "testdata/missing.yaml", "--place", "dar-si-said")
	assert.Error(t, err)

	_, err = runCLI(t, "hours", "--snapshot", "testdata/places.yaml")
	assert.ErrorContains(t, err, "place")
}

func TestPlan_JSON(t *testing.T) {
	out, err := runCLI(t, "plan", "--json",
		"--snapshot", "testdata/places.yaml",
		"--request", "testdata/request.yaml")

	require.NoError(t, err)
	var got planOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Stops, 1)
	assert.Equal(t, "dar-si-said", got.Stops[0].PlaceID)
	assert.Equal(t, 60, got.Stops[0].VisitMinutes)
	assert.Zero(t, got.Stops[0].TravelMinutesFromPrevious)
	assert.Equal(t, 70, got.Cost.Min)
	assert.Equal(t, 120, got.Cost.Max)
	assert.Empty(t, got.Warnings)
}

func TestPlan_Text(t *testing.T) {
	out, err := runCLI(t, "plan",
		"--snapshot", "testdata/places.yaml",
		"--request", "testdata/request.yaml")

	require.NoError(t, err)
	assert.Contains(t, out, "Plan for 120 minutes from 2026-06-03 15:00")
	assert.Contains(t, out, "Dar Si Said")
	assert.Contains(t, out, "2026-06-03 16:00")
	assert.Contains(t, out, "Cost: 70-120 MAD")
	assert.NotContains(t, out, "Café Clock")
}

func TestVerify_ShippedVectorsPass(t *testing.T) {
	out, err := runCLI(t, "verify", "../vectors/testdata/hours.json", "../vectors/testdata/plan.json")

	require.NoError(t, err, out)
	assert.Contains(t, out, "0 failed")
	assert.NotContains(t, out, "✗")
}

func TestVerify_ReportsFailures(t *testing.T) {
	out, err := runCLI(t, "verify", "testdata/failing.json")

	require.Error(t, err)
	assert.ErrorContains(t, err, "1 of 1 vector failed")
	assert.Contains(t, out, "✗ testdata/failing.json hours: deliberately wrong expectation")
	assert.Contains(t, out, "status: got open, want closed")
}

func TestVerify_JSON(t *testing.T) {
	out, err := runCLI(t, "verify", "--json", "testdata/failing.json")

	require.Error(t, err)
	var got []verifyOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.False(t, got[0].Passed)
	assert.Equal(t, "hours", got[0].Kind)
}

func TestVerify_RequiresFile(t *testing.T) {
	_, err := runCLI(t, "verify")
	assert.Error(t, err)
}

func TestImport_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := runCLI(t, "import", "--snapshot", "testdata/places.yaml")

	assert.ErrorContains(t, err, "DATABASE_URL")
}

func TestVersion(t *testing.T) {
	SetVersion("1.2.3")
	t.Cleanup(func() { version = "dev" })

	out, err := runCLI(t, "--version")

	require.NoError(t, err)
	assert.Equal(t, "1.2.3\n", out)
}
