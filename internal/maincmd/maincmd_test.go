package maincmd_test

import (
	"bytes"
	"flag"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/mna/lemna/internal/filetest"
	"github.com/mna/lemna/internal/maincmd"
	"github.com/mna/mainer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUpdateCmdTests = flag.Bool("test.update-cmd-tests", false, "If set, replace expected command test results with actual results.")

func runCmd(t *testing.T, args ...string) (mainer.ExitCode, string, string) {
	t.Helper()

	var buf, ebuf bytes.Buffer
	stdio := mainer.Stdio{
		Stdout: &buf,
		Stderr: &ebuf,
	}
	var c maincmd.Cmd
	code := c.Main(append([]string{"lemna"}, args...), stdio)
	return code, buf.String(), ebuf.String()
}

func TestSharedCmd(t *testing.T) {
	code, out, eout := runCmd(t, "shared", "--lo=1", "--hi=3", "--drop=7")
	assert.Equal(t, mainer.Success, code)
	assert.Empty(t, eout)
	filetest.DiffGolden(t, "shared.want", out, "testdata", testUpdateCmdTests)
}

func TestUnsharedCmd(t *testing.T) {
	code, out, eout := runCmd(t, "unshared", "--lo=1", "--hi=3", "--drop=7")
	assert.Equal(t, mainer.Success, code)
	assert.Empty(t, eout)
	filetest.DiffGolden(t, "unshared.want", out, "testdata", testUpdateCmdTests)
}

var rxLive = regexp.MustCompile(`cells live:\s+(\d+)`)

func liveCount(t *testing.T, out string) int {
	t.Helper()
	m := rxLive.FindStringSubmatch(out)
	require.NotNil(t, m, "no live-cell line in output:\n%s", out)
	n, err := strconv.Atoi(m[1])
	require.NoError(t, err)
	return n
}

func TestStatsRetention(t *testing.T) {
	code, out, _ := runCmd(t, "shared", "--lo=1", "--hi=10", "--drop=100", "--stats")
	require.Equal(t, mainer.Success, code)
	assert.GreaterOrEqual(t, liveCount(t, out), 100, "sharing retains at least one cell per produced element")

	code, out, _ = runCmd(t, "unshared", "--lo=1", "--hi=10", "--drop=100", "--stats")
	require.Equal(t, mainer.Success, code)
	assert.LessOrEqual(t, liveCount(t, out), 20, "re-evaluation keeps retention bounded")
}

func TestTraceCmd(t *testing.T) {
	code, out, eout := runCmd(t, "trace", "--lo=1", "--hi=5", "--drop=40", "--every=5")
	require.Equal(t, mainer.Success, code)
	assert.Empty(t, eout)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Equal(t, "drop\tshared\tunshared", lines[0])
	require.Len(t, lines, 10) // header + drops 0,5,...,40

	prevShared := -1
	for _, line := range lines[1:] {
		fields := strings.Split(line, "\t")
		require.Len(t, fields, 3)
		shared, err := strconv.Atoi(fields[1])
		require.NoError(t, err)
		unshared, err := strconv.Atoi(fields[2])
		require.NoError(t, err)

		assert.Greater(t, shared, prevShared, "shared retention must keep growing")
		prevShared = shared
		assert.LessOrEqual(t, unshared, 20, "unshared retention must stay bounded")
	}
	assert.GreaterOrEqual(t, prevShared, 40, "shared retention after the full drop")
}

func TestEmptyRangeFails(t *testing.T) {
	code, _, eout := runCmd(t, "shared", "--lo=2", "--hi=1")
	assert.Equal(t, mainer.Failure, code)
	assert.Contains(t, eout, "empty sequence")
}

func TestUnknownCommand(t *testing.T) {
	code, _, eout := runCmd(t, "nope")
	assert.Equal(t, mainer.InvalidArgs, code)
	assert.Contains(t, eout, "unknown command")
}

func TestInvalidFlagForCommand(t *testing.T) {
	code, _, eout := runCmd(t, "shared", "--every=3")
	assert.Equal(t, mainer.InvalidArgs, code)
	assert.Contains(t, eout, "invalid flag")

	code, _, eout = runCmd(t, "trace", "--stats")
	assert.Equal(t, mainer.InvalidArgs, code)
	assert.Contains(t, eout, "invalid flag")
}

func TestHelp(t *testing.T) {
	code, out, _ := runCmd(t, "--help")
	assert.Equal(t, mainer.Success, code)
	assert.Contains(t, out, "usage: lemna")
}
