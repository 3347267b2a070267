package cmd

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vardr/utmp/pkg/codec"
)

// writeFixture creates an x32 wtmp file holding a boot record, three
// session records and one corrupt record in the middle.
func writeFixture(t *testing.T) string {
	t.Helper()
	tmpDir, err := os.MkdirTemp("", "vardr_cmd_test")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	boot := codec.Entry{Type: codec.BootTime, TimeSec: 1000}
	copy(boot.Host[:], "6.8.0-generic")

	alice := codec.Entry{Type: codec.UserProcess, Pid: 2555, TimeSec: 2000}
	copy(alice.User[:], "alice")
	copy(alice.Line[:], "pts/0")
	copy(alice.Host[:], "example.org")

	bob := codec.Entry{Type: codec.UserProcess, Pid: 2666, TimeSec: 3000}
	copy(bob.User[:], "bob")
	copy(bob.Line[:], "tty3")

	logout := codec.Entry{Type: codec.DeadProcess, Pid: 2555, TimeSec: 4000}
	copy(logout.Line[:], "pts/0")

	corrupt := make([]byte, codec.Layout32.Size)
	binary.NativeEndian.PutUint16(corrupt, 99)

	var buf bytes.Buffer
	for _, e := range []codec.Entry{boot, alice, bob} {
		block, err := codec.Layout32.Encode(e)
		require.NoError(t, err)
		buf.Write(block)
	}
	buf.Write(corrupt)
	block, err := codec.Layout32.Encode(logout)
	require.NoError(t, err)
	buf.Write(block)

	path := filepath.Join(tmpDir, "wtmp")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0600))
	return path
}

// resetFlags restores flag-bound variables between Execute calls,
// which reuse the same command tree.
func resetFlags() {
	flagConfig = ""
	flagLayout = ""
	flagDumpMatch = nil
	flagDumpJSON = false
	flagDumpQuery = ""
	flagLastUser = ""
	flagLastLimit = 0
}

func runCommand(t *testing.T, args ...string) string {
	t.Helper()
	resetFlags()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return buf.String()
}

func TestDumpCommand(t *testing.T) {
	path := writeFixture(t)

	out := runCommand(t, "dump", "--layout", "x32", path)
	assert.Contains(t, out, "USER_PROCESS")
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "bob")
	// The corrupt record is skipped, not fatal, and its neighbor
	// still decodes.
	assert.Contains(t, out, "DEAD_PROCESS")
}

func TestDumpCommand_Match(t *testing.T) {
	path := writeFixture(t)

	out := runCommand(t, "dump", "--layout", "x32", "--match", "user=alice", path)
	assert.Contains(t, out, "alice")
	assert.NotContains(t, out, "bob")
}

func TestDumpCommand_JSON(t *testing.T) {
	path := writeFixture(t)

	out := runCommand(t, "dump", "--layout", "x32", "--json", path)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)

	var first entryJSON
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "BOOT_TIME", first.Type)
	assert.Equal(t, "6.8.0-generic", first.Host)
}

func TestDumpCommand_Query(t *testing.T) {
	path := writeFixture(t)

	out := runCommand(t, "dump", "--layout", "x32", "--query", ".user", path)
	assert.Contains(t, out, `"alice"`)
	assert.Contains(t, out, `"bob"`)
	assert.NotContains(t, out, "example.org")
}

func TestWhoCommand(t *testing.T) {
	path := writeFixture(t)

	out := runCommand(t, "who", "--layout", "x32", path)
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "pts/0")
	// Only active sessions: no boot or dead-process rows.
	assert.NotContains(t, out, "reboot")
	assert.NotContains(t, out, "DEAD_PROCESS")
}

func TestLastCommand(t *testing.T) {
	path := writeFixture(t)

	out := runCommand(t, "last", "--layout", "x32", path)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	// Newest first: the logout at sec 4000 leads, the boot trails.
	assert.Contains(t, lines[0], "(logout)")
	assert.Contains(t, lines[3], "reboot")

	out = runCommand(t, "last", "--layout", "x32", "--user", "bob", path)
	assert.Contains(t, out, "bob")
	assert.NotContains(t, out, "alice")
	assert.NotContains(t, out, "reboot")
}
