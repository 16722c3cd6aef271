package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kafka-go-streams/stringslice"
	"github.com/kafka-go-streams/stringslice/table"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func printLines(t *testing.T, opts options, in string) string {
	var out bytes.Buffer
	p, err := newPrinter(&out, &flags{})
	require.NoError(t, err)
	p.opts = opts
	stringslice.SplitLines(stringslice.FromString(in), p.print)
	require.NoError(t, p.flush())
	return out.String()
}

func TestPrinter(t *testing.T) {
	in := "  alpha,1\r\n\r\nbeta,2\ngamma"
	tests := []struct {
		name string
		opts options
		want string
	}{
		{"plain", options{}, "  alpha,1\r\n\r\nbeta,2\ngamma\n"},
		{"strip", options{strip: true}, "alpha,1\n\nbeta,2\ngamma\n"},
		{"skip empty", options{strip: true, skipEmpty: true}, "alpha,1\nbeta,2\ngamma\n"},
		{"field", options{strip: true, hasField: true, field: ','}, "alpha\n\nbeta\ngamma\n"},
		{"number", options{skipEmpty: true, number: true}, "     1\t  alpha,1\r\n     2\tbeta,2\n     3\tgamma\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, printLines(t, tt.opts, in))
		})
	}
}

func TestNewPrinterRejectsLongField(t *testing.T) {
	_, err := newPrinter(&bytes.Buffer{}, &flags{field: "ab"})
	assert.Error(t, err)
}

// execute runs slicecat with args and returns stdout, stderr and the error.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(log.New())
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCommandFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte("key=one\r\n\r\n  key=two\n"), 0644))

	stdout, _, err := execute(t, "", "--strip", "--skip-empty", "--field", "=", "-n", path)
	require.NoError(t, err)
	assert.Equal(t, "     1\tkey\n     2\tkey\n", stdout)
}

func TestRootCommandStdin(t *testing.T) {
	stdout, _, err := execute(t, "test\r\nstuff\r\nyep", "--strip")
	require.NoError(t, err)
	assert.Equal(t, "test\nstuff\nyep\n", stdout)

	stdout, _, err = execute(t, "a\nb\n", "-")
	require.NoError(t, err)
	assert.Equal(t, "a\nb\n", stdout)
}

func TestRootCommandMissingFile(t *testing.T) {
	_, stderr, err := execute(t, "", filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
	assert.NotContains(t, stderr, "Error:")
}

func TestDBCommand(t *testing.T) {
	dir := t.TempDir()
	store, err := table.NewStore(&table.StoreConfig{StoragePath: dir})
	require.NoError(t, err)
	require.NoError(t, store.Put([]byte("doc"), []byte(" first \r\n\r\nsecond\n")))
	store.Close()

	stdout, _, err := execute(t, "", "db", "--path", dir, "--key", "doc", "--strip", "--skip-empty")
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\n", stdout)

	_, _, err = execute(t, "", "db", "--path", dir, "--key", "nope")
	assert.ErrorIs(t, err, table.ErrNotFound)
}

func TestDBCommandRequiresKey(t *testing.T) {
	_, _, err := execute(t, "", "db", "--path", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "key" not set`)
}
