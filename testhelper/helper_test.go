package testhelper

import (
	"os"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestTrimIndent(t *testing.T) {
	src := TrimIndent(t, `
		CREATE TABLE t (
			id INT
		);
		`)

	assert.Equal(t, "CREATE TABLE t (\n    id INT\n);\n", src)
}

func TestWriteFile(t *testing.T) {
	path := WriteFile(t, "schema.sql", "CREATE TABLE t (id INT);")

	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "CREATE TABLE t (id INT);", string(data))
}

func TestGetCaller(t *testing.T) {
	caller := GetCaller(t)
	assert.True(t, strings.HasPrefix(caller, "(helper_test.go:"))
}
