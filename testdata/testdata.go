// Package testdata embeds the acceptance test fixtures. Each case directory
// is named NNN_description_ok or NNN_description_err and holds input.sql plus
// either expected.json (the extracted tables) or error.txt (the error message).
package testdata

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"strings"
)

//go:embed acceptancetests/*/*.sql acceptancetests/*/*.json acceptancetests/*/*.txt
var AcceptanceTests embed.FS

var caseDirPattern = regexp.MustCompile(`^[0-9]{3}_.+_(ok|err)$`)

// AcceptanceCaseDirs returns the acceptance case directories in name order
func AcceptanceCaseDirs() ([]string, error) {
	entries, err := fs.ReadDir(AcceptanceTests, "acceptancetests")
	if err != nil {
		return nil, fmt.Errorf("failed to read acceptancetests directory: %w", err)
	}

	var dirs []string

	for _, entry := range entries {
		if entry.IsDir() && caseDirPattern.MatchString(entry.Name()) {
			dirs = append(dirs, path.Join("acceptancetests", entry.Name()))
		}
	}

	return dirs, nil
}

// ReadCaseFile reads a file of an acceptance case directory
func ReadCaseFile(dir, name string) ([]byte, error) {
	return fs.ReadFile(AcceptanceTests, path.Join(dir, name))
}

// IsErrorCase reports whether the case expects the conversion to fail
func IsErrorCase(dir string) bool {
	return strings.HasSuffix(path.Base(dir), "_err")
}
