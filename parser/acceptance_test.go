package parser

import (
	"encoding/json"
	"path"
	"strings"
	"testing"

	"github.com/shibukawa/tsqlschema"
	"github.com/shibukawa/tsqlschema/testdata"
	"github.com/stretchr/testify/require"
)

func TestAcceptance(t *testing.T) {
	dirs, err := testdata.AcceptanceCaseDirs()
	require.NoError(t, err)
	require.NotEmpty(t, dirs)

	for _, dir := range dirs {
		t.Run(path.Base(dir), func(t *testing.T) {
			input, err := testdata.ReadCaseFile(dir, "input.sql")
			require.NoError(t, err)

			results, err := ConvertToMetadata(string(input), DefaultOptions)

			if testdata.IsErrorCase(dir) {
				expected, readErr := testdata.ReadCaseFile(dir, "error.txt")
				require.NoError(t, readErr)
				require.Error(t, err)
				require.Equal(t, strings.TrimSpace(string(expected)), err.Error())

				return
			}

			require.NoError(t, err)

			tables := make([]*tsqlschema.TableMetadata, 0, len(results))
			for _, result := range results {
				tables = append(tables, result.Table)
			}

			actual, err := json.Marshal(tables)
			require.NoError(t, err)

			expected, err := testdata.ReadCaseFile(dir, "expected.json")
			require.NoError(t, err)
			require.JSONEq(t, string(expected), string(actual))
		})
	}
}
