package permissions

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/permproof/permproof/pkg/errors"
)

func writeTable(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "permissions.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	table := Default()
	require.NotEmpty(t, table)

	for _, perm := range table {
		assert.NotEmpty(t, perm.Actions)
		assert.NotEmpty(t, perm.Resource)
	}
}

func TestLoadTable(t *testing.T) {
	path := writeTable(t, `
permissions:
  - actions:
      - s3:GetObject
      - s3:PutObject
    resource: "arn:aws:s3:::deploy-artifacts/*"
  - actions:
      - lambda:InvokeFunction
    resource: "*"
`)

	table, err := LoadTable(path)
	require.NoError(t, err)
	require.Len(t, table, 2)

	assert.Equal(t, []string{"s3:GetObject", "s3:PutObject"}, table[0].Actions)
	assert.Equal(t, "arn:aws:s3:::deploy-artifacts/*", table[0].Resource)
	assert.Equal(t, "*", table[1].Resource)
}

func TestLoadTable_MissingFile(t *testing.T) {
	_, err := LoadTable(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Equal(t, errors.ErrConfigLoadFailed, errors.GetCode(err))
}

func TestLoadTable_InvalidYAML(t *testing.T) {
	path := writeTable(t, "permissions: [broken")

	_, err := LoadTable(path)
	require.Error(t, err)
	assert.Equal(t, errors.ErrConfigInvalid, errors.GetCode(err))
}

func TestLoadTable_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "empty document",
			content: "",
		},
		{
			name:    "no permissions",
			content: "permissions: []",
		},
		{
			name: "entry without actions",
			content: `
permissions:
  - resource: "*"
`,
		},
		{
			name: "entry without resource",
			content: `
permissions:
  - actions:
      - s3:GetObject
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTable(t, tt.content)

			_, err := LoadTable(path)
			require.Error(t, err)
			assert.Equal(t, errors.ErrValidationFailed, errors.GetCode(err))
		})
	}
}
