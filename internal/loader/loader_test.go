package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const minimalSpec = `openapi: 3.1.0
info:
  title: Minimal
  version: 1.0.0
paths:
  /pets:
    get:
      responses:
        "200":
          description: ok
    post:
      responses:
        "201":
          description: created
  /pets/{id}:
    get:
      parameters:
        - name: id
          in: path
          required: true
          schema:
            type: string
      responses:
        "200":
          description: ok
components:
  schemas:
    Pet:
      type: object
`

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "api.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimalSpec), 0o644))

	result, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, path, result.Path)
	require.Equal(t, []byte(minimalSpec), result.RawData)
	require.Equal(t, "Minimal", result.Document.Lookup("info", "title").Text())
	require.Equal(t, []string{"/pets", "/pets/{id}"}, result.Document.Get("paths").Keys())
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "reading spec file")
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{"json", `{"openapi": "3.0.0", "paths": {}}`, false},
		{"yaml", "openapi: 3.0.0\npaths: {}\n", false},
		{"invalid", "openapi: [unclosed", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Load([]byte(tt.data))
			if tt.wantErr {
				require.Error(t, err)
				require.Contains(t, err.Error(), "parsing OpenAPI document")
				return
			}
			require.NoError(t, err)
			require.Equal(t, "3.0.0", result.Document.Get("openapi").Text())
			require.Empty(t, result.Path)
		})
	}
}

func TestInspect(t *testing.T) {
	report, err := Inspect([]byte(minimalSpec))
	require.NoError(t, err)

	require.Equal(t, "3.1.0", report.Version)
	require.Equal(t, "Minimal", report.Title)
	require.Equal(t, 2, report.Paths)
	require.Equal(t, 3, report.Operations)
	require.Equal(t, 1, report.Schemas)
	require.Empty(t, report.Warnings)
	require.True(t, report.Valid(), "unexpected issues: %v", report.Issues)
}

func TestInspectWarnsOn30(t *testing.T) {
	spec := `openapi: 3.0.3
info:
  title: Old
  version: 1.0.0
paths: {}
`
	report, err := Inspect([]byte(spec))
	require.NoError(t, err)
	require.Equal(t, "3.0.3", report.Version)
	require.Len(t, report.Warnings, 1)
	require.Contains(t, report.Warnings[0], "3.0.x")
}

func TestInspectRejectsSwagger(t *testing.T) {
	spec := `swagger: "2.0"
info:
  title: Legacy
  version: 1.0.0
paths: {}
`
	report, err := Inspect([]byte(spec))
	require.NoError(t, err)
	require.False(t, report.Valid())
	require.Contains(t, report.Issues[0].Message, "unsupported OpenAPI version")
}

func TestInspectInvalidDocument(t *testing.T) {
	spec := `openapi: 3.1.0
info:
  version: 1.0.0
paths:
  /pets:
    get:
      responses:
        "200":
          description: ok
`
	report, err := Inspect([]byte(spec))
	require.NoError(t, err)
	require.False(t, report.Valid())
}

func TestInspectResultUsesFileLocation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "api.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimalSpec), 0o644))

	result, err := LoadFile(path)
	require.NoError(t, err)

	report, err := InspectResult(result)
	require.NoError(t, err)
	require.Equal(t, 3, report.Operations)
}

func TestIssueString(t *testing.T) {
	require.Equal(t, "msg", Issue{Message: "msg"}.String())
	require.Equal(t, "3:7: msg: why", Issue{Message: "msg", Reason: "why", Line: 3, Column: 7}.String())
}
