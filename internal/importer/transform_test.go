package importer

import (
	"testing"

	"github.com/kolah/oacollect/internal/collection"
	"github.com/kolah/oacollect/internal/security"
	"github.com/stretchr/testify/require"
)

func TestEnsureURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a///b", "a/b"},
		{"https://example.com//v1", "https://example.com/v1"},
		{"{{baseUrl}}//foo///bar", "{{baseUrl}}/foo/bar"},
		{"{{baseUrl}}/pets", "{{baseUrl}}/pets"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, ensureURL(tt.in))
		})
	}
}

func TestTemplatePath(t *testing.T) {
	require.Equal(t, "/users/:id/posts/:postId", templatePath("/users/{id}/posts/{postId}"))
	require.Equal(t, "/report.{format}x", templatePath("/report.{format}x"))
	require.Equal(t, []string{"id", "postId"}, pathParamNames("/users/:id/posts/:postId"))
	require.Empty(t, pathParamNames("/users"))
}

func TestServerURL(t *testing.T) {
	tests := []struct {
		name   string
		server string
		want   string
	}{
		{"plain", `{"url": "https://api.example.com/"}`, "https://api.example.com"},
		{"default", `{"url": "https://{env}.example.com", "variables": {"env": {"default": "prod"}}}`, "https://prod.example.com"},
		{"enum", `{"url": "https://{env}.example.com", "variables": {"env": {"enum": ["staging", "prod"]}}}`, "https://staging.example.com"},
		{"placeholder", `{"url": "https://{env}.example.com", "variables": {"env": {}}}`, "https://{{env}}.example.com"},
		{"first occurrence only", `{"url": "https://{v}/{v}", "variables": {"v": {"default": "x"}}}`, "https://x/{v}"},
		{"single trailing slash", `{"url": "https://api.example.com//"}`, "https://api.example.com/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, serverURL(decode(t, tt.server)))
		})
	}
}

func TestRuntimeExpressionToScript(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"$response.body", "res.body"},
		{"$response.body#/id", "res.body.id"},
		{"$response.body#/data/items", "res.body.data/items"},
		{"$response.header.Location", "$response.header.Location"},
		{"$request.path.id", "$request.path.id"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, runtimeExpressionToScript(tt.in))
		})
	}
}

func TestLinkScript(t *testing.T) {
	responses := decode(t, `
"200":
  links:
    Self:
      operationId: getUser
      parameters:
        id: $response.body#/id
"404":
  description: missing
"201":
  links: {}
`)
	require.Equal(t, "if (res.status === 200) {\n"+
		"  bru.setVar('getUser_id', res.body.id);\n"+
		"}\n"+
		"if (res.status === 201) {\n"+
		"}", linkScript(responses))

	require.Empty(t, linkScript(decode(t, `{"200": {"description": "ok"}}`)))
	require.Empty(t, linkScript(nil))
}

func TestOperationName(t *testing.T) {
	tests := []struct {
		name string
		op   string
		want string
	}{
		{"summary", `{"summary": "S", "operationId": "o", "description": "d"}`, "S"},
		{"operation id", `{"operationId": "o", "description": "d"}`, "o"},
		{"description", `{"description": "d"}`, "d"},
		{"method and path", `{}`, "get /pets"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op := Operation{Method: "get", Path: "/pets", Object: decode(t, tt.op)}
			require.Equal(t, tt.want, op.name())
		})
	}
}

func TestTransformOperationAuth(t *testing.T) {
	schemes := decode(t, `
components:
  securitySchemes:
    basic: {type: http, scheme: Basic}
    bearer: {type: http, scheme: bearer}
    key: {type: apiKey, in: header, name: X-Key}
    queryKey: {type: apiKey, in: query, name: key}
    oauth: {type: oauth2}
security:
  - bearer: []
`)
	global := Global{Server: "{{baseUrl}}", Security: security.FromDocument(schemes)}

	tests := []struct {
		name       string
		op         string
		wantMode   collection.AuthMode
		wantHeader string
	}{
		{"global fallback", `{}`, collection.AuthModeBearer, ""},
		{"empty security falls back", `{"security": []}`, collection.AuthModeBearer, ""},
		{"basic", `{"security": [{"basic": []}]}`, collection.AuthModeBasic, ""},
		{"header api key", `{"security": [{"key": []}]}`, collection.AuthModeNone, "X-Key"},
		{"query api key", `{"security": [{"queryKey": []}]}`, collection.AuthModeNone, ""},
		{"oauth2", `{"security": [{"oauth": []}]}`, collection.AuthModeNone, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			im := newTestImporter()
			item, err := im.transformOperation(Operation{Method: "get", Path: "/x", Object: decode(t, tt.op), Global: global})
			require.NoError(t, err)
			require.Equal(t, tt.wantMode, item.Request.Auth.Mode)
			if tt.wantHeader == "" {
				require.Empty(t, item.Request.Headers)
				return
			}
			require.Len(t, item.Request.Headers, 1)
			require.Equal(t, tt.wantHeader, item.Request.Headers[0].Name)
			require.Equal(t, "{{apiKey}}", item.Request.Headers[0].Value)
		})
	}
}

func TestTransformOperationBody(t *testing.T) {
	objectSchema := `{"type": "object", "properties": {"name": {"type": "string", "description": "pet name"}, "photo": {"type": "string"}}}`

	tests := []struct {
		name string
		body string
		want func(t *testing.T, body collection.Body)
	}{
		{
			name: "no body",
			body: ``,
			want: func(t *testing.T, body collection.Body) {
				require.Equal(t, collection.BodyModeNone, body.Mode)
				require.Nil(t, body.JSON)
			},
		},
		{
			name: "json object",
			body: `{"content": {"application/json": {"schema": ` + objectSchema + `}}}`,
			want: func(t *testing.T, body collection.Body) {
				require.Equal(t, collection.BodyModeJSON, body.Mode)
				require.Equal(t, "{\n  \"name\": \"\",\n  \"photo\": \"\"\n}", *body.JSON)
			},
		},
		{
			name: "json array of scalars",
			body: `{"content": {"application/json": {"schema": {"type": "array", "items": {"type": "string"}}}}}`,
			want: func(t *testing.T, body collection.Body) {
				require.Equal(t, "[\n  {}\n]", *body.JSON)
			},
		},
		{
			name: "json scalar",
			body: `{"content": {"application/json": {"schema": {"type": "string"}}}}`,
			want: func(t *testing.T, body collection.Body) {
				require.Equal(t, collection.BodyModeJSON, body.Mode)
				require.Nil(t, body.JSON)
			},
		},
		{
			name: "form",
			body: `{"content": {"application/x-www-form-urlencoded": {"schema": ` + objectSchema + `}}}`,
			want: func(t *testing.T, body collection.Body) {
				require.Equal(t, collection.BodyModeFormURLEncoded, body.Mode)
				require.Len(t, body.FormURLEncoded, 2)
				require.Equal(t, "name", body.FormURLEncoded[0].Name)
				require.Equal(t, "pet name", body.FormURLEncoded[0].Description)
				require.True(t, body.FormURLEncoded[0].Enabled)
			},
		},
		{
			name: "multipart",
			body: `{"content": {"multipart/form-data": {"schema": ` + objectSchema + `}}}`,
			want: func(t *testing.T, body collection.Body) {
				require.Equal(t, collection.BodyModeMultipartForm, body.Mode)
				require.Len(t, body.MultipartForm, 2)
				require.Equal(t, "text", body.MultipartForm[1].Type)
				require.Equal(t, "photo", body.MultipartForm[1].Name)
			},
		},
		{
			name: "form with non-object schema",
			body: `{"content": {"application/x-www-form-urlencoded": {"schema": {"type": "string"}}}}`,
			want: func(t *testing.T, body collection.Body) {
				require.Equal(t, collection.BodyModeFormURLEncoded, body.Mode)
				require.Empty(t, body.FormURLEncoded)
			},
		},
		{
			name: "text",
			body: `{"content": {"text/plain": {}}}`,
			want: func(t *testing.T, body collection.Body) {
				require.Equal(t, collection.BodyModeText, body.Mode)
				require.Equal(t, "", *body.Text)
			},
		},
		{
			name: "xml",
			body: `{"content": {"text/xml": {}}}`,
			want: func(t *testing.T, body collection.Body) {
				require.Equal(t, collection.BodyModeXML, body.Mode)
				require.Equal(t, "", *body.XML)
			},
		},
		{
			name: "first media type wins",
			body: `{"content": {"text/plain": {}, "application/json": {"schema": ` + objectSchema + `}}}`,
			want: func(t *testing.T, body collection.Body) {
				require.Equal(t, collection.BodyModeText, body.Mode)
			},
		},
		{
			name: "unknown media type",
			body: `{"content": {"application/octet-stream": {}}}`,
			want: func(t *testing.T, body collection.Body) {
				require.Equal(t, collection.BodyModeNone, body.Mode)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op := `{}`
			if tt.body != "" {
				op = `{"requestBody": ` + tt.body + `}`
			}
			item, err := newTestImporter().transformOperation(Operation{Method: "post", Path: "/pets", Object: decode(t, op), Global: Global{Server: "{{baseUrl}}"}})
			require.NoError(t, err)
			tt.want(t, item.Request.Body)
		})
	}
}

func TestTransformOperationRequest(t *testing.T) {
	op := decode(t, `
parameters:
  - {name: q, in: query, required: true}
  - {name: X-Flag, in: header, required: "true"}
  - {name: session, in: cookie}
  - {name: id, in: path, required: true}
`)
	item, err := newTestImporter().transformOperation(Operation{Method: "delete", Path: "//users/{id}", Object: op, Global: Global{Server: "{{baseUrl}}"}})
	require.NoError(t, err)

	req := item.Request
	require.Equal(t, collection.ItemTypeHTTPRequest, item.Type)
	require.Equal(t, "{{baseUrl}}/users/:id", req.URL)
	require.Equal(t, "DELETE", req.Method)
	require.Equal(t, []string{"id", "q"}, []string{req.Params[0].Name, req.Params[1].Name})
	require.Equal(t, collection.ParamTypePath, req.Params[0].Type)
	require.Equal(t, collection.ParamTypeQuery, req.Params[1].Type)
	require.Len(t, req.Params, 2)
	require.Len(t, req.Headers, 1)
	require.False(t, req.Headers[0].Enabled)
	require.Nil(t, req.Script)
}
