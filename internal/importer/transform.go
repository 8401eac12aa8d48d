package importer

import (
	"strings"

	"github.com/kolah/oacollect/internal/collection"
	"github.com/kolah/oacollect/internal/document"
	"github.com/kolah/oacollect/internal/schema"
	"github.com/kolah/oacollect/internal/security"
)

// Operation is one (path, method) pair of the document together with the
// document-wide context its transformation needs.
type Operation struct {
	Method string
	Path   string
	Object *document.Node
	Global Global
}

type Global struct {
	Server   string
	Security *security.Config
}

// Placeholder credentials written into generated auth settings.
const (
	placeholderUsername = "{{username}}"
	placeholderPassword = "{{password}}"
	placeholderToken    = "{{token}}"
	placeholderAPIKey   = "{{apiKey}}"
)

const (
	mediaJSON      = "application/json"
	mediaForm      = "application/x-www-form-urlencoded"
	mediaMultipart = "multipart/form-data"
	mediaText      = "text/plain"
	mediaXML       = "text/xml"
)

func (op Operation) name() string {
	obj := op.Object
	for _, key := range []string{"summary", "operationId", "description"} {
		if v := obj.Get(key).Text(); v != "" {
			return v
		}
	}
	return op.Method + " " + op.Path
}

func (im *Importer) transformOperation(op Operation) (collection.Item, error) {
	path := templatePath(op.Path)

	req := &collection.Request{
		URL:     ensureURL(op.Global.Server + path),
		Method:  strings.ToUpper(op.Method),
		Auth:    collection.Auth{Mode: collection.AuthModeNone},
		Headers: []collection.KeyValue{},
		Params:  []collection.Param{},
		Body: collection.Body{
			Mode:           collection.BodyModeNone,
			FormURLEncoded: []collection.KeyValue{},
			MultipartForm:  []collection.MultipartField{},
		},
	}

	for _, name := range pathParamNames(path) {
		req.Params = append(req.Params, collection.Param{
			UID:     im.newUID(),
			Name:    name,
			Enabled: true,
			Type:    collection.ParamTypePath,
		})
	}

	im.applyParameters(req, op.Object.Get("parameters"))
	im.applyAuth(req, op.Global.Security.ForOperation(op.Object.Get("security")))
	if err := im.applyBody(req, op.Object.Get("requestBody")); err != nil {
		return collection.Item{}, err
	}
	if script := linkScript(op.Object.Get("responses")); script != "" {
		req.Script = &collection.Script{Res: script}
	}

	return collection.Item{
		UID:     im.newUID(),
		Name:    op.name(),
		Type:    collection.ItemTypeHTTPRequest,
		Request: req,
	}, nil
}

func (im *Importer) applyParameters(req *collection.Request, params *document.Node) {
	for _, p := range params.Elems() {
		switch p.Get("in").Text() {
		case "query":
			req.Params = append(req.Params, collection.Param{
				UID:         im.newUID(),
				Name:        p.Get("name").Text(),
				Description: p.Get("description").Text(),
				Enabled:     p.Get("required").Bool(),
				Type:        collection.ParamTypeQuery,
			})
		case "header":
			req.Headers = append(req.Headers, collection.KeyValue{
				UID:         im.newUID(),
				Name:        p.Get("name").Text(),
				Description: p.Get("description").Text(),
				Enabled:     p.Get("required").Bool(),
			})
		}
	}
}

func (im *Importer) applyAuth(req *collection.Request, s *security.Scheme) {
	switch {
	case s.IsBasic():
		req.Auth.Mode = collection.AuthModeBasic
		req.Auth.Basic = &collection.BasicAuth{Username: placeholderUsername, Password: placeholderPassword}
	case s.IsBearer():
		req.Auth.Mode = collection.AuthModeBearer
		req.Auth.Bearer = &collection.BearerAuth{Token: placeholderToken}
	case s.IsHeaderAPIKey():
		req.Headers = append(req.Headers, collection.KeyValue{
			UID:         im.newUID(),
			Name:        s.ParamName,
			Value:       placeholderAPIKey,
			Description: "Authentication header",
			Enabled:     true,
		})
	}
}

func (im *Importer) applyBody(req *collection.Request, requestBody *document.Node) error {
	if requestBody.IsNull() {
		return nil
	}

	mediaType, media, _ := requestBody.Get("content").First()
	bodySchema := schema.FromNode(media.Get("schema"))
	body := &req.Body

	switch mediaType {
	case mediaJSON:
		body.Mode = collection.BodyModeJSON
		text, ok, err := schema.EmptyBodyText(bodySchema)
		if err != nil {
			return err
		}
		if ok {
			body.JSON = &text
		}
	case mediaForm:
		body.Mode = collection.BodyModeFormURLEncoded
		for _, prop := range objectProperties(bodySchema) {
			body.FormURLEncoded = append(body.FormURLEncoded, collection.KeyValue{
				UID:         im.newUID(),
				Name:        prop.Name,
				Description: description(prop.Schema),
				Enabled:     true,
			})
		}
	case mediaMultipart:
		body.Mode = collection.BodyModeMultipartForm
		for _, prop := range objectProperties(bodySchema) {
			body.MultipartForm = append(body.MultipartForm, collection.MultipartField{
				UID:         im.newUID(),
				Type:        "text",
				Name:        prop.Name,
				Description: description(prop.Schema),
				Enabled:     true,
			})
		}
	case mediaText:
		body.Mode = collection.BodyModeText
		body.Text = new(string)
	case mediaXML:
		body.Mode = collection.BodyModeXML
		body.XML = new(string)
	}
	return nil
}

func objectProperties(s *schema.Schema) []schema.Property {
	if s == nil || s.Kind != schema.KindObject {
		return nil
	}
	return s.Properties
}

func description(s *schema.Schema) string {
	if s == nil {
		return ""
	}
	return s.Description
}
