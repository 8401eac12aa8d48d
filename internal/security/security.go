// Package security extracts authentication scheme definitions from a
// resolved OpenAPI document.
package security

import (
	"strings"

	"github.com/kolah/oacollect/internal/document"
)

type SchemeType string

const (
	TypeAPIKey        SchemeType = "apiKey"
	TypeHTTP          SchemeType = "http"
	TypeOAuth2        SchemeType = "oauth2"
	TypeOpenIDConnect SchemeType = "openIdConnect"
	TypeMutualTLS     SchemeType = "mutualTLS"
)

type Scheme struct {
	Name         string
	Type         SchemeType
	Description  string
	In           string
	ParamName    string // apiKey parameter name
	Scheme       string // http auth scheme, lower-cased
	BearerFormat string
}

func (s *Scheme) IsBasic() bool {
	return s != nil && s.Type == TypeHTTP && s.Scheme == "basic"
}

func (s *Scheme) IsBearer() bool {
	return s != nil && s.Type == TypeHTTP && s.Scheme == "bearer"
}

func (s *Scheme) IsHeaderAPIKey() bool {
	return s != nil && s.Type == TypeAPIKey && s.In == "header"
}

// Config is the document-wide security context.
type Config struct {
	// Supported lists, in order, the scheme named by the first key of each
	// root security requirement. Entries are nil when the requirement names
	// an undefined scheme or is empty.
	Supported []*Scheme
	// Schemes is nil when the document defines no security schemes.
	Schemes map[string]*Scheme
}

// FromDocument builds the security context of a resolved document.
func FromDocument(doc *document.Node) *Config {
	defs := doc.Lookup("components", "securitySchemes")
	if defs.Len() == 0 || !defs.IsMapping() {
		return &Config{Supported: []*Scheme{}}
	}

	cfg := &Config{
		Supported: []*Scheme{},
		Schemes:   make(map[string]*Scheme, defs.Len()),
	}
	for name, def := range defs.Fields() {
		if s := schemeFromNode(name, def); s != nil {
			cfg.Schemes[name] = s
		}
	}

	for _, req := range doc.Get("security").Elems() {
		name, _, _ := req.First()
		cfg.Supported = append(cfg.Supported, cfg.Schemes[name])
	}
	return cfg
}

func (c *Config) GetScheme(name string) (*Scheme, bool) {
	if c == nil || c.Schemes == nil {
		return nil, false
	}
	s, ok := c.Schemes[name]
	return s, ok
}

// ForOperation picks the scheme for an operation: the first requirement of
// the operation's own security list when it has one, else the document's
// first supported scheme. The result may be nil.
func (c *Config) ForOperation(opSecurity *document.Node) *Scheme {
	if c == nil {
		return nil
	}
	if reqs := opSecurity.Elems(); len(reqs) > 0 {
		name, _, _ := reqs[0].First()
		s, _ := c.GetScheme(name)
		return s
	}
	if len(c.Supported) > 0 {
		return c.Supported[0]
	}
	return nil
}

func schemeFromNode(name string, n *document.Node) *Scheme {
	if !n.IsMapping() {
		return nil
	}
	return &Scheme{
		Name:         name,
		Type:         SchemeType(n.Get("type").Text()),
		Description:  n.Get("description").Text(),
		In:           n.Get("in").Text(),
		ParamName:    n.Get("name").Text(),
		Scheme:       strings.ToLower(n.Get("scheme").Text()),
		BearerFormat: n.Get("bearerFormat").Text(),
	}
}
