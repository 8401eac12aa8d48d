// Package collection defines the request collection document produced by
// the importer.
package collection

type ItemType string

const (
	ItemTypeFolder      ItemType = "folder"
	ItemTypeHTTPRequest ItemType = "http-request"
)

type AuthMode string

const (
	AuthModeNone   AuthMode = "none"
	AuthModeBasic  AuthMode = "basic"
	AuthModeBearer AuthMode = "bearer"
	AuthModeDigest AuthMode = "digest"
)

type BodyMode string

const (
	BodyModeNone           BodyMode = "none"
	BodyModeJSON           BodyMode = "json"
	BodyModeText           BodyMode = "text"
	BodyModeXML            BodyMode = "xml"
	BodyModeFormURLEncoded BodyMode = "formUrlEncoded"
	BodyModeMultipartForm  BodyMode = "multipartForm"
)

const (
	ParamTypeQuery = "query"
	ParamTypePath  = "path"
)

// Version is the collection format version written by this importer.
const Version = "1"

type Collection struct {
	Name         string        `json:"name" yaml:"name"`
	UID          string        `json:"uid" yaml:"uid"`
	Version      string        `json:"version" yaml:"version"`
	Items        []Item        `json:"items" yaml:"items"`
	Environments []Environment `json:"environments" yaml:"environments"`
}

// Item is either a folder (Items set) or a request (Request set).
type Item struct {
	UID     string   `json:"uid" yaml:"uid"`
	Name    string   `json:"name" yaml:"name"`
	Type    ItemType `json:"type" yaml:"type"`
	Seq     int      `json:"seq,omitempty" yaml:"seq,omitempty"`
	Request *Request `json:"request,omitempty" yaml:"request,omitempty"`
	Items   []Item   `json:"items,omitempty" yaml:"items,omitempty"`
}

func (i Item) IsFolder() bool { return i.Type == ItemTypeFolder }

type Request struct {
	URL     string     `json:"url" yaml:"url"`
	Method  string     `json:"method" yaml:"method"`
	Auth    Auth       `json:"auth" yaml:"auth"`
	Headers []KeyValue `json:"headers" yaml:"headers"`
	Params  []Param    `json:"params" yaml:"params"`
	Body    Body       `json:"body" yaml:"body"`
	Script  *Script    `json:"script,omitempty" yaml:"script,omitempty"`
}

type Auth struct {
	Mode   AuthMode    `json:"mode" yaml:"mode"`
	Basic  *BasicAuth  `json:"basic" yaml:"basic"`
	Bearer *BearerAuth `json:"bearer" yaml:"bearer"`
	Digest *DigestAuth `json:"digest" yaml:"digest"`
}

type BasicAuth struct {
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
}

type BearerAuth struct {
	Token string `json:"token" yaml:"token"`
}

type DigestAuth struct {
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
}

// KeyValue is a header or a url-encoded form field.
type KeyValue struct {
	UID         string `json:"uid" yaml:"uid"`
	Name        string `json:"name" yaml:"name"`
	Value       string `json:"value" yaml:"value"`
	Description string `json:"description" yaml:"description"`
	Enabled     bool   `json:"enabled" yaml:"enabled"`
}

type Param struct {
	UID         string `json:"uid" yaml:"uid"`
	Name        string `json:"name" yaml:"name"`
	Value       string `json:"value" yaml:"value"`
	Description string `json:"description" yaml:"description"`
	Enabled     bool   `json:"enabled" yaml:"enabled"`
	Type        string `json:"type" yaml:"type"`
}

type MultipartField struct {
	UID         string `json:"uid" yaml:"uid"`
	Type        string `json:"type" yaml:"type"`
	Name        string `json:"name" yaml:"name"`
	Value       string `json:"value" yaml:"value"`
	Description string `json:"description" yaml:"description"`
	Enabled     bool   `json:"enabled" yaml:"enabled"`
}

// Body keeps JSON, Text and XML nil until the matching mode sets them.
type Body struct {
	Mode           BodyMode         `json:"mode" yaml:"mode"`
	JSON           *string          `json:"json" yaml:"json"`
	Text           *string          `json:"text" yaml:"text"`
	XML            *string          `json:"xml" yaml:"xml"`
	FormURLEncoded []KeyValue       `json:"formUrlEncoded" yaml:"formUrlEncoded"`
	MultipartForm  []MultipartField `json:"multipartForm" yaml:"multipartForm"`
}

// Script holds the post-response script.
type Script struct {
	Res string `json:"res" yaml:"res"`
}

type Environment struct {
	UID       string     `json:"uid" yaml:"uid"`
	Name      string     `json:"name" yaml:"name"`
	Variables []Variable `json:"variables" yaml:"variables"`
}

type Variable struct {
	UID     string `json:"uid" yaml:"uid"`
	Name    string `json:"name" yaml:"name"`
	Value   string `json:"value" yaml:"value"`
	Type    string `json:"type" yaml:"type"`
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Secret  bool   `json:"secret" yaml:"secret"`
}

// Walk visits every item depth-first, folders before their children.
func Walk(items []Item, fn func(item *Item, depth int)) {
	walk(items, 0, fn)
}

func walk(items []Item, depth int, fn func(*Item, int)) {
	for i := range items {
		fn(&items[i], depth)
		if len(items[i].Items) > 0 {
			walk(items[i].Items, depth+1, fn)
		}
	}
}

// HydrateSeq numbers the requests of every item list from 1, in order.
// Requests that already carry a sequence number keep it.
func HydrateSeq(items []Item) {
	seq := 1
	for i := range items {
		if !items[i].IsFolder() && items[i].Seq == 0 {
			items[i].Seq = seq
			seq++
		}
		if len(items[i].Items) > 0 {
			HydrateSeq(items[i].Items)
		}
	}
}

// Stats counts folders and requests in c.
func (c *Collection) Stats() (folders, requests int) {
	Walk(c.Items, func(item *Item, _ int) {
		if item.IsFolder() {
			folders++
		} else {
			requests++
		}
	})
	return folders, requests
}
