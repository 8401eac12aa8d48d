package importer

import (
	"regexp"
	"strings"

	"github.com/kolah/oacollect/internal/document"
)

// BaseURLVariable is the environment variable every request URL starts with.
const BaseURLVariable = "baseUrl"

var repeatedSlashes = regexp.MustCompile(`([^:])/{2,}`)

// ensureURL collapses runs of slashes unless they follow a colon, which
// keeps the "//" of a scheme intact.
func ensureURL(url string) string {
	return repeatedSlashes.ReplaceAllString(url, "$1/")
}

// templatePath rewrites {name} segments into :name path parameters.
func templatePath(path string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if len(seg) >= 2 && strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			segments[i] = ":" + seg[1:len(seg)-1]
		}
	}
	return strings.Join(segments, "/")
}

// pathParamNames lists the :name segments of a templated path.
func pathParamNames(path string) []string {
	var names []string
	for _, seg := range strings.Split(path, "/") {
		if name, ok := strings.CutPrefix(seg, ":"); ok {
			names = append(names, name)
		}
	}
	return names
}

// serverURL substitutes each server variable with its default, its first
// enum value or a {{name}} placeholder, then drops one trailing slash.
func serverURL(server *document.Node) string {
	url := server.Get("url").Text()
	for name, variable := range server.Get("variables").Fields() {
		sub := variable.Get("default").Text()
		if sub == "" {
			if enum := variable.Get("enum").Elems(); len(enum) > 0 {
				sub = enum[0].Text()
			}
		}
		if sub == "" {
			sub = "{{" + name + "}}"
		}
		url = strings.Replace(url, "{"+name+"}", sub, 1)
	}
	return strings.TrimSuffix(url, "/")
}
