// Package importer converts an OpenAPI v3 document into a request
// collection.
//
// The pipeline resolves local references, derives the security context,
// builds one environment per server, turns every operation into a request
// and arranges the requests into folders (by path segment or by tag).
package importer

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/containerd/log"
	"github.com/kolah/oacollect/internal/collection"
	"github.com/kolah/oacollect/internal/document"
	"github.com/kolah/oacollect/internal/refs"
	"github.com/kolah/oacollect/internal/security"
)

// DefaultCollectionName is used when the document has no info.title.
const DefaultCollectionName = "Untitled Collection"

const (
	msgUnsupportedVersion = "Only OpenAPI v3 is supported currently."
	msgRefResolution      = "Invalid OpenAPI collection. Failed to resolve refs."
	msgParseFailed        = "An error occurred while parsing the OpenAPI collection"
	msgInvalidCollection  = "The imported collection is invalid"
)

// httpMethods are the path item keys treated as operations.
var httpMethods = map[string]bool{
	"get": true, "put": true, "post": true, "delete": true,
	"options": true, "head": true, "patch": true, "trace": true,
}

// Importer is immutable once built and can be shared between goroutines.
type Importer struct {
	newUID   func() string
	grouping Grouping
	validate bool
	name     string
}

func New(opts ...Option) *Importer {
	im := &Importer{
		newUID:   defaultUID,
		grouping: GroupByPath,
		validate: true,
	}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

// Import converts doc into a collection. It never modifies doc. All
// failures are returned as *ImportError.
func (im *Importer) Import(ctx context.Context, doc *document.Node) (coll *collection.Collection, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger := log.G(ctx)

	defer func() {
		if r := recover(); r != nil {
			logger.WithField("panic", r).Error("openapi import aborted")
			coll = nil
			err = newError(ErrMalformedDocument, msgParseFailed, fmt.Errorf("%v", r))
		}
	}()

	resolved := refs.ResolveDocument(doc)
	if resolved == nil {
		return nil, newError(ErrRefResolution, msgRefResolution, nil)
	}

	if version := resolved.Get("openapi").Text(); version != "" && !strings.HasPrefix(version, "3") {
		return nil, newError(ErrUnsupportedVersion, msgUnsupportedVersion, fmt.Errorf("document declares openapi %s", version))
	}

	if !resolved.IsMapping() {
		return nil, newError(ErrMalformedDocument, msgParseFailed, fmt.Errorf("document root is a %s, not a mapping", resolved.Kind))
	}
	paths := resolved.Get("paths")
	if !paths.IsMapping() {
		return nil, newError(ErrMalformedDocument, msgParseFailed, fmt.Errorf("document has no paths mapping"))
	}

	coll = &collection.Collection{
		Name:         im.collectionName(ctx, resolved),
		UID:          im.newUID(),
		Version:      collection.Version,
		Items:        []collection.Item{},
		Environments: im.environments(resolved.Get("servers")),
	}

	global := Global{
		Server:   "{{" + BaseURLVariable + "}}",
		Security: security.FromDocument(resolved),
	}
	ops := collectOperations(paths, global)

	var items []collection.Item
	switch im.grouping {
	case GroupByTags:
		items, err = im.itemsByTags(ops)
	default:
		items, err = im.flatten(BuildFolderTree(ops))
	}
	if err != nil {
		return nil, newError(ErrMalformedDocument, msgParseFailed, err)
	}
	coll.Items = items
	collection.HydrateSeq(coll.Items)

	if im.validate {
		if err := collection.Validate(coll); err != nil {
			return nil, newError(ErrInvalidCollection, msgInvalidCollection, err)
		}
	}

	folders, requests := coll.Stats()
	logger.WithFields(log.Fields{
		"collection":   coll.Name,
		"operations":   len(ops),
		"folders":      folders,
		"requests":     requests,
		"environments": len(coll.Environments),
	}).Debug("openapi document imported")

	return coll, nil
}

func (im *Importer) collectionName(ctx context.Context, doc *document.Node) string {
	if im.name != "" {
		return im.name
	}
	if title := doc.Lookup("info", "title").Text(); title != "" {
		return title
	}
	log.G(ctx).Warnf("document has no info.title, naming collection %q", DefaultCollectionName)
	return DefaultCollectionName
}

func (im *Importer) environments(servers *document.Node) []collection.Environment {
	envs := []collection.Environment{}
	for i, server := range servers.Elems() {
		name := server.Get("description").Text()
		if name == "" {
			name = "Environment " + strconv.Itoa(i+1)
		}
		envs = append(envs, collection.Environment{
			UID:  im.newUID(),
			Name: name,
			Variables: []collection.Variable{{
				UID:     im.newUID(),
				Name:    BaseURLVariable,
				Value:   serverURL(server),
				Type:    "text",
				Enabled: true,
			}},
		})
	}
	return envs
}

// collectOperations lists every operation of paths in document order.
func collectOperations(paths *document.Node, global Global) []Operation {
	var ops []Operation
	for path, item := range paths.Fields() {
		for method, obj := range item.Fields() {
			if !httpMethods[strings.ToLower(method)] {
				continue
			}
			ops = append(ops, Operation{
				Method: method,
				Path:   path,
				Object: obj,
				Global: global,
			})
		}
	}
	return ops
}
