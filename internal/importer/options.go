package importer

import (
	"fmt"

	"github.com/google/uuid"
)

// Grouping selects how requests are arranged into folders.
type Grouping string

const (
	// GroupByPath nests folders by URL path segment.
	GroupByPath Grouping = "path"
	// GroupByTags creates one folder per first operation tag.
	GroupByTags Grouping = "tags"
)

func ParseGrouping(s string) (Grouping, error) {
	switch Grouping(s) {
	case "", GroupByPath:
		return GroupByPath, nil
	case GroupByTags:
		return GroupByTags, nil
	}
	return "", fmt.Errorf("invalid grouping: %s (valid: path, tags)", s)
}

type Option func(*Importer)

// WithUIDGenerator replaces the identifier source.
func WithUIDGenerator(fn func() string) Option {
	return func(im *Importer) {
		if fn != nil {
			im.newUID = fn
		}
	}
}

func WithGrouping(g Grouping) Option {
	return func(im *Importer) {
		im.grouping = g
	}
}

// WithValidation turns schema validation of the produced collection on or
// off. It is on by default.
func WithValidation(enabled bool) Option {
	return func(im *Importer) {
		im.validate = enabled
	}
}

// WithName overrides the collection name taken from info.title.
func WithName(name string) Option {
	return func(im *Importer) {
		im.name = name
	}
}

func defaultUID() string {
	return uuid.NewString()
}
