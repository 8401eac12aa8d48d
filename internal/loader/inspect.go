package loader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pb33f/libopenapi"
	validator "github.com/pb33f/libopenapi-validator"
	"github.com/pb33f/libopenapi/datamodel"
	v3 "github.com/pb33f/libopenapi/datamodel/high/v3"
)

// Issue is one problem reported by document validation.
type Issue struct {
	Message string
	Reason  string
	Line    int
	Column  int
}

func (i Issue) String() string {
	var b strings.Builder
	if i.Line > 0 {
		fmt.Fprintf(&b, "%d:%d: ", i.Line, i.Column)
	}
	b.WriteString(i.Message)
	if i.Reason != "" {
		b.WriteString(": ")
		b.WriteString(i.Reason)
	}
	return b.String()
}

// Report summarises a document as libopenapi sees it.
type Report struct {
	Version    string
	Title      string
	Paths      int
	Operations int
	Schemas    int
	Warnings   []string
	Issues     []Issue
}

func (r *Report) Valid() bool {
	return len(r.Issues) == 0
}

// Inspect builds a libopenapi model of data and validates it against the
// OpenAPI meta-schema. Only documents that cannot be parsed at all return an
// error; validation problems are reported as Issues.
func Inspect(data []byte) (*Report, error) {
	return inspectWithConfig(data, nil)
}

// InspectResult inspects a loaded document, resolving file references
// relative to its location when it came from disk.
func InspectResult(result *Result) (*Report, error) {
	if result.Path == "" {
		return Inspect(result.RawData)
	}
	return inspectWithConfig(result.RawData, &datamodel.DocumentConfiguration{
		BasePath:            filepath.Dir(result.Path),
		AllowFileReferences: true,
	})
}

func inspectWithConfig(data []byte, config *datamodel.DocumentConfiguration) (*Report, error) {
	var doc libopenapi.Document
	var err error

	if config != nil {
		doc, err = libopenapi.NewDocumentWithConfiguration(data, config)
	} else {
		doc, err = libopenapi.NewDocument(data)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing OpenAPI document: %w", err)
	}

	report := &Report{Version: doc.GetVersion()}
	if !strings.HasPrefix(report.Version, "3.") {
		report.Issues = append(report.Issues, Issue{
			Message: fmt.Sprintf("unsupported OpenAPI version: %s", report.Version),
			Reason:  "only 3.x documents can be imported",
		})
		return report, nil
	}
	if strings.HasPrefix(report.Version, "3.0") {
		report.Warnings = append(report.Warnings, "OpenAPI 3.0.x detected; some 3.1 features unavailable")
	}

	model, err := doc.BuildV3Model()
	if err != nil {
		report.Issues = append(report.Issues, Issue{Message: "building OpenAPI model", Reason: err.Error()})
		return report, nil
	}
	summarise(report, &model.Model)

	v, errs := validator.NewValidator(doc)
	if len(errs) > 0 {
		for _, e := range errs {
			report.Issues = append(report.Issues, Issue{Message: "creating validator", Reason: e.Error()})
		}
		return report, nil
	}
	if valid, verrs := v.ValidateDocument(); !valid {
		for _, e := range verrs {
			report.Issues = append(report.Issues, Issue{
				Message: e.Message,
				Reason:  e.Reason,
				Line:    e.SpecLine,
				Column:  e.SpecCol,
			})
		}
	}

	return report, nil
}

func summarise(report *Report, doc *v3.Document) {
	if doc.Info != nil {
		report.Title = doc.Info.Title
	}
	if doc.Paths != nil && doc.Paths.PathItems != nil {
		for _, item := range doc.Paths.PathItems.FromOldest() {
			report.Paths++
			for _, op := range []*v3.Operation{
				item.Get, item.Put, item.Post, item.Delete,
				item.Options, item.Head, item.Patch, item.Trace,
			} {
				if op != nil {
					report.Operations++
				}
			}
		}
	}
	if doc.Components != nil && doc.Components.Schemas != nil {
		report.Schemas = doc.Components.Schemas.Len()
	}
}
