package importer

import (
	"fmt"
	"strings"

	"github.com/kolah/oacollect/internal/document"
)

const responseBodyExpr = "$response.body"

// runtimeExpressionToScript translates an OpenAPI link runtime expression
// into a script expression over the response object. Only the first "/" of
// a body pointer becomes a property access; other expressions pass through.
func runtimeExpressionToScript(expr string) string {
	if expr == responseBodyExpr {
		return "res.body"
	}
	if pointer, ok := strings.CutPrefix(expr, responseBodyExpr+"#"); ok {
		return "res.body" + strings.Replace(pointer, "/", ".", 1)
	}
	return expr
}

// linkScript builds the post-response script storing link parameters as
// variables named <operationId>_<parameter>, one guarded block per status
// code that declares links. It returns "" when there are none.
func linkScript(responses *document.Node) string {
	var lines []string
	for status, response := range responses.Fields() {
		if !response.Has("links") {
			continue
		}
		lines = append(lines, fmt.Sprintf("if (res.status === %s) {", status))
		for _, link := range response.Get("links").Fields() {
			opID := link.Get("operationId").Text()
			for param, expr := range link.Get("parameters").Fields() {
				lines = append(lines, fmt.Sprintf("  bru.setVar('%s_%s', %s);", opID, param, runtimeExpressionToScript(expr.Text())))
			}
		}
		lines = append(lines, "}")
	}
	return strings.Join(lines, "\n")
}
