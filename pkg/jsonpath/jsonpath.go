// Package jsonpath extracts values from JSON documents using JSONPath
// expressions, translated onto gjson's dotted path syntax.
package jsonpath

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// Extract returns the value at a JSONPath expression, rendered as a
// string. It fails when the document is empty, the expression is empty,
// or the path matches nothing. A JSON null extracts as "null".
func Extract(doc, path string) (string, error) {
	if doc == "" {
		return "", fmt.Errorf("empty JSON document")
	}
	if path == "" {
		return "", fmt.Errorf("empty JSONPath expression")
	}

	result := gjson.Get(doc, toGjsonPath(path))
	if !result.Exists() {
		return "", fmt.Errorf("path not found: %s", path)
	}
	if result.Type == gjson.Null {
		return "null", nil
	}
	return result.String(), nil
}

// ExtractAll evaluates a set of named JSONPath expressions against one
// document. Successful extractions are always returned; if any expression
// fails, the error lists every failure.
func ExtractAll(doc string, paths map[string]string) (map[string]string, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no JSONPath expressions provided")
	}

	values := make(map[string]string, len(paths))
	var failures []string
	for name, path := range paths {
		value, err := Extract(doc, path)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		values[name] = value
	}

	if len(failures) > 0 {
		return values, fmt.Errorf("extraction errors: %s", strings.Join(failures, "; "))
	}
	return values, nil
}

// toGjsonPath rewrites a JSONPath expression into gjson syntax:
//
//	$.users[0].name  -> users.0.name
//	$['user name']   -> user name
//	$[2]             -> 2
//	$                -> @this
func toGjsonPath(path string) string {
	path = strings.TrimPrefix(path, "$")
	path = strings.TrimPrefix(path, ".")
	if path == "" {
		return "@this"
	}

	var b strings.Builder
	for i := 0; i < len(path); i++ {
		switch c := path[i]; c {
		case '[':
			if b.Len() > 0 {
				b.WriteByte('.')
			}
		case ']', '\'', '"':
			// Closing brackets and quotes carry no meaning in gjson.
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
