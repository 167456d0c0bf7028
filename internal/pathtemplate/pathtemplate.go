// Package pathtemplate scans OpenAPI path and server URL templates.
//
// A template is literal text with "{name}" placeholders. Placeholders with an
// unbalanced or empty pair of braces are not placeholders at all: they are
// kept as literal text, so a malformed template still matches itself.
package pathtemplate

import (
	"net/url"
	"regexp"
	"strings"
)

// wildcard matches one path segment, following RFC 3986 which separates
// segments with "/".
const wildcard = "([^/]+)"

type token struct {
	literal  string
	variable string
}

// scan splits template into literal and variable tokens.
func scan(template string) []token {
	var tokens []token
	var lit strings.Builder

	i := 0
	for i < len(template) {
		if template[i] != '{' {
			lit.WriteByte(template[i])
			i++
			continue
		}

		end := strings.IndexByte(template[i+1:], '}')
		if end == -1 {
			// unclosed brace: the rest is literal
			lit.WriteString(template[i:])
			break
		}
		name := template[i+1 : i+1+end]
		if name == "" || strings.ContainsRune(name, '{') {
			lit.WriteByte('{')
			i++
			continue
		}

		if lit.Len() > 0 {
			tokens = append(tokens, token{literal: lit.String()})
			lit.Reset()
		}
		tokens = append(tokens, token{variable: name})
		i += end + 2
	}

	if lit.Len() > 0 {
		tokens = append(tokens, token{literal: lit.String()})
	}
	return tokens
}

// Variables returns the variable names of template in declaration order,
// without duplicates.
func Variables(template string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, t := range scan(template) {
		if t.variable == "" || seen[t.variable] {
			continue
		}
		seen[t.variable] = true
		names = append(names, t.variable)
	}
	return names
}

// Compile turns template into an anchored regular expression. Variables found
// in bound match their value either raw or percent-encoded as a path segment,
// every other variable is a single-segment capturing wildcard. The names of the captured
// variables are returned in capture order.
func Compile(template string, bound map[string]string) (*regexp.Regexp, []string) {
	var b strings.Builder
	var captured []string

	b.WriteString("^")
	for _, t := range scan(template) {
		if t.variable == "" {
			b.WriteString(regexp.QuoteMeta(t.literal))
			continue
		}
		if value, ok := bound[t.variable]; ok {
			b.WriteString(boundValue(value))
			continue
		}
		b.WriteString(wildcard)
		captured = append(captured, t.variable)
	}
	b.WriteString("$")

	re, err := regexp.Compile(b.String())
	if err != nil {
		return regexp.MustCompile("^" + regexp.QuoteMeta(template) + "$"), nil
	}
	return re, captured
}

func boundValue(value string) string {
	escaped := url.PathEscape(value)
	if escaped == value {
		return regexp.QuoteMeta(value)
	}
	return "(?:" + regexp.QuoteMeta(value) + "|" + regexp.QuoteMeta(escaped) + ")"
}

// Expand substitutes bound values into template, escaping each value as a
// path segment. Variables without a value are left in place and returned.
func Expand(template string, bound map[string]string) (string, []string) {
	var b strings.Builder
	var unresolved []string

	for _, t := range scan(template) {
		if t.variable == "" {
			b.WriteString(t.literal)
			continue
		}
		if value, ok := bound[t.variable]; ok {
			b.WriteString(url.PathEscape(value))
			continue
		}
		b.WriteString("{" + t.variable + "}")
		unresolved = append(unresolved, t.variable)
	}
	return b.String(), unresolved
}

// Substitute replaces variables with their raw values, without escaping.
// It is meant for server URL templates whose variables hold URL fragments
// such as a port or a base path.
func Substitute(template string, values map[string]string) string {
	var b strings.Builder
	for _, t := range scan(template) {
		switch {
		case t.variable == "":
			b.WriteString(t.literal)
		case values[t.variable] != "":
			b.WriteString(values[t.variable])
		default:
			b.WriteString("{" + t.variable + "}")
		}
	}
	return b.String()
}
