package gen

import (
	"go/token"
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// =============================================================================
// Naming helpers
// =============================================================================

// acronyms are upper-cased when they appear as a word of a camel-cased name.
var acronyms = map[string]struct{}{
	"ACL": {}, "API": {}, "ASCII": {}, "CPU": {}, "CSS": {}, "DNS": {},
	"EOF": {}, "GUID": {}, "HTML": {}, "HTTP": {}, "HTTPS": {}, "ID": {},
	"IP": {}, "JSON": {}, "QPS": {}, "RAM": {}, "RPC": {}, "SLA": {},
	"SMTP": {}, "SQL": {}, "SSH": {}, "TCP": {}, "TLS": {}, "TTL": {},
	"UDP": {}, "UI": {}, "UID": {}, "URI": {}, "URL": {}, "UTF8": {},
	"UUID": {}, "VM": {}, "XML": {}, "XMPP": {}, "XSRF": {}, "XSS": {},
}

// title upper-cases the first letter of each word and keeps the rest, so
// "uniqueItems" becomes "UniqueItems". A Caser holds state, so one is built
// per call to keep parallel workers apart.
func title(s string) string {
	return cases.Title(language.Und, cases.NoLower).String(s)
}

// exportName returns the exported Go spelling of a shape or trait name.
func exportName(name string) string {
	if name == "" {
		return name
	}
	return inflect.Camelize(title(name))
}

// unexportName returns the unexported Go spelling of name. Names that would
// collide with a Go keyword get an underscore prefix.
func unexportName(name string) string {
	if name == "" {
		return name
	}
	s := camel(name)
	if token.Lookup(s).IsKeyword() {
		return "_" + s
	}
	return s
}

// variantName returns the violation variant name for a trait.
func variantName(trait string) string {
	return title(trait)
}

// fileName returns the snake_case file stem for a shape name.
func fileName(name string) string {
	return snake(name)
}

// snake converts the given identifier to snake_case. Runs of capitals stay
// in one word: "HTTPCode" becomes "http_code".
func snake(s string) string {
	ws := words(s)
	for i, w := range ws {
		ws[i] = strings.ToLower(w)
	}
	return strings.Join(ws, "_")
}

// camel converts the given identifier to lowerCamelCase. A leading acronym is
// lower-cased as a whole ("HTTPHeaders" becomes "httpHeaders") and known
// acronyms after it are upper-cased ("user_id" becomes "userID").
func camel(s string) string {
	ws := words(s)
	if len(ws) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(strings.ToLower(ws[0]))
	for _, w := range ws[1:] {
		if _, ok := acronyms[strings.ToUpper(w)]; ok {
			b.WriteString(strings.ToUpper(w))
			continue
		}
		b.WriteString(inflect.Capitalize(w))
	}
	return b.String()
}

// words splits an identifier on separators and case changes. A run of
// capitals is one word, and a plural "s" right after it stays attached,
// so "UserIDs" splits into "User" and "IDs".
func words(s string) []string {
	var (
		out []string
		cur []rune
		rs  = []rune(s)
	)
	flush := func() {
		if len(cur) > 0 {
			out = append(out, string(cur))
			cur = cur[:0]
		}
	}
	for i, r := range rs {
		if isSeparator(r) {
			flush()
			continue
		}
		if i > 0 && len(cur) > 0 && unicode.IsUpper(r) {
			prev := rs[i-1]
			switch {
			case unicode.IsLower(prev), unicode.IsDigit(prev):
				flush()
			case unicode.IsUpper(prev) && i+1 < len(rs) && unicode.IsLower(rs[i+1]) && !pluralAt(rs, i+1):
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return out
}

// pluralAt reports whether rs[i] is an "s" ending the word it belongs to.
func pluralAt(rs []rune, i int) bool {
	return rs[i] == 's' && (i+1 == len(rs) || !unicode.IsLower(rs[i+1]))
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || unicode.IsSpace(r)
}
