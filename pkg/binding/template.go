package binding

import (
	"strings"
	"sync"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"
)

// segment is one piece of a scanned template: either literal text or the
// inner expression of a ${...} marker.
type segment struct {
	text string
	expr bool
}

// scanTemplate splits a template into literal and expression segments,
// left to right. Nested braces inside an expression are tracked by depth,
// so object literals like ${ {"a": 1} } survive. An unterminated marker is
// treated as literal text.
func scanTemplate(tmpl string) []segment {
	var segs []segment
	rest := tmpl
	for {
		start := strings.Index(rest, "${")
		if start < 0 {
			break
		}
		inner, after, ok := matchBrace(rest[start+2:])
		if !ok {
			break
		}
		if start > 0 {
			segs = append(segs, segment{text: rest[:start]})
		}
		segs = append(segs, segment{text: inner, expr: true})
		rest = after
	}
	if rest != "" || len(segs) == 0 {
		segs = append(segs, segment{text: rest})
	}
	return segs
}

// matchBrace consumes up to the brace closing an already-opened ${,
// returning the inner text and the remainder after the closing brace.
func matchBrace(s string) (inner, rest string, ok bool) {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			if depth == 0 {
				return s[:i], s[i+1:], true
			}
			depth--
		}
	}
	return "", "", false
}

// programCache memoizes compiled expressions process-wide. Documents reuse
// a small expression vocabulary heavily, so compilation cost is paid once.
var programCache sync.Map // string -> *exprvm.Program

func compileExpression(code string) (*exprvm.Program, error) {
	if cached, ok := programCache.Load(code); ok {
		return cached.(*exprvm.Program), nil
	}
	program, err := exprlang.Compile(code,
		exprlang.Env(map[string]any{}),
		exprlang.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, err
	}
	programCache.Store(code, program)
	return program, nil
}
