// Package source recovers the text of an assertion condition from the Go
// source file of its call site, so failures can show "len(key) > 0" instead
// of just "false".
//
// Binaries run away from their source tree simply get no text back.
package source

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"strings"
	"sync"
)

// Cache parses each source file at most once.
type Cache struct {
	names map[string]bool

	mu    sync.Mutex
	files map[string]map[int]string // file -> line -> condition text
}

// New creates a Cache recognising calls to functions or methods with the
// given names. The first argument of such a call is the condition.
func New(names ...string) *Cache {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return &Cache{names: set, files: make(map[string]map[int]string)}
}

// Condition returns the condition text of the recognised call covering line.
func (c *Cache) Condition(file string, line int) (string, bool) {
	if file == "" || line <= 0 {
		return "", false
	}

	c.mu.Lock()
	idx, ok := c.files[file]
	if !ok {
		idx = c.index(file)
		c.files[file] = idx
	}
	c.mu.Unlock()

	text, ok := idx[line]
	return text, ok
}

func (c *Cache) index(file string) map[int]string {
	src, err := os.ReadFile(file)
	if err != nil {
		return nil
	}
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, file, src, parser.SkipObjectResolution)
	if err != nil {
		return nil
	}

	best := make(map[int]candidate)
	ast.Inspect(f, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok || len(call.Args) == 0 || !c.names[calleeName(call.Fun)] {
			return true
		}
		text := conditionText(fset, src, call.Args[0])
		// Multi-line calls are attributed to different lines by different
		// compilers; register every line the call spans.
		first := fset.Position(call.Pos()).Line
		last := fset.Position(call.Rparen).Line
		for l := first; l <= last; l++ {
			cand := candidate{text: text, pos: call.Pos(), end: call.End(), starts: l == first}
			if old, taken := best[l]; !taken || cand.beats(old) {
				best[l] = cand
			}
		}
		return true
	})

	idx := make(map[int]string, len(best))
	for l, cand := range best {
		idx[l] = cand.text
	}
	return idx
}

// candidate is one recognised call covering a line.
type candidate struct {
	text     string
	pos, end token.Pos
	starts   bool // the call begins on this line
}

// beats reports whether c should own the line instead of old: a call that
// begins on the line wins over one merely spanning it, then the innermost
// call wins. Sibling calls on one line keep the first.
func (c candidate) beats(old candidate) bool {
	if c.starts != old.starts {
		return c.starts
	}
	return c.pos > old.pos && c.end <= old.end
}

func calleeName(fun ast.Expr) string {
	switch f := fun.(type) {
	case *ast.Ident:
		return f.Name
	case *ast.SelectorExpr:
		return f.Sel.Name
	case *ast.IndexExpr:
		return calleeName(f.X)
	}
	return ""
}

// conditionText returns the source of expr. A func literal whose body is a
// single return statement is reduced to the returned expression.
func conditionText(fset *token.FileSet, src []byte, expr ast.Expr) string {
	if lit, ok := expr.(*ast.FuncLit); ok && len(lit.Body.List) == 1 {
		if ret, ok := lit.Body.List[0].(*ast.ReturnStmt); ok && len(ret.Results) == 1 {
			expr = ret.Results[0]
		}
	}
	start := fset.Position(expr.Pos()).Offset
	end := fset.Position(expr.End()).Offset
	if start < 0 || end > len(src) || start >= end {
		return ""
	}
	return strings.Join(strings.Fields(string(src[start:end])), " ")
}
