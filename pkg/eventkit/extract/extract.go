// Package extract statically discovers the event names a type raises or
// documents, by parsing the type's own Go source rather than executing it.
//
// The extractor walks every method declared on the target type and
// collects the first argument of Emit and DocumentEvent calls made
// through the method receiver, but only when that argument is a string
// literal. Computed event names are invisible to static analysis and are
// skipped silently:
//
//	func (c *Connection) open() {
//	    c.Emit("connected", c.addr)        // discovered
//	    c.Emit(fmt.Sprintf("conn.%d", n))  // skipped
//	}
//
// Extraction errors are data, not panics: parse and walk failures are
// reported through the Err field of Result so callers can inspect them
// alongside any names recovered before the failure.
package extract

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// The two registration/raise call sites whose literal first arguments
// name events. These match the methods promoted by embedding
// eventkit.Emitter.
const (
	raiseMethod    = "Emit"
	documentMethod = "DocumentEvent"
)

// Result holds the outcome of one extraction.
type Result struct {
	// Events are the discovered event names, deduplicated, in
	// first-seen source order.
	Events []string

	// Err is non-nil when the source could not be parsed or walked.
	// Events may still hold names recovered before the failure.
	Err error
}

// Source extracts event names for typeName from a single file's source.
// A parse failure is reported through Result.Err with no events.
func Source(src []byte, typeName string) Result {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "", src, parser.SkipObjectResolution)
	if err != nil {
		return Result{Err: fmt.Errorf("parse source: %w", err)}
	}
	var res Result
	walkFile(file, typeName, &res)
	return res
}

// File extracts event names for typeName from the Go file at path.
func File(path, typeName string) Result {
	src, err := os.ReadFile(path)
	if err != nil {
		return Result{Err: fmt.Errorf("read source: %w", err)}
	}
	return Source(src, typeName)
}

// Dir extracts event names for typeName from every .go file in dir,
// excluding _test.go files. Files are visited in lexical name order so
// results are deterministic; methods of a Go type may span files.
func Dir(dir, typeName string) Result {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Result{Err: fmt.Errorf("read source dir: %w", err)}
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var res Result
	fset := token.NewFileSet()
	for _, name := range names {
		path := filepath.Join(dir, name)
		src, err := os.ReadFile(path)
		if err != nil {
			res.Err = fmt.Errorf("read source: %w", err)
			return res
		}
		file, err := parser.ParseFile(fset, name, src, parser.SkipObjectResolution)
		if err != nil {
			res.Err = fmt.Errorf("parse %s: %w", name, err)
			return res
		}
		if !walkFile(file, typeName, &res) {
			return res
		}
	}
	return res
}

// walkFile collects event names from methods of typeName into res.
// Returns false when the walk failed; res.Err carries the failure and
// res.Events keeps what was recovered before it.
func walkFile(file *ast.File, typeName string, res *Result) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			res.Err = fmt.Errorf("walk source: %v", r)
			ok = false
		}
	}()

	for _, decl := range file.Decls {
		fn, isFn := decl.(*ast.FuncDecl)
		if !isFn || fn.Body == nil {
			continue
		}
		recv, found := receiverName(fn, typeName)
		if !found {
			continue
		}
		collectCalls(fn.Body, recv, res)
	}
	return true
}

// receiverName returns the receiver identifier of fn when fn is a method
// on typeName (pointer or value receiver). Unnamed receivers can make no
// calls through the receiver, so they report not found.
func receiverName(fn *ast.FuncDecl, typeName string) (string, bool) {
	if fn.Recv == nil || len(fn.Recv.List) != 1 {
		return "", false
	}
	field := fn.Recv.List[0]

	typ := field.Type
	if star, isStar := typ.(*ast.StarExpr); isStar {
		typ = star.X
	}
	ident, isIdent := typ.(*ast.Ident)
	if !isIdent || ident.Name != typeName {
		return "", false
	}

	if len(field.Names) != 1 || field.Names[0].Name == "_" {
		return "", false
	}
	return field.Names[0].Name, true
}

// collectCalls records literal event names from <recv>.Emit and
// <recv>.DocumentEvent calls inside body.
func collectCalls(body *ast.BlockStmt, recv string, res *Result) {
	ast.Inspect(body, func(node ast.Node) bool {
		call, isCall := node.(*ast.CallExpr)
		if !isCall || len(call.Args) == 0 {
			return true
		}
		sel, isSel := call.Fun.(*ast.SelectorExpr)
		if !isSel {
			return true
		}
		target, isIdent := sel.X.(*ast.Ident)
		if !isIdent || target.Name != recv {
			return true
		}
		if sel.Sel.Name != raiseMethod && sel.Sel.Name != documentMethod {
			return true
		}

		lit, isLit := call.Args[0].(*ast.BasicLit)
		if !isLit || lit.Kind != token.STRING {
			// Computed event names are not statically discoverable.
			return true
		}
		name, err := strconv.Unquote(lit.Value)
		if err != nil {
			return true
		}

		for _, existing := range res.Events {
			if existing == name {
				return true
			}
		}
		res.Events = append(res.Events, name)
		return true
	})
}
