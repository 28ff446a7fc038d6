package analyzer

import (
	"bytes"
	"go/ast"
	"go/printer"
	"go/token"
	"go/types"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pthm/dilint/internal/rules"
	"github.com/pthm/dilint/internal/symbol"
	"golang.org/x/tools/go/analysis"
)

// compositeType returns the type built by lit. Elided element literals of
// pointer element type (the {} in []*T{{}}) record *T.
func compositeType(info *types.Info, lit *ast.CompositeLit) types.Type {
	t := info.TypeOf(lit)
	if t == nil {
		return nil
	}
	if ptr, ok := types.Unalias(t).(*types.Pointer); ok {
		return ptr.Elem()
	}
	return t
}

// newType returns T for a call to the builtin new(T).
func newType(info *types.Info, call *ast.CallExpr) (types.Type, bool) {
	id, ok := ast.Unparen(call.Fun).(*ast.Ident)
	if !ok || len(call.Args) != 1 {
		return nil, false
	}
	if b, ok := info.Uses[id].(*types.Builtin); !ok || b.Name() != "new" {
		return nil, false
	}

	tv, ok := info.Types[call.Args[0]]
	if !ok || !tv.IsType() {
		return nil, false
	}
	return tv.Type, true
}

// constructedType returns the declaration of t when t is a named struct
// type. Unresolved and invalid types yield nil.
func constructedType(t types.Type) *types.TypeName {
	if t == nil {
		return nil
	}
	named, ok := types.Unalias(t).(*types.Named)
	if !ok {
		return nil
	}
	if _, ok := named.Underlying().(*types.Struct); !ok {
		return nil
	}
	return named.Origin().Obj()
}

// typeFacts projects a type declaration into symbol facts. The package path
// is the namespace; a type declared inside a function is nested in that
// function, and in the receiver type for methods.
func typeFacts(files []*ast.File, obj *types.TypeName) symbol.TypeFacts {
	facts := symbol.TypeFacts{
		Name:   obj.Name(),
		Access: symbol.Public,
	}
	if !obj.Exported() {
		facts.Access = symbol.Private
	}

	pkg := obj.Pkg()
	if pkg == nil {
		return facts
	}

	if parent := obj.Parent(); parent != nil && parent != pkg.Scope() {
		facts.Access = symbol.Private
		facts.Containers = append(facts.Containers, enclosing(files, obj.Pos())...)
	}
	facts.Containers = append(facts.Containers, symbol.Namespace(pkg.Path()))
	return facts
}

// enclosing returns the containers of a local declaration at pos, innermost first.
func enclosing(files []*ast.File, pos token.Pos) []symbol.Container {
	fd := enclosingFunc(files, pos)
	if fd == nil {
		return []symbol.Container{symbol.Type("func")}
	}

	out := []symbol.Container{symbol.Type(fd.Name.Name)}
	if recv := receiverName(fd); recv != "" {
		out = append(out, symbol.Type(recv))
	}
	return out
}

func enclosingFunc(files []*ast.File, pos token.Pos) *ast.FuncDecl {
	for _, f := range files {
		if pos < f.FileStart || pos > f.FileEnd {
			continue
		}
		for _, d := range f.Decls {
			if fd, ok := d.(*ast.FuncDecl); ok && fd.Pos() <= pos && pos < fd.End() {
				return fd
			}
		}
	}
	return nil
}

func receiverName(fd *ast.FuncDecl) string {
	if fd.Recv == nil || len(fd.Recv.List) == 0 {
		return ""
	}

	expr := fd.Recv.List[0].Type
	for {
		switch e := expr.(type) {
		case *ast.StarExpr:
			expr = e.X
		case *ast.ParenExpr:
			expr = e.X
		case *ast.IndexExpr:
			expr = e.X
		case *ast.IndexListExpr:
			expr = e.X
		case *ast.Ident:
			return e.Name
		default:
			return ""
		}
	}
}

// constructorFacts describes fd when it is a constructor: a function without
// receiver named New, NewX or newX whose first result is, or points to, a
// named type declared in the analyzed package. The span is left to the caller.
func constructorFacts(ap *analysis.Pass, fd *ast.FuncDecl) (rules.ConstructorFacts, bool) {
	if fd.Recv != nil || !isConstructorName(fd.Name.Name) {
		return rules.ConstructorFacts{}, false
	}

	results := fd.Type.Results
	if results == nil || len(results.List) == 0 {
		return rules.ConstructorFacts{}, false
	}

	t := ap.TypesInfo.TypeOf(results.List[0].Type)
	if t == nil {
		return rules.ConstructorFacts{}, false
	}
	if ptr, ok := types.Unalias(t).(*types.Pointer); ok {
		t = ptr.Elem()
	}
	named, ok := types.Unalias(t).(*types.Named)
	if !ok {
		return rules.ConstructorFacts{}, false
	}
	obj := named.Origin().Obj()
	if obj.Pkg() != ap.Pkg {
		return rules.ConstructorFacts{}, false
	}

	return rules.ConstructorFacts{
		TypeName:  obj.Name(),
		Signature: render(ap.Fset, fd.Type.Params),
		Params:    countParams(fd.Type.Params),
	}, true
}

func isConstructorName(name string) bool {
	var rest string
	switch {
	case name == "New":
		return true
	case strings.HasPrefix(name, "New"):
		rest = name[len("New"):]
	case strings.HasPrefix(name, "new"):
		rest = name[len("new"):]
	default:
		return false
	}

	r, _ := utf8.DecodeRuneInString(rest)
	return unicode.IsUpper(r) || unicode.IsDigit(r) || r == '_'
}

// countParams counts parameters by name; unnamed parameters count one each.
func countParams(params *ast.FieldList) int {
	if params == nil {
		return 0
	}
	n := 0
	for _, field := range params.List {
		if len(field.Names) == 0 {
			n++
			continue
		}
		n += len(field.Names)
	}
	return n
}

// render prints a parameter list as it would appear in a signature. The
// printer does not accept a bare field list, so it is wrapped in a func type.
func render(fset *token.FileSet, params *ast.FieldList) string {
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, fset, &ast.FuncType{Params: params}); err != nil {
		return ""
	}
	return strings.TrimPrefix(buf.String(), "func")
}
