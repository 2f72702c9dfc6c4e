// Package jsast adapts tree-sitter JavaScript/TypeScript trees to the visitor.Node interface.
package jsast

import (
	"context"
	"errors"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/specvital/testdiff/pkg/domain"
	"github.com/specvital/testdiff/pkg/parser"
	"github.com/specvital/testdiff/pkg/parser/tspool"
	"github.com/specvital/testdiff/pkg/parser/visitor"
)

const eachQualifier = "each"

// dataHelpers wrap a declaration with a data table: Data(rows).Scenario(...).
var dataHelpers = map[string]bool{
	"Data": true,
}

// ErrSyntax is wrapped by a ParseFailure when the source contains syntax errors.
var ErrSyntax = errors.New("syntax error")

// Provider turns source text into a traversable tree.
type Provider struct{}

// NewProvider creates a tree-sitter backed provider.
func NewProvider() *Provider {
	return &Provider{}
}

// Tree is a parsed file. Close must be called to release the native tree.
type Tree struct {
	source []byte
	tree   *sitter.Tree
}

// Parse parses source with the grammar chosen by filename's extension.
// Any syntax error fails the whole file with a *domain.ParseFailure.
func (p *Provider) Parse(ctx context.Context, source []byte, filename string) (visitor.Tree, error) {
	lang := domain.DetectLanguage(filename)

	tree, err := tspool.Parse(ctx, lang, source)
	if err != nil {
		return nil, domain.NewParseFailure(filename, err)
	}

	root := tree.RootNode()
	if root.HasError() {
		line := firstErrorLine(root)
		tree.Close()
		return nil, domain.NewParseFailure(filename, fmt.Errorf("%w near line %d", ErrSyntax, line))
	}

	return &Tree{source: source, tree: tree}, nil
}

// Root returns the root node of the tree.
func (t *Tree) Root() visitor.Node {
	return node{n: t.tree.RootNode(), source: t.source}
}

// Close releases the native tree.
func (t *Tree) Close() {
	t.tree.Close()
}

func firstErrorLine(root *sitter.Node) int {
	stack := []*sitter.Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if n.Type() == "ERROR" || n.IsMissing() {
			return int(n.StartPoint().Row) + 1
		}
		if !n.HasError() {
			continue
		}
		for i := int(n.ChildCount()) - 1; i >= 0; i-- {
			stack = append(stack, n.Child(i))
		}
	}
	return int(root.StartPoint().Row) + 1
}

type node struct {
	n      *sitter.Node
	source []byte
}

func (x node) Children() []visitor.Node {
	named := parser.NamedChildren(x.n)
	children := make([]visitor.Node, len(named))
	for i, c := range named {
		children[i] = node{n: c, source: x.source}
	}
	return children
}

func (x node) Call() (*visitor.Call, bool) {
	if x.n.Type() != "call_expression" {
		return nil, false
	}

	fn := x.n.ChildByFieldName("function")
	args := x.n.ChildByFieldName("arguments")
	if fn == nil || args == nil || args.Type() != "arguments" {
		return nil, false
	}

	var callee []string
	if fn.Type() == "call_expression" {
		// it.each(table)('name', fn) declares through the inner callee.
		inner := fn.ChildByFieldName("function")
		if inner == nil {
			return nil, false
		}
		callee = calleePath(inner, x.source)
		if len(callee) < 2 || callee[len(callee)-1] != eachQualifier {
			return nil, false
		}
	} else {
		callee = calleePath(fn, x.source)
	}
	if callee == nil {
		return nil, false
	}

	call := &visitor.Call{Callee: callee}
	argNodes := parser.NamedChildren(args)
	if len(argNodes) > 0 {
		call.Name, call.NameKind = literalValue(argNodes[0], x.source)
	}
	if body := callbackBody(argNodes); body != nil {
		call.Body = node{n: body, source: x.source}
	}

	return call, true
}

// calleePath flattens identifier and member-access chains: it.skip -> [it skip].
func calleePath(fn *sitter.Node, source []byte) []string {
	switch fn.Type() {
	case "identifier":
		return []string{parser.GetNodeText(fn, source)}
	case "member_expression":
		obj := fn.ChildByFieldName("object")
		prop := fn.ChildByFieldName("property")
		if obj == nil || prop == nil {
			return nil
		}
		if obj.Type() == "call_expression" {
			// Data(rows).Scenario.only(...) declares through the property.
			if !isDataHelper(obj, source) {
				return nil
			}
			return []string{parser.GetNodeText(prop, source)}
		}
		base := calleePath(obj, source)
		if base == nil {
			return nil
		}
		return append(base, parser.GetNodeText(prop, source))
	default:
		return nil
	}
}

func isDataHelper(call *sitter.Node, source []byte) bool {
	fn := call.ChildByFieldName("function")
	return fn != nil && fn.Type() == "identifier" && dataHelpers[parser.GetNodeText(fn, source)]
}

func literalValue(arg *sitter.Node, source []byte) (string, visitor.ArgKind) {
	switch arg.Type() {
	case "string", "template_string":
		return UnquoteString(parser.GetNodeText(arg, source)), visitor.ArgLiteral
	default:
		return "", visitor.ArgDynamic
	}
}

func callbackBody(args []*sitter.Node) *sitter.Node {
	for i := len(args) - 1; i >= 0; i-- {
		switch args[i].Type() {
		case "arrow_function", "function_expression", "function":
			return args[i].ChildByFieldName("body")
		}
	}
	return nil
}
