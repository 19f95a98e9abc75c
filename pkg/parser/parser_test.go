package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gogd/pkg/gdast"
	"github.com/yaklabco/gogd/pkg/parser"
)

func parse(t *testing.T, source string) *gdast.Tree {
	t.Helper()
	tree, err := parser.Parse([]byte(source))
	require.NoError(t, err)
	require.NotNil(t, tree.Root)
	return tree
}

// findKind returns the first node of the given kind anywhere in the tree.
func findKind(root *gdast.Node, kind gdast.Kind) *gdast.Node {
	var found *gdast.Node
	gdast.Walk(root, func(n *gdast.Node) bool {
		if found != nil {
			return false
		}
		if n.Named && n.Kind == kind {
			found = n
			return false
		}
		return true
	})
	return found
}

func TestParseDeclarations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		kind   gdast.Kind
	}{
		{
			name:   "extends",
			source: "extends Node\n",
			kind:   gdast.KindExtendsStatement,
		},
		{
			name:   "class name",
			source: "class_name Player\n",
			kind:   gdast.KindClassNameStatement,
		},
		{
			name:   "variable",
			source: "var health: int = 100\n",
			kind:   gdast.KindVariableStatement,
		},
		{
			name:   "constant",
			source: "const SPEED = 10.0\n",
			kind:   gdast.KindConstStatement,
		},
		{
			name:   "signal",
			source: "signal died(cause)\n",
			kind:   gdast.KindSignalStatement,
		},
		{
			name:   "enum",
			source: "enum State { IDLE, RUNNING }\n",
			kind:   gdast.KindEnumDefinition,
		},
		{
			name:   "function",
			source: "func _ready():\n\tpass\n",
			kind:   gdast.KindFunctionDefinition,
		},
		{
			name:   "inner class",
			source: "class Inner:\n\tvar x = 1\n",
			kind:   gdast.KindClassDefinition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tree := parse(t, tt.source)
			require.Equal(t, gdast.KindSource, tree.Root.Kind)

			node := tree.Root.FirstOfKind(tt.kind)
			require.NotNil(t, node, "expected a %s node", tt.kind)
		})
	}
}

func TestParseFunctionShape(t *testing.T) {
	t.Parallel()

	source := "func take_damage(amount: int, source = null) -> void:\n\treturn\n"
	tree := parse(t, source)

	fn := tree.Root.FirstOfKind(gdast.KindFunctionDefinition)
	require.NotNil(t, fn)

	name := fn.ChildByField(gdast.FieldName)
	require.NotNil(t, name)
	assert.Equal(t, "take_damage", name.Text(tree.Source))

	params := fn.FirstOfKind(gdast.KindParameters)
	require.NotNil(t, params)
	assert.Equal(t, 2, params.NamedChildCount())

	body := fn.ChildByField(gdast.FieldBody)
	require.NotNil(t, body)
	require.NotNil(t, body.FirstOfKind(gdast.KindReturnStatement))
}

func TestParseControlFlow(t *testing.T) {
	t.Parallel()

	source := "func f(x):\n" +
		"\tif x > 0:\n" +
		"\t\treturn 1\n" +
		"\telif x < 0:\n" +
		"\t\treturn -1\n" +
		"\telse:\n" +
		"\t\treturn 0\n"
	tree := parse(t, source)

	ifStmt := findKind(tree.Root, gdast.KindIfStatement)
	require.NotNil(t, ifStmt)
	assert.NotNil(t, ifStmt.FirstOfKind(gdast.KindElifClause))
	assert.NotNil(t, ifStmt.FirstOfKind(gdast.KindElseClause))
}

func TestParseExpressionPrecedence(t *testing.T) {
	t.Parallel()

	// 1 + 2 * 3 parses as 1 + (2 * 3): the multiplication is nested under
	// the addition.
	tree := parse(t, "var x = 1 + 2 * 3\n")

	decl := tree.Root.FirstOfKind(gdast.KindVariableStatement)
	require.NotNil(t, decl)

	add := findKind(decl, gdast.KindBinaryOperator)
	require.NotNil(t, add)

	var nested *gdast.Node
	for _, c := range add.NamedChildren() {
		if c.Kind == gdast.KindBinaryOperator {
			nested = c
		}
	}
	require.NotNil(t, nested, "multiplication should nest under addition")
	assert.Equal(t, "2 * 3", nested.Text(tree.Source))
}

func TestParseNodePaths(t *testing.T) {
	t.Parallel()

	tree := parse(t, "var label = $HUD/Score\n")
	require.NotNil(t, findKind(tree.Root, gdast.KindGetNode))
}

func TestParsePositions(t *testing.T) {
	t.Parallel()

	source := "extends Node\nvar x = 1\n"
	tree := parse(t, source)

	decl := tree.Root.FirstOfKind(gdast.KindVariableStatement)
	require.NotNil(t, decl)
	assert.Equal(t, 1, decl.StartPoint.Row)
	assert.Equal(t, 0, decl.StartPoint.Column)
	assert.Equal(t, "var x = 1", decl.Text(tree.Source))
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
	}{
		{name: "unclosed paren", source: "func f(:\n"},
		{name: "bad indent", source: "func f():\npass\n"},
		{name: "unterminated string", source: "var s = \"oops\n"},
		{name: "dangling operator", source: "var x = 1 +\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := parser.Parse([]byte(tt.source))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "parse")
		})
	}
}

func TestParseEmptySource(t *testing.T) {
	t.Parallel()

	tree := parse(t, "")
	assert.Equal(t, gdast.KindSource, tree.Root.Kind)
	assert.Equal(t, 0, tree.Root.NamedChildCount())
}
