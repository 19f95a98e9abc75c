package gdast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gogd/pkg/gdast"
)

// declTree builds "var x = 1" by hand: a variable statement with a name
// leaf, an anonymous '=' token, and a value leaf.
func declTree() (*gdast.Node, []byte) {
	src := []byte("var x = 1")
	name := &gdast.Node{
		Kind: gdast.KindName, Field: gdast.FieldName, Named: true,
		StartByte: 4, EndByte: 5,
	}
	eq := &gdast.Node{
		Kind:      gdast.KindOperator,
		StartByte: 6, EndByte: 7,
	}
	value := &gdast.Node{
		Kind: gdast.KindInteger, Field: gdast.FieldValue, Named: true,
		StartByte: 8, EndByte: 9,
	}
	decl := &gdast.Node{
		Kind: gdast.KindVariableStatement, Named: true,
		StartByte: 0, EndByte: 9,
		Children: []*gdast.Node{name, eq, value},
	}
	return decl, src
}

func TestNodeText(t *testing.T) {
	t.Parallel()

	decl, src := declTree()

	assert.Equal(t, "var x = 1", decl.Text(src))
	assert.Equal(t, "x", decl.ChildByField(gdast.FieldName).Text(src))
	assert.Equal(t, "1", decl.ChildByField(gdast.FieldValue).Text(src))

	var nilNode *gdast.Node
	assert.Equal(t, "", nilNode.Text(src))

	oob := &gdast.Node{StartByte: 100, EndByte: 200}
	assert.Equal(t, "", oob.Text(src))
}

func TestNamedChildren(t *testing.T) {
	t.Parallel()

	decl, _ := declTree()

	// The anonymous '=' token is filtered out.
	named := decl.NamedChildren()
	require.Len(t, named, 2)
	assert.Equal(t, gdast.KindName, named[0].Kind)
	assert.Equal(t, gdast.KindInteger, named[1].Kind)

	assert.Equal(t, 2, decl.NamedChildCount())
	assert.Equal(t, gdast.KindInteger, decl.NamedChild(1).Kind)
	assert.Nil(t, decl.NamedChild(2))
}

func TestChildByField(t *testing.T) {
	t.Parallel()

	decl, _ := declTree()

	require.NotNil(t, decl.ChildByField(gdast.FieldName))
	require.NotNil(t, decl.ChildByField(gdast.FieldValue))
	assert.Nil(t, decl.ChildByField(gdast.FieldType))
}

func TestFirstOfKindAndLastChild(t *testing.T) {
	t.Parallel()

	decl, _ := declTree()

	assert.NotNil(t, decl.FirstOfKind(gdast.KindInteger))
	assert.Nil(t, decl.FirstOfKind(gdast.KindString))
	assert.Equal(t, gdast.KindInteger, decl.LastChild().Kind)

	empty := &gdast.Node{Kind: gdast.KindSource}
	assert.Nil(t, empty.LastChild())
}

func TestWalk(t *testing.T) {
	t.Parallel()

	decl, _ := declTree()
	root := &gdast.Node{Kind: gdast.KindSource, Named: true, Children: []*gdast.Node{decl}}

	var kinds []gdast.Kind
	gdast.Walk(root, func(n *gdast.Node) bool {
		kinds = append(kinds, n.Kind)
		return true
	})
	assert.Equal(t, []gdast.Kind{
		gdast.KindSource,
		gdast.KindVariableStatement,
		gdast.KindName,
		gdast.KindOperator,
		gdast.KindInteger,
	}, kinds)

	// Pruning stops descent but not siblings.
	var visited int
	gdast.Walk(root, func(n *gdast.Node) bool {
		visited++
		return n.Kind != gdast.KindVariableStatement
	})
	assert.Equal(t, 2, visited)
}

func TestKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "source", gdast.KindSource.String())
	assert.Equal(t, "variable_statement", gdast.KindVariableStatement.String())
	assert.Equal(t, "name", gdast.FieldName.String())
	assert.Equal(t, "", gdast.FieldNone.String())
}
