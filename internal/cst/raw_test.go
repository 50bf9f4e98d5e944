package cst

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRawLeafText(t *testing.T) {
	leaf := NewLeaf("identifier", "totalShares")
	assert.Equal(t, "identifier", leaf.Kind())
	assert.Equal(t, "totalShares", leaf.Text())
	assert.Empty(t, leaf.Children())
	assert.Nil(t, FirstChild(leaf))
}

func TestRawTokenKindIsItsText(t *testing.T) {
	token := NewToken("{")
	assert.Equal(t, "{", token.Kind())
	assert.Equal(t, "{", token.Text())
}

func TestRawInteriorTextJoinsChildren(t *testing.T) {
	node := NewNode("parameter",
		NewLeaf("type_name", "uint256"),
		NewLeaf("identifier", "amount"),
	)
	assert.Equal(t, "uint256 amount", node.Text())

	first := FirstChild(node)
	assert.Equal(t, "type_name", first.Kind())
}

func TestRawExplicitTextWins(t *testing.T) {
	node := NewNode("expression", NewLeaf("number_literal", "1"))
	node.NodeText = "1 + 2"
	assert.Equal(t, "1 + 2", node.Text())
}

func TestRawPosition(t *testing.T) {
	node := NewNode("contract_declaration")
	node.Pos = Position{Line: 7, Column: 4}
	assert.Equal(t, Position{Line: 7, Column: 4}, node.Position())
}
