package dot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEdgesEmpty(t *testing.T) {
	for _, pairs := range [][][2]any{nil, {}} {
		g := FromEdges(pairs, true, "")
		assert.Equal(t, "digraph G {\n}\n", g.String())
		assert.Empty(t, g.Edges())

		g = FromEdges(pairs, false, "")
		assert.Equal(t, "graph G {\n}\n", g.String())
	}
}

func TestFromEdgesMixedTypes(t *testing.T) {
	pairs := [][2]any{
		{1, 2},
		{2, 3.14},
		{3.14, "a"},
		{"a", "ą"},
		{"ą", true},
	}
	g := FromEdges(pairs, false, "")

	assert.Equal(t, DefaultName, g.Name())
	assert.Len(t, g.Nodes(), 6)
	assert.Len(t, g.Edges(), 5)
	expected := "graph G {\n" +
		"1 -- 2;\n" +
		"2 -- \"3.14\";\n" +
		"\"3.14\" -- a;\n" +
		"a -- ą;\n" +
		"ą -- True;\n" +
		"}\n"
	assert.Equal(t, expected, g.String())
}

func TestFromEdgesPrefixAndQuoting(t *testing.T) {
	g := FromEdges([][2]any{{1, "x y"}, {1, 2}}, true, "n")

	nodes := g.Nodes()
	require.Len(t, nodes, 3)
	assert.Equal(t, "n1", nodes[0].Name())
	assert.Equal(t, `"nx y"`, nodes[1].Name())
	assert.Equal(t, "digraph G {\nn1 -> \"nx y\";\nn1 -> n2;\n}\n", g.String())
}

func TestFromEdgesMatchesManualConstruction(t *testing.T) {
	built := FromEdges([][2]any{{"a b", 7}}, true, "")

	manual := NewGraph("G", KindDigraph)
	require.NoError(t, manual.AddNode(NewNode("a b")))
	require.NoError(t, manual.AddNode(NewNode("7")))
	require.NoError(t, manual.AddEdge(NewEdge("a b", "7")))

	assert.Equal(t, manual.String(), built.String())
}

func TestFromAdjacencyMatrix(t *testing.T) {
	matrix := [][]int{
		{0, 1, 1},
		{1, 0, 0},
		{0, 1, 1},
	}

	undirected := FromAdjacencyMatrix(matrix, false, "")
	assert.Equal(t, "graph G {\n1 -- 2;\n1 -- 3;\n3 -- 3;\n}\n", undirected.String())

	directed := FromAdjacencyMatrix(matrix, true, "v")
	assert.Equal(t, "digraph G {\nv1 -> v2;\nv1 -> v3;\nv2 -> v1;\nv3 -> v2;\nv3 -> v3;\n}\n", directed.String())
}

func TestFromIncidenceMatrix(t *testing.T) {
	matrix := [][]int{
		{-1, 1, 0},
		{0, 1, -1},
		{1, 0, 1},
		{1, 1, 1},
		{0, 0, 0},
	}
	g := FromIncidenceMatrix(matrix, true, "")
	assert.Equal(t, "digraph G {\n1 -> 2;\n3 -> 2;\n1 -> 3;\n}\n", g.String())
}
