package dotparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pydot/pydot-ng/dot"
)

// --- helpers ---

func mustParse(t *testing.T, src string) *dot.Graph {
	t.Helper()
	g, err := ParseOne([]byte(src))
	require.NoError(t, err)
	return g
}

func diagsByRule(diags []Diagnostic, rule string) []Diagnostic {
	var out []Diagnostic
	for _, d := range diags {
		if d.Rule == rule {
			out = append(out, d)
		}
	}
	return out
}

func hasRule(diags []Diagnostic, rule string) bool {
	return len(diagsByRule(diags, rule)) > 0
}

// validGraph is a small graph that triggers no rule.
const validGraph = `
digraph Valid {
    charset="UTF-8"
    node [shape=box]
    start [label="Start"]
    start -> work -> done
    subgraph cluster_group { inner }
}
`

// --- Validate / ValidateOrError API tests ---

func TestValidateCleanGraph(t *testing.T) {
	g := mustParse(t, validGraph)
	diags := Validate(g)
	assert.Empty(t, diags)
}

func TestValidateOrErrorPassesWithoutErrors(t *testing.T) {
	g := mustParse(t, `graph G { a -- b; a -- b }`)
	diags, err := ValidateOrError(g)
	require.NoError(t, err)
	assert.True(t, hasRule(diags, "multi_edge"))
}

func TestValidateOrErrorFailsOnErrors(t *testing.T) {
	g := dot.NewGraph("G", dot.KindDigraph)
	require.NoError(t, g.AddEdge(dot.NewEdge("", "b")))

	diags, err := ValidateOrError(g)
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	require.Len(t, valErr.Diagnostics, 1)
	assert.Equal(t, "endpoint_named", valErr.Diagnostics[0].Rule)
	assert.Contains(t, err.Error(), "validation failed with 1 error(s)")
	assert.Len(t, diags, 1)
}

// --- Rule tests ---

func TestKeywordNodeRule(t *testing.T) {
	g := dot.NewGraph("G", dot.KindGraph)
	require.NoError(t, g.AddNode(dot.NewNode("node")))
	require.NoError(t, g.AddNode(dot.NewNode(`"edge"`)))
	require.NoError(t, g.AddNode(dot.NewNode("fine")))

	diags := diagsByRule(Validate(g), "keyword_node")
	require.Len(t, diags, 1)
	assert.Equal(t, Warning, diags[0].Severity)
	assert.Equal(t, "node", diags[0].NodeID)
	assert.Equal(t, `quote the name: "node"`, diags[0].Fix)
}

func TestMultiEdgeRule(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		count    int
		severity Severity
	}{
		{"directed duplicate", `digraph G { a -> b; a -> b }`, 1, Info},
		{"directed reverse is distinct", `digraph G { a -> b; b -> a }`, 0, Info},
		{"undirected reverse is duplicate", `graph G { a -- b; b -- a }`, 1, Info},
		{"quoted and bare are the same node", `graph G { a -- b; "a" -- b }`, 1, Info},
		{"strict graph", `strict digraph G { a -> b; a -> b; a -> b }`, 2, Warning},
		{"inside subgraph", `strict graph G { subgraph s { x -- y; x -- y } }`, 1, Warning},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustParse(t, tt.src)
			diags := diagsByRule(Validate(g), "multi_edge")
			require.Len(t, diags, tt.count)
			for _, d := range diags {
				assert.Equal(t, tt.severity, d.Severity)
				require.NotNil(t, d.Edge)
			}
		})
	}
}

func TestCharsetKnownRule(t *testing.T) {
	g := mustParse(t, `graph G { charset=klingon }`)
	diags := diagsByRule(Validate(g), "charset_known")
	require.Len(t, diags, 1)
	assert.Equal(t, Warning, diags[0].Severity)

	g = dot.NewGraph("G", dot.KindGraph)
	g.SetCharset("latin1")
	assert.False(t, hasRule(Validate(g), "charset_known"))

	g.SetCharset("ebcdic")
	assert.True(t, hasRule(Validate(g), "charset_known"))
}

func TestEmptyClusterRule(t *testing.T) {
	g := mustParse(t, `graph G { subgraph cluster_empty { label=x } subgraph plain { } }`)
	diags := diagsByRule(Validate(g), "empty_cluster")
	require.Len(t, diags, 1)
	assert.Equal(t, Info, diags[0].Severity)
	assert.Equal(t, "cluster_empty", diags[0].Graph)
}

func TestEndpointNamedRuleSkipsSubgraphEndpoints(t *testing.T) {
	g := mustParse(t, `digraph G { { a } -> b }`)
	assert.False(t, hasRule(Validate(g), "endpoint_named"))
}

func TestRulesWalkSubgraphEndpoints(t *testing.T) {
	sub := dot.NewSubgraph("")
	require.NoError(t, sub.AddNode(dot.NewNode("graph")))
	root := dot.NewGraph("G", dot.KindDigraph)
	require.NoError(t, root.AddEdge(dot.NewEdgeBetween(dot.Sub(sub), dot.ID("b"))))

	diags := diagsByRule(Validate(root), "keyword_node")
	require.Len(t, diags, 1)
	assert.Equal(t, "graph", diags[0].NodeID)
}

// --- Custom rules ---

type noLabelRule struct{}

func (noLabelRule) Name() string { return "no_label" }

func (noLabelRule) Apply(g *dot.Graph) []Diagnostic {
	var diags []Diagnostic
	for _, n := range g.Nodes() {
		if _, ok := n.Get("label"); !ok {
			diags = append(diags, Diagnostic{
				Rule:     "no_label",
				Severity: Error,
				Message:  "node has no label",
				NodeID:   n.Name(),
			})
		}
	}
	return diags
}

func TestValidateExtraRules(t *testing.T) {
	g := mustParse(t, `graph G { a [label=A]; b }`)
	diags, err := ValidateOrError(g, noLabelRule{})
	require.Error(t, err)
	found := diagsByRule(diags, "no_label")
	require.Len(t, found, 1)
	assert.Equal(t, "b", found[0].NodeID)
}

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{
		Rule:     "multi_edge",
		Severity: Warning,
		Message:  "dup",
		Graph:    "G",
		Edge:     &EdgeRef{From: "a", To: "b"},
		Fix:      "drop it",
	}
	assert.Equal(t, "[WARNING] multi_edge: dup (graph: G) (edge: a -> b) -- fix: drop it", d.String())
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "ERROR", Error.String())
	assert.Equal(t, "WARNING", Warning.String())
	assert.Equal(t, "INFO", Info.String())
	assert.Equal(t, "Severity(7)", Severity(7).String())
}
