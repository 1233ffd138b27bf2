package dotparser

import (
	"fmt"
	"strings"

	"github.com/pydot/pydot-ng/dot"
)

// Severity represents the severity level of a validation diagnostic.
type Severity int

const (
	// Error means renderers will reject the graph.
	Error Severity = iota
	// Warning means the graph renders but may not round-trip or look as intended.
	Warning
	// Info is an informational note.
	Info
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "ERROR"
	case Warning:
		return "WARNING"
	case Info:
		return "INFO"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Diagnostic is a single validation finding.
type Diagnostic struct {
	Rule     string   // rule identifier (e.g., "keyword_node")
	Severity Severity // ERROR, WARNING, or INFO
	Message  string   // human-readable description
	Graph    string   // name of the graph or subgraph concerned (optional)
	NodeID   string   // related node ID (optional)
	Edge     *EdgeRef // related edge as (from, to) (optional)
	Fix      string   // suggested fix (optional)
}

// EdgeRef identifies an edge by its endpoints.
type EdgeRef struct {
	From string
	To   string
}

func (d Diagnostic) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s: %s", d.Severity, d.Rule, d.Message)
	if d.Graph != "" {
		fmt.Fprintf(&b, " (graph: %s)", d.Graph)
	}
	if d.NodeID != "" {
		fmt.Fprintf(&b, " (node: %s)", d.NodeID)
	}
	if d.Edge != nil {
		fmt.Fprintf(&b, " (edge: %s -> %s)", d.Edge.From, d.Edge.To)
	}
	if d.Fix != "" {
		fmt.Fprintf(&b, " -- fix: %s", d.Fix)
	}
	return b.String()
}

// LintRule is the interface for a single validation rule.
type LintRule interface {
	Name() string
	Apply(g *dot.Graph) []Diagnostic
}

// ValidationError is returned by ValidateOrError when error-severity diagnostics exist.
type ValidationError struct {
	Diagnostics []Diagnostic
}

func (e *ValidationError) Error() string {
	var msgs []string
	for _, d := range e.Diagnostics {
		msgs = append(msgs, d.String())
	}
	return fmt.Sprintf("validation failed with %d error(s):\n  %s", len(e.Diagnostics), strings.Join(msgs, "\n  "))
}

// Validate runs all built-in rules (and any extra rules) against the graph.
// Returns all diagnostics regardless of severity.
func Validate(g *dot.Graph, extraRules ...LintRule) []Diagnostic {
	rules := builtInRules()
	rules = append(rules, extraRules...)

	var diagnostics []Diagnostic
	for _, rule := range rules {
		diagnostics = append(diagnostics, rule.Apply(g)...)
	}
	return diagnostics
}

// ValidateOrError runs Validate and returns an error if any error-severity
// diagnostics are found. Non-error diagnostics are still returned.
func ValidateOrError(g *dot.Graph, extraRules ...LintRule) ([]Diagnostic, error) {
	diagnostics := Validate(g, extraRules...)

	var errors []Diagnostic
	for _, d := range diagnostics {
		if d.Severity == Error {
			errors = append(errors, d)
		}
	}
	if len(errors) > 0 {
		return diagnostics, &ValidationError{Diagnostics: errors}
	}
	return diagnostics, nil
}

func builtInRules() []LintRule {
	return []LintRule{
		endpointNamedRule{},
		keywordNodeRule{},
		multiEdgeRule{},
		charsetKnownRule{},
		emptyClusterRule{},
	}
}

// --- Helper functions ---

// walk visits g and every nested subgraph, including subgraphs used as edge
// endpoints, depth first.
func walk(g *dot.Graph, fn func(*dot.Graph)) {
	fn(g)
	for _, e := range g.Edges() {
		for _, ep := range []dot.Endpoint{e.Source(), e.Destination()} {
			if ep.Subgraph != nil {
				walk(ep.Subgraph, fn)
			}
		}
	}
	for _, s := range g.Subgraphs() {
		walk(s, fn)
	}
}

func edgeRef(e *dot.Edge) *EdgeRef {
	return &EdgeRef{From: e.Source().String(), To: e.Destination().String()}
}

// knownCharsets are the charset values Graphviz accepts.
var knownCharsets = map[string]bool{
	"utf-8":      true,
	"utf8":       true,
	"latin1":     true,
	"latin-1":    true,
	"l1":         true,
	"iso-8859-1": true,
	"iso_8859-1": true,
	"iso8859-1":  true,
	"iso-ir-100": true,
	"big-5":      true,
	"big5":       true,
}

// --- Rule implementations ---

// endpoint_named: every node endpoint needs a non-empty identifier.
type endpointNamedRule struct{}

func (endpointNamedRule) Name() string { return "endpoint_named" }

func (endpointNamedRule) Apply(g *dot.Graph) []Diagnostic {
	var diags []Diagnostic
	walk(g, func(sg *dot.Graph) {
		for _, e := range sg.Edges() {
			for _, ep := range []dot.Endpoint{e.Source(), e.Destination()} {
				if ep.Subgraph == nil && dot.Unquote(ep.ID) == "" {
					diags = append(diags, Diagnostic{
						Rule:     "endpoint_named",
						Severity: Error,
						Message:  "edge endpoint has an empty identifier",
						Graph:    sg.Name(),
						Edge:     edgeRef(e),
						Fix:      "name both endpoints of the edge",
					})
				}
			}
		}
	})
	return diags
}

// keyword_node: a node named after a keyword is dropped or misread when the
// graph is written and parsed again.
type keywordNodeRule struct{}

func (keywordNodeRule) Name() string { return "keyword_node" }

func (keywordNodeRule) Apply(g *dot.Graph) []Diagnostic {
	var diags []Diagnostic
	walk(g, func(sg *dot.Graph) {
		for _, n := range sg.Nodes() {
			if !dot.IsKeyword(n.Name()) {
				continue
			}
			diags = append(diags, Diagnostic{
				Rule:     "keyword_node",
				Severity: Warning,
				Message:  fmt.Sprintf("node %q uses a DOT keyword as its name", n.Name()),
				Graph:    sg.Name(),
				NodeID:   n.Name(),
				Fix:      fmt.Sprintf("quote the name: \"%s\"", n.Name()),
			})
		}
	})
	return diags
}

// multi_edge: repeated edges are kept, but a strict graph collapses them
// when rendered.
type multiEdgeRule struct{}

func (multiEdgeRule) Name() string { return "multi_edge" }

func (multiEdgeRule) Apply(g *dot.Graph) []Diagnostic {
	strict := g.Root().Strict()
	directed := g.Directed()

	var diags []Diagnostic
	walk(g, func(sg *dot.Graph) {
		seen := make(map[[2]string]bool)
		for _, e := range sg.Edges() {
			if e.Source().IsSubgraph() || e.Destination().IsSubgraph() {
				continue
			}
			key := [2]string{dot.CanonicalID(e.Source().ID), dot.CanonicalID(e.Destination().ID)}
			if !directed && key[0] > key[1] {
				key[0], key[1] = key[1], key[0]
			}
			if !seen[key] {
				seen[key] = true
				continue
			}
			d := Diagnostic{
				Rule:     "multi_edge",
				Severity: Info,
				Message:  "edge is declared more than once",
				Graph:    sg.Name(),
				Edge:     edgeRef(e),
			}
			if strict {
				d.Severity = Warning
				d.Message = "strict graph declares the edge more than once; renderers merge the copies"
				d.Fix = "drop the duplicate or remove the strict flag"
			}
			diags = append(diags, d)
		}
	})
	return diags
}

// charset_known: the charset label must be one Graphviz understands.
type charsetKnownRule struct{}

func (charsetKnownRule) Name() string { return "charset_known" }

func (charsetKnownRule) Apply(g *dot.Graph) []Diagnostic {
	var diags []Diagnostic
	check := func(source, label string) {
		if label == "" || knownCharsets[strings.ToLower(dot.Unquote(label))] {
			return
		}
		diags = append(diags, Diagnostic{
			Rule:     "charset_known",
			Severity: Warning,
			Message:  fmt.Sprintf("%s %q is not a charset Graphviz supports", source, label),
			Graph:    g.Name(),
			Fix:      "use UTF-8, latin1 or big-5",
		})
	}
	check("declared charset", g.Charset())
	if v, ok := g.Get("charset"); ok {
		check("charset attribute", v)
	}
	return diags
}

// empty_cluster: renderers draw nothing for a cluster without content.
type emptyClusterRule struct{}

func (emptyClusterRule) Name() string { return "empty_cluster" }

func (emptyClusterRule) Apply(g *dot.Graph) []Diagnostic {
	var diags []Diagnostic
	walk(g, func(sg *dot.Graph) {
		if sg.Role() != dot.RoleCluster {
			return
		}
		if len(sg.Nodes()) > 0 || len(sg.Edges()) > 0 || len(sg.Subgraphs()) > 0 {
			return
		}
		diags = append(diags, Diagnostic{
			Rule:     "empty_cluster",
			Severity: Info,
			Message:  fmt.Sprintf("cluster %q has no nodes, edges or subgraphs", sg.Name()),
			Graph:    sg.Name(),
		})
	})
	return diags
}
