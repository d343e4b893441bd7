// Package models provides the data structures shared across the toposcope
// application: the topology graph, its nodes and links, and the error
// taxonomy used by loading and configuration.
package models

import (
	"encoding/json"
	"fmt"
)

// Node represents a device or endpoint in the topology.
// X/Y and VX/VY are the mutable simulation state assigned by the physics
// solver. The position fields are always mutated in place, never replaced,
// so the scene and the simulation observe the same memory without copying.
type Node struct {
	ID         string         `json:"id"`
	Label      string         `json:"label,omitempty"`
	Kind       string         `json:"kind,omitempty"` // e.g. "host", "gateway", "service"
	Addr       string         `json:"addr,omitempty"`
	Size       float64        `json:"size,omitempty"`
	X          float64        `json:"x"`
	Y          float64        `json:"y"`
	VX         float64        `json:"vx,omitempty"`
	VY         float64        `json:"vy,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
}

// Link represents a connection between two nodes. Source and Target carry
// the raw node IDs as loaded; From and To are filled in by a single
// resolution pass (Graph.ResolveLinks) before layout begins.
type Link struct {
	Source   string  `json:"source"`
	Target   string  `json:"target"`
	From     *Node   `json:"-"`
	To       *Node   `json:"-"`
	Weight   float64 `json:"weight,omitempty"`
	Protocol string  `json:"protocol,omitempty"`
}

// Resolved reports whether the link's endpoints have been resolved to
// node references.
func (l *Link) Resolved() bool {
	return l.From != nil && l.To != nil
}

// Graph is the externally supplied topology: an ordered set of nodes, an
// ordered set of links between them, and descriptive metadata consumed by
// the metadata overlay.
type Graph struct {
	ID       string  `json:"id,omitempty"`
	Label    string  `json:"label,omitempty"`
	Metric   string  `json:"metric,omitempty"`
	Protocol string  `json:"protocol,omitempty"`
	Version  string  `json:"version,omitempty"`
	Nodes    []*Node `json:"nodes"`
	Links    []*Link `json:"links"`

	resolved bool
}

// UnmarshalGraph decodes a JSON document into a Graph and validates its
// shape. A document without nodes or links arrays is a load error.
func UnmarshalGraph(data []byte) (*Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, &LoadError{Reason: "malformed graph document", Err: err}
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return &g, nil
}

// Validate checks the structural invariants of a loaded graph: the nodes
// and links sequences are present, node IDs are unique, and every link
// endpoint names a known node.
func (g *Graph) Validate() error {
	if g.Nodes == nil {
		return &LoadError{Reason: "graph is missing nodes"}
	}
	if g.Links == nil {
		return &LoadError{Reason: "graph is missing links"}
	}
	seen := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		if n.ID == "" {
			return &LoadError{Reason: "node with empty id"}
		}
		if seen[n.ID] {
			return &LoadError{Reason: fmt.Sprintf("duplicate node id %q", n.ID)}
		}
		seen[n.ID] = true
	}
	for _, l := range g.Links {
		if !seen[l.Source] {
			return &LoadError{Reason: fmt.Sprintf("link source %q is not a node", l.Source)}
		}
		if !seen[l.Target] {
			return &LoadError{Reason: fmt.Sprintf("link target %q is not a node", l.Target)}
		}
	}
	return nil
}

// ResolveLinks replaces each link's raw source/target IDs with direct node
// references. Resolution happens exactly once per graph; calling it again
// is a no-op. Layout must not begin before links are resolved.
func (g *Graph) ResolveLinks() error {
	if g.resolved {
		return nil
	}
	byID := make(map[string]*Node, len(g.Nodes))
	for _, n := range g.Nodes {
		byID[n.ID] = n
	}
	for _, l := range g.Links {
		from, ok := byID[l.Source]
		if !ok {
			return &LoadError{Reason: fmt.Sprintf("link source %q is not a node", l.Source)}
		}
		to, ok := byID[l.Target]
		if !ok {
			return &LoadError{Reason: fmt.Sprintf("link target %q is not a node", l.Target)}
		}
		l.From = from
		l.To = to
	}
	g.resolved = true
	return nil
}

// Resolved reports whether ResolveLinks has completed for this graph.
func (g *Graph) Resolved() bool {
	return g.resolved
}
