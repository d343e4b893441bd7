package models

import (
	"github.com/google/uuid"
)

// NewGraph creates an empty graph with a unique ID and the given label.
func NewGraph(label string) *Graph {
	return &Graph{
		ID:    uuid.New().String(),
		Label: label,
		Nodes: []*Node{},
		Links: []*Link{},
	}
}

// NewNode creates a node with the given ID. An empty ID is replaced with a
// generated one so discovery sources can emit nodes before naming them.
func NewNode(id, label string) *Node {
	if id == "" {
		id = uuid.New().String()
	}
	return &Node{
		ID:    id,
		Label: label,
		Size:  1.0,
	}
}

// AddNode appends a node to the graph.
func (g *Graph) AddNode(n *Node) {
	g.Nodes = append(g.Nodes, n)
}

// AddLink appends a link between two node IDs. The endpoints are resolved
// later by ResolveLinks together with the rest of the graph.
func (g *Graph) AddLink(source, target string, weight float64) {
	g.Links = append(g.Links, &Link{Source: source, Target: target, Weight: weight})
}

// FindNodeByID returns the node with the given ID, or nil.
func (g *Graph) FindNodeByID(id string) *Node {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// Degree returns the number of links touching the node with the given ID.
// The physics link force uses degrees to scale per-link strength so highly
// connected nodes are not over-constrained.
func (g *Graph) Degree(id string) int {
	count := 0
	for _, l := range g.Links {
		if l.Source == id || l.Target == id {
			count++
		}
	}
	return count
}

// Neighbors returns the nodes directly connected to the node with the
// given ID, in link order.
func (g *Graph) Neighbors(id string) []*Node {
	seen := make(map[string]bool)
	var result []*Node
	for _, l := range g.Links {
		var otherID string
		switch id {
		case l.Source:
			otherID = l.Target
		case l.Target:
			otherID = l.Source
		default:
			continue
		}
		if seen[otherID] {
			continue
		}
		seen[otherID] = true
		if n := g.FindNodeByID(otherID); n != nil {
			result = append(result, n)
		}
	}
	return result
}
