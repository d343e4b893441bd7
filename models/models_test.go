package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoNodeGraph() *Graph {
	g := NewGraph("test")
	g.AddNode(NewNode("a", "Node A"))
	g.AddNode(NewNode("b", "Node B"))
	g.AddLink("a", "b", 1.0)
	return g
}

func TestResolveLinks(t *testing.T) {
	g := twoNodeGraph()
	require.NoError(t, g.ResolveLinks())

	require.True(t, g.Links[0].Resolved())
	assert.Equal(t, "a", g.Links[0].From.ID)
	assert.Equal(t, "b", g.Links[0].To.ID)
	assert.Same(t, g.Nodes[0], g.Links[0].From)
	assert.Same(t, g.Nodes[1], g.Links[0].To)
}

func TestResolveLinksExactlyOnce(t *testing.T) {
	g := twoNodeGraph()
	require.NoError(t, g.ResolveLinks())
	from, to := g.Links[0].From, g.Links[0].To

	// Re-resolving is a no-op: same references, no error.
	require.NoError(t, g.ResolveLinks())
	assert.Same(t, from, g.Links[0].From)
	assert.Same(t, to, g.Links[0].To)
	assert.True(t, g.Resolved())
}

func TestResolveLinksUnknownEndpoint(t *testing.T) {
	g := NewGraph("bad")
	g.AddNode(NewNode("a", ""))
	g.AddLink("a", "missing", 1.0)

	err := g.ResolveLinks()
	require.Error(t, err)
	var le *LoadError
	assert.True(t, errors.As(err, &le))
}

func TestUnmarshalGraph(t *testing.T) {
	data := []byte(`{
		"label": "lab", "protocol": "ospf", "version": "2",
		"nodes": [{"id": "a"}, {"id": "b"}],
		"links": [{"source": "a", "target": "b"}]
	}`)
	g, err := UnmarshalGraph(data)
	require.NoError(t, err)
	assert.Equal(t, "lab", g.Label)
	assert.Len(t, g.Nodes, 2)
	assert.Len(t, g.Links, 1)
}

func TestUnmarshalGraphMissingSections(t *testing.T) {
	cases := map[string]string{
		"no nodes": `{"links": []}`,
		"no links": `{"nodes": []}`,
		"garbage":  `{"nodes": 12}`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := UnmarshalGraph([]byte(doc))
			var le *LoadError
			require.Error(t, err)
			assert.True(t, errors.As(err, &le))
		})
	}
}

func TestValidateDuplicateNodeID(t *testing.T) {
	g := NewGraph("dup")
	g.AddNode(NewNode("a", ""))
	g.AddNode(NewNode("a", ""))
	assert.Error(t, g.Validate())
}

func TestDegreeAndNeighbors(t *testing.T) {
	g := NewGraph("star")
	for _, id := range []string{"hub", "x", "y", "z"} {
		g.AddNode(NewNode(id, ""))
	}
	g.AddLink("hub", "x", 1)
	g.AddLink("hub", "y", 1)
	g.AddLink("z", "hub", 1)

	assert.Equal(t, 3, g.Degree("hub"))
	assert.Equal(t, 1, g.Degree("x"))
	assert.Equal(t, 0, g.Degree("nope"))

	ns := g.Neighbors("hub")
	require.Len(t, ns, 3)
	assert.Equal(t, "x", ns[0].ID)
}
