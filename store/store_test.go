package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toposcope/toposcope/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "layouts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func positionedGraph() *models.Graph {
	g := models.NewGraph("lab")
	g.ID = "graph-1"
	a := models.NewNode("a", "alpha")
	a.X, a.Y = 12.5, -4.25
	b := models.NewNode("b", "beta")
	b.X, b.Y = -30, 17
	g.AddNode(a)
	g.AddNode(b)
	g.AddLink("a", "b", 1.0)
	return g
}

func TestSaveAndLoadLayout(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	g := positionedGraph()
	require.NoError(t, s.SaveLayout(ctx, g))

	// A fresh copy of the same graph starts at the origin.
	fresh := models.NewGraph("lab")
	fresh.ID = "graph-1"
	fresh.AddNode(models.NewNode("a", "alpha"))
	fresh.AddNode(models.NewNode("b", "beta"))

	applied, err := s.LoadLayout(ctx, fresh)
	require.NoError(t, err)
	assert.Equal(t, 2, applied)
	assert.Equal(t, 12.5, fresh.Nodes[0].X)
	assert.Equal(t, -4.25, fresh.Nodes[0].Y)
	assert.Equal(t, -30.0, fresh.Nodes[1].X)
}

func TestLoadLayoutSkipsUnknownNodes(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveLayout(ctx, positionedGraph()))

	grown := models.NewGraph("lab")
	grown.ID = "graph-1"
	grown.AddNode(models.NewNode("a", "alpha"))
	c := models.NewNode("c", "gamma")
	grown.AddNode(c)

	applied, err := s.LoadLayout(ctx, grown)
	require.NoError(t, err)
	assert.Equal(t, 1, applied)
	assert.Zero(t, c.X)
	assert.Zero(t, c.Y)
}

func TestSaveLayoutReplacesPrevious(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	g := positionedGraph()
	require.NoError(t, s.SaveLayout(ctx, g))

	// Drop a node and save again; the stale row must not survive.
	g.Nodes = g.Nodes[:1]
	g.Links = nil
	require.NoError(t, s.SaveLayout(ctx, g))

	fresh := positionedGraph()
	fresh.Nodes[0].X, fresh.Nodes[1].X = 0, 0
	applied, err := s.LoadLayout(ctx, fresh)
	require.NoError(t, err)
	assert.Equal(t, 1, applied)
}

func TestLayoutsAreScopedByGraphID(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveLayout(ctx, positionedGraph()))

	other := positionedGraph()
	other.ID = "graph-2"
	other.Nodes[0].X = 0

	applied, err := s.LoadLayout(ctx, other)
	require.NoError(t, err)
	assert.Zero(t, applied)
}

func TestGraphWithoutIDIsNotCached(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// A hand-built document with no ID shares node names with every other
	// such document; caching it would cross-restore positions.
	anon := positionedGraph()
	anon.ID = ""
	require.NoError(t, s.SaveLayout(ctx, anon))

	other := positionedGraph()
	other.ID = ""
	other.Nodes[0].X, other.Nodes[0].Y = 0, 0

	applied, err := s.LoadLayout(ctx, other)
	require.NoError(t, err)
	assert.Zero(t, applied)
	assert.Zero(t, other.Nodes[0].X)
}

func TestDeleteLayout(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveLayout(ctx, positionedGraph()))
	require.NoError(t, s.DeleteLayout(ctx, "graph-1"))

	applied, err := s.LoadLayout(ctx, positionedGraph())
	require.NoError(t, err)
	assert.Zero(t, applied)
}
