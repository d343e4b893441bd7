package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toposcope/toposcope/models"
	"github.com/toposcope/toposcope/render"
	"github.com/toposcope/toposcope/viewer"
)

func testGraph() *models.Graph {
	g := models.NewGraph("lab")
	g.AddNode(models.NewNode("a", "alpha"))
	g.AddNode(models.NewNode("b", "beta"))
	g.AddLink("a", "b", 1.0)
	return g
}

// newTestServer builds a server over a loaded view with its frame loop
// running, so View.Do submissions are consumed.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	opts := viewer.DefaultOptions()
	opts.Data = testGraph()
	opts.Width, opts.Height = 200, 150

	renderer, err := render.New("png")
	require.NoError(t, err)
	v, err := viewer.New(opts, renderer, nil)
	require.NoError(t, err)
	require.NoError(t, v.LoadGraph(opts.Data))

	ctx, cancel := context.WithCancel(context.Background())
	go v.Loop(ctx)
	t.Cleanup(cancel)

	srv := httptest.NewServer(New(v))
	t.Cleanup(srv.Close)
	return srv
}

func TestGraphEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/graph")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var g models.Graph
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&g))
	assert.Equal(t, "lab", g.Label)
	assert.Len(t, g.Nodes, 2)
	assert.Len(t, g.Links, 1)
}

func TestFrameEndpoints(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/frame.png")
	require.NoError(t, err)
	png, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	require.True(t, len(png) > 8)
	assert.Equal(t, "\x89PNG", string(png[:4]))

	resp, err = http.Get(srv.URL + "/frame.svg")
	require.NoError(t, err)
	svg, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
	assert.Contains(t, string(svg), "<svg")
}

func TestWebsocketStreamsPositions(t *testing.T) {
	srv := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg frameMessage
	require.NoError(t, conn.ReadJSON(&msg))
	require.Len(t, msg.Nodes, 2)
	assert.Equal(t, "a", msg.Nodes[0].ID)
}

func TestIndexPage(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(body), "/frame.png")
	assert.Contains(t, string(body), "/ws")

	resp, err = http.Get(srv.URL + "/nope")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
