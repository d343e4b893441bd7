// Package server exposes a running view over HTTP: the graph as JSON,
// rendered frames as PNG or SVG, and a websocket that streams node
// positions while accepting pointer input. All view state stays on the
// view's goroutine; handlers submit closures through View.Do and wait.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/toposcope/toposcope/interact"
	"github.com/toposcope/toposcope/render"
	"github.com/toposcope/toposcope/viewer"
)

// doTimeout bounds how long a handler waits for the view's goroutine.
const doTimeout = 2 * time.Second

// positionInterval is the cadence of websocket position updates.
const positionInterval = 50 * time.Millisecond

// Server serves one view.
type Server struct {
	view *viewer.View
	ctrl *interact.Controller
	mux  *http.ServeMux

	upgrader websocket.Upgrader
}

// New wires a server around a loaded view. The interaction controller
// shares the view's scene and camera and schedules renders through the
// view's frame loop.
func New(v *viewer.View) *Server {
	w, h := v.Viewport()
	ctrl := interact.NewController(v.Scene(), v.Camera(), w, h)
	ctrl.RequestRender = v.RequestRender

	s := &Server{
		view: v,
		ctrl: ctrl,
		mux:  http.NewServeMux(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/api/graph", s.handleGraph)
	s.mux.HandleFunc("/frame.png", s.handleFrame("png", "image/png"))
	s.mux.HandleFunc("/frame.svg", s.handleFrame("svg", "image/svg+xml"))
	s.mux.HandleFunc("/ws", s.handleWS)
	return s
}

// ServeHTTP implements http.Handler so the server can be mounted or
// driven by httptest.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Serve runs the view's frame loop and the HTTP listener until the
// context is canceled or the listener fails.
func (s *Server) Serve(ctx context.Context, addr string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loopErr := make(chan error, 1)
	go func() { loopErr <- s.view.Loop(ctx) }()

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
		// No WriteTimeout: it would sever long-lived websockets.
		IdleTimeout: 120 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("server: listening on %s", addr)
	err := srv.ListenAndServe()
	cancel()
	if errors.Is(err, http.ErrServerClosed) {
		err = <-loopErr
		if errors.Is(err, context.Canceled) {
			return nil
		}
	}
	return err
}

// do runs fn on the view's goroutine and waits for it to finish. Returns
// false when the view is too busy to take the work in time.
func (s *Server) do(fn func()) bool {
	done := make(chan struct{})
	s.view.Do(func() {
		fn()
		close(done)
	})
	select {
	case <-done:
		return true
	case <-time.After(doTimeout):
		return false
	}
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	var data []byte
	var err error
	ok := s.do(func() {
		data, err = json.MarshalIndent(s.view.Graph(), "", "  ")
	})
	if !ok {
		http.Error(w, "view busy", http.StatusServiceUnavailable)
		return
	}
	if err != nil {
		http.Error(w, "encoding graph: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// handleFrame renders a fresh frame in the requested format. The view's
// own renderer is untouched; formats are served by stateless renderers
// built per request.
func (s *Server) handleFrame(format, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderer, err := render.New(format)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		var frame []byte
		ok := s.do(func() {
			vw, vh := s.view.Viewport()
			frame, err = renderer.Render(s.view.Scene(), s.view.Camera(), int(vw), int(vh))
		})
		if !ok {
			http.Error(w, "view busy", http.StatusServiceUnavailable)
			return
		}
		if err != nil {
			http.Error(w, "rendering frame: "+err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.Write(frame)
	}
}

// pointerEvent is one input message from the websocket client.
type pointerEvent struct {
	Type   string  `json:"type"` // down, move, up, leave, wheel, resize
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Delta  float64 `json:"delta,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

// nodePosition is one node in a frame update.
type nodePosition struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// frameMessage is one position update pushed to the websocket client.
type frameMessage struct {
	Frame int            `json:"frame"`
	Nodes []nodePosition `json:"nodes"`
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("server: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	// Reader: pointer input onto the view goroutine.
	go func() {
		for {
			var ev pointerEvent
			if err := conn.ReadJSON(&ev); err != nil {
				return
			}
			s.view.Do(func() { s.dispatch(ev) })
		}
	}()

	// Writer: position snapshots whenever a new frame has rendered.
	ticker := time.NewTicker(positionInterval)
	defer ticker.Stop()

	lastFrame := -1
	for range ticker.C {
		var msg frameMessage
		if !s.do(func() { msg = s.snapshot() }) {
			continue
		}
		if msg.Frame == lastFrame {
			continue
		}
		lastFrame = msg.Frame
		if err := conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

// dispatch routes one pointer event to the controller. Runs on the view
// goroutine.
func (s *Server) dispatch(ev pointerEvent) {
	switch ev.Type {
	case "down":
		s.ctrl.PointerDown(ev.X, ev.Y)
	case "move":
		s.ctrl.PointerMove(ev.X, ev.Y)
	case "up":
		s.ctrl.PointerUp(ev.X, ev.Y)
	case "leave":
		s.ctrl.PointerLeave()
	case "wheel":
		s.ctrl.Wheel(ev.X, ev.Y, ev.Delta)
	case "resize":
		s.view.Resize(ev.Width, ev.Height)
		w, h := s.view.Viewport()
		s.ctrl.Resize(w, h)
	default:
		log.Printf("server: unknown pointer event %q", ev.Type)
	}
}

// snapshot captures current node positions. Runs on the view goroutine.
func (s *Server) snapshot() frameMessage {
	msg := frameMessage{Frame: s.view.Frames()}
	g := s.view.Graph()
	if g == nil {
		return msg
	}
	msg.Nodes = make([]nodePosition, len(g.Nodes))
	for i, n := range g.Nodes {
		msg.Nodes[i] = nodePosition{ID: n.ID, X: n.X, Y: n.Y}
	}
	return msg
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, indexHTML)
}

// indexHTML is a minimal client: it shows the rendered frame and relays
// pointer input over the websocket, refreshing the image on each update.
const indexHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>toposcope</title>
  <style>
    body { margin: 0; background: #111; display: flex; justify-content: center; }
    img { cursor: grab; user-select: none; -webkit-user-drag: none; }
  </style>
</head>
<body>
  <img id="frame" src="/frame.png" alt="topology">
  <script>
    const img = document.getElementById('frame');
    const ws = new WebSocket((location.protocol === 'https:' ? 'wss://' : 'ws://') + location.host + '/ws');
    const send = (type, e, extra) => {
      if (ws.readyState !== WebSocket.OPEN) return;
      const r = img.getBoundingClientRect();
      ws.send(JSON.stringify(Object.assign({type: type, x: e.clientX - r.left, y: e.clientY - r.top}, extra)));
    };
    img.addEventListener('mousedown', e => send('down', e));
    img.addEventListener('mousemove', e => send('move', e));
    img.addEventListener('mouseup', e => send('up', e));
    img.addEventListener('mouseleave', () => ws.readyState === WebSocket.OPEN && ws.send(JSON.stringify({type: 'leave'})));
    img.addEventListener('wheel', e => { e.preventDefault(); send('wheel', e, {delta: Math.sign(e.deltaY)}); });
    ws.onmessage = () => { img.src = '/frame.png?t=' + Date.now(); };
  </script>
</body>
</html>
`
