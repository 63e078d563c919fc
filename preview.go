package hubsite

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/flyballhub/hubsite/builder"
)

// PreviewHub fans editor patches into the overlay and notifies every open
// preview tab that a document changed. Patches are optimistic: the newest
// write wins and a stale one is acknowledged as dropped.
type PreviewHub struct {
	overlay *builder.Overlay

	mu      sync.Mutex
	clients map[*websocket.Conn]bool
	closed  bool
}

// NewPreviewHub creates a hub feeding the given overlay.
func NewPreviewHub(overlay *builder.Overlay) *PreviewHub {
	return &PreviewHub{
		overlay: overlay,
		clients: make(map[*websocket.Conn]bool),
	}
}

// Close disconnects every preview client.
func (h *PreviewHub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for conn := range h.clients {
		conn.Close()
	}
	h.clients = make(map[*websocket.Conn]bool)
}

func (h *PreviewHub) add(conn *websocket.Conn) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[conn] = true
	return true
}

func (h *PreviewHub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
}

type previewAck struct {
	Type       string `json:"type"`
	DocumentID string `json:"documentId"`
	Seq        int64  `json:"seq"`
	Applied    bool   `json:"applied"`
	Error      string `json:"error,omitempty"`
}

type previewNotice struct {
	Type       string `json:"type"`
	DocumentID string `json:"documentId"`
}

// broadcast tells every client except sender that a document was patched, so
// open preview tabs can refresh.
func (h *PreviewHub) broadcast(sender *websocket.Conn, docID string) {
	notice := previewNotice{Type: "patched", DocumentID: docID}
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		if conn != sender {
			conns = append(conns, conn)
		}
	}
	h.mu.Unlock()

	for _, conn := range conns {
		conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := conn.WriteJSON(notice); err != nil {
			conn.Close()
			h.remove(conn)
		}
	}
}

var previewUpgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// Sessions are SameSite=Lax; the socket is same-origin by construction.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handlePreviewSocket receives document patches from the editing session over
// a websocket and applies them to the preview overlay.
func (a *App) handlePreviewSocket(c echo.Context) error {
	if !IsAdmin(c) {
		return c.NoContent(http.StatusForbidden)
	}
	conn, err := previewUpgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	if !a.Preview.add(conn) {
		conn.Close()
		return nil
	}
	defer func() {
		a.Preview.remove(conn)
		conn.Close()
	}()

	for {
		var patch builder.Patch
		if err := conn.ReadJSON(&patch); err != nil {
			return nil
		}
		patch.Received = time.Now()

		ack := previewAck{Type: "ack", DocumentID: patch.DocumentID, Seq: patch.Seq}
		applied, err := a.Overlay.Apply(patch)
		if err != nil {
			ack.Error = err.Error()
		}
		ack.Applied = applied

		conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := conn.WriteJSON(ack); err != nil {
			return nil
		}
		if applied {
			a.Preview.broadcast(conn, patch.DocumentID)
		}
	}
}

// handlePreviewPage renders a page with pending patches applied, drafts
// included and editor attributes emitted.
func (a *App) handlePreviewPage(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	return a.renderPage(c, c.Param("slug"), true)
}
