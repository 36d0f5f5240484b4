// Command gohtmlstream is a small HTTP server that parses an uploaded
// document and streams each begin/end event as a JSON line over a
// websocket connection, for live inspection of the parse event sequence.
//
// Grounded on pages.go's wsUpgrader/IsWebSocketUpgrade live-reload
// channel, repurposed from "push re-render" to "push parse events": the
// browser posts the document once over the socket, the server replies
// with one JSON message per Begin/End callback.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/tleino/gohtml"
	"github.com/tleino/gohtml/treebuilder"
)

// wsUpgrader mirrors pages.go's package-level websocket.Upgrader.
var wsUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// event is one JSON line sent to the browser per Begin/End callback.
type event struct {
	Phase string            `json:"phase"` // "begin" or "end"
	Kind  string            `json:"kind"`  // "elem", "text", "comment", or "document"
	Name  string            `json:"name,omitempty"`
	Data  string            `json:"data,omitempty"`
	Attrs map[string]string `json:"attrs,omitempty"`
}

func describe(n *treebuilder.Node) event {
	switch n.Kind {
	case treebuilder.ElemNode:
		attrs := make(map[string]string)
		for a := n.Elem.Attr; a != nil; a = a.Next {
			if _, ok := attrs[a.Name]; !ok {
				attrs[a.Name] = a.Value
			}
		}
		return event{Kind: "elem", Name: n.Elem.Name, Attrs: attrs}
	case treebuilder.CDATANode:
		kind := "text"
		if n.CData.Type == treebuilder.CommentCData {
			kind = "comment"
		}
		return event{Kind: kind, Data: n.CData.Data}
	default:
		return event{Kind: "document"}
	}
}

func main() {
	addr := flag.String("addr", ":8089", "HTTP listen address")
	flag.Parse()

	logger := slog.Default()

	mux := http.NewServeMux()
	mux.HandleFunc("/", serveIndex)
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		serveWS(w, r, logger)
	})

	logger.Info("starting gohtmlstream", "addr", *addr)
	if err := http.ListenAndServe(*addr, mux); err != nil {
		logger.Error("http server error", "error", err)
	}
}

func serveWS(w http.ResponseWriter, r *http.Request, logger *slog.Logger) {
	if !websocket.IsWebSocketUpgrade(r) {
		http.Error(w, "expected websocket upgrade", http.StatusBadRequest)
		return
	}

	ws, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("upgrade websocket", "error", err)
		return
	}
	defer ws.Close()

	_, payload, err := ws.ReadMessage()
	if err != nil {
		if !websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
			logger.Warn("read websocket message", "error", err)
		}
		return
	}

	err = gohtml.Parse(strings.NewReader(string(payload)), gohtml.Options{
		Begin: func(n *treebuilder.Node) {
			sendEvent(ws, "begin", n, logger)
		},
		End: func(n *treebuilder.Node) {
			sendEvent(ws, "end", n, logger)
		},
	})

	done := map[string]any{"phase": "done"}
	if err != nil {
		done["error"] = err.Error()
	}
	if b, mErr := json.Marshal(done); mErr == nil {
		_ = ws.WriteMessage(websocket.TextMessage, b)
	}
}

func sendEvent(ws *websocket.Conn, phase string, n *treebuilder.Node, logger *slog.Logger) {
	e := describe(n)
	e.Phase = phase
	b, err := json.Marshal(e)
	if err != nil {
		logger.Warn("marshal event", "error", err)
		return
	}
	if err := ws.WriteMessage(websocket.TextMessage, b); err != nil {
		logger.Warn("write websocket message", "error", err)
	}
}

const indexPage = `<!DOCTYPE html>
<html>
<head><title>gohtmlstream</title></head>
<body>
<textarea id="src" rows="10" cols="60">&lt;p&gt;hello &lt;b&gt;world&lt;/b&gt;&lt;/p&gt;</textarea><br>
<button id="go">Parse</button>
<pre id="log"></pre>
<script>
document.getElementById("go").onclick = function() {
	var log = document.getElementById("log");
	log.textContent = "";
	var ws = new WebSocket("ws://" + location.host + "/ws");
	ws.onopen = function() {
		ws.send(document.getElementById("src").value);
	};
	ws.onmessage = function(ev) {
		log.textContent += ev.data + "\n";
	};
};
</script>
</body>
</html>`

func serveIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexPage)
}
