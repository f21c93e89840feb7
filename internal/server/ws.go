package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/specialistvlad/blueprintgo/internal/ctxlog"
	"github.com/specialistvlad/blueprintgo/internal/diag"
)

const (
	wsWriteWait = 10 * time.Second
	wsPongWait  = 60 * time.Second
	wsPingEvery = (wsPongWait * 9) / 10
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

type wsInbound struct {
	Type      string `json:"type"`
	RequestID string `json:"requestId,omitempty"`
	Request
}

type wsOutbound struct {
	Type      string            `json:"type"`
	RequestID string            `json:"requestId,omitempty"`
	Script    string            `json:"script,omitempty"`
	Warnings  []diag.Diagnostic `json:"warnings,omitempty"`
	Error     *diag.Diagnostic  `json:"error,omitempty"`
}

// handleWS runs one editor session. Messages are processed in order, so each
// build result answers the request before it.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(ctxlog.WithLogger(r.Context(), s.logger))
	defer cancel()
	s.logger.Debug("Websocket session opened.", "remote_addr", r.RemoteAddr)

	if err := conn.SetReadDeadline(time.Now().Add(wsPongWait)); err != nil {
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	writeCh := make(chan wsOutbound, 32)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		writeLoop(ctx, cancel, conn, writeCh)
	}()

	for {
		var in wsInbound
		if err := conn.ReadJSON(&in); err != nil {
			s.logger.Debug("Websocket session closed.", "reason", err)
			cancel()
			<-writerDone
			return
		}

		var out wsOutbound
		switch strings.ToLower(strings.TrimSpace(in.Type)) {
		case "ping":
			out = wsOutbound{Type: "pong", RequestID: in.RequestID}
		case "build":
			out = s.wsBuild(ctx, in)
		default:
			d := diag.Diagnostic{Kind: diag.KindInternal, Message: fmt.Sprintf("unknown message type %q", in.Type)}
			out = wsOutbound{Type: "error", RequestID: in.RequestID, Error: &d}
		}

		select {
		case writeCh <- out:
		case <-ctx.Done():
			<-writerDone
			return
		}
	}
}

// wsWriter is the write side of a websocket connection.
type wsWriter interface {
	SetWriteDeadline(t time.Time) error
	WriteJSON(v any) error
	WriteMessage(messageType int, data []byte) error
}

// writeLoop sends queued replies and keepalive pings until ctx is done or a
// write fails. Either way it cancels ctx so the reader stops queueing.
func writeLoop(ctx context.Context, cancel context.CancelFunc, conn wsWriter, writeCh <-chan wsOutbound) {
	defer cancel()
	ticker := time.NewTicker(wsPingEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case out := <-writeCh:
			if err := conn.SetWriteDeadline(time.Now().Add(wsWriteWait)); err != nil {
				return
			}
			if err := conn.WriteJSON(out); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.SetWriteDeadline(time.Now().Add(wsWriteWait)); err != nil {
				return
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *Server) wsBuild(ctx context.Context, in wsInbound) wsOutbound {
	res, err := s.compile(ctx, in.Request)
	if err != nil {
		d := diag.FromError(err)
		return wsOutbound{Type: "error", RequestID: in.RequestID, Error: &d}
	}
	return wsOutbound{Type: "result", RequestID: in.RequestID, Script: res.Script, Warnings: res.Warnings}
}
