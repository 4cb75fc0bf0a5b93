// Copyright 2026 The Confkit Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package confsync exchanges whole configuration documents over WebSocket
// connections. A message is always one complete serialized store; there is
// no streaming or partial-document state. Reads and writes honor context
// cancellation by forcing the connection deadline.
package confsync

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"zombiezen.com/go/log"

	"github.com/confkit/confkit/ini"
)

// Send serializes f and writes it to the connection as one text message.
func Send(ctx context.Context, conn *websocket.Conn, f *ini.File) error {
	text, err := f.MarshalText()
	if err != nil {
		return fmt.Errorf("send config: %w", err)
	}
	if err := writeMessage(ctx, conn, text); err != nil {
		return fmt.Errorf("send config: %w", err)
	}
	log.Debugf(ctx, "Sent config (%d sections, %d bytes)", len(f.SectionNames()), len(text))
	return nil
}

// Receive reads the next text message from the connection and parses it
// as a complete document. A message that fails to parse is an error, but
// the connection remains usable. Nil options are treated identically to
// the zero value.
func Receive(ctx context.Context, conn *websocket.Conn, opts *ini.ParseOptions) (*ini.File, error) {
	typ, p, err := readMessage(ctx, conn)
	if err != nil {
		return nil, fmt.Errorf("receive config: %w", err)
	}
	if typ != websocket.TextMessage {
		return nil, fmt.Errorf("receive config: unexpected message type %d", typ)
	}
	f, err := ini.Parse(bytes.NewReader(p), opts)
	if err != nil {
		return nil, fmt.Errorf("receive config: %w", err)
	}
	log.Debugf(ctx, "Received config (%d sections, %d bytes)", len(f.SectionNames()), len(p))
	return f, nil
}

func readMessage(ctx context.Context, conn *websocket.Conn) (messageType int, p []byte, err error) {
	ctxDone := ctx.Done()
	if ctxDone == nil {
		return conn.ReadMessage()
	}
	select {
	case <-ctxDone:
		return 0, nil, ctx.Err()
	default:
	}
	read := make(chan struct{})
	watchDone := make(chan struct{})
	go func() {
		close(watchDone)
		select {
		case <-read:
		case <-ctxDone:
			conn.SetReadDeadline(time.Now())
		}
	}()
	messageType, p, err = conn.ReadMessage()
	close(read)
	<-watchDone
	return
}

func writeMessage(ctx context.Context, conn *websocket.Conn, data []byte) error {
	ctxDone := ctx.Done()
	if ctxDone == nil {
		return conn.WriteMessage(websocket.TextMessage, data)
	}
	select {
	case <-ctxDone:
		return ctx.Err()
	default:
	}
	written := make(chan struct{})
	watchDone := make(chan struct{})
	go func() {
		close(watchDone)
		select {
		case <-written:
		case <-ctxDone:
			// Deadline is set on the underlying net.Conn because
			// WriteMessage overwrites the websocket-level write deadline,
			// so this can race with a write that is just starting.
			conn.UnderlyingConn().SetWriteDeadline(time.Now())
		}
	}()
	err := conn.WriteMessage(websocket.TextMessage, data)
	close(written)
	<-watchDone
	return err
}
