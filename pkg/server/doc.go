// Package server serves clickaway pages over WebSocket.
//
// Each connection to the events endpoint mounts its own Session: a
// dom.Document plus the root component bound to it. The client streams
// binary event frames (see package protocol); the server decodes each one,
// dispatches it to the document listeners, re-renders dirty components and
// runs pending effects. The only frames sent back are heartbeat pings; every
// pong extends the connection's read deadline.
//
// # Event Processing
//
// When a client sends an event:
//  1. The read loop decodes the binary event frame
//  2. The HID is resolved against the current tree
//  3. Document listeners for the event type run in registration order
//  4. The root component re-renders while it is dirty, at most 100 times;
//     elements keep their HIDs across renders
//  5. Pending effects run, re-acquiring listeners whose inputs changed
//
// Events of one connection are processed one at a time on the connection's
// goroutine.
//
// # Example Usage
//
//	srv := server.New(&server.Config{Address: ":8080"}, func(doc dom.EventTarget) vango.Component {
//	    return NewMenu(doc)
//	})
//	srv.Run()
//
// # Metrics
//
// The server registers clickaway_active_sessions and
// clickaway_websocket_errors_total, and its documents register the
// clickaway_dom_* collectors, with Config.Registry.
package server
