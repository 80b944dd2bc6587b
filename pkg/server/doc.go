// Package server hosts the vtree playground over HTTP and WebSocket.
//
// Each WebSocket connection gets its own session: a fresh dom.Document, a
// render context bound to it and a new instance of the application tree.
// The session announces itself with a Hello frame, then streams the
// document's mutation log to the client as Patches frames. Client Event
// frames are dispatched into the session document, and whatever the
// handlers change is flushed back as the next Patches frame.
//
// Routes:
//
//	GET /            playground page
//	GET /client.js   patch-applying client
//	GET /ws          WebSocket session
//	GET /healthz     liveness
//	GET /metrics     Prometheus metrics (when a gatherer is configured)
//
// All engine work for a session runs under the session mutex; sessions
// never share a document.
package server
