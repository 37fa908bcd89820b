// Package inspect serves a running shell over HTTP.
//
//	GET  /routes      navigable routes and the current path (JSON)
//	POST /navigate    navigate to {"path": "...", "replace": bool, "params": {...}}
//	                  and return the new frame
//	POST /back        history back
//	POST /forward     history forward
//	GET  /frame       the current frame (JSON)
//	GET  /frame.html  the current frame as an HTML document that follows the
//	                  live stream
//	GET  /ws          websocket stream of presented frames
//	GET  /metrics     Prometheus metrics, when a gatherer is configured
//	GET  /healthz     liveness
//
// Handlers never call the router directly. Navigation runs on the render.Loop
// that owns the router, and frames are read from the MemorySurface it
// presents to.
package inspect
