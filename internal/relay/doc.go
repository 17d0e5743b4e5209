// Package relay connects the remote app to a session over websockets.
//
// Inbound actions ({"type": "SWING", "payload": {...}}) are decoded with
// [ParseAction] and forwarded on a command channel to the session loop.
// The [Hub] is also a session.Notifier: every state change, shot result,
// camera change and audio cue is broadcast as {"type": ..., "data": ...}.
package relay
