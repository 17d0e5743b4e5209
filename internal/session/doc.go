// Package session sequences a round of shots.
//
// A [Session] is a closed state machine (see [Next] for the transition
// table) that decides when the physics stepper runs and tells its
// [Notifier] about state changes, camera changes, audio cues and finished
// shots. Commands from collaborators go through [Session.Dispatch]; frames
// go through [Session.Tick]. [Loop] runs both on one goroutine.
package session
