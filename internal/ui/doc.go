// Package ui contains the Bubble Tea program that renders the workspace and
// turns terminal input into tab view callbacks.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function (keys, mouse, resize, content results, backend events).
//   - Mouse gestures are resolved against the same geometry the view draws
//     (layout.go), so a press, a drag and a release always agree with what is
//     on screen. Every decision about the layout is delegated to the
//     tabview.Controller; the model never edits the workspace itself.
//   - The quick-open picker (picker.go) owns all text entry. Its filtering and
//     cursor state live in internal/ui/state.Picker.
//
// Content:
//   - Tab bodies are resolved off the update loop through the command bus.
//     Each request carries a sequence number and results that arrive after a
//     newer request for the same tab are dropped.
//   - A backend.Watcher polls file-backed tabs; change events invalidate the
//     cached bodies so the next update reloads them.
//
// Rendering reads only Controller.Snapshot and Controller.Session, so hover
// feedback during a drag never requires a workspace mutation.
package ui
