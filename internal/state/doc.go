// Package state persists rename sessions.
//
// A session belongs to one working directory and holds a stack of task
// snapshots, oldest first. Only the top task is ever mutated; adding files
// after a finished commit pushes a new task and the oldest tasks fall off
// once the stack exceeds the configured depth. Sessions are stored as JSON
// files in ~/.batchren/sessions, written atomically through fsops.
//
// Key concepts:
//   - Session: the task stack for one directory
//   - SessionID: stable identifier derived from the directory path
//   - SessionStore: interface for persisting and loading sessions
package state
