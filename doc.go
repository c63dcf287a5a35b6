// Package tea provides the Cmd/Sub message algebra for a Model-Update-Subscription
// (The Elm Architecture) runtime. Cmd and Sub are both lazy descriptions of a
// stream of Msg values: Cmd completes after emitting its messages, Sub is an
// ongoing source that keeps producing until cancelled.
//
// Construction is pure; nothing runs until the platform runtime (package
// platform) executes a value by calling it with a context and an emit
// callback. Two executions of the same Cmd or Sub value are independent.
//
// See package platform for the scheduler that owns the model, drives update,
// and switches the active Sub on every model change; package task for
// converting an effectful computation into a single-message Cmd; and package
// view for projecting the model stream through a view function.
package tea
