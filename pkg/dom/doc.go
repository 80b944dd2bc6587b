// Package dom is an in-memory document that implements vdom.Host.
//
// Every host call is recorded as a Mutation, which makes the document useful
// both as a test double (assert the exact calls a reconciliation made) and as
// the source of the patch stream the playground server sends to browsers.
// Events can be dispatched at any node and bubble to the root like in a
// browser. The document serializes to HTML for snapshots and the CLI.
//
// A Document is not safe for concurrent use.
package dom
