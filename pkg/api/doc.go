// Package api defines the request and response messages of the settleup
// Connect services. Messages are plain structs serialized as JSON; see the
// apiconnect package for the handlers and clients that carry them.
package api
