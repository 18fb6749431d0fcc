// Package middleware groups the Fiber middleware used by the HTTP server.
//
// Subpackages:
//   - rayid: assigns a unique ray id to every request for log correlation.
//   - auth: optional API key protection for the whole API surface.
package middleware
