// Package http holds the HTTP handlers for the SKPG reporting API.
//
// Handlers translate between the wire (query-parameter filter selections,
// JSON responses via render, RFC 7807 problem documents) and the service
// layer. Routing and middleware are assembled in internal/app.
package http
