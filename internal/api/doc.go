// Package api handles incoming HTTP requests for the board and memo
// resources: parameter parsing, request validation and response envelopes.
// It translates HTTP concerns to service calls and service errors back to
// status codes.
//
// Listings never fail loudly. When the database cannot produce a page the
// handler answers 200 with success=false and an empty, well-formed
// envelope; only malformed requests get 400. Writes and detail lookups
// report failures with 404 or 500.
package api
