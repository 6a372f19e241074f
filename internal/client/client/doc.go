// Package client contains the client-side building blocks that reach outside
// the process.
//
// # Overview
//
// The package provides:
//  1. The remote API contract, split by concern (AuthAPI, HWIDAPI,
//     AccountAPI) and combined in Client.
//  2. HTTPClient, the HTTP/JSON implementation. It adds the bearer token to
//     authenticated calls and maps non-2xx answers to *APIError.
//  3. UserIDFromToken, which reads the user id from an unverified token
//     payload for the ban request.
//  4. Local persistence bootstrap (InitDatabase, RunMigrations): an SQLite
//     database with embedded goose migrations.
//
// # Error Handling
//
// Callers match conditions with errors.Is / errors.As: ErrUnavailable for
// transport failures, ErrUnauthorized for 401 answers, ErrEmptyResponse for
// a missing body, and *APIError for the server status and message.
//
// # Timeouts
//
// No retry or backoff is performed. Requests are bounded by the configured
// timeout (zero means none) and by the caller's context.
package client
