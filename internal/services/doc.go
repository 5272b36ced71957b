// Package services talks to the music brief generation API.
//
// # Endpoints
//
// [GeneratorService] wraps three endpoints relative to the configured base URL:
//   - POST /generate : {"idea": "..."} returns the brief as one JSON object
//   - POST /generate-stream : same body, returns "data: " lines decoded by package stream
//   - POST /generate-pdf : the brief itself, returns a PDF document
//
// [APIClient] performs the raw HTTP exchanges; it knows nothing about briefs.
//
// # Error Handling
//
// Failures are wrapped around sentinel errors from the shared package:
//   - [shared.ErrAPIRequest] : transport failure, unreadable body, or rejected status
//   - [shared.ErrInvalidBrief] : a successful response whose body is not a JSON object
//   - [shared.ErrStreamFailed] : the stream carried an error envelope
//   - [shared.ErrStreamIncomplete] : the stream ended without a result
//
// Nothing is retried. Cancelling the context closes the connection, which is the only way to stop
// a stream early.
package services
