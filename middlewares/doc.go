// Package middlewares provides the HTTP middleware of the web shell.
//
//   - RequestID tags each request with an ID for logs and error pages.
//   - ClientKey identifies the browser with a long-lived cookie. The key
//     addresses toast notifications and selects the visitor's render
//     boundary.
//   - Recover turns handler panics outside the page render into PanicError.
//
// Register RequestIDExtractor and ClientKeyExtractor with the logger to add
// request_id and client_key to every log record.
package middlewares
