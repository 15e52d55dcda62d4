// Package contentapi downloads documents from a content API into a local
// corpus directory.
//
// The API serves each collection under its own path segment:
//
//	GET  {base}/{api}/health
//	GET  {base}/{api}/ids?batch_size=N&cursor=C
//	POST {base}/{api}/documents   {"ids": [...]}
//
// Requests carry an OAuth2 bearer token obtained with the client credentials
// grant, are paced by a rate limiter and are retried with exponential
// backoff on transport errors and server errors.
package contentapi
