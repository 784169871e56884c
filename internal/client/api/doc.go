// Package api is the API Gateway: the single choke point for HTTP calls to
// the storefront backend.
//
// # Overview
//
// Gateway.Call attaches the stored bearer token, decodes JSON responses and
// recovers transparently from access-token expiry:
//
//  1. first attempt: send the request with the current access token;
//  2. on 401, refresh once through the attached Refresher and re-send the
//     request exactly once with the new token;
//  3. if the refresh fails, or the retried request is rejected with 401
//     again, the session is expired (tokens cleared) and ErrSessionExpired
//     is returned.
//
// Concurrent calls that hit 401 at the same time share one refresh.
//
// Gateway.Raw performs a single exchange without a token and without the
// retry protocol; it is used for login, registration and refresh itself.
//
// # Error Handling
//
// Transport failures and timeouts are *NetworkError (errors.Is ErrNetwork).
// Other non-2xx responses are *APIError carrying the server message.
package api
