// Package server provides HTTP routing, middleware, session resolution, and the OAuth2 authorization-code flow for the spotifeel backend.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Authorization State Machine
//
// Anonymous → PendingAuth (state cookie set at /auth/login) → Authenticated
// (session cookie and persisted token record after /auth/callback) →
// Expired (detected only when a proxied call fails upstream) → PendingAuth
// via re-login. /auth/logout returns the session to Anonymous, clearing both
// the session cookie and the persisted record.
//
// There is no background refresh loop; /auth/refresh is an explicit
// operation a client invokes before a proxied call.
//
// # Session Resolution
//
// The [SessionResolver] is the single function from request identity to
// token-or-error. Missing cookie and missing token record are distinct
// failure modes so routes answer 401 with the stage that actually failed.
//
// The session cookie holds the raw Spotify user id, unsigned. Anyone who can
// read or guess another user's id can impersonate them within this backend.
//
// # Handlers
//
// [AuthHandler] serves the login/callback/refresh/logout flow, [UserHandler]
// proxies the read-only data queries, [MetaHandler] serves the banner and
// health probe. Custom handlers implement the [Handler] interface, which
// wraps the stdlib handler interface and adds routes, allowing handlers to
// register multiple routes to encapsulate route definitions within the
// implementation.
package server
