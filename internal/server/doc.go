// Package server provides the HTTP plumbing behind the local OAuth callback flow.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] registered with Use is baked into routes at registration time; the first
// registered middleware sees the request first.
//
// The [BasicRouter] implementation uses [http.ServeMux] method patterns for verb filtering.
//
// # OAuth Callback Handler
//
// OAuthHandler implements the OAuth2 authorization code callback flow.
//
// The handler validates the state parameter (CSRF protection), exchanges the authorization code for tokens,
// and sends the result through a channel.
//
// It only processes one callback to prevent replay attacks.
//
// # Current Usage
//
// When the user runs `trackferry auth login`, a temporary HTTP server starts on the
// configured host and port, the browser is opened to Google's consent screen, the
// callback lands here, and the server shuts down once the token arrives.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
