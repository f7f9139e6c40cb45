package common

// AuthHeaderName is the HTTP header carrying the bearer token on
// protected routes.
const AuthHeaderName = "Authorization"

// BearerPrefix is the expected scheme prefix of the Authorization header.
const BearerPrefix = "Bearer "
