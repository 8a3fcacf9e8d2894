package common

// AuthorizationHeaderName is the HTTP header carrying the bearer token on
// protected requests.
const AuthorizationHeaderName = "Authorization"

// BearerScheme is the only authorization scheme accepted by the guard.
const BearerScheme = "Bearer"

// RequestIDHeaderName is echoed back on every response for log correlation.
const RequestIDHeaderName = "X-Request-ID"
