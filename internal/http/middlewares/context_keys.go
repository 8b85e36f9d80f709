package middlewares

// gin context keys. String-typed because gin's Set/Get take strings.
const (
	CtxRequestID = "request_id"
	ctxUserKey   = "auth.user"
)
