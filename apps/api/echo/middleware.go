package echoapi

import (
	"github.com/labstack/echo/v4"

	"github.com/trezcool/edunotify/core/access"
	"github.com/trezcool/edunotify/core/auth"
)

var contextIdentityKey = "identity"

// identityMiddleware resolves the bearer token of the request, if any, into the caller's access.Identity.
// Requests without a valid token go on as access.Anonymous: operations decide what anonymous callers may do.
func identityMiddleware(authn *auth.Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			req := ctx.Request()
			id := authn.Authenticate(req.Context(), req.Header.Get(echo.HeaderAuthorization))
			ctx.Set(contextIdentityKey, id)
			ctx.SetRequest(req.WithContext(access.NewContext(req.Context(), id)))
			return next(ctx)
		}
	}
}

func contextIdentity(ctx echo.Context) access.Identity {
	if id, ok := ctx.Get(contextIdentityKey).(access.Identity); ok {
		return id
	}
	return access.Anonymous
}
