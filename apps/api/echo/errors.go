package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/edunotify/core"
)

var (
	errInvalidRequest = echo.NewHTTPError(http.StatusBadRequest, "invalid GraphQL request")
	errMissingQuery   = echo.NewHTTPError(http.StatusBadRequest, "query is required")
)

var kindStatus = map[core.Kind]int{
	core.KindUnauthenticated: http.StatusUnauthorized,
	core.KindUnauthorized:    http.StatusForbidden,
	core.KindNotFound:        http.StatusNotFound,
	core.KindValidation:      http.StatusBadRequest,
	core.KindConflict:        http.StatusConflict,
}

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// GraphQL errors never get here: they are part of the GraphQL response.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		var appErr *core.Error
		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = origErr.Message
		default:
			if errors.As(err, &appErr) && appErr.Kind != core.KindInternal {
				code = kindStatus[appErr.Kind]
				if flds := appErr.FieldMap(); flds != nil {
					message = flds
				} else {
					message = appErr.Msg
				}
				break
			}

			// any other error is a server error
			code = http.StatusInternalServerError
			msg := http.StatusText(http.StatusInternalServerError)
			message = msg
			logger.Error(msg, errors.Wrap(err, msg), contextIdentity(ctx))

			// shutting down...
			if core.IsShutdown(err) {
				signalShutdown()
			}
		}

		if ctx.Echo().Debug {
			message = err.Error()
		}
		if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}

// gqlError is a resolver error carrying its kind as extensions.code.
type gqlError struct {
	msg    string
	code   string
	fields map[string]string
}

func (e *gqlError) Error() string { return e.msg }

func (e *gqlError) Extensions() map[string]interface{} {
	ext := map[string]interface{}{"code": e.code}
	if e.fields != nil {
		ext["fields"] = e.fields
	}
	return ext
}

const internalErrorMsg = "Internal server error"

// toGQLError maps err to a gqlError. Internal errors are logged and hidden from clients.
func toGQLError(err error, logger core.Logger, signalShutdown func(), args ...interface{}) *gqlError {
	var appErr *core.Error
	if errors.As(err, &appErr) && appErr.Kind != core.KindInternal {
		return &gqlError{msg: appErr.Msg, code: appErr.Kind.Code(), fields: appErr.FieldMap()}
	}

	logger.Error(internalErrorMsg, append([]interface{}{errors.WithStack(err)}, args...)...)
	if core.IsShutdown(err) && signalShutdown != nil {
		signalShutdown()
	}
	return &gqlError{msg: internalErrorMsg, code: core.KindInternal.Code()}
}
