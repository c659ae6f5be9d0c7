// Package echo provides adapters for using fault-envelope with Echo framework.
package echo

import (
	"errors"
	"net/http"

	faultenvelope "github.com/blackwell-systems/fault-envelope"
	echofw "github.com/labstack/echo/v4"
)

// Trace adapts fault-envelope trace middleware to Echo's middleware interface.
//
// This generates or propagates trace IDs and makes them available via
// faultenvelope.TraceIDFromRequest(c.Request()).
//
// Example:
//
//	e := echo.New()
//	e.Use(Trace)
func Trace(next echofw.HandlerFunc) echofw.HandlerFunc {
	return func(c echofw.Context) error {
		var err error
		handler := faultenvelope.TraceMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Update context with traced request
			c.SetRequest(r)
			err = next(c)
		}))

		handler.ServeHTTP(c.Response().Writer, c.Request())
		return err
	}
}

// HandlerFunc is an Echo handler that reports its result instead of writing it.
type HandlerFunc func(c echofw.Context) (faultenvelope.Response, error)

// Handle adapts fn to an echo.HandlerFunc. The translated result is always
// written, so the returned error is always nil.
//
// Example:
//
//	e.GET("/user/:id", Handle(t, func(c echo.Context) (faultenvelope.Response, error) {
//	    return faultenvelope.Response{}, faultenvelope.NotFound("no such user")
//	}))
func Handle(t *faultenvelope.Translator, fn HandlerFunc) echofw.HandlerFunc {
	return func(c echofw.Context) error {
		t.ServeResult(c.Response(), c.Request(), Component(c), func() (faultenvelope.Response, error) {
			return fn(c)
		})
		return nil
	}
}

// ErrorHandler returns an echo.HTTPErrorHandler that writes every error
// returned by plain Echo handlers through t. An *echo.HTTPError with a 4xx code,
// such as the router's 404 and 405, becomes the generic envelope for its
// status; anything else is translated as a fault.
//
// Example:
//
//	e.HTTPErrorHandler = ErrorHandler(t)
func ErrorHandler(t *faultenvelope.Translator) echofw.HTTPErrorHandler {
	return func(err error, c echofw.Context) {
		if c.Response().Committed {
			return
		}
		t.ServeResult(c.Response(), c.Request(), Component(c), func() (faultenvelope.Response, error) {
			var he *echofw.HTTPError
			if errors.As(err, &he) && he.Code >= 400 && he.Code < http.StatusInternalServerError {
				return faultenvelope.Respond(he.Code, nil), nil
			}
			return faultenvelope.Response{}, err
		})
	}
}

// Component returns the method and registered route path of c, falling back
// to the raw URL path when no route matched.
func Component(c echofw.Context) string {
	path := c.Path()
	if path == "" {
		path = c.Request().URL.Path
	}
	return c.Request().Method + " " + path
}
