// Package gin provides adapters for using fault-envelope with Gin framework.
package gin

import (
	"net/http"

	faultenvelope "github.com/blackwell-systems/fault-envelope"
	"github.com/gin-gonic/gin"
)

// Trace wires fault-envelope trace ID middleware into Gin's middleware chain.
//
// This generates or propagates trace IDs and makes them available via
// faultenvelope.TraceIDFromRequest(c.Request).
//
// Example:
//
//	r := gin.Default()
//	r.Use(Trace())
//	r.GET("/user", func(c *gin.Context) {
//	    traceID := faultenvelope.TraceIDFromRequest(c.Request)
//	    // ...
//	})
func Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Wrap remaining chain with fault-envelope trace middleware
		handler := faultenvelope.TraceMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Update context with traced request
			c.Request = r
			c.Next()
		}))

		handler.ServeHTTP(c.Writer, c.Request)
	}
}

// HandlerFunc is a Gin handler that reports its result instead of writing it.
type HandlerFunc func(c *gin.Context) (faultenvelope.Response, error)

// Handle adapts fn to a gin.HandlerFunc. Unexpected faults are logged with
// the method and route path as component.
//
// Example:
//
//	r.GET("/orders/:id", Handle(t, func(c *gin.Context) (faultenvelope.Response, error) {
//	    return faultenvelope.Response{}, faultenvelope.Gone("order archived")
//	}))
func Handle(t *faultenvelope.Translator, fn HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		t.ServeResult(c.Writer, c.Request, Component(c), func() (faultenvelope.Response, error) {
			return fn(c)
		})
		c.Abort()
	}
}

// Errors translates the last error attached with c.Error by a downstream
// handler, provided nothing has been written yet.
//
// Example:
//
//	r.Use(Errors(t))
//	r.GET("/legacy", func(c *gin.Context) {
//	    _ = c.Error(faultenvelope.NotFound("no such thing"))
//	})
func Errors(t *faultenvelope.Translator) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		last := c.Errors.Last()
		if last == nil || c.Writer.Written() {
			return
		}
		t.ServeResult(c.Writer, c.Request, Component(c), func() (faultenvelope.Response, error) {
			return faultenvelope.Response{}, last.Err
		})
	}
}

// Component returns the method and registered route path of c, falling back
// to the raw URL path when no route matched.
func Component(c *gin.Context) string {
	path := c.FullPath()
	if path == "" {
		path = c.Request.URL.Path
	}
	return c.Request.Method + " " + path
}
