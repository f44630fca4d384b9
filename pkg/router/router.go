package router

import (
	"context"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/questx-lab/rewards/pkg/xcontext"
)

// HandlerFunc handles a request after it has been bound from the query string
// (GET) or the JSON body (POST).
type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before the handler. A non-nil returned context replaces
// the request context, a non-nil error stops the chain.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs after the handler, even if the handler or a middleware
// failed. The response and error are available through xcontext.
type CloserFunc func(ctx context.Context)

type Router struct {
	rootCtx context.Context
	engine  *gin.Engine
	inner   gin.IRouter

	befores []MiddlewareFunc
	afters  []MiddlewareFunc
	closers []CloserFunc
}

func New(rootCtx context.Context) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	if origins := xcontext.Configs(rootCtx).ApiServer.AllowOrigins; len(origins) > 0 {
		corsCfg.AllowOrigins = origins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	engine.Use(cors.New(corsCfg))

	r := &Router{rootCtx: rootCtx, engine: engine, inner: engine}
	r.AddCloser(handleResponse())
	return r
}

// Branch returns a child router which shares the routes of the parent but has
// its own copy of middlewares and closers.
func (r *Router) Branch() *Router {
	clone := *r
	clone.befores = append([]MiddlewareFunc{}, r.befores...)
	clone.afters = append([]MiddlewareFunc{}, r.afters...)
	clone.closers = append([]CloserFunc{}, r.closers...)
	return &clone
}

func (r *Router) Before(m MiddlewareFunc) {
	r.befores = append(r.befores, m)
}

func (r *Router) After(m MiddlewareFunc) {
	r.afters = append(r.afters, m)
}

// AddCloser registers a closer. Closers run in the reverse order they were
// added, so the response writer added by New always runs last.
func (r *Router) AddCloser(c CloserFunc) {
	r.closers = append([]CloserFunc{c}, r.closers...)
}

// Handle mounts a plain http.Handler, bypassing the middlewares.
func (r *Router) Handle(method, pattern string, h http.Handler) {
	r.inner.Handle(method, pattern, gin.WrapH(h))
}

func (r *Router) Handler() http.Handler {
	return r.engine
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.inner.GET(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.inner.POST(pattern, wrapHandler(r, http.MethodPost, handler))
}
