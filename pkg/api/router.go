// Package api implements a read-only HTTP window onto the loaded ZCL
// schema and the coordinator's observed state. It issues no ZCL
// commands itself — all mutation goes through pkg/mcpserver or a
// caller driving pkg/coordinator directly.
//
// @title       ZCL Test Harness API
// @version     1.0
// @description Read-only inspection API over the loaded ZCL schema and coordinator state
// @BasePath    /
package api

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/urmzd/zcl-harness/docs"
	"github.com/urmzd/zcl-harness/pkg/coordinator"
	"github.com/urmzd/zcl-harness/pkg/store"
	"github.com/urmzd/zcl-harness/pkg/zcl"
)

// Router holds the Gin engine and the read-only dependencies its
// handlers serve.
type Router struct {
	engine  *gin.Engine
	schema  *zcl.Schema
	session *coordinator.Session
	store   *store.Store
}

// NewRouter builds a Router over schema, session, and st. Any of
// session/st may be nil; handlers degrade gracefully (state endpoints
// report what is unavailable rather than panicking).
func NewRouter(schema *zcl.Schema, session *coordinator.Session, st *store.Store) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	SetupMiddleware(engine)

	r := &Router{engine: engine, schema: schema, session: session, store: st}
	r.setupRoutes()
	return r
}

func (r *Router) setupRoutes() {
	r.engine.GET("/healthz", r.healthz)

	s := r.engine.Group("/schema")
	{
		s.GET("/clusters", r.listClusters)
		s.GET("/clusters/:name", r.getCluster)
	}

	r.engine.GET("/state", r.getState)

	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// Run starts the HTTP server on addr, blocking until it exits.
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}

// Handler exposes the underlying http.Handler, e.g. for httptest.
func (r *Router) Handler() *gin.Engine { return r.engine }
