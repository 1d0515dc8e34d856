package gateway

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/petalworks/registry/backend/internal/registry"
)

// DefaultPathPrefix is stripped from inbound paths before route matching.
const DefaultPathPrefix = "/api"

var errMissingStore = errors.New("registry store dependency required")

// Dependencies carries the collaborators of the HTTP handler.
type Dependencies struct {
	Store       registry.Store
	Logger      *zap.Logger
	PathPrefix  string
	CORSOrigins []string
}

// NewHTTPHandler builds the hosting gin engine around the gateway
// chain. Gin contributes panic recovery, CORS, and JSON rendering; all
// route resolution happens in the gateway's own table, so every request
// funnels through the NoRoute adapter.
func NewHTTPHandler(deps Dependencies) (http.Handler, error) {
	if deps.Store == nil {
		return nil, errMissingStore
	}

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	pathPrefix := deps.PathPrefix
	if pathPrefix == "" {
		pathPrefix = DefaultPathPrefix
	}

	origins := deps.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{"Content-Type"},
		MaxAge:       12 * time.Hour,
	}))

	chain := Compose(
		ErrorMiddleware(logger),
		RouteMiddleware(newRouteTable(newHandlerSet(deps.Store)), pathPrefix),
	)

	engine.NoRoute(func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			logger.Error("failed to read request body", zap.Error(err))
			c.JSON(http.StatusInternalServerError, errorBody{Error: internalErrorMessage})
			return
		}

		request := &Request{
			Method: c.Request.Method,
			Path:   c.Request.URL.Path,
			Body:   body,
			Params: make(map[string]string),
		}

		response, err := chain(c.Request.Context(), request)
		if err != nil {
			// The error middleware is the outermost boundary; nothing
			// should reach here.
			logger.Error("unhandled gateway failure", zap.Error(err))
			c.JSON(http.StatusInternalServerError, errorBody{Error: internalErrorMessage})
			return
		}
		c.JSON(response.Status, response.Body)
	})

	return engine, nil
}

// newRouteTable registers the registry's HTTP surface. Literal segments
// such as /gifts/create are registered ahead of the /gifts/:id capture
// patterns they would otherwise collide with.
func newRouteTable(handlers *handlerSet) *RouteTable {
	table := NewRouteTable()
	table.Register(http.MethodGet, "/gifts", handlers.listGifts)
	table.Register(http.MethodPost, "/gifts", handlers.createGift)
	table.Register(http.MethodPost, "/gifts/create", handlers.createGift)
	table.Register(http.MethodGet, "/gifts/:id", handlers.getGift)
	table.Register(http.MethodPut, "/gifts/:id/edit", handlers.editGift)
	table.Register(http.MethodDelete, "/gifts/:id/delete", handlers.deleteGift)
	table.Register(http.MethodPost, "/gifts/:id/reserve", handlers.reserveGift)
	table.Register(http.MethodGet, "/messages", handlers.listMessages)
	table.Register(http.MethodPost, "/messages", handlers.createMessage)
	table.Register(http.MethodPost, "/messages/create", handlers.createMessage)
	return table
}
