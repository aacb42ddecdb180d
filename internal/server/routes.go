package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/MagedNabil/graphQL/internal/build"
	"github.com/MagedNabil/graphQL/internal/server/gql"
	"github.com/MagedNabil/graphQL/internal/server/middleware"
)

type Handlers struct {
	fx.In

	Graphql *gql.GraphqlHandler
}

func SetupRoutes(server *Server, handlers Handlers) {
	server.Use(middleware.AccessLog())
	server.Use(middleware.WithLoggingTracing(server.Config.Trace))

	// Setup CORS middleware at server level if enabled
	if server.Config.CORS.Enabled {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = server.Config.CORS.AllowedOrigins
		corsConfig.AllowMethods = server.Config.CORS.AllowedMethods
		corsConfig.AllowHeaders = server.Config.CORS.AllowedHeaders
		corsConfig.ExposeHeaders = server.Config.CORS.ExposedHeaders
		corsConfig.AllowCredentials = server.Config.CORS.AllowCredentials
		corsConfig.MaxAge = server.Config.CORS.MaxAge

		corsHandler := cors.New(corsConfig)
		server.Use(corsHandler)
		server.OPTIONS("*any", corsHandler)
	}

	server.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"version": build.Version,
		})
	})

	graphGroup := server.Group("/graph", middleware.WithTimeout(server.Config.RequestTimeout))
	{
		graphGroup.POST("", func(c *gin.Context) {
			handlers.Graphql.Graphql.ServeHTTP(c.Writer, c.Request)
		})

		if server.Config.GraphiQL {
			graphGroup.GET("", func(c *gin.Context) {
				handlers.Graphql.Playground.ServeHTTP(c.Writer, c.Request)
			})
		}
	}
}
