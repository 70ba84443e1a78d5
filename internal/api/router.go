// Package api exposes the leads, rejections and runs over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/leadscout/internal/catalog"
	"github.com/jonesrussell/leadscout/internal/logger"
	"github.com/jonesrussell/leadscout/internal/metrics"
)

// NewRouter builds the HTTP router.
func NewRouter(h *Handler, cat *catalog.Catalog, log logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(ginLogger(log))
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	v1 := router.Group("/api/v1")

	leads := v1.Group("/leads")
	leads.GET("", h.ListLeads)
	leads.GET("/:platform/:username", h.GetLead)

	rejections := v1.Group("/rejections")
	rejections.GET("", h.ListRejections)
	rejections.DELETE("/:platform/:username", h.DeleteRejection)

	runs := v1.Group("/runs")
	runs.GET("", h.ListRuns)
	runs.GET("/:id", h.GetRun)
	runs.POST("", h.StartRun)

	v1.GET("/catalog", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version": cat.Version,
			"groups":  cat.GroupNames(),
		})
	})

	return router
}

func ginLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		log.Info("HTTP request",
			logger.String("method", method),
			logger.String("path", path),
			logger.Int("status_code", c.Writer.Status()),
			logger.String("client_ip", c.ClientIP()),
			logger.Duration("duration", time.Since(start)),
		)
	}
}
