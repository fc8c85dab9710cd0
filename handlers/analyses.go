package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	valkeystore "gameplay-analysis-api/valkey"
)

// HandleGetAnalysis returns the stored analysis record for one video as raw
// JSON.
func HandleGetAnalysis(logger *zap.Logger, deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		video := c.Param("video")
		if deps.Records == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "No record store configured"})
			return
		}

		data, err := deps.Records.GetRecord(c.Request.Context(), video)
		if err != nil {
			if errors.Is(err, valkeystore.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Analysis not found"})
				return
			}
			logger.Error("Analysis retrieval failed", zap.String("video", video), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve analysis"})
			return
		}

		c.Header("Content-Type", "application/json")
		c.String(http.StatusOK, string(data))
	}
}

// HandleListAnalyses returns the analysis index rows as JSON, newest first.
func HandleListAnalyses(logger *zap.Logger, deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		if deps.Index == nil {
			c.JSON(http.StatusOK, []gin.H{})
			return
		}

		rows, err := deps.Index.List(c.Request.Context())
		if err != nil {
			logger.Error("Index query failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve analysis list"})
			return
		}
		if len(rows) == 0 {
			c.JSON(http.StatusOK, []gin.H{})
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}
