package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"gameplay-analysis-api/storage"
)

// VideoAnalyzer runs one video through the inference service and returns the
// raw model response.
type VideoAnalyzer interface {
	AnalyzeVideo(ctx context.Context, displayName string, data []byte, mimeType string, prompt string) (string, error)
}

// RecordStore persists and enumerates serialized analysis records.
type RecordStore interface {
	PutRecord(ctx context.Context, videoName string, data []byte) error
	GetRecord(ctx context.Context, videoName string) ([]byte, error)
	ListVideos(ctx context.Context) ([]string, error)
}

// AnalysisIndex is the optional manifest of analyzed videos.
type AnalysisIndex interface {
	Insert(ctx context.Context, row storage.IndexRow) error
	List(ctx context.Context) ([]storage.IndexRow, error)
}

// Deps carries everything the handlers need. Records and Index are nil when
// the corresponding store is not configured; the handlers degrade instead of
// failing (empty listing page, no index row).
type Deps struct {
	Analyzer VideoAnalyzer
	Blobs    storage.BlobStore
	Records  RecordStore
	Index    AnalysisIndex

	// Game and Focus parameterize the analysis prompt for every upload.
	Game  string
	Focus string
}

// RequireAPIKey rejects requests whose X-API-Key header does not match the
// configured key. When no key is configured the check is a no-op.
func RequireAPIKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key != "" && c.GetHeader("X-API-Key") != key {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing API key"})
			return
		}
		c.Next()
	}
}

// HandleUsage answers unsupported methods with a usage hint.
func HandleUsage() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Send a POST request with a video file to analyze, or a GET request to view the analysis results.",
		})
	}
}
