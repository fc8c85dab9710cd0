package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gameplay-analysis-api/analyzer"
	"gameplay-analysis-api/storage"
)

// HandleVideoUpload runs the full pipeline for one uploaded video: persist
// the raw bytes, send the video through inference, extract the structured
// record, and store it under a generated identifier. Each stage failure is a
// 500 with the failure reason as the body; the stored blob is not rolled back
// when a later stage fails.
func HandleVideoUpload(logger *zap.Logger, deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		contentType := c.GetHeader("Content-Type")
		if !strings.HasPrefix(contentType, "video/") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Content-Type. Expected video/*"})
			return
		}

		data, err := io.ReadAll(c.Request.Body)
		if err != nil {
			logger.Error("Reading request body failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read video data"})
			return
		}
		if len(data) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Empty video body"})
			return
		}

		videoName := fmt.Sprintf("video_%d.mp4", time.Now().Unix())
		ctx := c.Request.Context()

		if err := deps.Blobs.Put(ctx, videoName, data, contentType); err != nil {
			logger.Error("Video storage failed", zap.String("video", videoName), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Video upload failed."})
			return
		}

		prompt := analyzer.BuildPrompt(deps.Game, deps.Focus)
		raw, err := deps.Analyzer.AnalyzeVideo(ctx, videoName, data, contentType, prompt)
		if err != nil {
			logger.Error("Video analysis failed", zap.String("video", videoName), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Analysis failed: %v", err)})
			return
		}

		rec, err := analyzer.ExtractRecord(raw)
		if err != nil {
			logger.Error("Record extraction failed", zap.String("video", videoName), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Analysis failed: %v", err)})
			return
		}

		if deps.Records != nil {
			serialized, err := json.Marshal(rec)
			if err != nil {
				logger.Error("Record serialization failed", zap.String("video", videoName), zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store analysis."})
				return
			}
			if err := deps.Records.PutRecord(ctx, videoName, serialized); err != nil {
				logger.Error("Record storage failed", zap.String("video", videoName), zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store analysis."})
				return
			}
		}

		// The index is advisory; a failed insert is logged, not surfaced.
		if deps.Index != nil {
			row := storage.IndexRow{
				VideoName:           videoName,
				Game:                rec.Game,
				Mistakes:            len(rec.Mistakes),
				RepeatedErrors:      len(rec.RepeatedErrors),
				MissedOpportunities: len(rec.MissedOpportunities),
			}
			if err := deps.Index.Insert(ctx, row); err != nil {
				logger.Error("Index insert failed", zap.String("video", videoName), zap.Error(err))
			}
		}

		logger.Info("Video analyzed and stored",
			zap.String("video", videoName),
			zap.String("game", rec.Game),
			zap.Int("mistakes", len(rec.Mistakes)))

		c.JSON(http.StatusOK, gin.H{
			"message":    "Video uploaded and analysis stored",
			"video_name": videoName,
		})
	}
}
