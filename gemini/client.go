package gemini

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"gameplay-analysis-api/config"
)

// ErrNotActive is returned when an uploaded file never reaches the ACTIVE
// state within the readiness window.
var ErrNotActive = errors.New("uploaded file did not become active")

// fileAPI is the slice of the genai client used for media handling; it exists
// so the readiness poll can be exercised against a fake in tests.
type fileAPI interface {
	UploadFile(ctx context.Context, name string, r io.Reader, opts *genai.UploadFileOptions) (*genai.File, error)
	GetFile(ctx context.Context, name string) (*genai.File, error)
}

// Client talks to the Gemini API: it uploads media, waits for server-side
// processing to finish, and runs the analysis prompt against the file.
type Client struct {
	files  fileAPI
	model  *genai.GenerativeModel
	logger *zap.Logger

	pollInterval     time.Duration
	maxWait          time.Duration
	inferenceTimeout time.Duration
}

// New builds a Client from the Gemini section of the configuration. The model
// is pinned to JSON output and a low temperature so responses stay close to
// the requested schema.
func New(ctx context.Context, cfg config.GeminiConfig, logger *zap.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key must not be empty")
	}

	sdk, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	model := sdk.GenerativeModel(cfg.Model)
	model.ResponseMIMEType = "application/json"
	model.SetTemperature(0.1)

	logger.Info("Inference client initialized", zap.String("model", cfg.Model))

	return &Client{
		files:            sdk,
		model:            model,
		logger:           logger,
		pollInterval:     cfg.PollInterval,
		maxWait:          cfg.MaxWait,
		inferenceTimeout: cfg.InferenceTimeout,
	}, nil
}

// Upload sends the raw video bytes to the Files API. The returned handle is
// usually still PROCESSING; callers must wait for it via AwaitActive.
func (c *Client) Upload(ctx context.Context, displayName string, r io.Reader, mimeType string) (*genai.File, error) {
	c.logger.Info("Uploading video to inference service", zap.String("name", displayName))

	file, err := c.files.UploadFile(ctx, "", r, &genai.UploadFileOptions{
		DisplayName: displayName,
		MIMEType:    mimeType,
	})
	if err != nil {
		return nil, fmt.Errorf("upload video: %w", err)
	}

	c.logger.Info("Video uploaded, waiting for activation", zap.String("uri", file.URI))
	return file, nil
}

// AwaitActive polls the file state at a fixed cadence until it is ACTIVE.
// There is no backoff: the wait is dominated by server-side transcoding, not
// client load. The poll gives up with ErrNotActive once the cap elapses, or
// immediately when the service marks the file FAILED.
func (c *Client) AwaitActive(ctx context.Context, file *genai.File) (*genai.File, error) {
	deadline := time.Now().Add(c.maxWait)
	for {
		current, err := c.files.GetFile(ctx, file.Name)
		if err != nil {
			return nil, fmt.Errorf("check file state: %w", err)
		}
		switch current.State {
		case genai.FileStateActive:
			c.logger.Info("File is now active", zap.String("name", current.Name))
			return current, nil
		case genai.FileStateFailed:
			return nil, fmt.Errorf("%w: server-side processing failed", ErrNotActive)
		}

		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w within %s", ErrNotActive, c.maxWait)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.pollInterval):
		}
		c.logger.Debug("Waiting for file activation", zap.String("name", file.Name))
	}
}

// Analyze submits the prompt plus the active file reference and returns the
// raw text of the response. The call is bounded by the inference timeout.
func (c *Client) Analyze(ctx context.Context, file *genai.File, prompt string) (string, error) {
	c.logger.Info("Sending video for analysis", zap.String("name", file.Name))

	ctx, cancel := context.WithTimeout(ctx, c.inferenceTimeout)
	defer cancel()

	resp, err := c.model.GenerateContent(ctx,
		genai.Text(prompt),
		genai.FileData{MIMEType: file.MIMEType, URI: file.URI},
	)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("empty response from inference service")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("response has no content (finish reason: %s)", candidate.FinishReason)
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		} else {
			c.logger.Warn("Skipping non-text response part", zap.String("type", fmt.Sprintf("%T", part)))
		}
	}
	text := b.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("inference service returned empty text")
	}
	return text, nil
}

// AnalyzeVideo runs the full upload, await-ready, analyze sequence for one
// video held in memory and returns the raw model response.
func (c *Client) AnalyzeVideo(ctx context.Context, displayName string, data []byte, mimeType string, prompt string) (string, error) {
	file, err := c.Upload(ctx, displayName, bytes.NewReader(data), mimeType)
	if err != nil {
		return "", err
	}
	file, err = c.AwaitActive(ctx, file)
	if err != nil {
		return "", err
	}
	return c.Analyze(ctx, file, prompt)
}
