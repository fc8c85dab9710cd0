// Command upload posts one local video file to the analysis endpoint and
// prints the response. It is a standalone driver for the API, with no
// retries: one file, one request.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
)

func main() {
	var (
		file        = flag.String("file", "test_up.mp4", "path to the video file to upload")
		url         = flag.String("url", "http://localhost:8080/", "analysis endpoint URL")
		apiKey      = flag.String("key", "", "optional API key sent as X-API-Key")
		contentType = flag.String("content-type", "video/mp4", "MIME type of the video")
	)
	flag.Parse()

	if err := sendVideo(*file, *url, *apiKey, *contentType); err != nil {
		fmt.Fprintf(os.Stderr, "Error sending video: %v\n", err)
		os.Exit(1)
	}
}

func sendVideo(file, url, apiKey, contentType string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read video file: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("post video: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	fmt.Printf("Video sent. Status code: %d\n", resp.StatusCode)
	fmt.Printf("Response: %s\n", body)

	if resp.StatusCode >= 400 {
		return fmt.Errorf("server returned status %d", resp.StatusCode)
	}
	return nil
}
