package gemini

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
)

// fakeFiles serves a scripted sequence of file states; the last state repeats
// once the script runs out.
type fakeFiles struct {
	states []genai.FileState
	calls  int
}

func (f *fakeFiles) UploadFile(ctx context.Context, name string, r io.Reader, opts *genai.UploadFileOptions) (*genai.File, error) {
	return &genai.File{Name: "files/test", URI: "https://files/test", MIMEType: opts.MIMEType, State: genai.FileStateProcessing}, nil
}

func (f *fakeFiles) GetFile(ctx context.Context, name string) (*genai.File, error) {
	idx := f.calls
	if idx >= len(f.states) {
		idx = len(f.states) - 1
	}
	f.calls++
	return &genai.File{Name: name, URI: "https://files/test", MIMEType: "video/mp4", State: f.states[idx]}, nil
}

func pollClient(files *fakeFiles, maxWait time.Duration) *Client {
	return &Client{
		files:        files,
		logger:       zap.NewNop(),
		pollInterval: time.Millisecond,
		maxWait:      maxWait,
	}
}

func TestAwaitActiveAfterProcessing(t *testing.T) {
	files := &fakeFiles{states: []genai.FileState{
		genai.FileStateProcessing,
		genai.FileStateProcessing,
		genai.FileStateActive,
	}}
	c := pollClient(files, 100*time.Millisecond)

	file, err := c.AwaitActive(context.Background(), &genai.File{Name: "files/test"})
	if err != nil {
		t.Fatalf("await: %v", err)
	}
	if file.State != genai.FileStateActive {
		t.Fatalf("state = %v", file.State)
	}
	if files.calls != 3 {
		t.Fatalf("expected 3 status checks, got %d", files.calls)
	}
}

func TestAwaitActiveTimesOut(t *testing.T) {
	files := &fakeFiles{states: []genai.FileState{genai.FileStateProcessing}}
	c := pollClient(files, 5*time.Millisecond)

	_, err := c.AwaitActive(context.Background(), &genai.File{Name: "files/test"})
	if !errors.Is(err, ErrNotActive) {
		t.Fatalf("want ErrNotActive, got %v", err)
	}
	if files.calls < 2 {
		t.Fatalf("expected repeated polling, got %d checks", files.calls)
	}
}

func TestAwaitActiveFailedState(t *testing.T) {
	files := &fakeFiles{states: []genai.FileState{genai.FileStateFailed}}
	c := pollClient(files, 100*time.Millisecond)

	_, err := c.AwaitActive(context.Background(), &genai.File{Name: "files/test"})
	if !errors.Is(err, ErrNotActive) {
		t.Fatalf("want ErrNotActive on failed state, got %v", err)
	}
	if files.calls != 1 {
		t.Fatalf("failed state should not be re-polled, got %d checks", files.calls)
	}
}

func TestAwaitActiveHonorsContext(t *testing.T) {
	files := &fakeFiles{states: []genai.FileState{genai.FileStateProcessing}}
	c := pollClient(files, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.AwaitActive(ctx, &genai.File{Name: "files/test"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}
