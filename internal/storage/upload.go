package storage

import (
	"context"
	"io"
)

// UploadResult identifies a successfully stored object.
type UploadResult struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// UploadTask tracks one in-flight upload. Progress delivers fractional
// completion updates (0-100); Wait blocks for the final result or error.
// Updates are dropped, not buffered, when the consumer lags, so the channel
// never stalls the transfer.
type UploadTask struct {
	progress chan float64
	done     chan struct{}
	result   UploadResult
	err      error
}

// NewUploadTask runs the transfer in a goroutine. run receives a report
// callback for progress percentages and returns the terminal result.
func NewUploadTask(run func(report func(float64)) (UploadResult, error)) *UploadTask {
	t := &UploadTask{
		progress: make(chan float64, 16),
		done:     make(chan struct{}),
	}
	go func() {
		defer close(t.done)
		defer close(t.progress)
		t.result, t.err = run(t.publish)
		if t.err == nil {
			t.publish(100)
		}
	}()
	return t
}

func (t *UploadTask) publish(pct float64) {
	select {
	case t.progress <- pct:
	default:
	}
}

// Progress returns the progress stream. The channel closes when the task
// finishes.
func (t *UploadTask) Progress() <-chan float64 {
	return t.progress
}

// Wait blocks until the upload completes or ctx is cancelled.
func (t *UploadTask) Wait(ctx context.Context) (UploadResult, error) {
	select {
	case <-t.done:
		return t.result, t.err
	case <-ctx.Done():
		return UploadResult{}, ctx.Err()
	}
}

// progressReader reports cumulative read percentage while the underlying
// client consumes the payload.
type progressReader struct {
	r      io.Reader
	total  int64
	read   int64
	report func(float64)
}

func (pr *progressReader) Read(p []byte) (int, error) {
	n, err := pr.r.Read(p)
	if n > 0 && pr.total > 0 {
		pr.read += int64(n)
		pr.report(float64(pr.read) / float64(pr.total) * 100)
	}
	return n, err
}
