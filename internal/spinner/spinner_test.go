package spinner

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestNewSpinner(t *testing.T) {
	var buf bytes.Buffer
	message := "Fetching https://example.com..."

	spinner := New(context.Background(), &buf, message)

	if spinner == nil {
		t.Fatal("New() returned nil")
	}
	if spinner.message != message {
		t.Errorf("Expected message %q, got %q", message, spinner.message)
	}
	if len(spinner.frames) != len(defaultFrames) {
		t.Errorf("Expected %d frames, got %d", len(defaultFrames), len(spinner.frames))
	}
	if spinner.IsActive() {
		t.Error("Spinner should not be active initially")
	}
}

func TestSpinnerStartStop(t *testing.T) {
	var buf bytes.Buffer
	spinner := New(context.Background(), &buf, "Fetching...")

	spinner.Start()
	if !spinner.IsActive() {
		t.Error("Spinner should be active after Start()")
	}

	time.Sleep(250 * time.Millisecond)
	spinner.Stop()

	if spinner.IsActive() {
		t.Error("Spinner should not be active after Stop()")
	}

	output := buf.String()
	if !strings.Contains(output, "Fetching...") {
		t.Errorf("Expected message in output, got %q", output)
	}

	hasFrame := false
	for _, frame := range defaultFrames {
		if strings.Contains(output, frame) {
			hasFrame = true
			break
		}
	}
	if !hasFrame {
		t.Error("Expected spinner frames in output")
	}

	// a buffer is never a terminal, so the line is cleared with a bare carriage return
	if !strings.HasSuffix(output, "\r") {
		t.Error("Expected output to end with carriage return")
	}
}

func TestSpinnerUpdateMessage(t *testing.T) {
	var buf bytes.Buffer
	spinner := New(context.Background(), &buf, "Initial message")

	spinner.UpdateMessage("Updated message")

	if spinner.message != "Updated message" {
		t.Errorf("Expected message %q, got %q", "Updated message", spinner.message)
	}
}

func TestSpinnerRepeatedCalls(t *testing.T) {
	var buf bytes.Buffer
	spinner := New(context.Background(), &buf, "Testing...")

	// stop without start is a no-op
	spinner.Stop()
	if spinner.IsActive() {
		t.Error("Spinner should not be active after Stop() without Start()")
	}

	spinner.Start()
	spinner.Start()
	if !spinner.IsActive() {
		t.Error("Spinner should still be active after second Start()")
	}

	spinner.Stop()
	spinner.Stop()
	if spinner.IsActive() {
		t.Error("Spinner should not be active after repeated Stop()")
	}
}

func TestSpinnerParentCancel(t *testing.T) {
	var buf bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	spinner := New(ctx, &buf, "Testing...")

	spinner.Start()
	cancel()

	done := make(chan struct{})
	go func() {
		spinner.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop() did not return after parent context was cancelled")
	}
}

func TestIsTerminal(t *testing.T) {
	var buf bytes.Buffer
	if IsTerminal(&buf) {
		t.Error("IsTerminal(bytes.Buffer) = true, want false")
	}
}
