// File: internal/intent/recognizer.go
package intent

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/json-iterator/go"
)

// Recognizer blocks until one utterance is available as text. The production
// implementation fronts a microphone plus speech-to-text daemon; the terminal
// implementation reads typed commands for simulation runs.
type Recognizer interface {
	Recognize(ctx context.Context) (string, error)
}

var (
	// ErrNoSpeech is returned when the listen window elapses without input.
	ErrNoSpeech = errors.New("no speech detected")
	// ErrInputClosed is returned when the command source is exhausted and no
	// further input will ever arrive: stdin hit EOF, or a scripted transcript
	// ran out. Unlike ErrNoSpeech, retrying cannot help.
	ErrInputClosed = errors.New("command input closed")
	// ErrCaptureUnavailable is returned when the audio source cannot be read.
	ErrCaptureUnavailable = errors.New("audio capture unavailable")
)

// TerminalRecognizer reads one command line per Recognize call.
type TerminalRecognizer struct {
	scanner *bufio.Scanner
	prompt  io.Writer
}

// NewTerminalRecognizer reads commands from in, writing a short prompt to out
// before each read.
func NewTerminalRecognizer(in io.Reader, out io.Writer) *TerminalRecognizer {
	return &TerminalRecognizer{
		scanner: bufio.NewScanner(in),
		prompt:  out,
	}
}

// Recognize blocks for the next line of input. EOF maps to ErrInputClosed so
// the coordinator can end the loop instead of retrying a dead source.
func (t *TerminalRecognizer) Recognize(ctx context.Context) (string, error) {
	if t.prompt != nil {
		fmt.Fprint(t.prompt, "command> ")
	}

	type scanResult struct {
		text string
		err  error
	}
	ch := make(chan scanResult, 1)
	go func() {
		if !t.scanner.Scan() {
			if err := t.scanner.Err(); err != nil {
				ch <- scanResult{err: fmt.Errorf("%w: %v", ErrCaptureUnavailable, err)}
				return
			}
			ch <- scanResult{err: ErrInputClosed}
			return
		}
		ch <- scanResult{text: strings.TrimSpace(t.scanner.Text())}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.err != nil {
			return "", res.err
		}
		if res.text == "" {
			return "", ErrNoSpeech
		}
		return res.text, nil
	}
}

// ScriptedRecognizer replays a fixed command list, then reports a closed
// input. Used by `run --text` and in tests.
type ScriptedRecognizer struct {
	commands []string
	next     int
}

func NewScriptedRecognizer(commands ...string) *ScriptedRecognizer {
	return &ScriptedRecognizer{commands: commands}
}

func (s *ScriptedRecognizer) Recognize(ctx context.Context) (string, error) {
	if s.next >= len(s.commands) {
		return "", ErrInputClosed
	}
	cmd := s.commands[s.next]
	s.next++
	return cmd, nil
}

// HTTPRecognizer fronts an external microphone + speech-to-text daemon.
type HTTPRecognizer struct {
	baseURL string
	window  time.Duration
	client  *http.Client
}

// NewHTTPRecognizer builds a recognizer against the STT daemon. The listen
// window is forwarded so the daemon gives up at the same time we do.
func NewHTTPRecognizer(baseURL string, window time.Duration) *HTTPRecognizer {
	return &HTTPRecognizer{
		baseURL: baseURL,
		window:  window,
		// Generous client budget: the daemon blocks for the whole window.
		client: &http.Client{Timeout: window + 5*time.Second},
	}
}

type listenResponse struct {
	Text string `json:"text"`
}

func (h *HTTPRecognizer) Recognize(ctx context.Context) (string, error) {
	endpoint := fmt.Sprintf("%s/listen?%s", h.baseURL,
		url.Values{"timeout": []string{h.window.String()}}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCaptureUnavailable, err)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCaptureUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusRequestTimeout:
		return "", ErrNoSpeech
	default:
		return "", fmt.Errorf("%w: daemon returned %s", ErrCaptureUnavailable, resp.Status)
	}

	var lr listenResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return "", fmt.Errorf("%w: malformed daemon response: %v", ErrCaptureUnavailable, err)
	}
	if strings.TrimSpace(lr.Text) == "" {
		return "", ErrNoSpeech
	}
	return lr.Text, nil
}
