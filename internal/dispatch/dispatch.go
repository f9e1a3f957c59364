// Package dispatch sends a user message and the conversation so far to the
// widget's webhook and interprets the reply.
package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"echo-widget/internal/model"
)

// maxResponseBytes caps how much of a webhook response is read.
const maxResponseBytes = 1 << 20

// Reason classifies a failed dispatch. None of them is retried.
type Reason string

const (
	ReasonNetwork       Reason = "network"
	ReasonStatus        Reason = "status"
	ReasonMissingField  Reason = "missing-field"
	ReasonMalformedJSON Reason = "malformed-json"
	ReasonTooLarge      Reason = "too-large"
)

// Failure describes why a dispatch produced no reply. It is for logs only and
// is never shown to the person chatting.
type Failure struct {
	Reason     Reason
	StatusCode int
	Err        error
}

func (f *Failure) Error() string {
	if f.StatusCode != 0 {
		return fmt.Sprintf("dispatch %s (status %d): %v", f.Reason, f.StatusCode, f.Err)
	}
	return fmt.Sprintf("dispatch %s: %v", f.Reason, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

// Result is either a reply or a failure.
type Result struct {
	Reply   string
	Failure *Failure
}

// OK reports whether the dispatch produced a reply.
func (r Result) OK() bool { return r.Failure == nil }

// ReplyFields are the response keys a reply may arrive under, highest
// priority first.
var ReplyFields = []string{"message", "response", "output"}

// ExtractReply returns the value of the first field in ReplyFields that holds
// a non-empty string. Fields with other JSON types are skipped.
func ExtractReply(body map[string]json.RawMessage) (string, bool) {
	for _, key := range ReplyFields {
		raw, ok := body[key]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err != nil || s == "" {
			continue
		}
		return s, true
	}
	return "", false
}

// HistoryEntry is one transcript message on the wire.
type HistoryEntry struct {
	Role    model.Role `json:"role"`
	Content string     `json:"content"`
}

// Request is the body posted to the webhook.
type Request struct {
	Message             string         `json:"message"`
	UserRecordID        *string        `json:"user_record_id"`
	ConversationHistory []HistoryEntry `json:"conversationHistory"`
}

// NewRequest builds the webhook body. An empty recordID is sent as null.
func NewRequest(text string, history []model.Message, recordID string) *Request {
	req := &Request{
		Message:             text,
		ConversationHistory: make([]HistoryEntry, 0, len(history)),
	}
	if recordID != "" {
		req.UserRecordID = &recordID
	}
	for _, msg := range history {
		req.ConversationHistory = append(req.ConversationHistory, HistoryEntry{Role: msg.Role, Content: msg.Content})
	}
	return req
}

// Sender is implemented by anything that can deliver a message to a webhook.
type Sender interface {
	Send(ctx context.Context, text string, history []model.Message, webhookURL, recordID string) Result
}

// Dispatcher posts messages over HTTP.
type Dispatcher struct {
	client  *http.Client
	timeout time.Duration
}

// NewDispatcher creates a Dispatcher. A zero timeout means the context alone
// bounds each call.
func NewDispatcher(client *http.Client, timeout time.Duration) *Dispatcher {
	if client == nil {
		client = &http.Client{}
	}
	return &Dispatcher{client: client, timeout: timeout}
}

// Send performs one dispatch. The caller must make sure only one is
// outstanding per widget instance.
func (d *Dispatcher) Send(ctx context.Context, text string, history []model.Message, webhookURL, recordID string) Result {
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	body, err := json.Marshal(NewRequest(text, history, recordID))
	if err != nil {
		return fail(ReasonNetwork, 0, fmt.Errorf("could not marshal request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(body))
	if err != nil {
		return fail(ReasonNetwork, 0, fmt.Errorf("could not create http request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := d.client.Do(httpReq)
	if err != nil {
		return fail(ReasonNetwork, 0, fmt.Errorf("http request failed: %w", err))
	}
	defer resp.Body.Close()

	// One byte past the cap tells an oversized body apart from one that fits.
	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return fail(ReasonNetwork, resp.StatusCode, fmt.Errorf("could not read response body: %w", err))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fail(ReasonStatus, resp.StatusCode, fmt.Errorf("webhook returned non-2xx status: %s", truncate(respBody, 200)))
	}
	if len(respBody) > maxResponseBytes {
		return fail(ReasonTooLarge, resp.StatusCode, fmt.Errorf("response body exceeds %d bytes", maxResponseBytes))
	}

	var decoded any
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return fail(ReasonMalformedJSON, resp.StatusCode, fmt.Errorf("could not decode response: %w", err))
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(respBody, &fields); err != nil {
		return fail(ReasonMissingField, resp.StatusCode, fmt.Errorf("response is not a JSON object"))
	}
	reply, ok := ExtractReply(fields)
	if !ok {
		return fail(ReasonMissingField, resp.StatusCode, fmt.Errorf("none of %v present in response", ReplyFields))
	}
	return Result{Reply: reply}
}

func fail(reason Reason, status int, err error) Result {
	return Result{Failure: &Failure{Reason: reason, StatusCode: status, Err: err}}
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
