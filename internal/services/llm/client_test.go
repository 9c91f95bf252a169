package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testConfig(baseURL string) Config {
	return Config{
		APIKey:  "test-key",
		BaseURL: baseURL,
		Model:   "test-model",
	}
}

func chatResponse(t *testing.T, w http.ResponseWriter, message map[string]any, finishReason string) {
	t.Helper()
	payload := map[string]any{
		"choices": []map[string]any{
			{"message": message, "finish_reason": finishReason},
		},
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		t.Fatalf("encode response: %v", err)
	}
}

func TestChatReturnsTextContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		var req chatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Model != "test-model" {
			t.Errorf("unexpected model %q", req.Model)
		}
		chatResponse(t, w, map[string]any{"content": "All done."}, "stop")
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	result, err := client.Chat(context.Background(), []Message{UserMessage("hi")}, nil)
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if result.Content != "All done." {
		t.Fatalf("unexpected content %q", result.Content)
	}
	if result.HasToolCalls() {
		t.Fatal("expected no tool calls")
	}
}

func TestChatReturnsToolCalls(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.Tools) != 1 || req.Tools[0].Function.Name != "list_photos" {
			t.Errorf("tool catalog not forwarded: %+v", req.Tools)
		}
		if req.ToolChoice != "auto" {
			t.Errorf("expected tool_choice auto, got %q", req.ToolChoice)
		}
		chatResponse(t, w, map[string]any{
			"content": "",
			"tool_calls": []map[string]any{
				{
					"id":   "call_1",
					"type": "function",
					"function": map[string]any{
						"name":      "list_photos",
						"arguments": `{"year":2024}`,
					},
				},
			},
		}, "tool_calls")
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	tools := []Tool{NewTool("list_photos", "List photos for a year.", map[string]any{"type": "object"})}
	result, err := client.Chat(context.Background(), []Message{UserMessage("go")}, tools)
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if !result.HasToolCalls() {
		t.Fatal("expected tool calls")
	}
	call := result.ToolCalls[0]
	if call.ID != "call_1" || call.Function.Name != "list_photos" || call.Function.Arguments != `{"year":2024}` {
		t.Fatalf("unexpected tool call %+v", call)
	}
}

func TestChatRetriesServerErrors(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			http.Error(w, "upstream unavailable", http.StatusBadGateway)
			return
		}
		chatResponse(t, w, map[string]any{"content": "recovered"}, "stop")
	}))
	defer server.Close()

	var slept []time.Duration
	client := NewClient(testConfig(server.URL),
		WithRetryBackoff(time.Millisecond, 10*time.Millisecond),
		WithSleeper(func(d time.Duration) { slept = append(slept, d) }))

	result, err := client.Chat(context.Background(), []Message{UserMessage("hi")}, nil)
	if err != nil {
		t.Fatalf("Chat failed after retries: %v", err)
	}
	if result.Content != "recovered" {
		t.Fatalf("unexpected content %q", result.Content)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
	if len(slept) != 2 {
		t.Fatalf("expected 2 retry sleeps, got %d", len(slept))
	}
}

func TestChatHonorsRetryAfter(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.Header().Set("Retry-After", "1")
			http.Error(w, "slow down", http.StatusTooManyRequests)
			return
		}
		chatResponse(t, w, map[string]any{"content": "ok"}, "stop")
	}))
	defer server.Close()

	var slept []time.Duration
	client := NewClient(testConfig(server.URL),
		WithSleeper(func(d time.Duration) { slept = append(slept, d) }))

	if _, err := client.Chat(context.Background(), []Message{UserMessage("hi")}, nil); err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if len(slept) != 1 || slept[0] != time.Second {
		t.Fatalf("expected one 1s sleep from Retry-After, got %v", slept)
	}
}

func TestChatDoesNotRetryClientErrors(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL),
		WithSleeper(func(time.Duration) {}))
	if _, err := client.Chat(context.Background(), []Message{UserMessage("hi")}, nil); err == nil {
		t.Fatal("expected error for 400 response")
	}
	if attempts != 1 {
		t.Fatalf("expected single attempt, got %d", attempts)
	}
}

func TestChatRequiresAPIKey(t *testing.T) {
	client := NewClient(Config{Model: "m"})
	if _, err := client.Chat(context.Background(), []Message{UserMessage("hi")}, nil); err == nil {
		t.Fatal("expected missing-key error")
	}
}

func TestChatRetriesEmptyResponses(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			chatResponse(t, w, map[string]any{"content": ""}, "stop")
			return
		}
		chatResponse(t, w, map[string]any{"content": "filled in"}, "stop")
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL),
		WithRetryBackoff(time.Millisecond, 10*time.Millisecond),
		WithSleeper(func(time.Duration) {}))
	result, err := client.Chat(context.Background(), []Message{UserMessage("hi")}, nil)
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if result.Content != "filled in" {
		t.Fatalf("unexpected content %q", result.Content)
	}
}

func TestHealthCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		chatResponse(t, w, map[string]any{"content": "```json\n{\"ok\":true}\n```"}, "stop")
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	if err := client.HealthCheck(context.Background()); err != nil {
		t.Fatalf("HealthCheck failed: %v", err)
	}
}

func TestDecodeLLMJSON(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		wantErr bool
	}{
		{"plain object", `{"a":1}`, false},
		{"code fence", "```json\n{\"a\":1}\n```", false},
		{"leading prose", "Here you go: {\"a\":1}", false},
		{"empty", "", true},
		{"garbage", "not json at all", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var target map[string]int
			err := DecodeLLMJSON(tc.payload, &target)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeLLMJSON failed: %v", err)
			}
			if target["a"] != 1 {
				t.Fatalf("unexpected decode result: %v", target)
			}
		})
	}
}

func TestBackoffDelayIsCapped(t *testing.T) {
	client := NewClient(Config{APIKey: "k"}, WithRetryBackoff(time.Second, 3*time.Second))
	if got := client.backoffDelay(1); got != time.Second {
		t.Fatalf("attempt 1 delay = %v", got)
	}
	if got := client.backoffDelay(2); got != 2*time.Second {
		t.Fatalf("attempt 2 delay = %v", got)
	}
	if got := client.backoffDelay(5); got != 3*time.Second {
		t.Fatalf("attempt 5 delay should cap at 3s, got %v", got)
	}
}
