package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type smokeCheck struct {
	name       string
	method     string
	path       string
	body       any
	wantStatus int
}

func smokeChecks(now time.Time) []smokeCheck {
	valid := map[string]any{
		"user_query":    "How to reduce carbon emissions in urban areas?",
		"bot_response":  "Cities can expand public transit and retrofit buildings.",
		"feedback_type": "positive",
		"rating_stars":  5,
		"user_comment":  "Clear and actionable.",
		"message_id":    "smoke-test",
		"categories":    []string{"helpful", "accurate"},
		"timestamp":     now.UTC().Format(time.RFC3339),
	}
	invalid := map[string]any{
		"user_query":    "",
		"feedback_type": "neutral",
		"rating_stars":  6,
		"timestamp":     "yesterday",
	}

	return []smokeCheck{
		{"health", http.MethodGet, "/api/health", nil, http.StatusOK},
		{"store valid feedback", http.MethodPost, "/api/feedback", valid, http.StatusOK},
		{"reject invalid feedback", http.MethodPost, "/api/feedback", invalid, http.StatusBadRequest},
		{"overall analytics", http.MethodGet, "/api/feedback/analytics", nil, http.StatusOK},
		{"trends", http.MethodGet, "/api/feedback/trends?days=7", nil, http.StatusOK},
		{"trends out of range", http.MethodGet, "/api/feedback/trends?days=0", nil, http.StatusBadRequest},
		{"intents", http.MethodGet, "/api/feedback/intents", nil, http.StatusOK},
		{"engagement", http.MethodGet, "/api/feedback/engagement?limit=5", nil, http.StatusOK},
		{"categories", http.MethodGet, "/api/feedback/categories", nil, http.StatusOK},
		{"unknown endpoint", http.MethodGet, "/api/unknown", nil, http.StatusNotFound},
	}
}

// runSmoke executes every check against baseURL, printing one line per
// check, and returns how many did not get the expected status.
func runSmoke(ctx context.Context, client *http.Client, baseURL string, checks []smokeCheck, out io.Writer) int {
	baseURL = strings.TrimRight(baseURL, "/")
	failed := 0
	for _, chk := range checks {
		status, err := doSmokeRequest(ctx, client, baseURL, chk)
		switch {
		case err != nil:
			failed++
			fmt.Fprintf(out, "FAIL  %-26s %s %s: %v\n", chk.name, chk.method, chk.path, err)
		case status != chk.wantStatus:
			failed++
			fmt.Fprintf(out, "FAIL  %-26s %s %s: got %d, want %d\n", chk.name, chk.method, chk.path, status, chk.wantStatus)
		default:
			fmt.Fprintf(out, "ok    %-26s %s %s: %d\n", chk.name, chk.method, chk.path, status)
		}
	}
	fmt.Fprintf(out, "%d/%d checks passed\n", len(checks)-failed, len(checks))
	return failed
}

func doSmokeRequest(ctx context.Context, client *http.Client, baseURL string, chk smokeCheck) (int, error) {
	var body io.Reader
	if chk.body != nil {
		raw, err := json.Marshal(chk.body)
		if err != nil {
			return 0, err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, chk.method, baseURL+chk.path, body)
	if err != nil {
		return 0, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	var envelope struct {
		Success *bool `json:"success"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil || envelope.Success == nil {
		return resp.StatusCode, fmt.Errorf("response is not a JSON envelope (status %d)", resp.StatusCode)
	}
	return resp.StatusCode, nil
}

func runSmokeCommand(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("smoke", flag.ContinueOnError)
	fs.SetOutput(out)
	baseURL := fs.String("base-url", "http://localhost:8000", "Base URL of a running feedback API")
	timeout := fs.Duration("timeout", 10*time.Second, "Per-request timeout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client := &http.Client{Timeout: *timeout}
	if failed := runSmoke(ctx, client, *baseURL, smokeChecks(time.Now()), out); failed > 0 {
		return fmt.Errorf("%d checks failed", failed)
	}
	return nil
}
