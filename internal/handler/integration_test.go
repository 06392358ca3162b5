package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"
)

func TestIntegration_RegisterLoginCreateEventList(t *testing.T) {
	env := newTestEnv(t)

	// 1. Register.
	status, body := env.postJSON(t, "/api/v1/auth/register", "", map[string]any{
		"username":        "integ",
		"email":           "integ@example.com",
		"password":        "password123",
		"confirmPassword": "password123",
		"name":            "Integration User",
		"location":        "Boulder, CO",
	})
	if status != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d (%v)", status, body)
	}

	// 2. Login with the new credentials.
	status, body = env.postJSON(t, "/api/v1/auth/login", "", map[string]any{
		"username": "integ",
		"password": "password123",
	})
	if status != http.StatusOK {
		t.Fatalf("login: expected 200, got %d (%v)", status, body)
	}
	token := body["token"].(string)

	// 3. Create an event.
	status, body = env.postJSON(t, "/api/v1/events", token, map[string]any{
		"title":           "Trail Run",
		"description":     "A scenic 10k trail run",
		"category":        "running",
		"location":        "Boulder, CO",
		"date":            "2026-10-01T08:00:00Z",
		"price":           "5.00",
		"maxParticipants": 5,
	})
	if status != http.StatusCreated {
		t.Fatalf("create event: expected 201, got %d (%v)", status, body)
	}
	event := body["event"].(map[string]any)
	if event["organizerId"] == "" {
		t.Fatal("expected organizerId on created event")
	}
	eventID := event["id"].(string)

	// 4. The event shows up in the public listing.
	status, body = env.getJSON(t, "/api/v1/events", "")
	if status != http.StatusOK {
		t.Fatalf("list events: expected 200, got %d", status)
	}
	events := body["events"].([]any)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].(map[string]any)["title"] != "Trail Run" {
		t.Fatal("expected Trail Run in listing")
	}

	// 5. Join it.
	status, body = env.postJSON(t, "/api/v1/events/"+eventID+"/join", token, nil)
	if status != http.StatusOK {
		t.Fatalf("join: expected 200, got %d (%v)", status, body)
	}
	joined := body["event"].(map[string]any)
	if joined["currentParticipants"].(float64) != 1 {
		t.Fatalf("expected 1 participant, got %v", joined["currentParticipants"])
	}

	// 6. A second join conflicts.
	status, _ = env.postJSON(t, "/api/v1/events/"+eventID+"/join", token, nil)
	if status != http.StatusConflict {
		t.Fatalf("duplicate join: expected 409, got %d", status)
	}
}

func TestIntegration_DuplicateRegisterConflicts(t *testing.T) {
	env := newTestEnv(t)

	env.registerAndLogin(t, "taken", "taken@example.com")

	status, _ := env.postJSON(t, "/api/v1/auth/register", "", map[string]any{
		"username":        "taken",
		"email":           "other@example.com",
		"password":        "password123",
		"confirmPassword": "password123",
		"name":            "Other",
	})
	if status != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate username, got %d", status)
	}
}

func TestIntegration_NoPasswordHashInResponses(t *testing.T) {
	env := newTestEnv(t)

	token := env.registerAndLogin(t, "hashcheck", "hash@example.com")

	for _, path := range []string{"/api/v1/auth/me", "/api/v1/user/profile"} {
		req, _ := http.NewRequest(http.MethodGet, env.srv.URL+path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		raw, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		lower := strings.ToLower(string(raw))
		if strings.Contains(lower, "password") || strings.Contains(lower, "$2a$") || strings.Contains(lower, "$2b$") {
			t.Fatalf("%s leaked credential material: %s", path, raw)
		}
	}
}

func TestIntegration_PaymentFlow(t *testing.T) {
	env := newTestEnv(t)

	token := env.registerAndLogin(t, "buyer", "buyer@example.com")

	// Create a pending payment for the basic plan.
	status, body := env.postJSON(t, "/api/v1/user/create-payment", token, map[string]any{
		"plan":     "basic",
		"amount":   "9.99",
		"currency": "USD",
	})
	if status != http.StatusCreated {
		t.Fatalf("create payment: expected 201, got %d (%v)", status, body)
	}
	payment := body["payment"].(map[string]any)
	if payment["status"] != "pending" {
		t.Fatalf("expected pending, got %v", payment["status"])
	}
	paymentID := payment["id"].(string)

	// Execute it.
	status, body = env.postJSON(t, "/api/v1/user/execute-payment", token, map[string]any{
		"paymentId": paymentID,
		"orderId":   "ORDER-42",
	})
	if status != http.StatusOK {
		t.Fatalf("execute payment: expected 200, got %d (%v)", status, body)
	}
	payment = body["payment"].(map[string]any)
	if payment["status"] != "completed" {
		t.Fatalf("expected completed, got %v", payment["status"])
	}
	if payment["paypalOrderId"] != "ORDER-42" {
		t.Fatalf("expected order id recorded, got %v", payment["paypalOrderId"])
	}

	// The caller's plan is upgraded.
	status, body = env.getJSON(t, "/api/v1/auth/me", token)
	if status != http.StatusOK {
		t.Fatalf("me: expected 200, got %d", status)
	}
	if body["user"].(map[string]any)["plan"] != "basic" {
		t.Fatalf("expected basic plan, got %v", body["user"].(map[string]any)["plan"])
	}

	// Terminal state: a second execute is rejected.
	status, _ = env.postJSON(t, "/api/v1/user/execute-payment", token, map[string]any{
		"paymentId": paymentID,
		"orderId":   "ORDER-43",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("re-execute: expected 400, got %d", status)
	}

	// History lists the payment.
	status, body = env.getJSON(t, "/api/v1/user/payments", token)
	if status != http.StatusOK {
		t.Fatalf("payments: expected 200, got %d", status)
	}
	if payments := body["payments"].([]any); len(payments) != 1 {
		t.Fatalf("expected 1 payment, got %d", len(payments))
	}
}

func TestIntegration_UploadAndTokenDownload(t *testing.T) {
	env := newTestEnv(t)

	token := env.registerAndLogin(t, "uploader", "uploader@example.com")

	// Upload a small text file.
	status, body := env.upload(t, token, "notes.txt", []byte("hello upload"))
	if status != http.StatusCreated {
		t.Fatalf("upload: expected 201, got %d (%v)", status, body)
	}
	file := body["file"].(map[string]any)
	fileID := file["id"].(string)
	if file["originalName"] != "notes.txt" {
		t.Fatalf("expected originalName notes.txt, got %v", file["originalName"])
	}

	// Issue a download token.
	status, body = env.postJSON(t, "/api/v1/files/generate-token", token, map[string]any{
		"fileId": fileID,
	})
	if status != http.StatusOK {
		t.Fatalf("generate-token: expected 200, got %d (%v)", status, body)
	}
	downloadToken := body["token"].(string)

	// Download with no session, token only.
	resp, err := http.Get(env.srv.URL + "/api/v1/files/download?token=" + downloadToken)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	data, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("download: expected 200, got %d", resp.StatusCode)
	}
	if string(data) != "hello upload" {
		t.Fatalf("unexpected payload %q", data)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "notes.txt") {
		t.Fatalf("expected original filename in disposition, got %q", cd)
	}

	// A made-up token is a 404.
	resp, err = http.Get(env.srv.URL + "/api/v1/files/download?token=bogus")
	if err != nil {
		t.Fatalf("download bogus: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("bogus token: expected 404, got %d", resp.StatusCode)
	}
}

func TestIntegration_OversizedUploadRejected(t *testing.T) {
	env := newTestEnv(t)

	token := env.registerAndLogin(t, "bigfile", "bigfile@example.com")

	// 10 MiB + 1 of payload breaches the ceiling.
	big := bytes.Repeat([]byte("x"), 10<<20+1)
	status, _ := env.upload(t, token, "big.bin", big)
	if status != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", status)
	}

	// Nothing was recorded and no storage was charged.
	status, body := env.getJSON(t, "/api/v1/files", token)
	if status != http.StatusOK {
		t.Fatalf("list files: expected 200, got %d", status)
	}
	if files := body["files"].([]any); len(files) != 0 {
		t.Fatalf("expected no files after rejected upload, got %d", len(files))
	}
	_, body = env.getJSON(t, "/api/v1/auth/me", token)
	if used := body["user"].(map[string]any)["storageUsed"].(float64); used != 0 {
		t.Fatalf("expected storageUsed 0, got %v", used)
	}
}

func TestIntegration_TransformNotImplemented(t *testing.T) {
	env := newTestEnv(t)

	token := env.registerAndLogin(t, "transformer", "tf@example.com")

	status, body := env.postJSON(t, "/api/v1/transform", token, map[string]any{})
	if status != http.StatusNotImplemented {
		t.Fatalf("expected 501, got %d (%v)", status, body)
	}
}

func TestIntegration_BudgetDefaultsToCurrentPeriod(t *testing.T) {
	env := newTestEnv(t)

	token := env.registerAndLogin(t, "saver", "saver@example.com")

	// No budget yet.
	status, _ := env.getJSON(t, "/api/v1/budget", token)
	if status != http.StatusNotFound {
		t.Fatalf("expected 404 with no budget, got %d", status)
	}

	status, body := env.postJSON(t, "/api/v1/budget", token, map[string]any{
		"monthlyBudget":   "300.00",
		"activitiesSpent": "50.00",
		"month":           7,
		"year":            2026,
	})
	if status != http.StatusCreated {
		t.Fatalf("create budget: expected 201, got %d (%v)", status, body)
	}

	status, body = env.getJSON(t, "/api/v1/budget?month=7&year=2026", token)
	if status != http.StatusOK {
		t.Fatalf("get budget: expected 200, got %d", status)
	}
	budget := body["budget"].(map[string]any)
	if budget["monthlyBudget"] != "300.00" {
		t.Fatalf("expected monthlyBudget 300.00, got %v", budget["monthlyBudget"])
	}
}

func TestIntegration_PayPalDisabledReturns503(t *testing.T) {
	env := newTestEnv(t)

	resp, err := http.Get(env.srv.URL + "/api/paypal/setup")
	if err != nil {
		t.Fatalf("GET /api/paypal/setup: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 with disabled gateway, got %d", resp.StatusCode)
	}
}

func TestIntegration_MetricsShape(t *testing.T) {
	env := newTestEnv(t)

	token := env.registerAndLogin(t, "metrics", "metrics@example.com")

	status, body := env.getJSON(t, "/api/v1/metrics", token)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d (%v)", status, body)
	}
	system, ok := body["system"].(map[string]any)
	if !ok {
		t.Fatal("expected system stats in response")
	}
	if system["totalUsers"].(float64) != 1 {
		t.Fatalf("expected 1 user, got %v", system["totalUsers"])
	}
	user, ok := body["user"].(map[string]any)
	if !ok {
		t.Fatal("expected user stats in response")
	}
	if user["totalSaved"] != "0.00" && user["totalSaved"] != "0" {
		t.Fatalf("expected zero totalSaved, got %v", user["totalSaved"])
	}
}

// upload posts a multipart request under the "file" field.
func (e *testEnv) upload(t *testing.T, token, filename string, content []byte) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, e.srv.URL+"/api/v1/upload", &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST /api/v1/upload: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var decoded map[string]any
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			// Oversize rejections may come back as a plain text body from
			// the server closing early; status alone is enough then.
			decoded = nil
		}
	}
	return resp.StatusCode, decoded
}
