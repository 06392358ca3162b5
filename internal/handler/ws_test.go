package handler_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/adventuresync/server/internal/domain"
)

func (e *testEnv) wsURL(token string) string {
	return strings.Replace(e.srv.URL, "http://", "ws://", 1) + "/ws?token=" + token
}

func (e *testEnv) userID(t *testing.T, token string) string {
	t.Helper()
	status, body := e.getJSON(t, "/api/v1/auth/me", token)
	if status != http.StatusOK {
		t.Fatalf("me: expected 200, got %d", status)
	}
	return body["user"].(map[string]any)["id"].(string)
}

func TestWS_ReceivesNotification(t *testing.T) {
	env := newTestEnv(t)

	token := env.registerAndLogin(t, "wsuser", "ws@example.com")
	userID := env.userID(t, token)

	conn, _, err := websocket.DefaultDialer.Dial(env.wsURL(token), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	waitForConnection(t, env, userID)

	env.hub.Notify(userID, domain.Notification{
		Type:    "payment_success",
		Title:   "Payment Successful",
		Message: "Your basic plan is now active",
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got domain.Notification
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if got.Type != "payment_success" {
		t.Fatalf("expected payment_success, got %s", got.Type)
	}
	if got.Message != "Your basic plan is now active" {
		t.Fatalf("unexpected message %q", got.Message)
	}
}

func TestWS_InvalidTokenClosesConnection(t *testing.T) {
	env := newTestEnv(t)

	conn, _, err := websocket.DefaultDialer.Dial(env.wsURL("garbage"), nil)
	if err != nil {
		// Some failure modes surface at dial time; that is also a rejection.
		return
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatal("expected the connection to be closed for a bad token")
	}
}

func TestWS_LastConnectionWins(t *testing.T) {
	env := newTestEnv(t)

	token := env.registerAndLogin(t, "twoconns", "two@example.com")
	userID := env.userID(t, token)

	first, _, err := websocket.DefaultDialer.Dial(env.wsURL(token), nil)
	if err != nil {
		t.Fatalf("dial first: %v", err)
	}
	defer first.Close()
	waitForConnection(t, env, userID)

	second, _, err := websocket.DefaultDialer.Dial(env.wsURL(token), nil)
	if err != nil {
		t.Fatalf("dial second: %v", err)
	}
	defer second.Close()

	// Give the server a moment to register the replacement.
	time.Sleep(100 * time.Millisecond)

	env.hub.Notify(userID, domain.Notification{Type: "ping", Title: "Ping", Message: "ping"})

	second.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got domain.Notification
	if err := second.ReadJSON(&got); err != nil {
		t.Fatalf("second connection should receive the event: %v", err)
	}

	first.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	if _, _, err := first.ReadMessage(); err == nil {
		t.Fatal("superseded connection should not receive events")
	}
}

func waitForConnection(t *testing.T, env *testEnv, userID string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if env.hub.Connected(userID) {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("user %s never registered on the hub", userID)
}
