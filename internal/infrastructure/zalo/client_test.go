package zalo

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/stayhub/hotel-saas/internal/core/ports"
)

type stubTokenSource struct {
	token       string
	invalidated int
}

func (s *stubTokenSource) AccessToken(context.Context) (string, error) { return s.token, nil }
func (s *stubTokenSource) Invalidate(context.Context) error            { s.invalidated++; return nil }

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := Config{
		BaseURL:           srv.URL,
		MiniAppURL:        srv.URL + "/template",
		BookingTemplateID: "tpl-1",
		Timeout:           2 * time.Second,
		MaxRetries:        2,
	}
	return NewClient(cfg, &stubTokenSource{token: "tok"}, zerolog.Nop()), srv
}

func TestClient_SendText(t *testing.T) {
	var got map[string]any
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("access_token") != "tok" {
			t.Errorf("missing access token header")
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{"error": 0})
	})

	if err := client.SendText(context.Background(), "user-1", "hello"); err != nil {
		t.Fatalf("send text: %v", err)
	}
	recipient, _ := got["recipient"].(map[string]any)
	if recipient["user_id"] != "user-1" {
		t.Fatalf("unexpected recipient %v", got)
	}
}

func TestClient_SendText_RetriesThenFails(t *testing.T) {
	var calls int
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	})

	err := client.SendText(context.Background(), "user-1", "hello")
	if !errors.Is(err, ErrSendFailed) {
		t.Fatalf("got %v, want ErrSendFailed", err)
	}
	if calls != 2 {
		t.Fatalf("calls = %d, want 2", calls)
	}
}

func TestClient_SendText_APIError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"error": -240, "message": "user not followed"})
	})

	if err := client.SendText(context.Background(), "user-1", "hello"); err == nil {
		t.Fatal("expected error for non-zero api code")
	}
}

func TestClient_SendBookingNotification(t *testing.T) {
	var got map[string]any
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/template" {
			t.Errorf("path = %s, want /template", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		json.NewEncoder(w).Encode(map[string]any{"error": 0})
	})

	n := ports.BookingNotification{
		ZaloUserID:    "user-1",
		BookingNumber: "BK-00000001",
		HotelName:     "The Cliff Resort",
		CheckIn:       time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		CheckOut:      time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC),
		TotalAmount:   750,
	}
	if err := client.SendBookingNotification(context.Background(), n); err != nil {
		t.Fatalf("send notification: %v", err)
	}
	if got["template_id"] != "tpl-1" {
		t.Fatalf("unexpected payload %v", got)
	}
	data, _ := got["template_data"].(map[string]any)
	if data["check_in"] != "10/09/2026" {
		t.Fatalf("check_in = %v, want 10/09/2026", data["check_in"])
	}
}

func computeMAC(body []byte, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	body := []byte(`{"app_id":"123","event_name":"follow"}`)
	secret := "s3cret"

	valid := computeMAC(body, secret)
	if !VerifySignature(body, valid, secret) {
		t.Fatal("valid signature rejected")
	}
	if VerifySignature(body, "deadbeef", secret) {
		t.Fatal("invalid signature accepted")
	}
	if VerifySignature(body, "", secret) {
		t.Fatal("empty signature accepted")
	}
	if VerifySignature([]byte("tampered"), valid, secret) {
		t.Fatal("signature accepted for tampered body")
	}
}
