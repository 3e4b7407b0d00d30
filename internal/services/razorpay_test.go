package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func signPayment(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	svc := NewRazorpayService("key_id", "key_secret")

	valid := signPayment("key_secret", "order_1", "pay_1")

	tests := []struct {
		name      string
		orderID   string
		paymentID string
		signature string
		want      bool
	}{
		{"valid", "order_1", "pay_1", valid, true},
		{"wrong order", "order_2", "pay_1", valid, false},
		{"wrong payment", "order_1", "pay_2", valid, false},
		{"wrong secret", "order_1", "pay_1", signPayment("other", "order_1", "pay_1"), false},
		{"empty signature", "order_1", "pay_1", "", false},
		{"garbage signature", "order_1", "pay_1", "deadbeef", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := svc.VerifySignature(tt.orderID, tt.paymentID, tt.signature); got != tt.want {
				t.Errorf("VerifySignature(%q, %q) = %v, want %v", tt.orderID, tt.paymentID, got, tt.want)
			}
		})
	}
}

func TestVerifySignatureUnconfiguredSecret(t *testing.T) {
	// An empty-key HMAC is computable by anyone; a deployment without a
	// key secret must never accept a signature, however well-formed.
	svc := NewRazorpayService("key_id", "")

	forged := signPayment("", "order_1", "pay_1")
	if svc.VerifySignature("order_1", "pay_1", forged) {
		t.Fatal("empty-secret signature must not verify")
	}
}

func TestCreateOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/orders" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "key_id" || pass != "key_secret" {
			t.Error("missing or wrong basic auth")
		}

		var req struct {
			Amount         int64  `json:"amount"`
			Currency       string `json:"currency"`
			PaymentCapture int    `json:"payment_capture"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Amount != 123450 {
			t.Errorf("amount = %d paise, want 123450", req.Amount)
		}
		if req.Currency != "INR" {
			t.Errorf("currency = %q, want INR", req.Currency)
		}
		if req.PaymentCapture != 1 {
			t.Errorf("payment_capture = %d, want 1", req.PaymentCapture)
		}

		json.NewEncoder(w).Encode(RazorpayOrder{
			ID:       "order_test1",
			Amount:   req.Amount,
			Currency: req.Currency,
			Status:   "created",
		})
	}))
	defer server.Close()

	svc := NewRazorpayService("key_id", "key_secret")
	svc.baseURL = server.URL

	order, err := svc.CreateOrder(1234.50)
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if order.ID != "order_test1" {
		t.Errorf("order ID = %q, want order_test1", order.ID)
	}
}

func TestCreateOrderGatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"bad request"}`, http.StatusBadRequest)
	}))
	defer server.Close()

	svc := NewRazorpayService("key_id", "key_secret")
	svc.baseURL = server.URL

	if _, err := svc.CreateOrder(100); err == nil {
		t.Fatal("expected error on gateway failure")
	}
}

func TestCreateOrderWithoutKeys(t *testing.T) {
	svc := NewRazorpayService("", "")
	if _, err := svc.CreateOrder(100); err == nil {
		t.Fatal("expected error when keys are not configured")
	}
}
