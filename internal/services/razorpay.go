package services

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

const razorpayBaseURL = "https://api.razorpay.com/v1"

// RazorpayService talks to the Razorpay orders API and verifies
// checkout signatures.
type RazorpayService struct {
	keyID     string
	keySecret string
	baseURL   string
	client    *http.Client
}

// NewRazorpayService creates a RazorpayService.
func NewRazorpayService(keyID, keySecret string) *RazorpayService {
	return &RazorpayService{
		keyID:     keyID,
		keySecret: keySecret,
		baseURL:   razorpayBaseURL,
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

// KeyID returns the public key the checkout widget needs.
func (s *RazorpayService) KeyID() string {
	return s.keyID
}

// RazorpayOrder is the gateway-side order created before checkout.
type RazorpayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

type razorpayOrderRequest struct {
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	PaymentCapture int    `json:"payment_capture"`
}

// CreateOrder registers an order with the gateway. Amount is in rupees;
// Razorpay wants paise.
func (s *RazorpayService) CreateOrder(amount float64) (*RazorpayOrder, error) {
	if s.keyID == "" || s.keySecret == "" {
		return nil, fmt.Errorf("razorpay keys not configured")
	}

	body, err := json.Marshal(razorpayOrderRequest{
		Amount:         int64(amount * 100),
		Currency:       "INR",
		PaymentCapture: 1,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, s.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(s.keyID, s.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("[Razorpay] Order creation failed: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		log.Printf("[Razorpay] Unexpected status %d: %s", resp.StatusCode, data)
		return nil, fmt.Errorf("razorpay returned status %d", resp.StatusCode)
	}

	var order RazorpayOrder
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, err
	}
	return &order, nil
}

// VerifySignature checks the checkout callback signature: an HMAC-SHA256
// of "order_id|payment_id" keyed with the secret. An unconfigured secret
// never verifies; anyone can compute an empty-key HMAC.
func (s *RazorpayService) VerifySignature(orderID, paymentID, signature string) bool {
	if s.keySecret == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(s.keySecret))
	fmt.Fprintf(mac, "%s|%s", orderID, paymentID)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
