package payment

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

// ChargeResult is what a gateway returns after a charge attempt. The
// contract is deliberately two-outcome: captured or not.
type ChargeResult struct {
	Captured    bool   `json:"captured"`
	ProviderRef string `json:"provider_ref"`
	Message     string `json:"message,omitempty"`
}

// Gateway is the provider-agnostic interface every payment adapter must
// implement. To add a new provider, implement this interface and register it.
type Gateway interface {
	// Charge attempts to capture amount (minor units) from the payer.
	Charge(ctx context.Context, amount int64, currency, phoneNumber string) (*ChargeResult, error)
	// Refund returns a captured amount to the payer.
	Refund(ctx context.Context, providerRef string, amount int64) (*ChargeResult, error)
}

// GatewayRegistry maps provider names to their Gateway implementations.
type GatewayRegistry map[Provider]Gateway

// ── Mobile money adapter ──────────────────────────────────────────────────────
// Sandbox stub. In production, replace the stub bodies with the aggregator's
// collections API calls (token, request-to-pay, poll status).

type mobileMoneyGateway struct {
	apiKey    string
	apiSecret string
	baseURL   string
	env       string // sandbox | production
}

func NewMobileMoneyGateway(apiKey, apiSecret, baseURL, env string) Gateway {
	return &mobileMoneyGateway{apiKey: apiKey, apiSecret: apiSecret, baseURL: baseURL, env: env}
}

func (g *mobileMoneyGateway) Charge(ctx context.Context, amount int64, currency, phoneNumber string) (*ChargeResult, error) {
	if phoneNumber == "" {
		return nil, fmt.Errorf("phone_number is required for mobile money")
	}
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be greater than 0")
	}

	ref := fmt.Sprintf("MM-%s-%04d", time.Now().Format("20060102150405"), rand.Intn(10000))
	return &ChargeResult{
		Captured:    true,
		ProviderRef: ref,
		Message:     fmt.Sprintf("Payment of %d %s captured from %s", amount, currency, phoneNumber),
	}, nil
}

func (g *mobileMoneyGateway) Refund(ctx context.Context, providerRef string, amount int64) (*ChargeResult, error) {
	ref := fmt.Sprintf("MM-REF-%s-%04d", time.Now().Format("20060102"), rand.Intn(10000))
	return &ChargeResult{
		Captured:    true,
		ProviderRef: ref,
		Message:     fmt.Sprintf("Refund of %d initiated for %s", amount, providerRef),
	}, nil
}

// ── Card adapter ──────────────────────────────────────────────────────────────

type cardGateway struct {
	merchantID string
	secretKey  string
	baseURL    string
	env        string
}

func NewCardGateway(merchantID, secretKey, baseURL, env string) Gateway {
	return &cardGateway{merchantID: merchantID, secretKey: secretKey, baseURL: baseURL, env: env}
}

func (g *cardGateway) Charge(ctx context.Context, amount int64, currency, phoneNumber string) (*ChargeResult, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be greater than 0")
	}

	ref := fmt.Sprintf("CRD-%s-%04d", time.Now().Format("20060102150405"), rand.Intn(10000))
	return &ChargeResult{
		Captured:    true,
		ProviderRef: ref,
		Message:     "Card payment authorised and captured",
	}, nil
}

func (g *cardGateway) Refund(ctx context.Context, providerRef string, amount int64) (*ChargeResult, error) {
	ref := fmt.Sprintf("CRD-REF-%s-%04d", time.Now().Format("20060102"), rand.Intn(10000))
	return &ChargeResult{Captured: true, ProviderRef: ref, Message: "Card refund initiated"}, nil
}

// ── Cash adapter ──────────────────────────────────────────────────────────────
// Cash settles at handover; the charge is recorded as captured immediately
// so the booking confirms, and disputes are handled out of band.

type cashGateway struct{}

func NewCashGateway() Gateway { return &cashGateway{} }

func (g *cashGateway) Charge(ctx context.Context, amount int64, currency, phoneNumber string) (*ChargeResult, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be greater than 0")
	}
	ref := fmt.Sprintf("CSH-%s-%04d", time.Now().Format("20060102150405"), rand.Intn(10000))
	return &ChargeResult{Captured: true, ProviderRef: ref, Message: "Cash on handover"}, nil
}

func (g *cashGateway) Refund(ctx context.Context, providerRef string, amount int64) (*ChargeResult, error) {
	return &ChargeResult{Captured: true, ProviderRef: providerRef, Message: "Cash refund at location"}, nil
}
