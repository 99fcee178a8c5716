package mocks

import (
	"context"
	"sync"

	"github.com/shutter-safari/api/internal/service"
)

// PaymentIntentCall records one CreatePaymentIntent invocation.
type PaymentIntentCall struct {
	Amount   int64
	Currency string
}

// MockPaymentProcessor implements service.PaymentProcessor for testing.
type MockPaymentProcessor struct {
	CreatePaymentIntentFn func(ctx context.Context, amount int64, currency string) (string, error)

	ClientSecret string
	Err          error

	mu    sync.Mutex
	calls []PaymentIntentCall
}

var _ service.PaymentProcessor = (*MockPaymentProcessor)(nil)

// CreatePaymentIntent implements service.PaymentProcessor.
func (m *MockPaymentProcessor) CreatePaymentIntent(ctx context.Context, amount int64, currency string) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, PaymentIntentCall{Amount: amount, Currency: currency})
	m.mu.Unlock()

	if m.CreatePaymentIntentFn != nil {
		return m.CreatePaymentIntentFn(ctx, amount, currency)
	}
	return m.ClientSecret, m.Err
}

// Calls returns the recorded invocations.
func (m *MockPaymentProcessor) Calls() []PaymentIntentCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]PaymentIntentCall(nil), m.calls...)
}
