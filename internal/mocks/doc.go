// Package mocks provides shared test doubles for the store interfaces, the
// token service and the payment processor.
//
// The store mocks keep their data in memory so handler and service tests can
// assert on resulting state. Every method can be overridden through its Fn
// field:
//
//	users := mocks.NewMockUserStore()
//	users.GetByEmailFn = func(ctx context.Context, email string) (*domain.User, error) {
//	    return nil, errors.New("boom")
//	}
//
// TestifyMockUserStore is the testify/mock variant for tests that want call
// expectations instead of state.
package mocks
