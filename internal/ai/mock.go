package ai

import (
	"context"
	"encoding/json"
)

// MockInvoker is a stub Invoker for tests. It records every request and
// answers with either InvokeFunc or the canned Output/Err pair.
type MockInvoker struct {
	InvokeFunc func(ctx context.Context, req Request) (json.RawMessage, error)
	Output     json.RawMessage
	Err        error
	Calls      []Request
}

func (m *MockInvoker) Invoke(ctx context.Context, req Request) (json.RawMessage, error) {
	m.Calls = append(m.Calls, req)
	if m.InvokeFunc != nil {
		return m.InvokeFunc(ctx, req)
	}
	return m.Output, m.Err
}
