// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package mock provides a test double for the router.QueryHandler interface.
package mock

import (
	"context"
	"fmt"

	"github.com/poiesic/askit/core"
	"github.com/poiesic/askit/router"
)

// MockHandler is a test double for router.QueryHandler.
// It allows custom behavior injection via function fields.
type MockHandler struct {
	// HandleQueryFunc is called by HandleQuery if set.
	// If nil, returns a canned answer echoing the query.
	HandleQueryFunc func(ctx context.Context, rawQuery string) (core.Response, error)

	callCount int
}

var _ router.QueryHandler = (*MockHandler)(nil)

// NewMockHandler creates a mock handler with default behavior.
// Note: Returns concrete type to allow test assertions via CallCount().
func NewMockHandler() *MockHandler {
	return &MockHandler{}
}

// HandleQuery returns a canned answer, or delegates to HandleQueryFunc.
func (m *MockHandler) HandleQuery(ctx context.Context, rawQuery string) (core.Response, error) {
	m.callCount++

	if m.HandleQueryFunc != nil {
		return m.HandleQueryFunc(ctx, rawQuery)
	}

	return core.Response{
		Topic:     "service",
		Main:      fmt.Sprintf("mock service answer for %q", rawQuery),
		Citations: map[int]core.ID{},
	}, nil
}

// CallCount returns how many times HandleQuery has been called.
func (m *MockHandler) CallCount() int {
	return m.callCount
}
