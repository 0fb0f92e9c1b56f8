package mock

import (
	"context"
	"fmt"

	"github.com/poiesic/servit/ai"
)

// MockRecommender implements ai.Recommender for tests. Set
// RecommendFunc to script behavior; leave it nil for a canned answer
// derived from the request.
type MockRecommender struct {
	// RecommendFunc, when set, handles every Recommend call.
	RecommendFunc func(ctx context.Context, req *ai.RecommendationRequest) (string, error)

	calls int
}

// NewMockRecommender returns a mock using the canned default behavior.
func NewMockRecommender() *MockRecommender {
	return &MockRecommender{}
}

// Recommend counts the call, then either delegates to RecommendFunc or
// answers with text naming the query and how many results it saw.
func (m *MockRecommender) Recommend(ctx context.Context, req *ai.RecommendationRequest) (string, error) {
	m.calls++
	if m.RecommendFunc != nil {
		return m.RecommendFunc(ctx, req)
	}
	return fmt.Sprintf("For %q consider the %d matching services listed above.", req.Query, len(req.Results)), nil
}

// CallCount reports how many times Recommend ran.
func (m *MockRecommender) CallCount() int { return m.calls }

// Reset drops the call count and any scripted behavior.
func (m *MockRecommender) Reset() {
	m.calls = 0
	m.RecommendFunc = nil
}
