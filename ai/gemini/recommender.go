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


package gemini

import (
	"context"
	"log/slog"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/poiesic/servit/ai"
)

// Recommender implements ai.Recommender using the Google Gemini API.
type Recommender struct {
	client  *genai.Client
	model   string
	limiter *rate.Limiter
	logger  *slog.Logger
}

var _ ai.Recommender = (*Recommender)(nil)

// NewRecommender creates a Gemini-backed recommender. Calls are paced by a
// client-side limiter at one request per Config.RecommendEvery so bursts
// wait instead of failing against provider quotas.
func NewRecommender(ctx context.Context, config *ai.Config) (ai.Recommender, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}

	return &Recommender{
		client:  client,
		model:   config.GeminiModel,
		limiter: rate.NewLimiter(rate.Every(config.RecommendEvery), 1),
		logger:  slog.Default().With("component", "gemini-recommender"),
	}, nil
}

// Recommend generates advisory text for the request's results.
// Failures come back as the ai package's sentinel errors so callers can
// report the condition without dropping the underlying results.
func (r *Recommender) Recommend(ctx context.Context, req *ai.RecommendationRequest) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", ai.ClassifyGenerationError(err)
	}

	prompt := ai.BuildRecommendationPrompt(req)
	temp := float32(0.4)

	result, err := r.client.Models.GenerateContent(ctx, r.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		&genai.GenerateContentConfig{Temperature: &temp},
	)
	if err != nil {
		r.logger.Error("failed to generate recommendation", "model", r.model, "err", err)
		return "", ai.ClassifyGenerationError(err)
	}
	if result == nil {
		return "", ai.ErrEmptyResponse
	}

	text := ai.CleanResponseText(result.Text())
	if text == "" {
		return "", ai.ErrEmptyResponse
	}

	r.logger.Debug("generated recommendation", "model", r.model, "length", len(text))
	return text, nil
}
