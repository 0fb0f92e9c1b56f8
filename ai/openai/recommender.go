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


package openai

import (
	"context"
	"log/slog"

	"github.com/poiesic/servit/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// recommendTemperature keeps the model's prose varied enough to read
// naturally without drifting from the supplied results.
const recommendTemperature = 0.4

// Recommender implements ai.Recommender over an OpenAI-compatible chat
// endpoint.
type Recommender struct {
	client llms.Model
	logger *slog.Logger
}

// newRecommender builds the concrete client for Provider, which hands
// out the interface view.
func newRecommender(config *ai.Config) (*Recommender, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.ChatHost),
		openai.WithToken("none"),
		openai.WithModel(config.ChatModel),
	)
	if err != nil {
		return nil, err
	}

	return &Recommender{
		client: client,
		logger: slog.Default().With("component", "openai-recommender"),
	}, nil
}

// NewRecommender returns a chat-backed ai.Recommender for the given
// configuration.
func NewRecommender(config *ai.Config) (ai.Recommender, error) {
	return newRecommender(config)
}

// Recommend asks the chat model for advisory text about the request's
// results. Errors surface as the ai package's sentinels so callers can
// report the condition without dropping the results.
func (r *Recommender) Recommend(ctx context.Context, req *ai.RecommendationRequest) (string, error) {
	prompt := ai.BuildRecommendationPrompt(req)
	msgs := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(prompt)},
		},
	}

	response, err := r.client.GenerateContent(ctx, msgs, llms.WithTemperature(recommendTemperature))
	if err != nil {
		r.logger.Error("failed to generate recommendation", "err", err)
		return "", ai.ClassifyGenerationError(err)
	}
	if len(response.Choices) == 0 {
		r.logger.Debug("model returned no choices")
		return "", ai.ErrEmptyResponse
	}

	text := ai.CleanResponseText(response.Choices[0].Content)
	if text == "" {
		return "", ai.ErrEmptyResponse
	}

	r.logger.Debug("generated recommendation", "length", len(text))
	return text, nil
}
