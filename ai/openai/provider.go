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
	"log/slog"

	"github.com/poiesic/servit/ai"
)

// Provider wires the embedding and recommendation clients to one
// validated configuration so both always target the same endpoint.
type Provider struct {
	embedder    *Embedder
	recommender *Recommender
}

// NewProvider validates config, then builds both clients against it.
func NewProvider(config *ai.Config) (*Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	embedder, err := newEmbedder(config)
	if err != nil {
		return nil, err
	}

	recommender, err := newRecommender(config)
	if err != nil {
		return nil, err
	}

	return &Provider{embedder: embedder, recommender: recommender}, nil
}

// Embedder returns the shared embedding client.
func (p *Provider) Embedder() ai.Embedder { return p.embedder }

// Recommender returns the shared recommendation client.
func (p *Provider) Recommender() ai.Recommender { return p.recommender }

// Close releases provider resources. The langchaingo clients keep no
// connections of their own, so today this only notes the shutdown.
func (p *Provider) Close() error {
	slog.Debug("closing OpenAI provider")
	return nil
}
