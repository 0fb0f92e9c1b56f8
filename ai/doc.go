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


// Package ai defines the model-facing seams servit depends on: turning
// text into embedding vectors and generating recommendation prose for a
// set of search results.
//
// # Interfaces
//
// Embedder and Recommender are the only contracts the rest of the module
// sees. Three subpackages implement them:
//
//   - ai/openai: embeddings and chat against OpenAI-compatible endpoints
//   - ai/gemini: recommendations through the Google Gemini API
//   - ai/mock: deterministic in-process doubles for tests
//
// # Constructors
//
// Production constructors return the interface type, so callers never
// couple to a concrete client:
//
//	embedder, err := openai.NewEmbedder(config)  // returns ai.Embedder
//
// The mock package returns concrete types instead. Tests need access to
// the injectable function fields and call counters, which the interfaces
// deliberately do not expose:
//
//	mockEmbed := mock.NewMockEmbedder()
//	mockEmbed.EmbedTextFunc = customBehavior
//	count := mockEmbed.CallCount()
//
// # Failure Classification
//
// Recommendation failures are advisory, not fatal. Implementations run
// provider errors through ClassifyGenerationError so callers can match
// ErrRateLimited or ErrUnavailable with errors.Is while keeping the
// search results themselves, and ErrEmptyResponse marks a call that
// succeeded without producing any text.
//
// # Usage
//
//	config := ai.DefaultConfig()
//	embedder, err := openai.NewEmbedder(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	vector, err := embedder.EmbedText(ctx, "bike repair in Madhapur")
package ai
