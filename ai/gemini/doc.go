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


// Package gemini provides an ai.Recommender backed by the Google Gemini
// API. It is selected over the local OpenAI-compatible recommender when a
// Gemini API key is configured.
//
// Requests are paced client side at one call per Config.RecommendEvery,
// which keeps interactive use inside free-tier quotas. Embeddings always
// come from the local OpenAI-compatible host; this package only generates
// recommendation text.
//
// Usage:
//
//	config := ai.NewConfig(ai.WithGeminiAPIKey(os.Getenv("GEMINI_API_KEY")))
//	recommender, err := gemini.NewRecommender(ctx, config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	text, err := recommender.Recommend(ctx, req)
package gemini
