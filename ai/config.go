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


package ai

import (
	"errors"
	"strings"
	"time"
)

// defaultLocalHost is where Ollama serves its OpenAI-compatible API.
const defaultLocalHost = "http://localhost:11434/v1"

// Config holds the connection and model settings for every AI backend
// servit can talk to.
type Config struct {
	// EmbeddingHost is the base URL of the embedding endpoint, for
	// example "http://localhost:11434/v1".
	EmbeddingHost string

	// ChatHost is the base URL of the chat endpoint used for
	// recommendations. Often the same service as EmbeddingHost.
	ChatHost string

	// EmbeddingModel names the embedding model, such as
	// "embeddinggemma" or "text-embedding-3-small".
	EmbeddingModel string

	// ChatModel names the recommendation model, such as "qwen2.5:3b"
	// or "gpt-4o-mini".
	ChatModel string

	// GeminiAPIKey routes recommendations through the Gemini backend
	// when non-empty. Keys come from https://aistudio.google.com/apikey.
	GeminiAPIKey string

	// GeminiModel names the Gemini recommendation model, such as
	// "gemini-1.5-pro" or "gemini-2.5-flash".
	GeminiModel string

	// RecommendEvery is the minimum spacing between recommendation
	// calls, keeping bursts under provider rate limits. Default 2s.
	RecommendEvery time.Duration
}

// ConfigOption mutates a Config during construction.
type ConfigOption func(*Config)

// WithEmbeddingHost points embedding calls at host.
func WithEmbeddingHost(host string) ConfigOption {
	return func(c *Config) { c.EmbeddingHost = host }
}

// WithChatHost points recommendation calls at host.
func WithChatHost(host string) ConfigOption {
	return func(c *Config) { c.ChatHost = host }
}

// WithHost points both embedding and chat calls at the same host.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
		c.ChatHost = host
	}
}

// WithEmbeddingModel selects the embedding model.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) { c.EmbeddingModel = model }
}

// WithChatModel selects the recommendation model.
func WithChatModel(model string) ConfigOption {
	return func(c *Config) { c.ChatModel = model }
}

// WithGeminiAPIKey supplies the Gemini key, switching recommendations
// to that backend.
func WithGeminiAPIKey(key string) ConfigOption {
	return func(c *Config) { c.GeminiAPIKey = key }
}

// WithGeminiModel selects the Gemini recommendation model.
func WithGeminiModel(model string) ConfigOption {
	return func(c *Config) { c.GeminiModel = model }
}

// WithRecommendEvery sets the minimum spacing between recommendation
// calls.
func WithRecommendEvery(interval time.Duration) ConfigOption {
	return func(c *Config) { c.RecommendEvery = interval }
}

// DefaultConfig targets a local Ollama instance for both embeddings and
// chat, with Gemini switched off.
func DefaultConfig() *Config {
	return &Config{
		EmbeddingHost:  defaultLocalHost,
		ChatHost:       defaultLocalHost,
		EmbeddingModel: "embeddinggemma",
		ChatModel:      "qwen2.5:3b",
		GeminiModel:    "gemini-1.5-pro",
		RecommendEvery: 2 * time.Second,
	}
}

// NewConfig starts from DefaultConfig and applies opts in order:
//
//	cfg := NewConfig(
//	    WithHost("http://localhost:11434"),
//	    WithChatModel("gpt-4o-mini"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// UseGemini reports whether recommendations go through the Gemini
// backend rather than the OpenAI-compatible chat host.
func (c *Config) UseGemini() bool {
	return c.GeminiAPIKey != ""
}

// canonicalHost appends the /v1 path segment most OpenAI-compatible
// servers expect, leaving empty and already-suffixed hosts alone.
func canonicalHost(host string) string {
	if host == "" || strings.HasSuffix(host, "/v1") {
		return host
	}
	return strings.TrimSuffix(host, "/") + "/v1"
}

// Normalize rewrites both hosts into their canonical /v1 form.
func (c *Config) Normalize() {
	c.EmbeddingHost = canonicalHost(c.EmbeddingHost)
	c.ChatHost = canonicalHost(c.ChatHost)
}

// Validate normalizes the config, then checks that every field the
// enabled backends need is present.
func (c *Config) Validate() error {
	c.Normalize()

	switch {
	case c.EmbeddingHost == "":
		return errors.New("ai config: missing EmbeddingHost")
	case c.ChatHost == "":
		return errors.New("ai config: missing ChatHost")
	case c.EmbeddingModel == "":
		return errors.New("ai config: missing EmbeddingModel")
	case c.ChatModel == "":
		return errors.New("ai config: missing ChatModel")
	case c.UseGemini() && c.GeminiModel == "":
		return errors.New("ai config: GeminiAPIKey set without GeminiModel")
	case c.RecommendEvery < 0:
		return errors.New("ai config: negative RecommendEvery")
	}
	return nil
}
