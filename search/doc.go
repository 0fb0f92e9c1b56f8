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


// Package search provides multi-strategy semantic search over service
// listings.
//
// The Searcher type tries ordered retrieval strategies until one produces
// results that survive the request's filters:
//   - A direct similarity probe with the user's query
//   - Probes with each synonym expansion of the query
//   - A probe with the category filter itself when one is set
//
// Filters (category, location, price ceiling) are applied to every
// candidate, and searches never fail: internal errors degrade to an empty
// result list.
package search
