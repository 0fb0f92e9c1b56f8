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


// Package geo provides offline geocoding and distance ranking for search
// results.
//
// Geocoding is gazetteer-based: an address resolves to the coordinates of
// the first known city name it contains, with no network calls. Distances
// are great-circle kilometers via the haversine formula. The Ranker
// annotates search results with distance from a user location and sorts
// them nearest first, pushing records without a usable address to the end.
package geo
