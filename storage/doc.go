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


// Package storage defines the repository interfaces behind which servit
// keeps its service listings, together with the wire codec for stored
// values.
//
// # Repositories
//
// Business logic holds repositories through the interfaces declared here,
// never through a concrete backend:
//
//	var services storage.ServiceRepository = badger.NewServiceRepository(backend)
//
// Three interfaces cover the storage surface:
//
//   - Repository: similarity search, transactions, and lifecycle shared by
//     every repository
//   - ServiceRepository: stored service listings
//   - CheckpointRepository: completion markers for bulk and maintenance jobs
//
// Implementations must tolerate concurrent use and accept a context on
// every operation. The badger subpackage provides the production backend;
// its NewMemoryRepositories helper returns throwaway in-memory
// repositories for tests:
//
//	services, checkpoints, backend, err := badger.NewMemoryRepositories()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//
// # Serialization
//
// Stored values use the MUS binary format through the generated codecs in
// core. The Marshal and Unmarshal helpers in this package wrap those
// codecs; decode failures carry ErrSerializationFailed so callers can tell
// corruption from absence.
package storage
