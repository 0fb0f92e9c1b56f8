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


package core

import "errors"

// Validation sentinels. Specific field failures wrap the matching record
// sentinel so both are reachable through errors.Is.
var (
	// ErrInvalidServiceRecord marks a ServiceRecord that failed validation.
	ErrInvalidServiceRecord = errors.New("invalid service record")

	// ErrInvalidCheckpoint marks a Checkpoint that failed validation.
	ErrInvalidCheckpoint = errors.New("invalid checkpoint")

	// ErrEmptyName marks a record without a name.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrEmptyCheckpointName marks a checkpoint without a name.
	ErrEmptyCheckpointName = errors.New("checkpoint name cannot be empty")
)
