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

import "fmt"

// ValidateServiceRecord checks the one hard rule a record must satisfy
// before storage: it exists and carries a name. Everything else either
// arrives later in the pipeline (Vector, Location, PriceNumeric,
// Document) or is optional in listing files (Category, Address, Phone,
// Rating, Price), so absence there is not an error.
func ValidateServiceRecord(record *ServiceRecord) error {
	switch {
	case record == nil:
		return fmt.Errorf("%w: nil record", ErrInvalidServiceRecord)
	case record.Name == "":
		return fmt.Errorf("%w: %w", ErrInvalidServiceRecord, ErrEmptyName)
	}
	return nil
}

// ValidateCheckpoint checks that a checkpoint exists and is named.
// The name is the lookup key, so an unnamed checkpoint could never be
// loaded back.
func ValidateCheckpoint(checkpoint *Checkpoint) error {
	switch {
	case checkpoint == nil:
		return fmt.Errorf("%w: nil checkpoint", ErrInvalidCheckpoint)
	case checkpoint.Name == "":
		return fmt.Errorf("%w: %w", ErrInvalidCheckpoint, ErrEmptyCheckpointName)
	}
	return nil
}
