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


package storage

import (
	"fmt"

	"github.com/poiesic/servit/core"
)

// MarshalID renders id in its MUS wire form.
func MarshalID(id core.ID) []byte {
	out := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, out)
	return out
}

// UnmarshalID decodes an ID. Failures carry ErrSerializationFailed.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	if err != nil {
		return 0, fmt.Errorf("%w: id: %w", ErrSerializationFailed, err)
	}
	return id, nil
}

// MarshalServiceRecord renders a ServiceRecord in its MUS wire form.
func MarshalServiceRecord(record *core.ServiceRecord) []byte {
	out := make([]byte, core.ServiceRecordMUS.Size(*record))
	core.ServiceRecordMUS.Marshal(*record, out)
	return out
}

// UnmarshalServiceRecord decodes a ServiceRecord. Failures carry
// ErrSerializationFailed.
func UnmarshalServiceRecord(data []byte) (*core.ServiceRecord, error) {
	record, _, err := core.ServiceRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: service record: %w", ErrSerializationFailed, err)
	}
	return &record, nil
}

// MarshalCheckpoint renders a Checkpoint in its MUS wire form.
func MarshalCheckpoint(checkpoint *core.Checkpoint) []byte {
	out := make([]byte, core.CheckpointMUS.Size(*checkpoint))
	core.CheckpointMUS.Marshal(*checkpoint, out)
	return out
}

// UnmarshalCheckpoint decodes a Checkpoint. Failures carry
// ErrSerializationFailed.
func UnmarshalCheckpoint(data []byte) (*core.Checkpoint, error) {
	checkpoint, _, err := core.CheckpointMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: checkpoint: %w", ErrSerializationFailed, err)
	}
	return &checkpoint, nil
}
