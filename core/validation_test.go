package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateServiceRecord(t *testing.T) {
	tests := []struct {
		name    string
		record  *ServiceRecord
		wantErr error
	}{
		{
			name: "fully populated record",
			record: &ServiceRecord{
				Id:       1,
				Name:     "Cool Care AC Repair",
				Category: "AC Repair",
			},
		},
		{
			name:   "name alone is enough",
			record: &ServiceRecord{Name: "AquaFix Plumbers"},
		},
		{
			name: "vector may be absent before embedding",
			record: &ServiceRecord{
				Id:     2,
				Name:   "Spice Garden",
				Vector: nil,
			},
		},
		{
			name:    "nil record",
			record:  nil,
			wantErr: ErrInvalidServiceRecord,
		},
		{
			name: "missing name",
			record: &ServiceRecord{
				Category: "Restaurant",
				Address:  "Plot 5, Gachibowli, Hyderabad",
			},
			wantErr: ErrEmptyName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateServiceRecord(tt.record)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateServiceRecord_WrapsBothSentinels(t *testing.T) {
	err := ValidateServiceRecord(&ServiceRecord{Category: "Salon"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidServiceRecord)
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestValidateCheckpoint(t *testing.T) {
	tests := []struct {
		name       string
		checkpoint *Checkpoint
		wantErr    error
	}{
		{
			name:       "named checkpoint",
			checkpoint: &Checkpoint{Name: "bulk-load", RecordCount: 10},
		},
		{
			name:       "nil checkpoint",
			checkpoint: nil,
			wantErr:    ErrInvalidCheckpoint,
		},
		{
			name:       "missing name",
			checkpoint: &Checkpoint{RecordCount: 10},
			wantErr:    ErrEmptyCheckpointName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCheckpoint(tt.checkpoint)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateCheckpoint_WrapsBothSentinels(t *testing.T) {
	err := ValidateCheckpoint(&Checkpoint{RecordCount: 3})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCheckpoint)
	assert.ErrorIs(t, err, ErrEmptyCheckpointName)
}
