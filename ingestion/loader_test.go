package ingestion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBulkFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "services.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeBulkFile(t, `[
		{
			"name": "Cool Care AC Repair",
			"category": "AC Repair",
			"address": "Plot 12, Madhapur, Hyderabad, Telangana 500081",
			"phone": "9876543210",
			"rating": "4.5 ⭐",
			"price": "₹450"
		},
		{"name": "AquaFix Plumbing"}
	]`)

	raws, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, raws, 2)

	assert.Equal(t, "Cool Care AC Repair", raws[0].Name)
	assert.Equal(t, "AC Repair", raws[0].Category)
	assert.Equal(t, "Plot 12, Madhapur, Hyderabad, Telangana 500081", raws[0].Address)
	assert.Equal(t, "9876543210", raws[0].Phone)
	assert.Equal(t, "4.5 ⭐", raws[0].Rating)
	assert.Equal(t, "₹450", raws[0].Price)

	// Omitted fields default to empty
	assert.Equal(t, "AquaFix Plumbing", raws[1].Name)
	assert.Empty(t, raws[1].Category)
}

func TestLoadFile_IgnoresUnknownKeys(t *testing.T) {
	path := writeBulkFile(t, `[
		{"name": "Cool Care AC Repair", "website": "coolcare.example", "verified": true}
	]`)

	raws, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, raws, 1)
	assert.Equal(t, "Cool Care AC Repair", raws[0].Name)
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadFile_MalformedJSON(t *testing.T) {
	path := writeBulkFile(t, `{"name": "not an array"`)

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFile_EmptyArray(t *testing.T) {
	path := writeBulkFile(t, `[]`)

	_, err := LoadFile(path)
	assert.ErrorIs(t, err, ErrNoRecords)
}
