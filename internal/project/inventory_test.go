package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nestcut/nestcut/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOffcuts() []engine.Offcut {
	return []engine.Offcut{
		{ID: "oc-1", Material: "MDF", BoardID: 1, Width: 400, Height: 1220},
		{ID: "oc-2", Material: "MDF", BoardID: 2, Width: 200, Height: 300},
		{ID: "oc-3", Material: "Oak", BoardID: 1, Width: 600, Height: 500},
	}
}

func TestInventory_Add_Deduplicates(t *testing.T) {
	inv := DefaultInventory()
	inv.Add(sampleOffcuts())
	inv.Add(sampleOffcuts())

	assert.Len(t, inv.Offcuts, 3)
}

func TestInventory_ByMaterial(t *testing.T) {
	inv := DefaultInventory()
	inv.Add(sampleOffcuts())

	mdf := inv.ByMaterial("MDF")
	require.Len(t, mdf, 2)
	// Largest first
	assert.Equal(t, "oc-1", mdf[0].ID)
	assert.Equal(t, "oc-2", mdf[1].ID)

	assert.Empty(t, inv.ByMaterial("Plywood"))
}

func TestInventory_Remove(t *testing.T) {
	inv := DefaultInventory()
	inv.Add(sampleOffcuts())

	assert.True(t, inv.Remove("oc-2"))
	assert.Len(t, inv.Offcuts, 2)
	assert.False(t, inv.Remove("oc-2"))
}

func TestSaveLoadInventory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "offcuts.json")

	inv := DefaultInventory()
	inv.Add(sampleOffcuts())
	require.NoError(t, SaveInventory(path, inv))

	loaded, err := LoadInventory(path)
	require.NoError(t, err)
	assert.Len(t, loaded.Offcuts, 3)
	assert.Equal(t, "oc-1", loaded.Offcuts[0].ID)
}

func TestLoadInventory_MissingFileReturnsEmpty(t *testing.T) {
	inv, err := LoadInventory(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.NotNil(t, inv.Offcuts)
	assert.Empty(t, inv.Offcuts)
}

func TestLoadInventory_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "offcuts.json")
	require.NoError(t, os.WriteFile(path, []byte("[broken"), 0644))

	_, err := LoadInventory(path)
	assert.Error(t, err)
}

func TestMergeInventory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "import.json")
	imported := DefaultInventory()
	imported.Add(sampleOffcuts())
	require.NoError(t, SaveInventory(path, imported))

	existing := DefaultInventory()
	existing.Add([]engine.Offcut{{ID: "oc-1", Material: "MDF", Width: 400, Height: 1220}})

	merged, err := MergeInventory(path, existing)
	require.NoError(t, err)
	assert.Len(t, merged.Offcuts, 3)
}
