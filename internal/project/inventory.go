package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/nestcut/nestcut/internal/engine"
)

// Inventory tracks reusable offcuts across nesting runs so a shop can
// consume remnants before opening fresh boards.
type Inventory struct {
	Offcuts []engine.Offcut `json:"offcuts"`
}

// DefaultInventory returns an empty inventory.
func DefaultInventory() Inventory {
	return Inventory{Offcuts: []engine.Offcut{}}
}

// ByMaterial returns the offcuts for one material, largest first.
func (inv Inventory) ByMaterial(material string) []engine.Offcut {
	var out []engine.Offcut
	for _, oc := range inv.Offcuts {
		if oc.Material == material {
			out = append(out, oc)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Area() > out[j].Area()
	})
	return out
}

// Add appends offcuts to the inventory, skipping duplicate IDs.
func (inv *Inventory) Add(offcuts []engine.Offcut) {
	seen := make(map[string]bool, len(inv.Offcuts))
	for _, oc := range inv.Offcuts {
		seen[oc.ID] = true
	}
	for _, oc := range offcuts {
		if !seen[oc.ID] {
			inv.Offcuts = append(inv.Offcuts, oc)
			seen[oc.ID] = true
		}
	}
}

// Remove deletes an offcut by ID, reporting whether it was present.
func (inv *Inventory) Remove(id string) bool {
	for i, oc := range inv.Offcuts {
		if oc.ID == id {
			inv.Offcuts = append(inv.Offcuts[:i], inv.Offcuts[i+1:]...)
			return true
		}
	}
	return false
}

// DefaultInventoryPath returns the default file path for the offcut
// inventory, located at ~/.nestcut/offcuts.json.
func DefaultInventoryPath() string {
	return filepath.Join(DefaultConfigDir(), "offcuts.json")
}

// SaveInventory writes the inventory to the specified JSON file.
// It creates parent directories if they do not exist.
func SaveInventory(path string, inv Inventory) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(inv, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadInventory reads the inventory from the specified JSON file.
// If the file does not exist, it returns an empty inventory with no error.
func LoadInventory(path string) (Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultInventory(), nil
		}
		return Inventory{}, err
	}
	var inv Inventory
	if err := json.Unmarshal(data, &inv); err != nil {
		return Inventory{}, err
	}
	if inv.Offcuts == nil {
		inv.Offcuts = []engine.Offcut{}
	}
	return inv, nil
}

// MergeInventory imports offcuts from a user-specified JSON file into the
// existing inventory. Duplicate IDs are skipped.
func MergeInventory(path string, existing Inventory) (Inventory, error) {
	imported, err := LoadInventory(path)
	if err != nil {
		return existing, err
	}
	existing.Add(imported.Offcuts)
	return existing, nil
}
