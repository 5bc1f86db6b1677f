package entities

// Monster is a read-only monster record from the game-data store
type Monster struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	Type        string      `json:"type" yaml:"type"`
	Description string      `json:"description" yaml:"description"`
	Stats       Stats       `json:"stats" yaml:"stats"`
	LootTable   []LootEntry `json:"lootTable" yaml:"loot_table"`
}

// LootEntry is one possible drop of a monster
type LootEntry struct {
	ItemID   string  `json:"itemId" yaml:"item_id"`
	Name     string  `json:"name" yaml:"name"`
	Chance   float64 `json:"chance" yaml:"chance"`
	Quantity int     `json:"quantity" yaml:"quantity"`
}
