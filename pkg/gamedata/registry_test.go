package gamedata

import "testing"

func TestDefault_ContainsBaseContent(t *testing.T) {
	r := Default()

	goblin, ok := r.Hostile("goblin")
	if !ok {
		t.Fatal("goblin missing from defaults")
	}
	if goblin.Hitpoints <= 0 || goblin.MaxHit <= 0 {
		t.Errorf("goblin stats look broken: %+v", goblin)
	}
	if !goblin.Aggressive {
		t.Error("goblin must be aggressive")
	}

	table, ok := r.Loot(goblin.LootTable)
	if !ok {
		t.Fatalf("goblin loot table %q missing", goblin.LootTable)
	}

	// Все позиции лута ссылаются на известные предметы
	for _, entry := range table.Entries {
		if _, known := r.Item(entry.ItemID); !known {
			t.Errorf("loot entry references unknown item %q", entry.ItemID)
		}
		if !entry.Guaranteed && (entry.Chance <= 0 || entry.Chance > 1) {
			t.Errorf("item %q chance %v outside (0, 1]", entry.ItemID, entry.Chance)
		}
	}

	if len(r.HostileIDs()) < 2 {
		t.Errorf("expected at least 2 hostile types, got %v", r.HostileIDs())
	}
}

func TestLoad_CustomConfig(t *testing.T) {
	data := []byte(`
items:
  - id: fang
    name: Клык
hostiles:
  - id: wolf
    name: Волк
    hitpoints: 9
    attack: 5
    strength: 5
    defence: 3
    maxHit: 2
    aggressive: true
`)

	r, err := Load(data)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	wolf, ok := r.Hostile("wolf")
	if !ok {
		t.Fatal("wolf not loaded")
	}
	if wolf.Hitpoints != 9 || wolf.MaxHit != 2 {
		t.Errorf("wolf = %+v", wolf)
	}

	if _, ok := r.Hostile("goblin"); ok {
		t.Error("custom config leaked defaults")
	}
}

func TestLoad_RejectsMissingIDs(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"item without id", "items:\n  - name: Безымянный\n"},
		{"hostile without id", "hostiles:\n  - name: Некто\n"},
		{"loot table without id", "lootTables:\n  - entries: []\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load([]byte(tt.data)); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoad_RejectsBrokenYAML(t *testing.T) {
	if _, err := Load([]byte("hostiles: [")); err == nil {
		t.Error("expected parse error")
	}
}
