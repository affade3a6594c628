package gamedata

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed data/defaults.yaml
var defaultsYAML []byte

// Registry - неизменяемый справочник статических данных.
// Все методы поиска возвращают (значение, ok); отсутствие записи -
// ответственность вызывающего (логируй и пропускай, не падай).
type Registry struct {
	hostiles map[string]HostileDef
	items    map[string]ItemDef
	loot     map[string]LootTable
}

type registryFile struct {
	Hostiles   []HostileDef `yaml:"hostiles"`
	Items      []ItemDef    `yaml:"items"`
	LootTables []LootTable  `yaml:"lootTables"`
}

// Load разбирает YAML-конфигурацию и строит справочник
func Load(data []byte) (*Registry, error) {
	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("gamedata: parse: %w", err)
	}

	r := &Registry{
		hostiles: make(map[string]HostileDef, len(file.Hostiles)),
		items:    make(map[string]ItemDef, len(file.Items)),
		loot:     make(map[string]LootTable, len(file.LootTables)),
	}

	for _, item := range file.Items {
		if item.ID == "" {
			return nil, fmt.Errorf("gamedata: item without id")
		}
		r.items[item.ID] = item
	}
	for _, table := range file.LootTables {
		if table.ID == "" {
			return nil, fmt.Errorf("gamedata: loot table without id")
		}
		r.loot[table.ID] = table
	}
	for _, def := range file.Hostiles {
		if def.ID == "" {
			return nil, fmt.Errorf("gamedata: hostile without id")
		}
		r.hostiles[def.ID] = def
	}

	return r, nil
}

// Default возвращает справочник из встроенных данных.
// Встроенный YAML обязан быть валидным, поэтому ошибка фатальна.
func Default() *Registry {
	r, err := Load(defaultsYAML)
	if err != nil {
		panic("gamedata: embedded defaults are broken: " + err.Error())
	}
	return r
}

// Hostile ищет тип враждебной сущности по ID
func (r *Registry) Hostile(id string) (HostileDef, bool) {
	def, ok := r.hostiles[id]
	return def, ok
}

// Item ищет предмет по ID
func (r *Registry) Item(id string) (ItemDef, bool) {
	item, ok := r.items[id]
	return item, ok
}

// Loot ищет таблицу лута по ID
func (r *Registry) Loot(id string) (LootTable, bool) {
	table, ok := r.loot[id]
	return table, ok
}

// HostileIDs возвращает все известные типы врагов (для спавн-логики хоста)
func (r *Registry) HostileIDs() []string {
	ids := make([]string, 0, len(r.hostiles))
	for id := range r.hostiles {
		ids = append(ids, id)
	}
	return ids
}
