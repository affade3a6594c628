package gamedata

// Статическая конфигурация: типы врагов, предметы, таблицы лута.
// Загружается один раз при старте и дальше только читается.

// ItemDef описывает предмет
type ItemDef struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	Stackable bool   `yaml:"stackable"`
}

// LootEntry - одна позиция таблицы лута.
// Каждая позиция разыгрывается независимо против своей вероятности;
// гарантированные позиции выпадают всегда.
type LootEntry struct {
	ItemID      string  `yaml:"item"`
	MinQuantity int     `yaml:"min"`
	MaxQuantity int     `yaml:"max"`
	Chance      float64 `yaml:"chance"` // [0..1]
	Guaranteed  bool    `yaml:"guaranteed"`
}

// LootTable - именованный набор позиций лута
type LootTable struct {
	ID      string      `yaml:"id"`
	Entries []LootEntry `yaml:"entries"`
}

// HostileDef описывает тип враждебной сущности
type HostileDef struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`

	Hitpoints int `yaml:"hitpoints"`
	Attack    int `yaml:"attack"`
	Strength  int `yaml:"strength"`
	Defence   int `yaml:"defence"`
	MaxHit    int `yaml:"maxHit"`

	AttackRange float64 `yaml:"attackRange"`
	AttackSpeed float64 `yaml:"attackSpeed"`
	MoveSpeed   float64 `yaml:"moveSpeed"`

	Aggressive       bool    `yaml:"aggressive"`
	AggroRange       float64 `yaml:"aggroRange"`
	WanderRadius     float64 `yaml:"wanderRadius"`
	RetreatThreshold float64 `yaml:"retreatThreshold"`

	RespawnMs float64 `yaml:"respawnMs"`
	LootTable string  `yaml:"lootTable"`
}
