package data

// MonsterStats are the default stats of a monster of some level.
type MonsterStats struct {
	Accuracy       int64   `yaml:"accuracy"`
	AllyLife       int64   `yaml:"ally_life"`
	Armour         int64   `yaml:"armour"`
	Evasion        int64   `yaml:"evasion"`
	Life           int64   `yaml:"life"`
	PhysicalDamage float64 `yaml:"physical_damage"`
}

// MaxMonsterLevel is the highest level monsters are evaluated at.
const MaxMonsterLevel = 83
