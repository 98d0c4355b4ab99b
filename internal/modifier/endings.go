package modifier

import "strings"

type endingKind uint8

const (
	endingMutation endingKind = iota
	endingTag
	endingWeapon
	endingCondition
)

// ending is a trailing clause stripped before template matching.
type ending struct {
	text      string
	kind      endingKind
	mutation  Mutation
	tag       Tag
	weapons   ItemClassSet
	condition Condition
}

var (
	axes         = ItemClasses(OneHandAxe, TwoHandAxe)
	swords       = ItemClasses(OneHandSword, TwoHandSword, ThrustingOneHandSword)
	maces        = ItemClasses(OneHandMace, TwoHandMace)
	macesSceptre = ItemClasses(OneHandMace, TwoHandMace, Sceptre)
	twoHandMelee = ItemClasses(TwoHandSword, TwoHandMace, TwoHandAxe)
	oneHandMelee = ItemClasses(OneHandSword, OneHandMace, OneHandAxe, ThrustingOneHandSword)
)

// endings are tried in order on every iteration; the first suffix match
// is stripped.
var endings = []ending{
	{text: "per level", kind: endingMutation, mutation: PerProperty(1, Level)},
	{text: "per frenzy charge", kind: endingMutation, mutation: PerProperty(1, FrenzyCharges)},
	{text: "per power charge", kind: endingMutation, mutation: PerProperty(1, PowerCharges)},
	{text: "per endurance charge", kind: endingMutation, mutation: PerProperty(1, EnduranceCharges)},
	{text: "per 10 strength", kind: endingMutation, mutation: PerStat(10, Strength)},
	{text: "per 10 dexterity", kind: endingMutation, mutation: PerStat(10, Dexterity)},
	{text: "per 10 intelligence", kind: endingMutation, mutation: PerStat(10, Intelligence)},

	{text: "of aura skills", kind: endingTag, tag: TagAura},
	{text: "of curse skills", kind: endingTag, tag: TagCurse},
	{text: "of hex skills", kind: endingTag, tag: TagHex},
	{text: "with attack skills", kind: endingTag, tag: TagAttack},
	{text: "of attacks", kind: endingTag, tag: TagAttack},
	{text: "of skills", kind: endingTag, tag: TagActiveSkill},
	{text: "with mines", kind: endingTag, tag: TagMine},
	{text: "with traps", kind: endingTag, tag: TagTrap},
	{text: "with bow skills", kind: endingTag, tag: TagBow},
	{text: "with totem skills", kind: endingTag, tag: TagTotem},
	{text: "for spell damage", kind: endingTag, tag: TagSpell},
	{text: "with cold skills", kind: endingTag, tag: TagCold},
	{text: "with fire skills", kind: endingTag, tag: TagFire},
	{text: "with lightning skills", kind: endingTag, tag: TagLightning},
	{text: "to attacks", kind: endingTag, tag: TagAttack},
	{text: "to spells", kind: endingTag, tag: TagSpell},

	{text: "with axes", kind: endingWeapon, weapons: axes},
	{text: "with swords", kind: endingWeapon, weapons: swords},
	{text: "with maces", kind: endingWeapon, weapons: maces},
	{text: "with two handed melee weapons", kind: endingWeapon, weapons: twoHandMelee},
	{text: "with one handed melee weapons", kind: endingWeapon, weapons: oneHandMelee},
	{text: "with one handed weapons", kind: endingWeapon, weapons: oneHandMelee},
	{text: "with staves", kind: endingWeapon, weapons: ItemClasses(Staff)},
	{text: "with bows", kind: endingWeapon, weapons: ItemClasses(Bow)},
	{text: "with claws", kind: endingWeapon, weapons: ItemClasses(Claw)},
	{text: "with wands", kind: endingWeapon, weapons: ItemClasses(Wand)},
	{text: "with daggers", kind: endingWeapon, weapons: ItemClasses(Dagger)},
	{text: "with maces or sceptres", kind: endingWeapon, weapons: macesSceptre},

	{text: "while fortified", kind: endingCondition, condition: Flag(true, Fortified)},
	{text: "if you've dealt a critical strike recently", kind: endingCondition, condition: Flag(true, DealtCritRecently)},
	{text: "while leeching", kind: endingCondition, condition: Flag(true, Leeching)},
	{text: "when on full life", kind: endingCondition, condition: Flag(true, OnFullLife)},
	{text: "while on low life", kind: endingCondition, condition: Flag(true, OnLowLife)},
	{text: "while blinded", kind: endingCondition, condition: Flag(true, Blinded)},
	{text: "during onslaught", kind: endingCondition, condition: Flag(true, Onslaught)},
	{text: "while holding a shield", kind: endingCondition, condition: Wielding(ItemClasses(Shield))},
	{text: "while wielding a staff", kind: endingCondition, condition: Wielding(ItemClasses(Staff))},
	{text: "while wielding a sword", kind: endingCondition, condition: Wielding(swords)},
	{text: "while wielding a dagger", kind: endingCondition, condition: Wielding(ItemClasses(Dagger))},
	{text: "while wielding a mace or sceptre", kind: endingCondition, condition: Wielding(macesSceptre)},
	{text: "while wielding a claw or dagger", kind: endingCondition, condition: Wielding(ItemClasses(Dagger, Claw))},
}

// trailer collects everything stripped from the end of a modifier line.
type trailer struct {
	mutations  []Mutation
	conditions []Condition
	tags       TagSet
	weapons    ItemClassSet
}

func matchEnding(s string) (ending, bool) {
	for _, e := range endings {
		if strings.HasSuffix(s, " "+e.text) {
			return e, true
		}
	}
	return ending{}, false
}

// stripEndings removes recognised trailing clauses from s until none
// match and returns what is left.
func stripEndings(s string) (string, trailer) {
	var tr trailer
	for {
		e, ok := matchEnding(s)
		if !ok {
			return s, tr
		}
		s = s[:len(s)-len(e.text)-1]
		switch e.kind {
		case endingMutation:
			tr.mutations = append(tr.mutations, e.mutation)
		case endingTag:
			tr.tags = tr.tags.With(e.tag)
		case endingWeapon:
			tr.weapons = tr.weapons.Union(e.weapons)
		case endingCondition:
			tr.conditions = append(tr.conditions, e.condition)
		}
	}
}

// apply copies the trailer onto every modifier.
func (tr trailer) apply(mods []Modifier) {
	for i := range mods {
		m := &mods[i]
		m.Tags = m.Tags.Union(tr.tags)
		m.Weapons = m.Weapons.Union(tr.weapons)
		if len(tr.mutations) > 0 {
			m.Mutations = append(m.Mutations, tr.mutations...)
		}
		if len(tr.conditions) > 0 {
			m.Conditions = append(m.Conditions, tr.conditions...)
		}
	}
}
