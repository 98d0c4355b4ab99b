package modifier

// PropertyInt is an integer character property set by the user
// (level, current charges).
type PropertyInt uint8

const (
	Level PropertyInt = iota
	PowerCharges
	FrenzyCharges
	EnduranceCharges
	Rage

	propertyIntCount
)

var propertyIntNames = [propertyIntCount]string{
	Level:            "level",
	PowerCharges:     "power_charges",
	FrenzyCharges:    "frenzy_charges",
	EnduranceCharges: "endurance_charges",
	Rage:             "rage",
}

func (p PropertyInt) String() string {
	if p < propertyIntCount {
		return propertyIntNames[p]
	}
	return "property(?)"
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *PropertyInt) UnmarshalText(text []byte) error {
	for i, n := range propertyIntNames {
		if n == string(text) {
			*p = PropertyInt(i)
			return nil
		}
	}
	return &UnknownNameError{Kind: "int property", Name: string(text)}
}

// MarshalText implements encoding.TextMarshaler.
func (p PropertyInt) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// PropertyInts lists all integer properties.
func PropertyInts() []PropertyInt {
	return []PropertyInt{Level, PowerCharges, FrenzyCharges, EnduranceCharges, Rage}
}

// PropertyBool is a boolean character state toggled by the user.
type PropertyBool uint8

const (
	Blinded PropertyBool = iota
	Onslaught
	Fortified
	DealtCritRecently
	Leeching
	OnFullLife
	OnLowLife

	propertyBoolCount
)

var propertyBoolNames = [propertyBoolCount]string{
	Blinded:           "blinded",
	Onslaught:         "onslaught",
	Fortified:         "fortified",
	DealtCritRecently: "dealt_crit_recently",
	Leeching:          "leeching",
	OnFullLife:        "on_full_life",
	OnLowLife:         "on_low_life",
}

func (p PropertyBool) String() string {
	if p < propertyBoolCount {
		return propertyBoolNames[p]
	}
	return "flag(?)"
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *PropertyBool) UnmarshalText(text []byte) error {
	for i, n := range propertyBoolNames {
		if n == string(text) {
			*p = PropertyBool(i)
			return nil
		}
	}
	return &UnknownNameError{Kind: "bool property", Name: string(text)}
}

// MarshalText implements encoding.TextMarshaler.
func (p PropertyBool) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}
