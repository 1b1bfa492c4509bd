package model

// Set is a named, ordered collection of allocation records. An instrument
// appears at most once per set; repeated allocations merge quantities.
type Set struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Icon        string          `json:"icon,omitempty"`
	Instruments []SetInstrument `json:"instruments"`
}

// DefaultIcon is assigned when a set is created without an explicit icon.
const DefaultIcon = "layers"

// SetIcons lists the selectable set icons.
var SetIcons = []string{
	"layers", "medkit", "bandage", "flask", "fitness", "basket",
	"cube", "briefcase", "clipboard", "shield-checkmark", "heart",
	"thermometer", "pulse", "medical", "construct",
}

// ValidIcon reports whether name is one of the selectable set icons.
func ValidIcon(name string) bool {
	for _, icon := range SetIcons {
		if icon == name {
			return true
		}
	}
	return false
}

// Allocation returns the set's allocation record for the given instrument,
// or nil if the set does not reference it.
func (s *Set) Allocation(instrumentID string) *SetInstrument {
	for i := range s.Instruments {
		if s.Instruments[i].InstrumentID == instrumentID {
			return &s.Instruments[i]
		}
	}
	return nil
}
