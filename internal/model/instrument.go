package model

// Instrument represents a single unit-tracking inventory row. A conceptual
// instrument purchased in quantity N is stored as N independent rows of
// quantity 1, each with its own ID. Quantity counts units currently on the
// shelf, i.e. not allocated to any set.
type Instrument struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
	Quantity    int    `json:"quantity"`
	IsWishlist  bool   `json:"isWishlist,omitempty"`
}

// SetInstrument is an allocation record: units of an instrument currently
// allocated to a set. It references the instrument by ID, it does not own it.
type SetInstrument struct {
	InstrumentID string `json:"instrumentId"`
	Quantity     int    `json:"quantity"`
}
