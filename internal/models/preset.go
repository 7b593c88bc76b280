package models

import "github.com/google/uuid"

// Preset is a named shortcut that expands to a pre-configured drink.
// Expansion runs through the pricing engine, so a preset never stores a
// price.
type Preset struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Cup      CupType   `json:"cup"`
	Flavours []Flavour `json:"flavours"`
	AddOns   []AddOn   `json:"addOns"`
}

func NewPreset(name string, cup CupType, flavours []Flavour, addOns []AddOn) Preset {
	return Preset{
		ID:       uuid.NewString(),
		Name:     name,
		Cup:      cup,
		Flavours: flavours,
		AddOns:   addOns,
	}
}

type PresetRequest struct {
	Name     string    `json:"name"`
	Cup      CupType   `json:"cup"`
	Flavours []Flavour `json:"flavours"`
	AddOns   []AddOn   `json:"addOns"`
}
