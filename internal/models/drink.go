package models

import "strings"

// Flavour is one of the fixed set of juice flavours on the menu.
type Flavour string

const (
	FlavourMango      Flavour = "mango"
	FlavourPineapple  Flavour = "pineapple"
	FlavourWatermelon Flavour = "watermelon"
	FlavourStrawberry Flavour = "strawberry"
	FlavourBanana     Flavour = "banana"
	FlavourCoconut    Flavour = "coconut"
	FlavourTaro       Flavour = "taro"
)

// AllFlavours lists every flavour in menu order. Reports iterate this so
// flavours with zero sales still get a row.
var AllFlavours = []Flavour{
	FlavourMango,
	FlavourPineapple,
	FlavourWatermelon,
	FlavourStrawberry,
	FlavourBanana,
	FlavourCoconut,
	FlavourTaro,
}

// Valid reports whether the flavour is on the menu. The HTTP boundary
// rejects anything else; internally the set is closed.
func (f Flavour) Valid() bool {
	for _, known := range AllFlavours {
		if f == known {
			return true
		}
	}
	return false
}

// CupType is the physical vessel: plain cup, pineapple shell or
// watermelon shell. It drives the base price and the card surcharge
// exemption.
type CupType string

const (
	CupPlain           CupType = "cup"
	CupPineappleShell  CupType = "pshell"
	CupWatermelonShell CupType = "wshell"
)

type AddOn string

const (
	AddOnBoba      AddOn = "boba"
	AddOnLessSugar AddOn = "lessSugar"
	AddOnNoSugar   AddOn = "noSugar"
	AddOnLessIce   AddOn = "lessIce"
	AddOnNoIce     AddOn = "noIce"
)

var AllAddOns = []AddOn{AddOnBoba, AddOnLessSugar, AddOnNoSugar, AddOnLessIce, AddOnNoIce}

func (a AddOn) Valid() bool {
	for _, known := range AllAddOns {
		if a == known {
			return true
		}
	}
	return false
}

// Drink is one configured drink. Price is computed by the pricing engine
// when the drink is built and frozen from then on.
type Drink struct {
	Selection []Flavour `json:"selection"`
	CupType   CupType   `json:"cupType"`
	AddOns    []AddOn   `json:"addOns"`
	Price     float64   `json:"price"`
}

// Equal reports structural equality. The cart uses this to merge a newly
// added drink into an existing line.
func (d Drink) Equal(other Drink) bool {
	if d.CupType != other.CupType || d.Price != other.Price {
		return false
	}
	if len(d.Selection) != len(other.Selection) || len(d.AddOns) != len(other.AddOns) {
		return false
	}
	for i, f := range d.Selection {
		if other.Selection[i] != f {
			return false
		}
	}
	for i, a := range d.AddOns {
		if other.AddOns[i] != a {
			return false
		}
	}
	return true
}

// FlavourList renders the selection for receipts, e.g. "Mango + Pineapple".
func (d Drink) FlavourList() string {
	parts := make([]string, len(d.Selection))
	for i, f := range d.Selection {
		parts[i] = strings.ToUpper(string(f)[:1]) + string(f)[1:]
	}
	return strings.Join(parts, " + ")
}
