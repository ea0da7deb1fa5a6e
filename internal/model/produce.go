// Package model holds the domain types shared by the repository, service and
// handler layers.
package model

// Type is the produce category.
type Type string

const (
	TypeFruit     Type = "fruit"
	TypeVegetable Type = "vegetable"
)

// Types lists every accepted category, in display order.
var Types = []Type{TypeFruit, TypeVegetable}

// IsValid reports whether t is one of the enumerated categories.
func (t Type) IsValid() bool {
	switch t {
	case TypeFruit, TypeVegetable:
		return true
	}
	return false
}

// Produce is one stored produce entry. ID is assigned by storage on creation.
type Produce struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Type       Type    `json:"type"`
	PricePerKg float64 `json:"pricePerKg"`
}

// CreateProduce carries the fields of a record that does not exist yet.
type CreateProduce struct {
	Name       string
	Type       Type
	PricePerKg float64
}

// ProducePatch is a partial update. Nil fields are left untouched.
type ProducePatch struct {
	Name       *string
	Type       *Type
	PricePerKg *float64
}

// IsEmpty reports whether the patch changes nothing.
func (p ProducePatch) IsEmpty() bool {
	return p.Name == nil && p.Type == nil && p.PricePerKg == nil
}
