package models

import "time"

type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Type struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	CategoryID string    `json:"category_id"`
	CreatedAt  time.Time `json:"created_at"`
}

type Item struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	TypeID    string    `json:"type_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TaxonomyRef classifies a task. All three ids are set together.
type TaxonomyRef struct {
	CategoryID string `json:"category_id"`
	TypeID     string `json:"type_id"`
	ItemID     string `json:"item_id"`
}

// Complete reports whether every level is present.
func (r TaxonomyRef) Complete() bool {
	return r.CategoryID != "" && r.TypeID != "" && r.ItemID != ""
}

// Empty reports whether no level is present.
func (r TaxonomyRef) Empty() bool {
	return r.CategoryID == "" && r.TypeID == "" && r.ItemID == ""
}

// TaxonomyLabel is the read-time resolution of a TaxonomyRef. Names are nil
// for nodes that no longer exist.
type TaxonomyLabel struct {
	CategoryName *string `json:"category_name"`
	TypeName     *string `json:"type_name"`
	ItemName     *string `json:"item_name"`
	Resolved     bool    `json:"resolved"`
	Label        string  `json:"label"`
}

const UnresolvedLabel = "unresolved"

// NewTaxonomyLabel builds the label from whatever names could be found.
func NewTaxonomyLabel(category, typ, item *string) *TaxonomyLabel {
	l := &TaxonomyLabel{CategoryName: category, TypeName: typ, ItemName: item}
	if category == nil || typ == nil || item == nil {
		l.Label = UnresolvedLabel
		return l
	}
	l.Resolved = true
	l.Label = *category + " / " + *typ + " / " + *item
	return l
}
