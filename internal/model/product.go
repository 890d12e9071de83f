package model

import "time"

// ProductContentType tags products in generic references.
var ProductContentType = ContentTypeKey{AppLabel: "catalog", Model: "product"}

type Product struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p *Product) ContentTypeKey() ContentTypeKey {
	return ProductContentType
}

func (p *Product) PK() int64 {
	return p.ID
}

// FieldValue returns the live value of a text field by its column name.
func (p *Product) FieldValue(name string) (string, bool) {
	switch name {
	case "name":
		return p.Name, true
	case "description":
		return p.Description, true
	default:
		return "", false
	}
}
