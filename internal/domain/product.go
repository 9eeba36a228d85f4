package domain

import "github.com/shopspring/decimal"

type Product struct {
	ProductID   int64           `json:"product_id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  int64           `json:"category_id"`
	Description string          `json:"description"`
	Subcategory string          `json:"subcategory"`
	Stock       int             `json:"stock"`
	Featured    bool            `json:"featured"`
	ImageURL    string          `json:"image_url"`
}

type Category struct {
	CategoryID  int64  `json:"category_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ProductFilter narrows a catalog listing. Nil fields are ignored.
type ProductFilter struct {
	CategoryID  *int64
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	Subcategory *string
}
