package models

// Category is a top-level grouping in a merchant's catalog.
// Display text is never stored on the record; NameKey and DescKey point
// into the translation store.
type Category struct {
	ID         string `json:"id"`
	NameKey    string `json:"nameKey"`
	DescKey    string `json:"descKey"`
	Icon       string `json:"icon"`
	Gradient   string `json:"gradient"`
	IsActive   bool   `json:"isActive"`
	MerchantID string `json:"merchantId,omitempty"`
}

// SubCategory may belong to several categories at once.
type SubCategory struct {
	ID          string   `json:"id"`
	CategoryIDs []string `json:"categoryIds"`
	NameKey     string   `json:"nameKey"`
	DescKey     string   `json:"descKey"`
	Icon        string   `json:"icon"`
	Gradient    string   `json:"gradient"`
	IsActive    bool     `json:"isActive"`
	MerchantID  string   `json:"merchantId,omitempty"`
}

// HasCategory reports whether categoryID is one of the subcategory's parents.
func (s SubCategory) HasCategory(categoryID string) bool {
	for _, id := range s.CategoryIDs {
		if id == categoryID {
			return true
		}
	}
	return false
}

// Product carries both translation keys and plain-text fallbacks.
type Product struct {
	ID          string   `json:"id"`
	NameKey     string   `json:"nameKey"`
	Name        string   `json:"name"`
	DescKey     string   `json:"descKey"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Image       string   `json:"image"`
	Sizes       []string `json:"sizes"`
	Colors      []string `json:"colors"`
	Category    string   `json:"category"`
	SubCategory string   `json:"subCategory"`
	IsActive    bool     `json:"isActive"`
	MerchantID  string   `json:"merchantId,omitempty"`
}

// CatalogSnapshot is the persisted record for one merchant scope.
// All three collections are always written together.
type CatalogSnapshot struct {
	Categories    []Category    `json:"categories"`
	SubCategories []SubCategory `json:"subCategories"`
	Products      []Product     `json:"products"`
}

// CreateCategoryRequest holds the fields of a new category.
type CreateCategoryRequest struct {
	NameKey  string
	DescKey  string
	Icon     string
	Gradient string
	IsActive bool
}

// UpdateCategoryRequest is a typed partial update; nil fields are left unchanged.
type UpdateCategoryRequest struct {
	NameKey  *string
	DescKey  *string
	Icon     *string
	Gradient *string
	IsActive *bool
}

// CreateSubCategoryRequest holds the fields of a new subcategory.
type CreateSubCategoryRequest struct {
	CategoryIDs []string
	NameKey     string
	DescKey     string
	Icon        string
	Gradient    string
	IsActive    bool
}

// UpdateSubCategoryRequest is a typed partial update. A non-nil
// CategoryIDs replaces the parent set wholesale.
type UpdateSubCategoryRequest struct {
	CategoryIDs []string
	NameKey     *string
	DescKey     *string
	Icon        *string
	Gradient    *string
	IsActive    *bool
}

// CreateProductRequest holds the fields of a new product.
type CreateProductRequest struct {
	NameKey     string
	Name        string
	DescKey     string
	Description string
	Price       float64
	Image       string
	Sizes       []string
	Colors      []string
	Category    string
	SubCategory string
	IsActive    bool
}

// UpdateProductRequest is a typed partial update; nil fields and nil
// slices are left unchanged.
type UpdateProductRequest struct {
	NameKey     *string
	Name        *string
	DescKey     *string
	Description *string
	Price       *float64
	Image       *string
	Sizes       []string
	Colors      []string
	Category    *string
	SubCategory *string
	IsActive    *bool
}
