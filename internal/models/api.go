package models

// LocalizedText carries display text for every supported locale.
// Arabic falls back to English when omitted.
type LocalizedText struct {
	En string `json:"en"`
	Ar string `json:"ar,omitempty"`
}

// CategoryInput is the merchant-facing body for creating a category
type CategoryInput struct {
	Name        LocalizedText `json:"name" binding:"required"`
	Description LocalizedText `json:"description"`
	Icon        string        `json:"icon"`
	Gradient    string        `json:"gradient"`
	IsActive    *bool         `json:"isActive,omitempty"`
}

// CategoryPatch is the merchant-facing body for updating a category
type CategoryPatch struct {
	Name        *LocalizedText `json:"name,omitempty"`
	Description *LocalizedText `json:"description,omitempty"`
	Icon        *string        `json:"icon,omitempty"`
	Gradient    *string        `json:"gradient,omitempty"`
	IsActive    *bool          `json:"isActive,omitempty"`
}

// SubCategoryInput is the merchant-facing body for creating a subcategory
type SubCategoryInput struct {
	CategoryIDs []string      `json:"categoryIds" binding:"required"`
	Name        LocalizedText `json:"name" binding:"required"`
	Description LocalizedText `json:"description"`
	Icon        string        `json:"icon"`
	Gradient    string        `json:"gradient"`
	IsActive    *bool         `json:"isActive,omitempty"`
}

// SubCategoryPatch is the merchant-facing body for updating a subcategory
type SubCategoryPatch struct {
	CategoryIDs []string       `json:"categoryIds,omitempty"`
	Name        *LocalizedText `json:"name,omitempty"`
	Description *LocalizedText `json:"description,omitempty"`
	Icon        *string        `json:"icon,omitempty"`
	Gradient    *string        `json:"gradient,omitempty"`
	IsActive    *bool          `json:"isActive,omitempty"`
}

// ProductInput is the merchant-facing body for creating a product
type ProductInput struct {
	Name        LocalizedText `json:"name" binding:"required"`
	Description LocalizedText `json:"description"`
	Price       float64       `json:"price"`
	Image       string        `json:"image"`
	Sizes       []string      `json:"sizes"`
	Colors      []string      `json:"colors"`
	Category    string        `json:"category" binding:"required"`
	SubCategory string        `json:"subCategory" binding:"required"`
	IsActive    *bool         `json:"isActive,omitempty"`
}

// ProductPatch is the merchant-facing body for updating a product
type ProductPatch struct {
	Name        *LocalizedText `json:"name,omitempty"`
	Description *LocalizedText `json:"description,omitempty"`
	Price       *float64       `json:"price,omitempty"`
	Image       *string        `json:"image,omitempty"`
	Sizes       []string       `json:"sizes,omitempty"`
	Colors      []string       `json:"colors,omitempty"`
	Category    *string        `json:"category,omitempty"`
	SubCategory *string        `json:"subCategory,omitempty"`
	IsActive    *bool          `json:"isActive,omitempty"`
}

// StorefrontCategory is a category resolved into one locale
type StorefrontCategory struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Gradient    string `json:"gradient"`
}

// StorefrontSubCategory is a subcategory resolved into one locale
type StorefrontSubCategory struct {
	ID          string   `json:"id"`
	CategoryIDs []string `json:"categoryIds"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	Gradient    string   `json:"gradient"`
}

// StorefrontProduct is a product resolved into one locale
type StorefrontProduct struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Price          float64  `json:"price"`
	FormattedPrice string   `json:"formattedPrice"`
	Image          string   `json:"image"`
	Sizes          []string `json:"sizes"`
	Colors         []string `json:"colors"`
	Category       string   `json:"category"`
	SubCategory    string   `json:"subCategory"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Success bool  `json:"success"`
	Error   Error `json:"error"`
}

// Error represents error details
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// CategoryView is the merchant view of a category with resolved text
type CategoryView struct {
	Category
	Name        LocalizedText `json:"name"`
	Description LocalizedText `json:"description"`
}

// SubCategoryView is the merchant view of a subcategory with resolved text
type SubCategoryView struct {
	SubCategory
	Name        LocalizedText `json:"name"`
	Description LocalizedText `json:"description"`
}

// ProductView is the merchant view of a product with resolved text
type ProductView struct {
	Product
	LocalizedName        LocalizedText `json:"localizedName"`
	LocalizedDescription LocalizedText `json:"localizedDescription"`
}

// DeleteResponse reports what a delete removed
type DeleteResponse struct {
	ID                      string   `json:"id"`
	RemovedSubCategoryIDs   []string `json:"removedSubCategoryIds"`
	RemovedProductIDs       []string `json:"removedProductIds"`
	RemovedSubCategoryCount int      `json:"removedSubCategoryCount"`
	RemovedProductCount     int      `json:"removedProductCount"`
}
