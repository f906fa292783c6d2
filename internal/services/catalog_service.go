package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"storefront-service/internal/catalog"
	"storefront-service/internal/events"
	"storefront-service/internal/models"
	"storefront-service/internal/translation"
)

var (
	ErrValidation          = errors.New("validation failed")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrSubCategoryNotFound = errors.New("subcategory not found")
	ErrProductNotFound     = errors.New("product not found")
)

// ValidationError names the offending request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// Translation key prefixes
const (
	prefixCategory    = "categories"
	prefixSubCategory = "subcategories"
	prefixProduct     = "products"
)

// CatalogService validates merchant catalog edits, registers their display
// text and publishes change events. Records only ever carry translation
// keys.
type CatalogService struct {
	catalogs     *catalog.Manager
	translations *translation.Registry
	publisher    *events.Publisher
	logger       *logrus.Entry
	now          func() time.Time
}

// NewCatalogService creates a new CatalogService. publisher may be nil.
func NewCatalogService(catalogs *catalog.Manager, translations *translation.Registry, publisher *events.Publisher, logger *logrus.Logger) *CatalogService {
	return &CatalogService{
		catalogs:     catalogs,
		translations: translations,
		publisher:    publisher,
		logger:       logger.WithField("component", "catalog_service"),
		now:          time.Now,
	}
}

// Store returns the merchant's initialized catalog.
func (s *CatalogService) Store(ctx context.Context, merchantID string) *catalog.Store {
	return s.catalogs.ForMerchant(ctx, merchantID)
}

// Localized resolves key into every supported locale.
func (s *CatalogService) Localized(key string) models.LocalizedText {
	return models.LocalizedText{
		En: s.resolve(key, translation.English, ""),
		Ar: s.resolve(key, translation.Arabic, ""),
	}
}

func (s *CatalogService) resolve(key string, locale translation.Locale, fallback string) string {
	if key == "" {
		return fallback
	}
	text := s.translations.Lookup(key, locale)
	if text == key {
		return fallback
	}
	return text
}

// registerText stores name and description under fresh keys and returns them.
func (s *CatalogService) registerText(ctx context.Context, prefix string, name, desc models.LocalizedText) (string, string) {
	nameKey := s.translations.RegisterFresh(ctx, translation.GenerateKey(prefix, name.En, s.now()), map[string]map[translation.Locale]string{
		"":     localeTexts(name),
		"Desc": localeTexts(desc),
	})
	return nameKey, nameKey + "Desc"
}

func localeTexts(t models.LocalizedText) map[translation.Locale]string {
	ar := strings.TrimSpace(t.Ar)
	en := strings.TrimSpace(t.En)
	if ar == "" {
		ar = en
	}
	return map[translation.Locale]string{translation.English: en, translation.Arabic: ar}
}

func requireName(name models.LocalizedText) error {
	if strings.TrimSpace(name.En) == "" {
		return invalid("name.en", "name is required")
	}
	return nil
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// ---------------------------------------------------------------------------
// Categories
// ---------------------------------------------------------------------------

func (s *CatalogService) categoryView(c models.Category) models.CategoryView {
	return models.CategoryView{Category: c, Name: s.Localized(c.NameKey), Description: s.Localized(c.DescKey)}
}

// ListCategories returns every category of the merchant.
func (s *CatalogService) ListCategories(ctx context.Context, merchantID string) []models.CategoryView {
	cats := s.Store(ctx, merchantID).Categories()
	out := make([]models.CategoryView, 0, len(cats))
	for _, c := range cats {
		out = append(out, s.categoryView(c))
	}
	return out
}

// CreateCategory validates and adds a category.
func (s *CatalogService) CreateCategory(ctx context.Context, merchantID string, in models.CategoryInput) (*models.CategoryView, error) {
	if err := requireName(in.Name); err != nil {
		return nil, err
	}
	nameKey, descKey := s.registerText(ctx, prefixCategory, in.Name, in.Description)
	c := s.Store(ctx, merchantID).AddCategory(ctx, models.CreateCategoryRequest{
		NameKey:  nameKey,
		DescKey:  descKey,
		Icon:     in.Icon,
		Gradient: in.Gradient,
		IsActive: boolOr(in.IsActive, true),
	})
	s.publisher.PublishChange(ctx, events.EntityCategory, events.ActionCreated, merchantID, c.ID)
	view := s.categoryView(c)
	return &view, nil
}

// UpdateCategory applies a partial update. New display text gets new keys.
func (s *CatalogService) UpdateCategory(ctx context.Context, merchantID, id string, in models.CategoryPatch) (*models.CategoryView, error) {
	store := s.Store(ctx, merchantID)
	current, ok := store.Category(id)
	if !ok {
		return nil, ErrCategoryNotFound
	}

	req := models.UpdateCategoryRequest{Icon: in.Icon, Gradient: in.Gradient, IsActive: in.IsActive}
	if in.Name != nil || in.Description != nil {
		view := s.categoryView(current)
		name, desc := view.Name, view.Description
		if in.Name != nil {
			if err := requireName(*in.Name); err != nil {
				return nil, err
			}
			name = *in.Name
		}
		if in.Description != nil {
			desc = *in.Description
		}
		nameKey, descKey := s.registerText(ctx, prefixCategory, name, desc)
		req.NameKey, req.DescKey = &nameKey, &descKey
	}

	if !store.UpdateCategory(ctx, id, req) {
		return nil, ErrCategoryNotFound
	}
	updated, _ := store.Category(id)
	s.publisher.PublishChange(ctx, events.EntityCategory, events.ActionUpdated, merchantID, id)
	view := s.categoryView(updated)
	return &view, nil
}

// DeleteCategory removes a category with its dependent subcategories and products.
func (s *CatalogService) DeleteCategory(ctx context.Context, merchantID, id string) (*models.DeleteResponse, error) {
	res := s.Store(ctx, merchantID).DeleteCategory(ctx, id)
	if !res.Found {
		return nil, ErrCategoryNotFound
	}
	s.logger.WithFields(logrus.Fields{
		"merchant_id":   merchantID,
		"category_id":   id,
		"subcategories": len(res.SubCategoryIDs),
		"products":      len(res.ProductIDs),
	}).Info("Category deleted")
	s.publisher.PublishDeletion(ctx, events.EntityCategory, merchantID, id, res.SubCategoryIDs, res.ProductIDs)
	return deleteResponse(id, res), nil
}

func deleteResponse(id string, res catalog.DeleteResult) *models.DeleteResponse {
	return &models.DeleteResponse{
		ID:                      id,
		RemovedSubCategoryIDs:   nonNil(res.SubCategoryIDs),
		RemovedProductIDs:       nonNil(res.ProductIDs),
		RemovedSubCategoryCount: len(res.SubCategoryIDs),
		RemovedProductCount:     len(res.ProductIDs),
	}
}

// ---------------------------------------------------------------------------
// Subcategories
// ---------------------------------------------------------------------------

func (s *CatalogService) subCategoryView(sub models.SubCategory) models.SubCategoryView {
	return models.SubCategoryView{SubCategory: sub, Name: s.Localized(sub.NameKey), Description: s.Localized(sub.DescKey)}
}

// ListSubCategories returns the merchant's subcategories, optionally only
// those under categoryID.
func (s *CatalogService) ListSubCategories(ctx context.Context, merchantID, categoryID string) []models.SubCategoryView {
	subs := s.Store(ctx, merchantID).SubCategories()
	out := make([]models.SubCategoryView, 0, len(subs))
	for _, sub := range subs {
		if categoryID != "" && !sub.HasCategory(categoryID) {
			continue
		}
		out = append(out, s.subCategoryView(sub))
	}
	return out
}

func validateParents(store *catalog.Store, ids []string) error {
	if len(ids) == 0 {
		return invalid("categoryIds", "at least one category is required")
	}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return invalid("categoryIds", fmt.Sprintf("category %q listed twice", id))
		}
		seen[id] = true
		if _, ok := store.Category(id); !ok {
			return invalid("categoryIds", fmt.Sprintf("category %q does not exist", id))
		}
	}
	return nil
}

// CreateSubCategory validates and adds a subcategory.
func (s *CatalogService) CreateSubCategory(ctx context.Context, merchantID string, in models.SubCategoryInput) (*models.SubCategoryView, error) {
	if err := requireName(in.Name); err != nil {
		return nil, err
	}
	store := s.Store(ctx, merchantID)
	if err := validateParents(store, in.CategoryIDs); err != nil {
		return nil, err
	}
	nameKey, descKey := s.registerText(ctx, prefixSubCategory, in.Name, in.Description)
	sub := store.AddSubCategory(ctx, models.CreateSubCategoryRequest{
		CategoryIDs: in.CategoryIDs,
		NameKey:     nameKey,
		DescKey:     descKey,
		Icon:        in.Icon,
		Gradient:    in.Gradient,
		IsActive:    boolOr(in.IsActive, true),
	})
	s.publisher.PublishChange(ctx, events.EntitySubCategory, events.ActionCreated, merchantID, sub.ID)
	view := s.subCategoryView(sub)
	return &view, nil
}

// UpdateSubCategory applies a partial update; a parent set replaces the
// stored one and must stay non-empty.
func (s *CatalogService) UpdateSubCategory(ctx context.Context, merchantID, id string, in models.SubCategoryPatch) (*models.SubCategoryView, error) {
	store := s.Store(ctx, merchantID)
	current, ok := store.SubCategory(id)
	if !ok {
		return nil, ErrSubCategoryNotFound
	}
	if in.CategoryIDs != nil {
		if err := validateParents(store, in.CategoryIDs); err != nil {
			return nil, err
		}
	}

	req := models.UpdateSubCategoryRequest{
		CategoryIDs: in.CategoryIDs,
		Icon:        in.Icon,
		Gradient:    in.Gradient,
		IsActive:    in.IsActive,
	}
	if in.Name != nil || in.Description != nil {
		view := s.subCategoryView(current)
		name, desc := view.Name, view.Description
		if in.Name != nil {
			if err := requireName(*in.Name); err != nil {
				return nil, err
			}
			name = *in.Name
		}
		if in.Description != nil {
			desc = *in.Description
		}
		nameKey, descKey := s.registerText(ctx, prefixSubCategory, name, desc)
		req.NameKey, req.DescKey = &nameKey, &descKey
	}

	if !store.UpdateSubCategory(ctx, id, req) {
		return nil, ErrSubCategoryNotFound
	}
	updated, _ := store.SubCategory(id)
	s.publisher.PublishChange(ctx, events.EntitySubCategory, events.ActionUpdated, merchantID, id)
	view := s.subCategoryView(updated)
	return &view, nil
}

// DeleteSubCategory removes a subcategory and its products.
func (s *CatalogService) DeleteSubCategory(ctx context.Context, merchantID, id string) (*models.DeleteResponse, error) {
	res := s.Store(ctx, merchantID).DeleteSubCategory(ctx, id)
	if !res.Found {
		return nil, ErrSubCategoryNotFound
	}
	s.publisher.PublishDeletion(ctx, events.EntitySubCategory, merchantID, id, nil, res.ProductIDs)
	return deleteResponse(id, res), nil
}

// ---------------------------------------------------------------------------
// Products
// ---------------------------------------------------------------------------

func (s *CatalogService) productView(p models.Product) models.ProductView {
	name := s.Localized(p.NameKey)
	if name.En == "" {
		name.En = p.Name
	}
	if name.Ar == "" {
		name.Ar = name.En
	}
	desc := s.Localized(p.DescKey)
	if desc.En == "" {
		desc.En = p.Description
	}
	if desc.Ar == "" {
		desc.Ar = desc.En
	}
	return models.ProductView{Product: p, LocalizedName: name, LocalizedDescription: desc}
}

// ListProducts returns the merchant's products, optionally filtered by
// category and subcategory.
func (s *CatalogService) ListProducts(ctx context.Context, merchantID, categoryID, subCategoryID string) []models.ProductView {
	products := s.Store(ctx, merchantID).Products()
	out := make([]models.ProductView, 0, len(products))
	for _, p := range products {
		if categoryID != "" && p.Category != categoryID {
			continue
		}
		if subCategoryID != "" && p.SubCategory != subCategoryID {
			continue
		}
		out = append(out, s.productView(p))
	}
	return out
}

func validatePlacement(store *catalog.Store, categoryID, subCategoryID string) error {
	if _, ok := store.Category(categoryID); !ok {
		return invalid("category", fmt.Sprintf("category %q does not exist", categoryID))
	}
	sub, ok := store.SubCategory(subCategoryID)
	if !ok {
		return invalid("subCategory", fmt.Sprintf("subcategory %q does not exist", subCategoryID))
	}
	if !sub.HasCategory(categoryID) {
		return invalid("subCategory", fmt.Sprintf("subcategory %q does not belong to category %q", subCategoryID, categoryID))
	}
	return nil
}

func validatePrice(price float64) error {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return invalid("price", "price must be a finite number")
	}
	if price < 0 {
		return invalid("price", "price must not be negative")
	}
	return nil
}

// ValidateProduct runs every check CreateProduct applies without writing
// anything.
func (s *CatalogService) ValidateProduct(ctx context.Context, merchantID string, in models.ProductInput) error {
	if err := requireName(in.Name); err != nil {
		return err
	}
	if err := validatePrice(in.Price); err != nil {
		return err
	}
	return validatePlacement(s.Store(ctx, merchantID), in.Category, in.SubCategory)
}

// CreateProduct validates and adds a product.
func (s *CatalogService) CreateProduct(ctx context.Context, merchantID string, in models.ProductInput) (*models.ProductView, error) {
	if err := s.ValidateProduct(ctx, merchantID, in); err != nil {
		return nil, err
	}
	store := s.Store(ctx, merchantID)

	nameKey, descKey := s.registerText(ctx, prefixProduct, in.Name, in.Description)
	p := store.AddProduct(ctx, models.CreateProductRequest{
		NameKey:     nameKey,
		Name:        strings.TrimSpace(in.Name.En),
		DescKey:     descKey,
		Description: strings.TrimSpace(in.Description.En),
		Price:       in.Price,
		Image:       in.Image,
		Sizes:       nonNil(in.Sizes),
		Colors:      nonNil(in.Colors),
		Category:    in.Category,
		SubCategory: in.SubCategory,
		IsActive:    boolOr(in.IsActive, true),
	})
	s.publisher.PublishChange(ctx, events.EntityProduct, events.ActionCreated, merchantID, p.ID)
	view := s.productView(p)
	return &view, nil
}

// UpdateProduct applies a partial update.
func (s *CatalogService) UpdateProduct(ctx context.Context, merchantID, id string, in models.ProductPatch) (*models.ProductView, error) {
	store := s.Store(ctx, merchantID)
	current, ok := store.Product(id)
	if !ok {
		return nil, ErrProductNotFound
	}
	if in.Price != nil {
		if err := validatePrice(*in.Price); err != nil {
			return nil, err
		}
	}
	if in.Category != nil || in.SubCategory != nil {
		categoryID, subCategoryID := current.Category, current.SubCategory
		if in.Category != nil {
			categoryID = *in.Category
		}
		if in.SubCategory != nil {
			subCategoryID = *in.SubCategory
		}
		if err := validatePlacement(store, categoryID, subCategoryID); err != nil {
			return nil, err
		}
	}

	req := models.UpdateProductRequest{
		Price:       in.Price,
		Image:       in.Image,
		Sizes:       in.Sizes,
		Colors:      in.Colors,
		Category:    in.Category,
		SubCategory: in.SubCategory,
		IsActive:    in.IsActive,
	}
	if in.Name != nil || in.Description != nil {
		view := s.productView(current)
		name, desc := view.LocalizedName, view.LocalizedDescription
		if in.Name != nil {
			if err := requireName(*in.Name); err != nil {
				return nil, err
			}
			name = *in.Name
		}
		if in.Description != nil {
			desc = *in.Description
		}
		nameKey, descKey := s.registerText(ctx, prefixProduct, name, desc)
		plainName, plainDesc := strings.TrimSpace(name.En), strings.TrimSpace(desc.En)
		req.NameKey, req.DescKey = &nameKey, &descKey
		req.Name, req.Description = &plainName, &plainDesc
	}

	if !store.UpdateProduct(ctx, id, req) {
		return nil, ErrProductNotFound
	}
	updated, _ := store.Product(id)
	s.publisher.PublishChange(ctx, events.EntityProduct, events.ActionUpdated, merchantID, id)
	view := s.productView(updated)
	return &view, nil
}

// DeleteProduct removes one product.
func (s *CatalogService) DeleteProduct(ctx context.Context, merchantID, id string) error {
	if !s.Store(ctx, merchantID).DeleteProduct(ctx, id) {
		return ErrProductNotFound
	}
	s.publisher.PublishChange(ctx, events.EntityProduct, events.ActionDeleted, merchantID, id)
	return nil
}

// ---------------------------------------------------------------------------
// Storefront
// ---------------------------------------------------------------------------

// Storefront is the read-only, single-locale view of a merchant's active
// catalog.
type Storefront struct {
	store   *catalog.Store
	service *CatalogService
	locale  translation.Locale
}

// Storefront opens an existing merchant catalog for visitors. It never
// seeds a catalog for an unknown merchant.
func (s *CatalogService) Storefront(ctx context.Context, merchantID string, locale translation.Locale) (*Storefront, bool) {
	store, ok := s.catalogs.Existing(ctx, merchantID)
	if !ok {
		return nil, false
	}
	return &Storefront{store: store, service: s, locale: locale}, true
}

// Catalog exposes the underlying store for read access.
func (f *Storefront) Catalog() *catalog.Store { return f.store }

func (f *Storefront) Locale() translation.Locale { return f.locale }

// Categories lists active categories.
func (f *Storefront) Categories() []models.StorefrontCategory {
	cats := f.store.ActiveCategories()
	out := make([]models.StorefrontCategory, 0, len(cats))
	for _, c := range cats {
		out = append(out, models.StorefrontCategory{
			ID:          c.ID,
			Name:        f.service.resolve(c.NameKey, f.locale, ""),
			Description: f.service.resolve(c.DescKey, f.locale, ""),
			Icon:        c.Icon,
			Gradient:    c.Gradient,
		})
	}
	return out
}

// ActiveCategory returns a category only when it exists and is active.
func (f *Storefront) ActiveCategory(id string) (models.Category, bool) {
	c, ok := f.store.Category(id)
	if !ok || !c.IsActive {
		return models.Category{}, false
	}
	return c, true
}

// SubCategories lists active subcategories under categoryID.
func (f *Storefront) SubCategories(categoryID string) []models.StorefrontSubCategory {
	subs := f.store.ActiveSubCategories(categoryID)
	out := make([]models.StorefrontSubCategory, 0, len(subs))
	for _, sub := range subs {
		out = append(out, models.StorefrontSubCategory{
			ID:          sub.ID,
			CategoryIDs: sub.CategoryIDs,
			Name:        f.service.resolve(sub.NameKey, f.locale, ""),
			Description: f.service.resolve(sub.DescKey, f.locale, ""),
			Icon:        sub.Icon,
			Gradient:    sub.Gradient,
		})
	}
	return out
}

// visible reports whether an active product also sits under an active
// category and subcategory.
func (f *Storefront) visible(p models.Product) bool {
	if !p.IsActive {
		return false
	}
	if _, ok := f.ActiveCategory(p.Category); !ok {
		return false
	}
	sub, ok := f.store.SubCategory(p.SubCategory)
	return ok && sub.IsActive
}

// Products lists visible products under categoryID, narrowed by
// subCategoryID when non-empty.
func (f *Storefront) Products(categoryID, subCategoryID string) []models.StorefrontProduct {
	products := f.store.ActiveProducts(categoryID, subCategoryID)
	out := make([]models.StorefrontProduct, 0, len(products))
	for _, p := range products {
		if f.visible(p) {
			out = append(out, f.product(p))
		}
	}
	return out
}

// Product returns a visible product.
func (f *Storefront) Product(id string) (models.StorefrontProduct, bool) {
	p, ok := f.store.Product(id)
	if !ok || !f.visible(p) {
		return models.StorefrontProduct{}, false
	}
	return f.product(p), true
}

func (f *Storefront) product(p models.Product) models.StorefrontProduct {
	return models.StorefrontProduct{
		ID:             p.ID,
		Name:           f.service.resolve(p.NameKey, f.locale, p.Name),
		Description:    f.service.resolve(p.DescKey, f.locale, p.Description),
		Price:          p.Price,
		FormattedPrice: translation.FormatPrice(p.Price, f.locale),
		Image:          p.Image,
		Sizes:          nonNil(p.Sizes),
		Colors:         nonNil(p.Colors),
		Category:       p.Category,
		SubCategory:    p.SubCategory,
	}
}

// Lookup resolves a translation key for the voice menu.
func (s *CatalogService) Lookup(key string, locale translation.Locale) string {
	return s.translations.Lookup(key, locale)
}
