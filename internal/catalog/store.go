// Package catalog holds the per-merchant catalog: categories,
// subcategories and products with their cascading-delete rules.
package catalog

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"storefront-service/internal/models"
	"storefront-service/internal/storage"
)

// SnapshotNamespace prefixes every persisted merchant catalog key.
const SnapshotNamespace = "merchant_product_data"

// Identifier prefixes for generated ids
const (
	CategoryIDPrefix    = "cat"
	SubCategoryIDPrefix = "sub"
	ProductIDPrefix     = "prod"
)

// SnapshotKey returns the storage key of a merchant's catalog record.
func SnapshotKey(merchantID string) string {
	return SnapshotNamespace + ":" + merchantID
}

// DeleteResult reports what a delete removed, cascades included.
type DeleteResult struct {
	Found          bool
	SubCategoryIDs []string
	ProductIDs     []string
}

// Store holds the catalog of exactly one merchant scope. Every mutation
// is one in-memory transition followed by one full-snapshot write.
// Persistence failures are logged and never reported to callers.
type Store struct {
	mu            sync.RWMutex
	kv            storage.Store
	logger        *logrus.Entry
	newID         func(prefix string) string
	merchantID    string
	categories    []models.Category
	subCategories []models.SubCategory
	products      []models.Product
}

// NewStore creates a store holding the unscoped default template.
// Nothing is persisted until InitializeForMerchant is called.
func NewStore(kv storage.Store, logger *logrus.Logger) *Store {
	tpl := DefaultTemplate()
	return &Store{
		kv:            kv,
		logger:        logger.WithField("component", "catalog.store"),
		newID:         generateID,
		categories:    tpl.Categories,
		subCategories: tpl.SubCategories,
		products:      tpl.Products,
	}
}

func generateID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}

// MerchantID returns the current scope, empty before initialization.
func (s *Store) MerchantID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.merchantID
}

// InitializeForMerchant switches the store to merchantID. Persisted data
// is loaded verbatim; when there is none, or it cannot be decoded, the
// default template is cloned with fresh ids and persisted.
func (s *Store) InitializeForMerchant(ctx context.Context, merchantID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.merchantID = merchantID
	log := s.logger.WithField("merchant_id", merchantID)

	if snap, ok := s.load(ctx, merchantID); ok {
		s.categories = snap.Categories
		s.subCategories = snap.SubCategories
		s.products = snap.Products
		log.WithFields(logrus.Fields{
			"categories":    len(snap.Categories),
			"subcategories": len(snap.SubCategories),
			"products":      len(snap.Products),
		}).Debug("Loaded persisted catalog")
		return
	}

	snap := cloneTemplate(merchantID, s.newID)
	s.categories = snap.Categories
	s.subCategories = snap.SubCategories
	s.products = snap.Products
	log.Info("Seeded catalog from default template")
	s.persist(ctx)
}

// load reads a merchant snapshot. A record that cannot be decoded or
// that lacks any of the three collections counts as absent.
func (s *Store) load(ctx context.Context, merchantID string) (models.CatalogSnapshot, bool) {
	var snap models.CatalogSnapshot
	found, err := storage.GetJSON(ctx, s.kv, SnapshotKey(merchantID), &snap)
	if err != nil {
		s.logger.WithError(err).WithField("merchant_id", merchantID).Warn("Ignoring unreadable catalog data")
		return models.CatalogSnapshot{}, false
	}
	if !found {
		return models.CatalogSnapshot{}, false
	}
	if snap.Categories == nil || snap.SubCategories == nil || snap.Products == nil {
		s.logger.WithField("merchant_id", merchantID).Warn("Ignoring incomplete catalog data")
		return models.CatalogSnapshot{}, false
	}
	return snap, true
}

// cloneTemplate re-keys the default template for one merchant, rewriting
// every parent reference through the id remap tables.
func cloneTemplate(merchantID string, newID func(string) string) models.CatalogSnapshot {
	tpl := DefaultTemplate()

	categoryIDs := make(map[string]string, len(tpl.Categories))
	for i := range tpl.Categories {
		id := newID(CategoryIDPrefix)
		categoryIDs[tpl.Categories[i].ID] = id
		tpl.Categories[i].ID = id
		tpl.Categories[i].MerchantID = merchantID
	}

	subCategoryIDs := make(map[string]string, len(tpl.SubCategories))
	for i := range tpl.SubCategories {
		sub := &tpl.SubCategories[i]
		id := newID(SubCategoryIDPrefix)
		subCategoryIDs[sub.ID] = id
		sub.ID = id
		for j, cid := range sub.CategoryIDs {
			if mapped, ok := categoryIDs[cid]; ok {
				sub.CategoryIDs[j] = mapped
			}
		}
		sub.MerchantID = merchantID
	}

	for i := range tpl.Products {
		p := &tpl.Products[i]
		p.ID = newID(ProductIDPrefix)
		if mapped, ok := categoryIDs[p.Category]; ok {
			p.Category = mapped
		}
		if mapped, ok := subCategoryIDs[p.SubCategory]; ok {
			p.SubCategory = mapped
		}
		p.MerchantID = merchantID
	}

	return tpl
}

// persist writes all three collections. Callers hold the write lock.
func (s *Store) persist(ctx context.Context) {
	if s.merchantID == "" {
		return
	}
	snap := models.CatalogSnapshot{
		Categories:    s.categories,
		SubCategories: s.subCategories,
		Products:      s.products,
	}
	if err := storage.SetJSON(ctx, s.kv, SnapshotKey(s.merchantID), snap); err != nil {
		s.logger.WithError(err).WithField("merchant_id", s.merchantID).Error("Failed to persist catalog")
	}
}

// ----------------------------------------------------------------------------
// Categories
// ----------------------------------------------------------------------------

// AddCategory appends a new category owned by the current merchant.
func (s *Store) AddCategory(ctx context.Context, req models.CreateCategoryRequest) models.Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	category := models.Category{
		ID:         s.newID(CategoryIDPrefix),
		NameKey:    req.NameKey,
		DescKey:    req.DescKey,
		Icon:       req.Icon,
		Gradient:   req.Gradient,
		IsActive:   req.IsActive,
		MerchantID: s.merchantID,
	}
	s.categories = append(s.categories, category)
	s.persist(ctx)
	return category
}

// UpdateCategory merges the non-nil fields of req into the category.
// It reports whether the id matched; an unknown id changes nothing.
func (s *Store) UpdateCategory(ctx context.Context, id string, req models.UpdateCategoryRequest) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.categories {
		if s.categories[i].ID != id {
			continue
		}
		c := &s.categories[i]
		if req.NameKey != nil {
			c.NameKey = *req.NameKey
		}
		if req.DescKey != nil {
			c.DescKey = *req.DescKey
		}
		if req.Icon != nil {
			c.Icon = *req.Icon
		}
		if req.Gradient != nil {
			c.Gradient = *req.Gradient
		}
		if req.IsActive != nil {
			c.IsActive = *req.IsActive
		}
		s.persist(ctx)
		return true
	}
	return false
}

// DeleteCategory removes the category, every subcategory whose parent set
// contains it, and every product filed under it.
func (s *Store) DeleteCategory(ctx context.Context, id string) DeleteResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result DeleteResult
	categories := make([]models.Category, 0, len(s.categories))
	for _, c := range s.categories {
		if c.ID == id {
			result.Found = true
			continue
		}
		categories = append(categories, c)
	}

	subCategories := make([]models.SubCategory, 0, len(s.subCategories))
	for _, sub := range s.subCategories {
		if sub.HasCategory(id) {
			result.SubCategoryIDs = append(result.SubCategoryIDs, sub.ID)
			continue
		}
		subCategories = append(subCategories, sub)
	}

	products := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		if p.Category == id {
			result.ProductIDs = append(result.ProductIDs, p.ID)
			continue
		}
		products = append(products, p)
	}

	if !result.Found && len(result.SubCategoryIDs) == 0 && len(result.ProductIDs) == 0 {
		return result
	}
	s.categories = categories
	s.subCategories = subCategories
	s.products = products
	s.persist(ctx)
	return result
}

// ----------------------------------------------------------------------------
// SubCategories
// ----------------------------------------------------------------------------

// AddSubCategory appends a new subcategory owned by the current merchant.
// The parent set is not validated here.
func (s *Store) AddSubCategory(ctx context.Context, req models.CreateSubCategoryRequest) models.SubCategory {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub := models.SubCategory{
		ID:          s.newID(SubCategoryIDPrefix),
		CategoryIDs: cloneStrings(req.CategoryIDs),
		NameKey:     req.NameKey,
		DescKey:     req.DescKey,
		Icon:        req.Icon,
		Gradient:    req.Gradient,
		IsActive:    req.IsActive,
		MerchantID:  s.merchantID,
	}
	if sub.CategoryIDs == nil {
		sub.CategoryIDs = []string{}
	}
	s.subCategories = append(s.subCategories, sub)
	s.persist(ctx)
	return cloneSubCategory(sub)
}

// UpdateSubCategory merges the non-nil fields of req. A non-nil
// CategoryIDs replaces the parent set.
func (s *Store) UpdateSubCategory(ctx context.Context, id string, req models.UpdateSubCategoryRequest) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.subCategories {
		if s.subCategories[i].ID != id {
			continue
		}
		sub := &s.subCategories[i]
		if req.CategoryIDs != nil {
			sub.CategoryIDs = cloneStrings(req.CategoryIDs)
		}
		if req.NameKey != nil {
			sub.NameKey = *req.NameKey
		}
		if req.DescKey != nil {
			sub.DescKey = *req.DescKey
		}
		if req.Icon != nil {
			sub.Icon = *req.Icon
		}
		if req.Gradient != nil {
			sub.Gradient = *req.Gradient
		}
		if req.IsActive != nil {
			sub.IsActive = *req.IsActive
		}
		s.persist(ctx)
		return true
	}
	return false
}

// DeleteSubCategory removes the subcategory and every product filed under
// it. Categories and other subcategories are untouched.
func (s *Store) DeleteSubCategory(ctx context.Context, id string) DeleteResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result DeleteResult
	subCategories := make([]models.SubCategory, 0, len(s.subCategories))
	for _, sub := range s.subCategories {
		if sub.ID == id {
			result.Found = true
			continue
		}
		subCategories = append(subCategories, sub)
	}

	products := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		if p.SubCategory == id {
			result.ProductIDs = append(result.ProductIDs, p.ID)
			continue
		}
		products = append(products, p)
	}

	if !result.Found && len(result.ProductIDs) == 0 {
		return result
	}
	s.subCategories = subCategories
	s.products = products
	s.persist(ctx)
	return result
}

// ----------------------------------------------------------------------------
// Products
// ----------------------------------------------------------------------------

// AddProduct appends a new product owned by the current merchant.
func (s *Store) AddProduct(ctx context.Context, req models.CreateProductRequest) models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	product := models.Product{
		ID:          s.newID(ProductIDPrefix),
		NameKey:     req.NameKey,
		Name:        req.Name,
		DescKey:     req.DescKey,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		Sizes:       cloneStrings(req.Sizes),
		Colors:      cloneStrings(req.Colors),
		Category:    req.Category,
		SubCategory: req.SubCategory,
		IsActive:    req.IsActive,
		MerchantID:  s.merchantID,
	}
	if product.Sizes == nil {
		product.Sizes = []string{}
	}
	if product.Colors == nil {
		product.Colors = []string{}
	}
	s.products = append(s.products, product)
	s.persist(ctx)
	return cloneProduct(product)
}

// UpdateProduct merges the non-nil fields of req into the product.
func (s *Store) UpdateProduct(ctx context.Context, id string, req models.UpdateProductRequest) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.products {
		if s.products[i].ID != id {
			continue
		}
		p := &s.products[i]
		if req.NameKey != nil {
			p.NameKey = *req.NameKey
		}
		if req.Name != nil {
			p.Name = *req.Name
		}
		if req.DescKey != nil {
			p.DescKey = *req.DescKey
		}
		if req.Description != nil {
			p.Description = *req.Description
		}
		if req.Price != nil {
			p.Price = *req.Price
		}
		if req.Image != nil {
			p.Image = *req.Image
		}
		if req.Sizes != nil {
			p.Sizes = cloneStrings(req.Sizes)
		}
		if req.Colors != nil {
			p.Colors = cloneStrings(req.Colors)
		}
		if req.Category != nil {
			p.Category = *req.Category
		}
		if req.SubCategory != nil {
			p.SubCategory = *req.SubCategory
		}
		if req.IsActive != nil {
			p.IsActive = *req.IsActive
		}
		s.persist(ctx)
		return true
	}
	return false
}

// DeleteProduct removes only the product.
func (s *Store) DeleteProduct(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.products {
		if s.products[i].ID == id {
			s.products = append(s.products[:i:i], s.products[i+1:]...)
			s.persist(ctx)
			return true
		}
	}
	return false
}

// ----------------------------------------------------------------------------
// Reads
// ----------------------------------------------------------------------------

// ActiveCategories returns active categories in insertion order.
func (s *Store) ActiveCategories() []models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Category, 0, len(s.categories))
	for _, c := range s.categories {
		if c.IsActive {
			out = append(out, c)
		}
	}
	return out
}

// ActiveSubCategories returns active subcategories whose parent set
// contains categoryID.
func (s *Store) ActiveSubCategories(categoryID string) []models.SubCategory {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.SubCategory, 0)
	for _, sub := range s.subCategories {
		if sub.IsActive && sub.HasCategory(categoryID) {
			out = append(out, cloneSubCategory(sub))
		}
	}
	return out
}

// ActiveProducts returns active products in categoryID. A non-empty
// subCategoryID narrows the result further.
func (s *Store) ActiveProducts(categoryID, subCategoryID string) []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Product, 0)
	for _, p := range s.products {
		if !p.IsActive || p.Category != categoryID {
			continue
		}
		if subCategoryID != "" && p.SubCategory != subCategoryID {
			continue
		}
		out = append(out, cloneProduct(p))
	}
	return out
}

// Categories returns every category regardless of the active flag.
func (s *Store) Categories() []models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// SubCategories returns every subcategory regardless of the active flag.
func (s *Store) SubCategories() []models.SubCategory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.SubCategory, len(s.subCategories))
	for i, sub := range s.subCategories {
		out[i] = cloneSubCategory(sub)
	}
	return out
}

// Products returns every product regardless of the active flag.
func (s *Store) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Product, len(s.products))
	for i, p := range s.products {
		out[i] = cloneProduct(p)
	}
	return out
}

// Category looks up a category by id.
func (s *Store) Category(id string) (models.Category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.categories {
		if c.ID == id {
			return c, true
		}
	}
	return models.Category{}, false
}

// SubCategory looks up a subcategory by id.
func (s *Store) SubCategory(id string) (models.SubCategory, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sub := range s.subCategories {
		if sub.ID == id {
			return cloneSubCategory(sub), true
		}
	}
	return models.SubCategory{}, false
}

// Product looks up a product by id.
func (s *Store) Product(id string) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return cloneProduct(p), true
		}
	}
	return models.Product{}, false
}

// Snapshot returns a deep copy of all three collections.
func (s *Store) Snapshot() models.CatalogSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSnapshot(models.CatalogSnapshot{
		Categories:    s.categories,
		SubCategories: s.subCategories,
		Products:      s.products,
	})
}
