package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"storefront-service/internal/cart"
	"storefront-service/internal/catalog"
	"storefront-service/internal/middleware"
	"storefront-service/internal/models"
	"storefront-service/internal/repository"
	"storefront-service/internal/services"
	"storefront-service/internal/storage"
	"storefront-service/internal/translation"
	"storefront-service/internal/voice"
	"storefront-service/internal/widget"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   models.Error    `json:"error"`
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	kv := storage.NewMemoryStore(0)
	registry := translation.NewRegistry(kv, logger)
	catalogs := catalog.NewManager(kv, logger)
	authService := services.NewAuthService(repository.NewMerchantRepository(kv), "test-secret", time.Hour, logger)
	catalogService := services.NewCatalogService(catalogs, registry, nil, logger)
	hub := voice.NewHub(func() voice.Agent { return voice.NewDemoAgent() },
		voice.Config{Demo: true, RestartDelay: time.Millisecond}, time.Hour, logger)

	router := gin.New()
	RegisterRoutes(router, Routes{
		Health:     NewHealthHandler(kv),
		Auth:       NewAuthHandler(authService, catalogs, logger),
		Catalog:    NewCatalogHandler(catalogService),
		Transfer:   NewTransferHandler(catalogService, logger),
		Widget:     NewWidgetHandler(widget.NewRepository(kv), "", logger),
		Storefront: NewStorefrontHandler(catalogService),
		Cart:       NewCartHandler(catalogService, cart.NewSessions(time.Hour, logger)),
		Voice:      NewVoiceHandler(catalogService, hub, 5*time.Millisecond, logger),
		Tokens:     authService,
	})
	return &testServer{t: t, router: router}
}

func (s *testServer) do(method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data interface{}) envelope {
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if data != nil && len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

// signup registers a merchant and returns its id and bearer header.
func (s *testServer) signup(email string) (string, map[string]string) {
	w := s.do(http.MethodPost, "/api/v1/auth/signup", models.SignupRequest{
		Name: "Omar", Email: email, Password: "password123", BusinessName: "Omar's",
	}, nil)
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	var resp models.AuthResponse
	decode(s.t, w, &resp)
	return resp.Merchant.ID, map[string]string{"Authorization": "Bearer " + resp.Token}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/health", nil, nil).Code)
	w := s.do(http.MethodGet, "/ready", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ready")
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)
	id, auth := s.signup("omar@example.com")

	w := s.do(http.MethodPost, "/api/v1/auth/signup", models.SignupRequest{
		Name: "Other", Email: "OMAR@example.com", Password: "password123", BusinessName: "x",
	}, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "EMAIL_TAKEN", decode(t, w, nil).Error.Code)

	w = s.do(http.MethodPost, "/api/v1/auth/login", models.LoginRequest{Email: "omar@example.com", Password: "wrong"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(http.MethodPost, "/api/v1/auth/login", models.LoginRequest{Email: "omar@example.com", Password: "password123"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/v1/merchant/profile", nil, auth)
	require.Equal(t, http.StatusOK, w.Code)
	var profile models.Merchant
	decode(t, w, &profile)
	assert.Equal(t, id, profile.ID)

	phone := "+966500000000"
	w = s.do(http.MethodPut, "/api/v1/merchant/profile", models.UpdateMerchantRequest{Phone: &phone}, auth)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &profile)
	assert.Equal(t, phone, profile.Phone)

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/v1/merchant/profile", nil, nil).Code)

	w = s.do(http.MethodPost, "/api/v1/auth/signup", models.SignupRequest{
		Name: "Long", Email: "long@example.com", Password: strings.Repeat("a", 80), BusinessName: "x",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/v1/auth/signup", models.SignupRequest{
		Name: "Wide", Email: "wide@example.com", Password: strings.Repeat("ك", 40), BusinessName: "x",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decode(t, w, nil)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Equal(t, "password", env.Error.Field)
}

func TestCatalogAdmin(t *testing.T) {
	s := newTestServer(t)
	_, auth := s.signup("admin@example.com")

	var cats []models.CategoryView
	w := s.do(http.MethodGet, "/api/v1/categories", nil, auth)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &cats)
	require.Len(t, cats, 6, "signup seeds the template catalog")

	var created models.CategoryView
	w = s.do(http.MethodPost, "/api/v1/categories", models.CategoryInput{
		Name: models.LocalizedText{En: "Gifts", Ar: "هدايا"},
	}, auth)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	decode(t, w, &created)
	assert.Equal(t, "هدايا", created.Name.Ar)

	w = s.do(http.MethodPost, "/api/v1/products", models.ProductInput{
		Name: models.LocalizedText{En: "Mug"}, Price: -5, Category: created.ID, SubCategory: "missing",
	}, auth)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decode(t, w, nil)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	w = s.do(http.MethodPut, "/api/v1/categories/nope", models.CategoryPatch{}, auth)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "CATEGORY_NOT_FOUND", decode(t, w, nil).Error.Code)

	var subs []models.SubCategoryView
	w = s.do(http.MethodGet, "/api/v1/subcategories?categoryId="+cats[0].ID, nil, auth)
	decode(t, w, &subs)
	assert.Len(t, subs, 4)

	var products []models.ProductView
	w = s.do(http.MethodGet, "/api/v1/products?category="+cats[0].ID, nil, auth)
	decode(t, w, &products)
	assert.Len(t, products, 8)

	var deleted models.DeleteResponse
	w = s.do(http.MethodDelete, "/api/v1/categories/"+cats[0].ID, nil, auth)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &deleted)
	assert.Equal(t, 4, deleted.RemovedSubCategoryCount)
	assert.Equal(t, 8, deleted.RemovedProductCount)
}

func TestStorefront(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/v1/storefront/categories", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "MERCHANT_REQUIRED", decode(t, w, nil).Error.Code)

	w = s.do(http.MethodGet, "/api/v1/storefront/categories", nil, map[string]string{middleware.MerchantHeader: "ghost"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	id, auth := s.signup("store@example.com")
	shop := map[string]string{middleware.MerchantHeader: id, "Accept-Language": "ar-SA,ar;q=0.9"}

	var cats []models.StorefrontCategory
	w = s.do(http.MethodGet, "/api/v1/storefront/categories", nil, shop)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &cats)
	require.Len(t, cats, 6)
	assert.Equal(t, "الملابس الرجالية", cats[0].Name)

	var products []models.StorefrontProduct
	w = s.do(http.MethodGet, "/api/v1/storefront/categories/"+cats[0].ID+"/products?lang=en", nil, shop)
	decode(t, w, &products)
	require.Len(t, products, 8)
	assert.True(t, strings.HasPrefix(products[0].FormattedPrice, "$"), products[0].FormattedPrice)

	w = s.do(http.MethodGet, "/api/v1/storefront/products/"+products[0].ID, nil, shop)
	assert.Equal(t, http.StatusOK, w.Code)

	inactive := false
	w = s.do(http.MethodPut, "/api/v1/categories/"+cats[0].ID, models.CategoryPatch{IsActive: &inactive}, auth)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/v1/storefront/categories/"+cats[0].ID+"/subcategories", nil, shop)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = s.do(http.MethodGet, "/api/v1/storefront/categories", nil, shop)
	decode(t, w, &cats)
	assert.Len(t, cats, 5)
}

func TestCart(t *testing.T) {
	s := newTestServer(t)
	id, _ := s.signup("cart@example.com")
	shop := map[string]string{middleware.MerchantHeader: id, "Accept-Language": "en"}

	var cats []models.StorefrontCategory
	decode(t, s.do(http.MethodGet, "/api/v1/storefront/categories", nil, shop), &cats)
	var products []models.StorefrontProduct
	decode(t, s.do(http.MethodGet, "/api/v1/storefront/categories/"+cats[0].ID+"/products", nil, shop), &products)
	p := products[0]

	add := models.AddCartItemRequest{ProductID: p.ID, Size: p.Sizes[0], Color: p.Colors[0]}
	w := s.do(http.MethodPost, "/api/v1/storefront/cart/items", add, shop)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	session := w.Header().Get(middleware.CartSessionHeader)
	require.NotEmpty(t, session, "a cart session is issued")
	shop[middleware.CartSessionHeader] = session

	add.Quantity = 2
	var resp models.CartResponse
	w = s.do(http.MethodPost, "/api/v1/storefront/cart/items", add, shop)
	decode(t, w, &resp)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 3, resp.ItemCount)
	assert.InDelta(t, 3*p.Price, resp.Subtotal, 0.001)
	assert.InDelta(t, resp.Subtotal+resp.Tax, resp.Total, 0.001)
	assert.Equal(t, 0.08, resp.TaxRate)

	add.Quantity = cart.MaxQuantity
	w = s.do(http.MethodPost, "/api/v1/storefront/cart/items", add, shop)
	assert.Equal(t, "QUANTITY_LIMIT", decode(t, w, nil).Error.Code)
	add.Quantity = 2

	bad := add
	bad.Size = "XXXXL"
	w = s.do(http.MethodPost, "/api/v1/storefront/cart/items", bad, shop)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	bad = add
	bad.Quantity = -1
	w = s.do(http.MethodPost, "/api/v1/storefront/cart/items", bad, shop)
	assert.Equal(t, "INVALID_QUANTITY", decode(t, w, nil).Error.Code)

	update := models.UpdateCartItemRequest{ProductID: p.ID, Size: add.Size, Color: add.Color, Quantity: 0}
	w = s.do(http.MethodPut, "/api/v1/storefront/cart/items", update, shop)
	decode(t, w, &resp)
	assert.Empty(t, resp.Items)

	w = s.do(http.MethodDelete, "/api/v1/storefront/cart/items", models.RemoveCartItemRequest{ProductID: p.ID, Size: add.Size, Color: add.Color}, shop)
	assert.Equal(t, http.StatusNotFound, w.Code)

	other := map[string]string{middleware.MerchantHeader: id, middleware.CartSessionHeader: "someone-else"}
	w = s.do(http.MethodGet, "/api/v1/storefront/cart", nil, other)
	decode(t, w, &resp)
	assert.Zero(t, resp.ItemCount)

	unknown := map[string]string{middleware.MerchantHeader: "no-such-merchant", middleware.CartSessionHeader: "v"}
	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		w = s.do(method, "/api/v1/storefront/cart", nil, unknown)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "STORE_NOT_FOUND", decode(t, w, nil).Error.Code)
	}
}

func TestCartSummaryFormatting(t *testing.T) {
	s := newTestServer(t)
	id, _ := s.signup("summary@example.com")
	shop := map[string]string{middleware.MerchantHeader: id, middleware.CartSessionHeader: "summary-visitor", "Accept-Language": "en"}

	var cats []models.StorefrontCategory
	decode(t, s.do(http.MethodGet, "/api/v1/storefront/categories", nil, shop), &cats)
	var products []models.StorefrontProduct
	decode(t, s.do(http.MethodGet, "/api/v1/storefront/categories/"+cats[0].ID+"/products", nil, shop), &products)
	tee := products[0]
	require.Equal(t, 24.99, tee.Price)

	var resp models.CartResponse
	w := s.do(http.MethodPost, "/api/v1/storefront/cart/items", models.AddCartItemRequest{
		ProductID: tee.ID, Size: tee.Sizes[0], Color: tee.Colors[0], Quantity: 5,
	}, shop)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decode(t, w, &resp)

	assert.Equal(t, 124.95, resp.Subtotal)
	assert.Equal(t, "$124.95", resp.FormattedSubtotal)
	assert.Equal(t, "$10.00", resp.FormattedTax)
	assert.Equal(t, "$134.95", resp.FormattedTotal)

	shop["Accept-Language"] = "ar"
	decode(t, s.do(http.MethodGet, "/api/v1/storefront/cart", nil, shop), &resp)
	assert.Equal(t, "١٣٤.٩٥ ريال", resp.FormattedTotal)

	w = s.do(http.MethodPost, "/api/v1/storefront/cart/items", models.AddCartItemRequest{
		ProductID: tee.ID, Size: tee.Sizes[0], Color: tee.Colors[0], Quantity: 1 << 62,
	}, shop)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	decode(t, s.do(http.MethodGet, "/api/v1/storefront/cart", nil, shop), &resp)
	assert.Equal(t, 5, resp.ItemCount)
}

func TestVoice(t *testing.T) {
	s := newTestServer(t)
	id, _ := s.signup("voice@example.com")
	shop := map[string]string{middleware.MerchantHeader: id, middleware.CartSessionHeader: "visitor-1"}

	w := s.do(http.MethodPost, "/api/v1/storefront/voice/refresh", nil, shop)
	assert.Equal(t, http.StatusConflict, w.Code)

	var resp VoiceResponse
	w = s.do(http.MethodPost, "/api/v1/storefront/voice/start", StartVoiceRequest{Locale: "ar"}, shop)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decode(t, w, &resp)
	require.NotNil(t, resp.Start)
	assert.True(t, resp.Status.Active)
	assert.Equal(t, translation.Arabic, resp.Status.Locale)
	assert.True(t, resp.Status.Demo)
	assert.Contains(t, resp.Start.Params[voice.MenuParam], "categoryId:")
	assert.Len(t, resp.Start.Tools, 2)

	var status voice.Status
	decode(t, s.do(http.MethodGet, "/api/v1/storefront/voice/status", nil, shop), &status)
	assert.Equal(t, "active", status.State)

	w = s.do(http.MethodPost, "/api/v1/storefront/voice/refresh", nil, shop)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodPost, "/api/v1/storefront/voice/stop", nil, shop)
	decode(t, w, &resp)
	assert.False(t, resp.Status.Active)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/storefront/voice/status/stream", nil).WithContext(ctx)
	req.Header.Set(middleware.MerchantHeader, id)
	req.Header.Set(middleware.CartSessionHeader, "visitor-1")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	assert.Contains(t, rec.Body.String(), "event:status")
	assert.Contains(t, rec.Body.String(), `"state":"inactive"`)

	ctx2, cancel2 := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel2()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/storefront/voice/status/stream", nil).WithContext(ctx2)
	req.Header.Set(middleware.MerchantHeader, id)
	req.Header.Set(middleware.CartSessionHeader, "never-started")
	rec = httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	assert.Contains(t, rec.Body.String(), `"state":"inactive"`)
	w = s.do(http.MethodPost, "/api/v1/storefront/voice/refresh", nil,
		map[string]string{middleware.MerchantHeader: id, middleware.CartSessionHeader: "never-started"})
	assert.Equal(t, http.StatusConflict, w.Code, "streaming status does not open a session")

	w = s.do(http.MethodGet, "/api/v1/storefront/voice/status/stream", nil,
		map[string]string{middleware.MerchantHeader: "no-such-merchant"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "STORE_NOT_FOUND", decode(t, w, nil).Error.Code)
}

func TestWidget(t *testing.T) {
	s := newTestServer(t)
	id, auth := s.signup("widget@example.com")

	var cfg widget.Config
	decode(t, s.do(http.MethodGet, "/api/v1/widget", nil, auth), &cfg)
	assert.Equal(t, widget.DefaultConfig(), cfg)

	bad := widget.DefaultConfig()
	bad.PrimaryColor = "purple"
	w := s.do(http.MethodPut, "/api/v1/widget", bad, auth)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "primaryColor", decode(t, w, nil).Error.Field)

	good := widget.DefaultConfig()
	good.Theme = "dark"
	good.Language = "en"
	require.Equal(t, http.StatusOK, s.do(http.MethodPut, "/api/v1/widget", good, auth).Code)

	var snippet SnippetResponse
	decode(t, s.do(http.MethodGet, "/api/v1/widget/snippet", nil, auth), &snippet)
	assert.Equal(t, "dark", snippet.Config.Theme)
	assert.Contains(t, snippet.Snippet, id)
	assert.Contains(t, snippet.Snippet, widget.DefaultScriptURL)
}

func TestCatalogExport(t *testing.T) {
	s := newTestServer(t)
	_, auth := s.signup("export@example.com")

	w := s.do(http.MethodGet, "/api/v1/catalog/export", nil, auth)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Categories", "SubCategories", "Products"}, f.GetSheetList())

	rows, err := f.GetRows("Categories")
	require.NoError(t, err)
	assert.Len(t, rows, 7, "header plus six categories")
	assert.Equal(t, "Men's Apparel", rows[1][1])
}

func TestProductImport(t *testing.T) {
	s := newTestServer(t)
	_, auth := s.signup("import@example.com")

	var subs []models.SubCategoryView
	decode(t, s.do(http.MethodGet, "/api/v1/subcategories", nil, auth), &subs)
	sub := subs[0]

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", "Products")
	rows := [][]interface{}{
		{"name *", "nameAr", "price *", "category *", "subCategory *", "sizes"},
		{"Linen Shirt", "قميص كتان", "45", "Men's Apparel", sub.ID, "S, M"},
		{"Broken", "", "abc", "Men's Apparel", sub.ID, ""},
		{"Nowhere", "", "10", "No Such Category", sub.ID, ""},
	}
	for r, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, r+1)
		require.NoError(t, f.SetSheetRow("Products", cell, &row))
	}
	var file bytes.Buffer
	require.NoError(t, f.Write(&file))

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "products.xlsx")
	require.NoError(t, err)
	_, err = part.Write(file.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", auth["Authorization"])
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result ImportResult
	decode(t, w, &result)
	assert.Equal(t, 3, result.TotalRows)
	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 2, result.FailedCount)
	require.Len(t, result.CreatedIDs, 1)

	var products []models.ProductView
	decode(t, s.do(http.MethodGet, "/api/v1/products?subCategory="+sub.ID, nil, auth), &products)
	var found bool
	for _, p := range products {
		if p.ID == result.CreatedIDs[0] {
			found = true
			assert.Equal(t, "قميص كتان", p.LocalizedName.Ar)
			assert.Equal(t, []string{"S", "M"}, p.Sizes)
		}
	}
	assert.True(t, found)
}

func (s *testServer) upload(path, filename string, content []byte, fields, headers map[string]string) *httptest.ResponseRecorder {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(s.t, err)
	_, err = part.Write(content)
	require.NoError(s.t, err)
	for k, v := range fields {
		require.NoError(s.t, mw.WriteField(k, v))
	}
	require.NoError(s.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func TestProductImportRejectsWhatCreateRejects(t *testing.T) {
	s := newTestServer(t)
	_, auth := s.signup("dryrun@example.com")

	var cats []models.CategoryView
	decode(t, s.do(http.MethodGet, "/api/v1/categories", nil, auth), &cats)
	var mensID string
	for _, cat := range cats {
		if cat.Name.En == "Men's Apparel" {
			mensID = cat.ID
		}
	}
	require.NotEmpty(t, mensID)
	var mensSubs []models.SubCategoryView
	decode(t, s.do(http.MethodGet, "/api/v1/subcategories?categoryId="+mensID, nil, auth), &mensSubs)
	require.NotEmpty(t, mensSubs)
	sub := mensSubs[0].ID

	csvFile := strings.Join([]string{
		"name,price,category,subCategory",
		"Tee,12.5,Men's Apparel," + sub,
		"Ghost,NaN,Men's Apparel," + sub,
		"Endless,Inf,Men's Apparel," + sub,
		"Misplaced,10,Women's Apparel," + sub,
	}, "\n")

	var before []models.ProductView
	decode(t, s.do(http.MethodGet, "/api/v1/products", nil, auth), &before)

	for _, validateOnly := range []string{"true", "false"} {
		t.Run("validateOnly="+validateOnly, func(t *testing.T) {
			w := s.upload("/api/v1/catalog/import", "products.csv", []byte(csvFile),
				map[string]string{"validateOnly": validateOnly}, auth)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			var result ImportResult
			decode(t, w, &result)
			assert.Equal(t, 1, result.SuccessCount)
			assert.Equal(t, 3, result.FailedCount)
			require.Len(t, result.Errors, 3)
			assert.Equal(t, "price", result.Errors[0].Column)
			assert.Equal(t, "price", result.Errors[1].Column)
			assert.Equal(t, "subCategory", result.Errors[2].Column)
			assert.Equal(t, "VALIDATION_ERROR", result.Errors[2].Code)
		})
	}

	w := s.do(http.MethodGet, "/api/v1/products", nil, auth)
	require.Equal(t, http.StatusOK, w.Code)
	var after []models.ProductView
	decode(t, w, &after)
	assert.Len(t, after, len(before)+1, "only the real import writes")
}

func TestImportTemplate(t *testing.T) {
	s := newTestServer(t)
	_, auth := s.signup("template@example.com")

	var template ImportTemplate
	decode(t, s.do(http.MethodGet, "/api/v1/catalog/import/template", nil, auth), &template)
	assert.Equal(t, "products", template.Entity)

	w := s.do(http.MethodGet, "/api/v1/catalog/import/template?format=csv", nil, auth)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "name,nameAr")
}
