package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"pharmacy_pos_backend/internal/handlers"
	"pharmacy_pos_backend/internal/middleware"
	"pharmacy_pos_backend/internal/models"
	"pharmacy_pos_backend/internal/router"
	"pharmacy_pos_backend/internal/services"
	"pharmacy_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend implements the four service interfaces with just enough
// behavior to drive the HTTP surface: one seeded shop and an in-memory
// inventory map.
type fakeBackend struct {
	shops map[string]models.Shop
	items map[string]map[string]*models.InventoryItem
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		shops: map[string]models.Shop{
			"shop101": {ShopID: "shop101", Name: "City Pharmacy", Location: "https://goo.gl/maps/example"},
		},
		items: map[string]map[string]*models.InventoryItem{"shop101": {}},
	}
}

var _ services.AuthService = (*fakeBackend)(nil)
var _ services.InventoryService = (*fakeBackend)(nil)
var _ services.BillingService = (*fakeBackend)(nil)
var _ services.CatalogService = (*fakeBackend)(nil)

func (f *fakeBackend) RegisterShop(req services.RegisterShopRequest) (*models.Shop, error) {
	if _, exists := f.shops[req.ShopID]; exists {
		return nil, services.ErrShopIDExists
	}
	shop := models.Shop{ShopID: req.ShopID, Name: req.Name, Location: req.Location}
	f.shops[req.ShopID] = shop
	f.items[req.ShopID] = map[string]*models.InventoryItem{}
	return &shop, nil
}

func (f *fakeBackend) Login(req services.LoginRequest) (*services.AuthResponse, error) {
	shop, exists := f.shops[req.ShopID]
	if !exists || req.Password != "1234" {
		return nil, services.ErrInvalidCredentials
	}
	token, err := utils.GenerateSessionToken(shop.ShopID)
	if err != nil {
		return nil, err
	}
	return &services.AuthResponse{Shop: &shop, SessionToken: token}, nil
}

func (f *fakeBackend) GetShop(shopID string) (*models.Shop, error) {
	shop, exists := f.shops[shopID]
	if !exists {
		return nil, services.ErrShopNotFound
	}
	return &shop, nil
}

func (f *fakeBackend) DeleteShop(shopID string) error {
	if _, exists := f.shops[shopID]; !exists {
		return services.ErrShopNotFound
	}
	delete(f.shops, shopID)
	delete(f.items, shopID)
	return nil
}

func (f *fakeBackend) AddItem(shopID, medName string, stockCount int, price float64) (*models.InventoryItem, error) {
	med := utils.NormalizeMedName(medName)
	if med == "" {
		return nil, services.ErrEmptyMedName
	}
	item := &models.InventoryItem{ShopID: shopID, MedName: med, StockCount: stockCount, Price: price}
	f.items[shopID][med] = item
	return item, nil
}

func (f *fakeBackend) SetStock(shopID, medName string, newCount int) error {
	if item, ok := f.items[shopID][utils.NormalizeMedName(medName)]; ok {
		item.StockCount = newCount
	}
	return nil
}

func (f *fakeBackend) SetPrice(shopID, medName string, newPrice float64) error {
	if item, ok := f.items[shopID][utils.NormalizeMedName(medName)]; ok {
		item.Price = newPrice
	}
	return nil
}

func (f *fakeBackend) adjust(shopID, medName string, delta int) error {
	med := utils.NormalizeMedName(medName)
	if med == "" {
		return services.ErrEmptyMedName
	}
	if item, ok := f.items[shopID][med]; ok {
		item.StockCount += delta
		if item.StockCount < 0 {
			item.StockCount = 0
		}
	}
	return nil
}

func (f *fakeBackend) IncrementStock(shopID, medName string) error { return f.adjust(shopID, medName, 1) }
func (f *fakeBackend) DecrementStock(shopID, medName string) error { return f.adjust(shopID, medName, -1) }

func (f *fakeBackend) DeleteItem(shopID, medName string) error {
	delete(f.items[shopID], utils.NormalizeMedName(medName))
	return nil
}

func (f *fakeBackend) ListItems(shopID string) ([]models.InventoryItem, error) {
	items := []models.InventoryItem{}
	for _, item := range f.items[shopID] {
		items = append(items, *item)
	}
	return items, nil
}

func (f *fakeBackend) AvailableItems(shopID string) ([]models.InventoryItem, error) {
	items := []models.InventoryItem{}
	for _, item := range f.items[shopID] {
		if item.StockCount > 0 {
			items = append(items, *item)
		}
	}
	return items, nil
}

func (f *fakeBackend) ApplyBill(shopID string, lines []services.BillLine) error {
	for _, line := range lines {
		if utils.NormalizeMedName(line.MedName) == "" || line.Quantity <= 0 {
			continue
		}
		if err := f.adjust(shopID, line.MedName, -line.Quantity); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeBackend) Search(query string) (*services.SearchResult, error) {
	result := &services.SearchResult{Results: []models.CatalogEntry{}, AllMeds: []string{}}
	for _, items := range f.items {
		for name := range items {
			result.AllMeds = append(result.AllMeds, name)
		}
	}
	q := utils.NormalizeMedName(query)
	if q == "" {
		return result, nil
	}
	for shopID, items := range f.items {
		shop := f.shops[shopID]
		for _, item := range items {
			if strings.Contains(item.MedName, q) {
				result.Results = append(result.Results, models.CatalogEntry{
					ShopName: shop.Name, MedName: item.MedName,
					StockCount: item.StockCount, Location: shop.Location, Price: item.Price,
				})
			}
		}
	}
	return result, nil
}

func newTestRouter(backend *fakeBackend) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	authHandler := handlers.NewAuthHandler(backend)
	inventoryHandler := handlers.NewInventoryHandler(backend, backend)
	billingHandler := handlers.NewBillingHandler(backend, backend)
	catalogHandler := handlers.NewCatalogHandler(backend)

	router.SetupPublicRoutes(engine, catalogHandler, authHandler)
	router.SetupOwnerRoutes(engine, inventoryHandler, billingHandler, authHandler)
	return engine
}

func sessionCookie(t *testing.T, shopID string) *http.Cookie {
	t.Helper()
	token, err := utils.GenerateSessionToken(shopID)
	require.NoError(t, err)
	return &http.Cookie{Name: middleware.SessionCookieName, Value: token}
}

func doForm(engine *gin.Engine, method, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func doGet(engine *gin.Engine, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestOwnerRoutesRedirectWithoutSession(t *testing.T) {
	engine := newTestRouter(newFakeBackend())

	for _, path := range []string{
		"/dashboard", "/inventory_list", "/billing",
		"/increase_stock_one/aspirin", "/decrease_stock_one/aspirin", "/delete_medicine/aspirin",
	} {
		w := doGet(engine, path, nil)
		assert.Equal(t, http.StatusSeeOther, w.Code, path)
		assert.Equal(t, "/login", w.Header().Get("Location"), path)
	}
}

func TestDeleteShopRecordReturns401WithoutSession(t *testing.T) {
	engine := newTestRouter(newFakeBackend())

	w := doGet(engine, "/delete_shop_record", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginSetsSessionCookie(t *testing.T) {
	engine := newTestRouter(newFakeBackend())

	w := doForm(engine, http.MethodPost, "/login", url.Values{
		"shop_id": {"shop101"}, "password": {"1234"},
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var found bool
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == middleware.SessionCookieName && cookie.Value != "" {
			found = true
		}
	}
	assert.True(t, found, "expected session cookie to be set")
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	engine := newTestRouter(newFakeBackend())

	w := doForm(engine, http.MethodPost, "/login", url.Values{
		"shop_id": {"shop101"}, "password": {"wrong"},
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterDuplicateConflict(t *testing.T) {
	engine := newTestRouter(newFakeBackend())

	w := doForm(engine, http.MethodPost, "/register", url.Values{
		"shop_id": {"shop101"}, "name": {"Other"}, "location": {"x"}, "password": {"pw"},
	}, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already taken")
}

func TestDashboardWithSession(t *testing.T) {
	backend := newFakeBackend()
	engine := newTestRouter(backend)
	cookie := sessionCookie(t, "shop101")

	w := doForm(engine, http.MethodPost, "/dashboard", url.Values{
		"form_type": {"add"}, "med_name": {"Aspirin"}, "stock": {"50"}, "price": {"2.5"},
	}, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"shop_name":"City Pharmacy"`)
	assert.Contains(t, w.Body.String(), `"med_name":"aspirin"`)

	w = doGet(engine, "/dashboard", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"stock_count":50`)
}

func TestDashboardRejectsMalformedStock(t *testing.T) {
	engine := newTestRouter(newFakeBackend())
	cookie := sessionCookie(t, "shop101")

	w := doForm(engine, http.MethodPost, "/dashboard", url.Values{
		"form_type": {"add"}, "med_name": {"aspirin"}, "stock": {"not-a-number"},
	}, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), utils.ErrCodeValidationFailed)
}

func TestBillingFormDecrementsAndRedirects(t *testing.T) {
	backend := newFakeBackend()
	engine := newTestRouter(backend)
	cookie := sessionCookie(t, "shop101")

	_, err := backend.AddItem("shop101", "aspirin", 50, 2.5)
	require.NoError(t, err)

	w := doForm(engine, http.MethodPost, "/billing", url.Values{
		"med_name[]": {"aspirin"}, "quantity[]": {"60"},
	}, cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))

	assert.Equal(t, 0, backend.items["shop101"]["aspirin"].StockCount)
}

func TestStockShortcutsAdjustAndRedirect(t *testing.T) {
	backend := newFakeBackend()
	engine := newTestRouter(backend)
	cookie := sessionCookie(t, "shop101")

	_, err := backend.AddItem("shop101", "aspirin", 1, 2.5)
	require.NoError(t, err)

	w := doGet(engine, "/increase_stock_one/aspirin", cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, 2, backend.items["shop101"]["aspirin"].StockCount)

	doGet(engine, "/decrease_stock_one/aspirin", cookie)
	doGet(engine, "/decrease_stock_one/aspirin", cookie)
	w = doGet(engine, "/decrease_stock_one/aspirin", cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, 0, backend.items["shop101"]["aspirin"].StockCount)
}

func TestPublicSearchRoute(t *testing.T) {
	backend := newFakeBackend()
	engine := newTestRouter(backend)

	_, err := backend.AddItem("shop101", "aspirin", 50, 2.5)
	require.NoError(t, err)

	w := doGet(engine, "/?search=ASP", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"shop_name":"City Pharmacy"`)
	assert.Contains(t, w.Body.String(), `"med_name":"aspirin"`)

	w = doGet(engine, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"results":[]`)
	assert.Contains(t, w.Body.String(), `"all_meds":["aspirin"]`)
}

func TestDeleteShopRecordWithSession(t *testing.T) {
	backend := newFakeBackend()
	engine := newTestRouter(backend)
	cookie := sessionCookie(t, "shop101")

	w := doGet(engine, "/delete_shop_record", cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	_, exists := backend.shops["shop101"]
	assert.False(t, exists)
}
