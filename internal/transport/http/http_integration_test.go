//go:build integration

package rest_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	cachemem "github.com/Gunvolt24/wb_cart/internal/cache/memory"
	"github.com/Gunvolt24/wb_cart/internal/client/inventory"
	"github.com/Gunvolt24/wb_cart/internal/domain"
	pgslot "github.com/Gunvolt24/wb_cart/internal/slot/postgres"
	"github.com/Gunvolt24/wb_cart/internal/testutil"
	rest "github.com/Gunvolt24/wb_cart/internal/transport/http"
	"github.com/Gunvolt24/wb_cart/internal/usecase"
	"github.com/Gunvolt24/wb_cart/pkg/logger"
	"github.com/Gunvolt24/wb_cart/pkg/validate"
)

// Полный стек: HTTP → CartStore → API магазина (фейк) + слот в Postgres.
func TestHTTP_CartLifecycle_TC(t *testing.T) {
	ctxStart, cancelStart := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancelStart()

	pg, stop, err := testutil.StartPostgresTC(ctxStart)
	require.NoError(t, err)
	defer func() { _ = stop(context.Background()) }()

	ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
	defer cancel()

	logg, cleanup, err := logger.NewZapLogger(false)
	require.NoError(t, err)
	defer func() { _ = cleanup() }()

	inv := testutil.NewInventoryServer(t, map[int]int{1: 2, 2: 5})
	client, err := inventory.NewClient(inventory.Config{BaseURL: inv.URL, Timeout: 2 * time.Second}, logg)
	require.NoError(t, err)
	catalog := cachemem.NewCachedCatalog(client, cachemem.NewProductCache(100, time.Minute))

	slot := pgslot.NewCartSlot(pg.Pool)
	newStore := func() *usecase.CartStore {
		s := usecase.NewCartStore(client, catalog, slot, validate.NewCartValidator(), logg, usecase.CartStoreOptions{})
		s.Load(ctx)
		return s
	}

	ts := httptest.NewServer(rest.NewRouter(rest.NewHandler(newStore(), logg, 2*time.Second), "", ""))
	defer ts.Close()

	// add 1 ×2, третий — 409
	require.Equal(t, http.StatusOK, do(t, http.MethodPost, ts.URL+"/cart/items/1", "").StatusCode)
	require.Equal(t, http.StatusOK, do(t, http.MethodPost, ts.URL+"/cart/items/1", "").StatusCode)
	resp := do(t, http.MethodPost, ts.URL+"/cart/items/1", "")
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	require.Equal(t, "Requested quantity out of stock", decodeError(t, resp))

	// add 2, update 2 → 4
	require.Equal(t, http.StatusOK, do(t, http.MethodPost, ts.URL+"/cart/items/2", "").StatusCode)
	require.Equal(t, http.StatusOK, do(t, http.MethodPut, ts.URL+"/cart/items/2", `{"amount":4}`).StatusCode)

	// remove 1, повторный remove — 404
	require.Equal(t, http.StatusOK, do(t, http.MethodDelete, ts.URL+"/cart/items/1", "").StatusCode)
	resp = do(t, http.MethodDelete, ts.URL+"/cart/items/1", "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, "Error removing product", decodeError(t, resp))

	// неизвестный товар — 502
	require.Equal(t, http.StatusBadGateway, do(t, http.MethodPost, ts.URL+"/cart/items/77", "").StatusCode)

	resp = do(t, http.MethodGet, ts.URL+"/cart", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cart domain.Cart
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&cart))
	require.Len(t, cart, 1)
	require.Equal(t, 2, cart[0].ID)
	require.Equal(t, 4, cart[0].Amount)
	require.Equal(t, "Tênis 2", cart[0].Title)

	// Новый экземпляр читает ту же корзину из слота
	require.Equal(t, cart, newStore().Cart(ctx))

	// Каталог запрошен по одному разу на товар (1 и 2; 77 не найден)
	require.LessOrEqual(t, inv.ProductCalls.Load(), int64(2))
}

// /ping, /metrics, 404 и 405
func TestHTTP_Health_Metrics_And_Errors_TC(t *testing.T) {
	logg, cleanup, err := logger.NewZapLogger(false)
	require.NoError(t, err)
	defer func() { _ = cleanup() }()

	ts := httptest.NewServer(rest.NewRouter(rest.NewHandler(emptyService{}, logg, time.Second), "", ""))
	defer ts.Close()

	resp := do(t, http.MethodGet, ts.URL+"/ping", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "pong", string(readAll(t, resp.Body)))

	resp = do(t, http.MethodGet, ts.URL+"/metrics", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, readAll(t, resp.Body))

	resp = do(t, http.MethodGet, ts.URL+"/no/such/route", "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, "route not found", decodeError(t, resp))

	resp = do(t, http.MethodPatch, ts.URL+"/cart/items/1", "")
	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	require.Equal(t, "method not allowed", decodeError(t, resp))
}

// --- функции помощники ---

// emptyService — заглушка для маршрутов, где бизнес-логика не важна.
type emptyService struct{}

func (emptyService) Cart(context.Context) domain.Cart                    { return domain.Cart{} }
func (emptyService) AddProduct(context.Context, int) error               { return nil }
func (emptyService) RemoveProduct(context.Context, int) error            { return nil }
func (emptyService) UpdateProductAmount(context.Context, int, int) error { return nil }

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	var rdr io.Reader = http.NoBody
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, rdr)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeError(t *testing.T, resp *http.Response) string {
	t.Helper()
	var got map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	return got["error"]
}

// readAll — просто прочитать тело.
func readAll(t *testing.T, r io.Reader) []byte {
	t.Helper()
	b, err := io.ReadAll(r)
	require.NoError(t, err)
	return b
}
