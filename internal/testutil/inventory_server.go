package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

// InventoryServer — фейковое API магазина: GET /stock/{id} и GET /products/{id}.
// Неизвестный товар → 404; остатки и сбой API можно менять во время теста.
type InventoryServer struct {
	*httptest.Server

	mu       sync.Mutex
	stock    map[int]int
	failCode int

	Requests     atomic.Int64 // все запросы, включая ответы с ошибкой
	StockCalls   atomic.Int64
	ProductCalls atomic.Int64
}

// NewInventoryServer — сервер с начальными остатками; закрывается в t.Cleanup.
func NewInventoryServer(t testing.TB, stock map[int]int) *InventoryServer {
	t.Helper()

	s := &InventoryServer{stock: make(map[int]int, len(stock))}
	for id, n := range stock {
		s.stock[id] = n
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// SetStock — изменить остаток «снаружи».
func (s *InventoryServer) SetStock(productID, amount int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stock[productID] = amount
}

// FailWith — все запросы отвечают code; 0 возвращает штатную работу.
func (s *InventoryServer) FailWith(code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failCode = code
}

// MakeProduct — детерминированные атрибуты товара по ID.
func MakeProduct(id int) map[string]any {
	return map[string]any{
		"id":    id,
		"title": fmt.Sprintf("Tênis %d", id),
		"price": 100 + float64(id)/10,
		"image": fmt.Sprintf("https://rocketseat-cdn.s3-sa-east-1.amazonaws.com/modulo-redux/tenis%d.jpg", id),
	}
}

func (s *InventoryServer) serve(w http.ResponseWriter, r *http.Request) {
	s.Requests.Add(1)

	s.mu.Lock()
	failCode := s.failCode
	s.mu.Unlock()
	if failCode != 0 {
		w.WriteHeader(failCode)
		return
	}

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if r.Method != http.MethodGet || len(parts) != 2 {
		http.NotFound(w, r)
		return
	}
	id, err := strconv.Atoi(parts[1])
	if err != nil {
		http.NotFound(w, r)
		return
	}

	s.mu.Lock()
	amount, ok := s.stock[id]
	s.mu.Unlock()
	if !ok {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	switch parts[0] {
	case "stock":
		s.StockCalls.Add(1)
		_ = json.NewEncoder(w).Encode(map[string]int{"id": id, "amount": amount})
	case "products":
		s.ProductCalls.Add(1)
		_ = json.NewEncoder(w).Encode(MakeProduct(id))
	default:
		http.NotFound(w, r)
	}
}
