package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/internal/ports"
	"github.com/Gunvolt24/wb_cart/pkg/metrics"
)

// Проверка, что CartStore удовлетворяет интерфейсу CartService.
var _ ports.CartService = (*CartStore)(nil)

const (
	DefaultSlotKey       = "@RocketShoes:cart"
	defaultLookupTimeout = 3 * time.Second
)

// CartStoreOptions — параметры CartStore.
type CartStoreOptions struct {
	SlotKey       string        // имя слота с корзиной
	LookupTimeout time.Duration // лимит на каждый внешний вызов (остатки, каталог, слот)
	StrictUpdate  bool          // UpdateProductAmount по отсутствующему товару → ErrNotFound вместо no-op
}

// CartStore — корзина в памяти, сверка с остатками и синхронизация с долговременным слотом.
// Операции сериализуются мьютексом: одна операция за раз, включая ожидание внешних вызовов.
type CartStore struct {
	stock     ports.StockOracle
	catalog   ports.ProductCatalog
	slot      ports.CartSlot
	validator ports.CartValidator
	log       ports.Logger

	slotKey       string
	lookupTimeout time.Duration
	strictUpdate  bool

	mu   sync.Mutex
	cart domain.Cart
}

// NewCartStore — DI-конструктор. Корзина пуста до вызова Load.
func NewCartStore(
	stock ports.StockOracle,
	catalog ports.ProductCatalog,
	slot ports.CartSlot,
	validator ports.CartValidator,
	log ports.Logger,
	opts CartStoreOptions,
) *CartStore {
	if opts.SlotKey == "" {
		opts.SlotKey = DefaultSlotKey
	}
	if opts.LookupTimeout <= 0 {
		opts.LookupTimeout = defaultLookupTimeout
	}
	return &CartStore{
		stock:         stock,
		catalog:       catalog,
		slot:          slot,
		validator:     validator,
		log:           log,
		slotKey:       opts.SlotKey,
		lookupTimeout: opts.LookupTimeout,
		strictUpdate:  opts.StrictUpdate,
		cart:          domain.Cart{},
	}
}

// Load — читает корзину из слота. Пустой, недоступный или битый слот → пустая корзина.
// Ошибкой не завершается никогда.
func (s *CartStore) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart = domain.Cart{}
	defer func() { metrics.CartEntries.Set(float64(len(s.cart))) }()

	slotCtx, cancel := s.bounded(ctx)
	raw, found, err := s.slot.Get(slotCtx, s.slotKey)
	cancel()
	if err != nil {
		s.log.Warnf(ctx, "cart slot read failed key=%s err=%v (starting empty)", s.slotKey, err)
		return
	}
	if !found || len(bytes.TrimSpace(raw)) == 0 {
		s.log.Infof(ctx, "cart slot empty key=%s", s.slotKey)
		return
	}

	cart, err := decodeCart(raw)
	if err != nil {
		s.log.Warnf(ctx, "cart slot malformed key=%s err=%v (starting empty)", s.slotKey, err)
		return
	}
	if err := s.validator.Validate(ctx, cart); err != nil {
		s.log.Warnf(ctx, "cart slot invalid key=%s err=%v (starting empty)", s.slotKey, err)
		return
	}

	s.cart = cart
	s.log.Infof(ctx, "cart loaded key=%s entries=%d", s.slotKey, len(cart))
}

// Cart — снимок корзины только для чтения.
func (s *CartStore) Cart(_ context.Context) domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Clone()
}

// AddProduct — увеличить количество товара на 1 (или добавить позицию с amount=1).
// Шаги:
//  1. запрос остатка;
//  2. проверка current+1 <= остаток, иначе ErrStockExceeded;
//  3. для нового товара — запрос атрибутов в каталоге;
//  4. запись корзины в слот и только затем замена состояния в памяти.
func (s *CartStore) AddProduct(ctx context.Context, productID int) error {
	const op = "add"

	s.mu.Lock()
	defer s.mu.Unlock()

	stock, err := s.lookupStock(ctx, productID)
	if err != nil {
		s.log.Warnf(ctx, "add: stock lookup failed product_id=%d err=%v", productID, err)
		return s.fail(op, fmt.Errorf("%w: stock lookup product_id=%d: %w", ErrAddFailed, productID, err))
	}

	idx := s.cart.IndexOf(productID)
	candidate := s.cart.AmountOf(productID) + 1
	if candidate > stock.Amount {
		s.log.Infof(ctx, "add: out of stock product_id=%d requested=%d available=%d", productID, candidate, stock.Amount)
		return s.fail(op, fmt.Errorf("%w: product_id=%d requested=%d available=%d",
			ErrStockExceeded, productID, candidate, stock.Amount))
	}

	next := s.cart.Clone()
	if idx >= 0 {
		next[idx].Amount = candidate
	} else {
		product, pErr := s.lookupProduct(ctx, productID)
		if pErr != nil {
			s.log.Warnf(ctx, "add: catalog lookup failed product_id=%d err=%v", productID, pErr)
			return s.fail(op, fmt.Errorf("%w: catalog lookup product_id=%d: %w", ErrAddFailed, productID, pErr))
		}
		// Ключ позиции — запрошенный ID, даже если каталог вернул другое значение.
		product.ID = productID
		next = append(next, domain.CartEntry{Product: product, Amount: candidate})
	}

	if err := s.commit(ctx, next); err != nil {
		return s.fail(op, fmt.Errorf("%w: %w", ErrAddFailed, err))
	}

	metrics.CartOperations.WithLabelValues(op, "ok").Inc()
	s.log.Infof(ctx, "add: product_id=%d amount=%d", productID, candidate)
	return nil
}

// RemoveProduct — удалить позицию; порядок остальных сохраняется.
// Отсутствующий товар → ErrNotFound (обёрнут в ErrRemoveFailed).
func (s *CartStore) RemoveProduct(ctx context.Context, productID int) error {
	const op = "remove"

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cart.IndexOf(productID) < 0 {
		s.log.Infof(ctx, "remove: product_id=%d not in cart", productID)
		return s.fail(op, fmt.Errorf("%w: product_id=%d: %w", ErrRemoveFailed, productID, ErrNotFound))
	}

	if err := s.commit(ctx, s.cart.Without(productID)); err != nil {
		return s.fail(op, fmt.Errorf("%w: %w", ErrRemoveFailed, err))
	}

	metrics.CartOperations.WithLabelValues(op, "ok").Inc()
	s.log.Infof(ctx, "remove: product_id=%d", productID)
	return nil
}

// UpdateProductAmount — выставить количество товара.
// amount <= 0 — молча игнорируется (без ошибки и без записи в слот).
// Товар не в корзине — no-op, либо ErrNotFound при StrictUpdate.
func (s *CartStore) UpdateProductAmount(ctx context.Context, productID, amount int) error {
	const op = "update"

	if amount <= 0 {
		metrics.CartOperations.WithLabelValues(op, "noop").Inc()
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stock, err := s.lookupStock(ctx, productID)
	if err != nil {
		s.log.Warnf(ctx, "update: stock lookup failed product_id=%d err=%v", productID, err)
		return s.fail(op, fmt.Errorf("%w: stock lookup product_id=%d: %w", ErrUpdateFailed, productID, err))
	}
	if amount > stock.Amount {
		s.log.Infof(ctx, "update: out of stock product_id=%d requested=%d available=%d", productID, amount, stock.Amount)
		return s.fail(op, fmt.Errorf("%w: product_id=%d requested=%d available=%d",
			ErrStockExceeded, productID, amount, stock.Amount))
	}

	idx := s.cart.IndexOf(productID)
	if idx < 0 {
		if s.strictUpdate {
			return s.fail(op, fmt.Errorf("%w: product_id=%d: %w", ErrUpdateFailed, productID, ErrNotFound))
		}
		metrics.CartOperations.WithLabelValues(op, "noop").Inc()
		return nil
	}
	next := s.cart.Clone()
	next[idx].Amount = amount
	if err := s.commit(ctx, next); err != nil {
		return s.fail(op, fmt.Errorf("%w: %w", ErrUpdateFailed, err))
	}

	metrics.CartOperations.WithLabelValues(op, "ok").Inc()
	s.log.Infof(ctx, "update: product_id=%d amount=%d", productID, amount)
	return nil
}

// ------вспомогательные функции------

// commit — записывает next в слот целиком; состояние в памяти меняется только после успешной записи.
func (s *CartStore) commit(ctx context.Context, next domain.Cart) error {
	raw, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("%w: encode: %w", ErrPersistFailed, err)
	}

	slotCtx, cancel := s.bounded(ctx)
	defer cancel()

	if err := s.slot.Set(slotCtx, s.slotKey, raw); err != nil {
		metrics.SlotWrites.WithLabelValues("error").Inc()
		s.log.Errorf(ctx, "cart slot write failed key=%s err=%v", s.slotKey, err)
		return fmt.Errorf("%w: %w", ErrPersistFailed, err)
	}
	metrics.SlotWrites.WithLabelValues("ok").Inc()

	s.cart = next
	metrics.CartEntries.Set(float64(len(next)))
	return nil
}

func (s *CartStore) lookupStock(ctx context.Context, productID int) (domain.Stock, error) {
	lookupCtx, cancel := s.bounded(ctx)
	defer cancel()

	start := time.Now()
	stock, err := s.stock.GetStock(lookupCtx, productID)
	metrics.LookupDuration.WithLabelValues("stock").Observe(time.Since(start).Seconds())
	return stock, err
}

func (s *CartStore) lookupProduct(ctx context.Context, productID int) (domain.Product, error) {
	lookupCtx, cancel := s.bounded(ctx)
	defer cancel()

	start := time.Now()
	product, err := s.catalog.GetProduct(lookupCtx, productID)
	metrics.LookupDuration.WithLabelValues("catalog").Observe(time.Since(start).Seconds())
	return product, err
}

// bounded — контекст внешнего вызова: отмена вызывающей стороны не прерывает операцию,
// ограничивает только lookupTimeout.
func (s *CartStore) bounded(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), s.lookupTimeout)
}

// fail — учёт результата операции в метриках.
func (s *CartStore) fail(op string, err error) error {
	result := "failed"
	switch {
	case errors.Is(err, ErrStockExceeded):
		result = "stock_exceeded"
	case errors.Is(err, ErrNotFound):
		result = "not_found"
	}
	metrics.CartOperations.WithLabelValues(op, result).Inc()
	return err
}

// decodeCart — разбор сериализованной корзины; данные после JSON-массива запрещены.
func decodeCart(raw []byte) (domain.Cart, error) {
	var cart domain.Cart
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&cart); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	if err := dec.Decode(new(struct{})); err != io.EOF {
		return nil, errors.New("invalid json: trailing data")
	}
	if cart == nil {
		cart = domain.Cart{}
	}
	return cart, nil
}
