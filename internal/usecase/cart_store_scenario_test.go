package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/internal/slot/memory"
	"github.com/Gunvolt24/wb_cart/internal/usecase"
	"github.com/Gunvolt24/wb_cart/pkg/validate"
	"github.com/stretchr/testify/require"
)

// fakeInventory — остатки и каталог в памяти (остатки можно менять «снаружи»).
type fakeInventory struct {
	mu    sync.Mutex
	stock map[int]int
	calls int
}

func (f *fakeInventory) GetStock(_ context.Context, productID int) (domain.Stock, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	amount, ok := f.stock[productID]
	if !ok {
		return domain.Stock{}, fmt.Errorf("stock %d: not found", productID)
	}
	return domain.Stock{ProductID: productID, Amount: amount}, nil
}

func (f *fakeInventory) GetProduct(_ context.Context, productID int) (domain.Product, error) {
	return domain.Product{ID: productID, Title: fmt.Sprintf("product-%d", productID), Price: 10}, nil
}

func (f *fakeInventory) setStock(productID, amount int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stock[productID] = amount
}

func newScenarioStore(t *testing.T, stock map[int]int) (*usecase.CartStore, *memory.Slot, *fakeInventory) {
	t.Helper()
	inv := &fakeInventory{stock: stock}
	slot := memory.NewSlot()
	s := usecase.NewCartStore(inv, inv, slot, validate.NewCartValidator(), noopLogger{}, usecase.CartStoreOptions{})
	s.Load(context.Background())
	return s, slot, inv
}

// reload — корзина, прочитанная из слота новым CartStore.
func reload(t *testing.T, slot *memory.Slot, inv *fakeInventory) domain.Cart {
	t.Helper()
	s := usecase.NewCartStore(inv, inv, slot, validate.NewCartValidator(), noopLogger{}, usecase.CartStoreOptions{})
	s.Load(context.Background())
	return s.Cart(context.Background())
}

func slotBytes(t *testing.T, slot *memory.Slot) []byte {
	t.Helper()
	raw, _, err := slot.Get(context.Background(), slotKey)
	require.NoError(t, err)
	return raw
}

func TestScenario_AddUntilStockExhausted(t *testing.T) {
	ctx := context.Background()
	s, slot, inv := newScenarioStore(t, map[int]int{42: 3})

	for i := 0; i < 3; i++ {
		require.NoError(t, s.AddProduct(ctx, 42))
	}
	require.Equal(t, 3, s.Cart(ctx).AmountOf(42))

	before := slotBytes(t, slot)
	err := s.AddProduct(ctx, 42)
	require.ErrorIs(t, err, usecase.ErrStockExceeded)
	require.Equal(t, 3, s.Cart(ctx).AmountOf(42))
	require.Equal(t, before, slotBytes(t, slot), "slot must stay byte-identical")

	require.Equal(t, s.Cart(ctx), reload(t, slot, inv))
}

func TestScenario_RemoveTwice(t *testing.T) {
	ctx := context.Background()
	s, slot, inv := newScenarioStore(t, map[int]int{7: 5})

	require.NoError(t, s.AddProduct(ctx, 7))
	require.NoError(t, s.AddProduct(ctx, 7))
	require.Equal(t, 2, s.Cart(ctx).AmountOf(7))

	require.NoError(t, s.RemoveProduct(ctx, 7))
	require.Empty(t, s.Cart(ctx))
	require.JSONEq(t, `[]`, string(slotBytes(t, slot)))

	require.ErrorIs(t, s.RemoveProduct(ctx, 7), usecase.ErrNotFound)
	require.Empty(t, reload(t, slot, inv))
}

func TestScenario_UpdateWithinAndBeyondStock(t *testing.T) {
	ctx := context.Background()
	s, slot, inv := newScenarioStore(t, map[int]int{9: 5})

	require.NoError(t, s.AddProduct(ctx, 9))
	require.NoError(t, s.UpdateProductAmount(ctx, 9, 4))
	require.Equal(t, 4, s.Cart(ctx).AmountOf(9))

	require.ErrorIs(t, s.UpdateProductAmount(ctx, 9, 6), usecase.ErrStockExceeded)
	require.Equal(t, 4, s.Cart(ctx).AmountOf(9))
	require.Equal(t, s.Cart(ctx), reload(t, slot, inv))
}

func TestScenario_AddCountEqualsSuccessfulAdds(t *testing.T) {
	ctx := context.Background()
	s, slot, inv := newScenarioStore(t, map[int]int{1: 10, 2: 10, 3: 10})

	sequence := []int{1, 2, 1, 3, 1, 2, 3, 3, 3}
	want := map[int]int{}
	for _, id := range sequence {
		require.NoError(t, s.AddProduct(ctx, id))
		want[id]++
	}

	cart := s.Cart(ctx)
	for id, n := range want {
		require.Equal(t, n, cart.AmountOf(id), "product_id=%d", id)
	}
	// Порядок — порядок первого добавления.
	require.Equal(t, []int{1, 2, 3}, []int{cart[0].ID, cart[1].ID, cart[2].ID})
	require.Equal(t, cart, reload(t, slot, inv))
}

func TestScenario_StockDropsExternally_NoRevalidationOnRead(t *testing.T) {
	ctx := context.Background()
	s, _, inv := newScenarioStore(t, map[int]int{5: 3})

	require.NoError(t, s.AddProduct(ctx, 5))
	require.NoError(t, s.AddProduct(ctx, 5))

	inv.setStock(5, 1)
	require.Equal(t, 2, s.Cart(ctx).AmountOf(5))

	require.ErrorIs(t, s.AddProduct(ctx, 5), usecase.ErrStockExceeded)
	require.NoError(t, s.UpdateProductAmount(ctx, 5, 1))
	require.Equal(t, 1, s.Cart(ctx).AmountOf(5))
}

func TestScenario_UnknownProduct_AddFailed(t *testing.T) {
	ctx := context.Background()
	s, slot, _ := newScenarioStore(t, map[int]int{})

	err := s.AddProduct(ctx, 404)
	require.ErrorIs(t, err, usecase.ErrAddFailed)
	require.False(t, errors.Is(err, usecase.ErrStockExceeded))

	_, found, _ := slot.Get(ctx, slotKey)
	require.False(t, found, "failed operation must not write the slot")
}

func TestScenario_ConcurrentAddsAreSerialized(t *testing.T) {
	ctx := context.Background()
	s, slot, inv := newScenarioStore(t, map[int]int{1: 20})

	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.AddProduct(ctx, 1)
		}()
	}
	wg.Wait()

	require.Equal(t, 20, s.Cart(ctx).AmountOf(1))

	var persisted domain.Cart
	require.NoError(t, json.Unmarshal(slotBytes(t, slot), &persisted))
	require.Equal(t, s.Cart(ctx), persisted)
	require.Equal(t, 30, inv.calls)
}
