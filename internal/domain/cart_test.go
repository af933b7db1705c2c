package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/stretchr/testify/require"
)

func entry(id, amount int) domain.CartEntry {
	return domain.CartEntry{Product: domain.Product{ID: id, Title: "p"}, Amount: amount}
}

func TestCart_IndexAndAmount(t *testing.T) {
	c := domain.Cart{entry(1, 2), entry(5, 1)}

	require.Equal(t, 1, c.IndexOf(5))
	require.Equal(t, -1, c.IndexOf(9))
	require.Equal(t, 2, c.AmountOf(1))
	require.Equal(t, 0, c.AmountOf(9))
}

func TestCart_Without_PreservesOrder(t *testing.T) {
	c := domain.Cart{entry(1, 1), entry(2, 2), entry(3, 3)}

	got := c.Without(2)
	require.Equal(t, domain.Cart{entry(1, 1), entry(3, 3)}, got)
	require.Len(t, c, 3, "source cart must stay untouched")
}

func TestCart_CloneIsIndependent(t *testing.T) {
	c := domain.Cart{entry(1, 1)}
	cl := c.Clone()
	cl[0].Amount = 10

	require.Equal(t, 1, c[0].Amount)
}

func TestCartEntry_FlatJSON(t *testing.T) {
	raw, err := json.Marshal(domain.Cart{{
		Product: domain.Product{ID: 3, Title: "Tênis", Price: 139.9, Image: "img.jpg"},
		Amount:  2,
	}})
	require.NoError(t, err)
	require.JSONEq(t, `[{"id":3,"title":"Tênis","price":139.9,"image":"img.jpg","amount":2}]`, string(raw))

	empty, err := json.Marshal(domain.Cart(nil).Clone())
	require.NoError(t, err)
	require.Equal(t, "[]", string(empty))
}

func TestCartEntry_ExtraAttributesRoundTrip(t *testing.T) {
	const raw = `[{"id":7,"title":"Tênis","price":99.9,"image":"a.jpg","amount":2,"brand":"Rocket","tags":["run"]}]`

	var c domain.Cart
	require.NoError(t, json.Unmarshal([]byte(raw), &c))
	require.Len(t, c, 1)
	require.Equal(t, 7, c[0].ID)
	require.Equal(t, 2, c[0].Amount)
	require.JSONEq(t, `"Rocket"`, string(c[0].Extra["brand"]))
	require.NotContains(t, c[0].Extra, "amount")

	out, err := json.Marshal(c)
	require.NoError(t, err)
	require.JSONEq(t, raw, string(out))
}

func TestProduct_ExtraFromCatalog(t *testing.T) {
	var p domain.Product
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"title":"t","price":1,"image":"i","description":"leve"}`), &p))
	require.Equal(t, map[string]json.RawMessage{"description": json.RawMessage(`"leve"`)}, p.Extra)

	// известные поля нельзя переопределить через Extra
	p.Extra["id"] = json.RawMessage(`99`)
	out, err := json.Marshal(p)
	require.NoError(t, err)
	require.JSONEq(t, `{"id":1,"title":"t","price":1,"image":"i","description":"leve"}`, string(out))

	var plain domain.Product
	require.NoError(t, json.Unmarshal([]byte(`{"id":2,"title":"t","price":1,"image":"i"}`), &plain))
	require.Nil(t, plain.Extra)
}

func TestCart_CloneCopiesExtra(t *testing.T) {
	c := domain.Cart{{Product: domain.Product{ID: 1, Extra: map[string]json.RawMessage{"a": json.RawMessage(`1`)}}, Amount: 1}}
	cl := c.Clone()
	cl[0].Extra["a"] = json.RawMessage(`2`)

	require.Equal(t, json.RawMessage(`1`), c[0].Extra["a"])
}
