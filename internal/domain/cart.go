package domain

import (
	"bytes"
	"encoding/json"
	"maps"
	"slices"
)

// Product — атрибуты товара из каталога (для корзины — непрозрачные данные).
// Поля каталога сверх известных хранятся в Extra и сериализуются обратно как есть.
type Product struct {
	ID    int     `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
	Image string  `json:"image"`

	Extra map[string]json.RawMessage `json:"-"`
}

type productFields struct {
	ID    int     `json:"id"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}

var productKeys = []string{"id", "title", "price", "image"}

// MarshalJSON — известные поля, затем Extra.
func (p Product) MarshalJSON() ([]byte, error) {
	raw, err := json.Marshal(productFields{ID: p.ID, Title: p.Title, Price: p.Price, Image: p.Image})
	if err != nil {
		return nil, err
	}
	return appendExtra(raw, p.Extra, productKeys)
}

func (p *Product) UnmarshalJSON(data []byte) error {
	var f productFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	extra, err := collectExtra(data, productKeys)
	if err != nil {
		return err
	}
	*p = Product{ID: f.ID, Title: f.Title, Price: f.Price, Image: f.Image, Extra: extra}
	return nil
}

// CartEntry — позиция корзины: атрибуты товара + количество.
// В слоте хранится «плоско»: {"id":1,"title":"...","price":1,"image":"...","amount":2}.
type CartEntry struct {
	Product
	Amount int `json:"amount"`
}

var entryKeys = append(slices.Clone(productKeys), "amount")

// MarshalJSON — плоский объект: поля товара, amount, затем Extra.
func (e CartEntry) MarshalJSON() ([]byte, error) {
	p := e.Product
	raw, err := json.Marshal(struct {
		productFields
		Amount int `json:"amount"`
	}{productFields{ID: p.ID, Title: p.Title, Price: p.Price, Image: p.Image}, e.Amount})
	if err != nil {
		return nil, err
	}
	return appendExtra(raw, p.Extra, entryKeys)
}

func (e *CartEntry) UnmarshalJSON(data []byte) error {
	var f struct {
		productFields
		Amount int `json:"amount"`
	}
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	extra, err := collectExtra(data, entryKeys)
	if err != nil {
		return err
	}
	*e = CartEntry{
		Product: Product{ID: f.ID, Title: f.Title, Price: f.Price, Image: f.Image, Extra: extra},
		Amount:  f.Amount,
	}
	return nil
}

// appendExtra — дописывает в JSON-объект raw поля extra (по алфавиту), кроме known.
func appendExtra(raw []byte, extra map[string]json.RawMessage, known []string) ([]byte, error) {
	keys := slices.Sorted(maps.Keys(extra))
	var buf bytes.Buffer
	buf.Write(raw[:len(raw)-1])
	for _, k := range keys {
		if slices.Contains(known, k) {
			continue
		}
		name, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(extra[k])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// collectExtra — поля объекта data, не входящие в known; nil, если таких нет.
func collectExtra(data []byte, known []string) (map[string]json.RawMessage, error) {
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	for _, k := range known {
		delete(all, k)
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all, nil
}

// Stock — остаток товара во внешнем источнике. Не кэшируется.
type Stock struct {
	ProductID int `json:"id"`
	Amount    int `json:"amount"`
}

// Cart — упорядоченный список позиций, уникальных по ID товара.
type Cart []CartEntry

// IndexOf — позиция товара в корзине или -1.
func (c Cart) IndexOf(productID int) int {
	for i := range c {
		if c[i].ID == productID {
			return i
		}
	}
	return -1
}

// AmountOf — текущее количество товара (0, если позиции нет).
func (c Cart) AmountOf(productID int) int {
	if i := c.IndexOf(productID); i >= 0 {
		return c[i].Amount
	}
	return 0
}

// Clone — копия корзины, чтобы внешние изменения не затрагивали исходную.
// Пустая корзина всегда возвращается как непустой срез (сериализуется в []).
func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	copy(out, c)
	for i := range out {
		out[i].Extra = maps.Clone(out[i].Extra)
	}
	return out
}

// Without — корзина без позиции productID; порядок остальных сохраняется.
func (c Cart) Without(productID int) Cart {
	out := make(Cart, 0, len(c))
	for _, e := range c {
		if e.ID != productID {
			out = append(out, e)
		}
	}
	return out
}
