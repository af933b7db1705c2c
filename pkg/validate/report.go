package validate

import (
	"fmt"

	"github.com/Gunvolt24/wb_cart/internal/domain"
)

// Issue — невалидная корзина и номер строки (для JSON-файла всегда 1).
type Issue struct {
	Line int
	Err  error
}

func (i Issue) String() string { return fmt.Sprintf("line %d: %v", i.Line, i.Err) }

// Report — итог проверки одного файла или потока.
type Report struct {
	Valid   int
	Invalid int
	Entries int // позиций во всех валидных корзинах
	Units   int // штук товара во всех валидных корзинах
	Issues  []Issue
}

func (r *Report) accept(cart domain.Cart) {
	r.Valid++
	r.Entries += len(cart)
	for _, e := range cart {
		r.Units += e.Amount
	}
}

func (r *Report) reject(line int, err error) {
	r.Invalid++
	r.Issues = append(r.Issues, Issue{Line: line, Err: err})
}

// Summary — строка для человека: "2 valid / 1 invalid, 3 entries, 7 units".
func (r Report) Summary() string {
	return fmt.Sprintf("%d valid / %d invalid, %d entries, %d units", r.Valid, r.Invalid, r.Entries, r.Units)
}
