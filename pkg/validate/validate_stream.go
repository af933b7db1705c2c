package validate

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Gunvolt24/wb_cart/internal/ports"
)

const maxLineSize = 10 << 20

// ValidateJSONLStream — поток корзин, по одной на строку. Валидные корзины пишутся в ow
// компактным JSON, невалидные попадают в Report.Issues с номером строки. Пустые строки пропускаются.
// Ошибка возвращается только при сбое чтения или записи.
func ValidateJSONLStream(ctx context.Context, validator ports.CartValidator, ir io.Reader, ow io.Writer) (Report, error) {
	var rep Report

	scanner := bufio.NewScanner(ir)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	bw := bufio.NewWriter(ow)
	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return rep, err
		}

		cart, err := ValidateCartFromJSON(ctx, validator, raw)
		if err != nil {
			rep.reject(line, err)
			continue
		}
		if err := writeCart(bw, cart); err != nil {
			return rep, err
		}
		rep.accept(cart)
	}
	if err := scanner.Err(); err != nil {
		return rep, fmt.Errorf("scan line %d: %w", line+1, err)
	}
	if err := bw.Flush(); err != nil {
		return rep, fmt.Errorf("write: %w", err)
	}
	return rep, nil
}

func writeCart(w io.Writer, cart any) error {
	out, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	out = append(out, '\n')
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}
