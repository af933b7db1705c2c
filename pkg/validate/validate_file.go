package validate

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Gunvolt24/wb_cart/internal/ports"
)

// InputFormat — формат входа CLI.
type InputFormat string

const (
	FormatAuto  InputFormat = "auto"
	FormatJSON  InputFormat = "json"  // одна корзина (содержимое слота)
	FormatJSONL InputFormat = "jsonl" // корзина на строку (выгрузка нескольких слотов)
)

// StdinPath — путь, означающий стандартный ввод.
const StdinPath = "-"

// DetectFormat — формат по расширению; stdin и неизвестные расширения читаются как JSONL.
func DetectFormat(path string) InputFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	default:
		return FormatJSONL
	}
}

// ValidateFile — проверяет файл (или stdin при path == "-") и пишет валидные корзины в ow.
// Для FormatJSON невалидная корзина возвращается ошибкой; для JSONL — только в Report.
func ValidateFile(ctx context.Context, validator ports.CartValidator, path string, format InputFormat, ow io.Writer) (Report, error) {
	if format == FormatAuto || format == "" {
		format = DetectFormat(path)
	}

	in, closeIn, err := openInput(path)
	if err != nil {
		return Report{}, err
	}
	defer closeIn()

	switch format {
	case FormatJSON:
		return validateSingle(ctx, validator, in, ow)
	case FormatJSONL:
		return ValidateJSONLStream(ctx, validator, in, ow)
	default:
		return Report{}, fmt.Errorf("unsupported format %q", format)
	}
}

func validateSingle(ctx context.Context, validator ports.CartValidator, in io.Reader, ow io.Writer) (Report, error) {
	var rep Report

	raw, err := io.ReadAll(in)
	if err != nil {
		return rep, fmt.Errorf("read: %w", err)
	}
	cart, err := ValidateCartFromJSON(ctx, validator, raw)
	if err != nil {
		rep.reject(1, err)
		return rep, err
	}
	if err := writeCart(ow, cart); err != nil {
		return rep, err
	}
	rep.accept(cart)
	return rep, nil
}

func openInput(path string) (io.Reader, func(), error) {
	if path == StdinPath || path == "" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
