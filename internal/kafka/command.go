package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Gunvolt24/wb_cart/internal/ports"
)

// ErrInvalidCommand — сообщение не является корректной командой корзины.
var ErrInvalidCommand = errors.New("invalid cart command")

const (
	OpAdd    = "add"
	OpRemove = "remove"
	OpUpdate = "update"
)

// Command — команда корзины из топика:
//
//	{"op":"add|remove|update","product_id":1,"amount":3}
//
// amount используется только в update.
type Command struct {
	Op        string `json:"op"`
	ProductID int    `json:"product_id"`
	Amount    int    `json:"amount,omitempty"`
}

// DecodeCommand — разбор и проверка команды.
func DecodeCommand(raw []byte) (Command, error) {
	var cmd Command
	if err := json.Unmarshal(raw, &cmd); err != nil {
		return Command{}, fmt.Errorf("%w: %w", ErrInvalidCommand, err)
	}
	cmd.Op = strings.ToLower(strings.TrimSpace(cmd.Op))

	switch cmd.Op {
	case OpAdd, OpRemove, OpUpdate:
	default:
		return Command{}, fmt.Errorf("%w: unknown op %q", ErrInvalidCommand, cmd.Op)
	}
	if cmd.ProductID <= 0 {
		return Command{}, fmt.Errorf("%w: product_id must be > 0, got %d", ErrInvalidCommand, cmd.ProductID)
	}
	return cmd, nil
}

// Apply — выполнить команду над корзиной.
func (c Command) Apply(ctx context.Context, svc ports.CartService) error {
	switch c.Op {
	case OpAdd:
		return svc.AddProduct(ctx, c.ProductID)
	case OpRemove:
		return svc.RemoveProduct(ctx, c.ProductID)
	case OpUpdate:
		return svc.UpdateProductAmount(ctx, c.ProductID, c.Amount)
	default:
		return fmt.Errorf("%w: unknown op %q", ErrInvalidCommand, c.Op)
	}
}
