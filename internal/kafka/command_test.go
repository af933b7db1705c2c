package kafka_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	mykafka "github.com/Gunvolt24/wb_cart/internal/kafka"
	"github.com/Gunvolt24/wb_cart/internal/ports/mocks"
)

func TestDecodeCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    mykafka.Command
		wantErr bool
	}{
		{"add", `{"op":"add","product_id":1}`, mykafka.Command{Op: "add", ProductID: 1}, false},
		{"update", `{"op":"update","product_id":2,"amount":5}`, mykafka.Command{Op: "update", ProductID: 2, Amount: 5}, false},
		{"op normalized", `{"op":" Remove ","product_id":3}`, mykafka.Command{Op: "remove", ProductID: 3}, false},
		{"unknown op", `{"op":"clear","product_id":3}`, mykafka.Command{}, true},
		{"missing id", `{"op":"add"}`, mykafka.Command{}, true},
		{"negative id", `{"op":"add","product_id":-1}`, mykafka.Command{}, true},
		{"not json", `add 1`, mykafka.Command{}, true},
		{"wrong type", `{"op":"add","product_id":"1"}`, mykafka.Command{}, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := mykafka.DecodeCommand([]byte(tt.raw))
			if tt.wantErr {
				require.True(t, errors.Is(err, mykafka.ErrInvalidCommand), "want ErrInvalidCommand, got %v", err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestCommand_Apply(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockCartService(ctrl)
	ctx := context.Background()

	svc.EXPECT().AddProduct(ctx, 1).Return(nil)
	svc.EXPECT().RemoveProduct(ctx, 2).Return(nil)
	svc.EXPECT().UpdateProductAmount(ctx, 3, 7).Return(nil)

	require.NoError(t, mykafka.Command{Op: mykafka.OpAdd, ProductID: 1}.Apply(ctx, svc))
	require.NoError(t, mykafka.Command{Op: mykafka.OpRemove, ProductID: 2}.Apply(ctx, svc))
	require.NoError(t, mykafka.Command{Op: mykafka.OpUpdate, ProductID: 3, Amount: 7}.Apply(ctx, svc))

	err := mykafka.Command{Op: "noop", ProductID: 1}.Apply(ctx, svc)
	require.ErrorIs(t, err, mykafka.ErrInvalidCommand)
}
