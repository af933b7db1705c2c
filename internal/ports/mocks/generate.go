//go:generate mockgen -source=../cart_slot.go        -destination=./mock_cart_slot.go        -package=mocks
//go:generate mockgen -source=../stock_oracle.go     -destination=./mock_stock_oracle.go     -package=mocks
//go:generate mockgen -source=../product_catalog.go  -destination=./mock_product_catalog.go  -package=mocks
//go:generate mockgen -source=../cart_validator.go   -destination=./mock_cart_validator.go   -package=mocks
//go:generate mockgen -source=../logger.go           -destination=./mock_logger.go           -package=mocks
//go:generate mockgen -source=../command_consumer.go -destination=./mock_command_consumer.go -package=mocks
//go:generate mockgen -source=../cart_service.go     -destination=./mock_cart_service.go     -package=mocks

package mocks
