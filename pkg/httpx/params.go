package httpx

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ErrBadParam — параметр пути не является положительным целым.
var ErrBadParam = errors.New("bad path parameter")

// PositiveIntParam — читает параметр пути name как целое > 0.
func PositiveIntParam(c *gin.Context, name string) (int, error) {
	raw := c.Param(name)
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%w: %s=%q", ErrBadParam, name, raw)
	}
	return v, nil
}
