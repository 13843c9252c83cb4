package util

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParamID 读取路径参数中的正整数 id
func ParamID(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return uint(id), nil
}

func Float64Ptr(v float64) *float64 { return &v }

func IntPtr(v int) *int { return &v }
