package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// queryInt reads an optional integer query parameter, falling back to def
// on absence or garbage.
func queryInt(c *gin.Context, name string, def int) int {
	v := c.Query(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}
