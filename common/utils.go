package common

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pixelforge/pixelforge/common/config"
)

// GetPageQuery returns the zero based page index from ?p=.
func GetPageQuery(c *gin.Context) int {
	p, _ := strconv.Atoi(c.Query("p"))
	if p < 0 {
		p = 0
	}
	return p
}

func GetPageOffset(c *gin.Context) (offset int, limit int) {
	return GetPageQuery(c) * config.ItemsPerPage, config.ItemsPerPage
}

func FormatBytes(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.2fMB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.2fKB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%dB", n)
	}
}
