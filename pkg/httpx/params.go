package httpx

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// MaxProductIDLen — верхняя граница длины идентификатора товара в пути.
const MaxProductIDLen = 64

// ProductIDParam — читает :id из пути, обрезает пробелы и проверяет длину.
func ProductIDParam(c *gin.Context) (string, bool) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" || len(id) > MaxProductIDLen {
		return "", false
	}
	return id, true
}
