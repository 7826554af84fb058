// Package params reads scalar request parameters from the query string or
// an urlencoded/multipart form body, keeping "absent" distinct from "empty".
package params

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Lookup returns the raw value and whether the parameter was sent at all.
func Lookup(c *gin.Context, name string) (string, bool) {
	if v, ok := c.GetQuery(name); ok {
		return v, true
	}
	if v, ok := c.GetPostForm(name); ok {
		return v, true
	}
	return "", false
}

// Optional returns nil when the parameter is absent and a pointer to its
// value (possibly "") otherwise.
func Optional(c *gin.Context, name string) *string {
	v, ok := Lookup(c, name)
	if !ok {
		return nil
	}
	return &v
}

// Require reads every name and, when one is absent or blank, writes a 400
// naming it and returns false.
func Require(c *gin.Context, names ...string) (map[string]string, bool) {
	out := make(map[string]string, len(names))
	for _, name := range names {
		v, ok := Lookup(c, name)
		if !ok || strings.TrimSpace(v) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"detail": fmt.Sprintf("O parâmetro %q é obrigatório", name)})
			return nil, false
		}
		out[name] = v
	}
	return out, true
}
