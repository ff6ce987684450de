package api

import (
	_ "embed"
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v3"
)

//go:embed openapi.yaml
var openAPISource []byte

var (
	openAPIOnce sync.Once
	openAPIDoc  map[string]interface{}
	openAPIErr  error
)

// OpenAPIDocument parses the embedded OpenAPI description once.
func OpenAPIDocument() (map[string]interface{}, error) {
	openAPIOnce.Do(func() {
		var doc map[string]interface{}
		if err := yaml.Unmarshal(openAPISource, &doc); err != nil {
			openAPIErr = fmt.Errorf("parse openapi document: %w", err)
			return
		}
		openAPIDoc = doc
	})
	return openAPIDoc, openAPIErr
}

// ServeOpenAPI handles GET /openapi.
func ServeOpenAPI(c *gin.Context) {
	doc, err := OpenAPIDocument()
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, doc)
}
