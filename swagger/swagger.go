package swagger

import (
	"embed"
	"net/http"
)

//go:embed openapi.yaml
var content embed.FS

// GetHandler serves the embedded OpenAPI description at /openapi.yaml.
func GetHandler() (http.Handler, error) {
	if _, err := content.ReadFile("openapi.yaml"); err != nil {
		return nil, err
	}

	return http.FileServer(http.FS(content)), nil
}
