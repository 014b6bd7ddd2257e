package handlers

import (
	"net/http"

	"github.com/copapymes/league-system/docs"
)

// OpenAPIHandler serves the embedded OpenAPI document.
func OpenAPIHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write(docs.OpenAPISpec)
}
