// Package docs carries the embedded OpenAPI document served at
// /docs/openapi.json and rendered by the swagger UI.
package docs

import _ "embed"

//go:embed openapi.json
var OpenAPISpec []byte
