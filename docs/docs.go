// Package docs expone la descripción Swagger 2.0 de la API HTTP.
// Regenerable con `swag init -g cmd/provenderie/main.go -o docs --outputTypes json` a partir de las anotaciones de los handlers.
package docs

import _ "embed"

// SwaggerJSON contenido de swagger.json, servido en /docs.
//
//go:embed swagger.json
var SwaggerJSON []byte
