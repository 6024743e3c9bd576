// Package api holds the HTTP contract of the service.
package api

import _ "embed"

// OpenAPI is the OpenAPI 3 document served under /swagger and used to
// validate incoming requests.
//
//go:embed openapi.yml
var OpenAPI []byte
