package schemas

import "embed"

// SchemasFS содержит JSON-схемы событий, которые ходят через RabbitMQ.
//
//go:embed events
var SchemasFS embed.FS
