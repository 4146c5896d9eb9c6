// Package schemas содержит JSON Schema контрактов сервиса: документ набора данных
// и события очереди заявок.
package schemas

import "embed"

//go:embed dataset/*.json events/*/*.json
var SchemasFS embed.FS
