// Package connectors ленивые подключения к Postgres и Redis.
package connectors

import "wishly/pkg/contextx"

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals
