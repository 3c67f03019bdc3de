// Package modules запускает долгоживущие части приложения в общей errgroup.
package modules

import "wishly/pkg/contextx"

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals
