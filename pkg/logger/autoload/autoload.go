// Package autoload initializes the global logger from LOG_* env vars when
// blank-imported from main.
package autoload

import (
	configx "github.com/azka-labs/agent-gateway/pkg/config"
	logx "github.com/azka-labs/agent-gateway/pkg/logger"
)

func init() {
	cfg := configx.MustNew[logx.Config]("LOG")
	logx.Init(*cfg)
}
