package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cargo-dep/pkg/errors"
	"github.com/matzehuels/cargo-dep/pkg/observability"
)

// logHooks reports pipeline and cache events at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnStageStart(_ context.Context, stage observability.Stage) {
	h.logger.Debug("stage started", "stage", stage)
}

func (h logHooks) OnStageComplete(_ context.Context, stage observability.Stage, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("stage failed",
			"stage", stage,
			"duration", d.Round(time.Microsecond),
			"code", errors.GetCode(err),
			"err", errors.UserMessage(err))
		return
	}
	h.logger.Debug("stage done", "stage", stage, "duration", d.Round(time.Microsecond))
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

var (
	_ observability.PipelineHooks = logHooks{}
	_ observability.CacheHooks    = logHooks{}
)
