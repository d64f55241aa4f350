package server

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	"github.com/bwainwright72/web-tech/internal/logging"
	"github.com/bwainwright72/web-tech/internal/mimetype"
	"github.com/bwainwright72/web-tech/internal/resolver"
	"github.com/bwainwright72/web-tech/internal/site"
	"github.com/bwainwright72/web-tech/internal/transform"
)

// FileHandler 执行“解析 → 读取 → 可选模板替换 → 投递”的全流程。
// 四类失败在此统一收敛为一次终端响应，任何一类都不会让进程崩溃。
type FileHandler struct {
	resolver *resolver.Resolver
	fs       site.Filesystem
	pipeline *transform.Pipeline
	logger   *logrus.Logger
}

// NewFileHandler constructs the catch-all file delivery handler.
func NewFileHandler(res *resolver.Resolver, fs site.Filesystem, pipeline *transform.Pipeline, logger *logrus.Logger) *FileHandler {
	return &FileHandler{
		resolver: res,
		fs:       fs,
		pipeline: pipeline,
		logger:   logger,
	}
}

// Handle 是注册在 "/*" 上的兜底请求处理器。数据端点先于它注册，
// 因此落到这里的 POST 一律视为形状非法。
func (h *FileHandler) Handle(c fiber.Ctx) error {
	started := time.Now()
	requestID := RequestID(c)

	if c.Method() != fiber.MethodGet && c.Method() != fiber.MethodHead {
		return h.fail(c, requestID, fiber.StatusUnsupportedMediaType, ReasonMalformedRequest)
	}

	rawURL := string(c.Request().URI().Path())
	if query := c.Request().URI().QueryString(); len(query) > 0 {
		rawURL += "?" + string(query)
	}

	ctx := c.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	outcome, err := h.resolver.Resolve(ctx, rawURL)
	if err != nil {
		h.logger.WithFields(logrus.Fields{
			"action":     "resolve",
			"request_id": requestID,
			"url":        rawURL,
		}).WithError(err).Error("文件系统解析失败")
		return h.fail(c, requestID, fiber.StatusInternalServerError, ReasonBackingStore)
	}

	switch outcome.Kind {
	case resolver.NotFound:
		// 大小写不匹配与真实缺失刻意同文案同状态码。
		h.logger.WithFields(logrus.Fields{
			"action":     "resolve",
			"request_id": requestID,
			"url":        rawURL,
		}).Debug("path not resolvable")
		return h.fail(c, requestID, fiber.StatusNotFound, ReasonNotFound)
	case resolver.UnsupportedType:
		return h.fail(c, requestID, fiber.StatusUnsupportedMediaType, ReasonUnsupportedType)
	}

	body, err := h.fs.ReadFile(ctx, outcome.Path)
	if err != nil {
		h.logger.WithFields(logging.RequestFields(requestID, outcome.Path, outcome.MIME, fiber.StatusInternalServerError)).
			WithError(err).Error("读取站点文件失败")
		return h.fail(c, requestID, fiber.StatusInternalServerError, ReasonBackingStore)
	}

	if outcome.MIME == mimetype.XHTML {
		body, err = h.pipeline.Apply(body, transform.Page{
			Path:  outcome.Path,
			Query: outcome.Query,
		})
		if err != nil {
			h.logger.WithFields(logging.RequestFields(requestID, outcome.Path, outcome.MIME, fiber.StatusInternalServerError)).
				WithError(err).Error("模板替换失败")
			return h.fail(c, requestID, fiber.StatusInternalServerError, ReasonBackingStore)
		}
	}

	fields := logging.RequestFields(requestID, outcome.Path, outcome.MIME, fiber.StatusOK)
	fields["duration_ms"] = time.Since(started).Milliseconds()
	h.logger.WithFields(fields).Info("file delivered")

	return RespondSuccess(c, fiber.StatusOK, outcome.MIME, body)
}

func (h *FileHandler) fail(c fiber.Ctx, requestID string, status int, reason string) error {
	if status != fiber.StatusNotFound {
		h.logger.WithFields(logrus.Fields{
			"action":     "deliver_failure",
			"request_id": requestID,
			"status":     status,
			"reason":     reason,
		}).Warn("request failed")
	}
	return RespondFailure(c, status, reason)
}
