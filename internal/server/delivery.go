package server

import "github.com/gofiber/fiber/v3"

// 失败响应的正文固定为短文本原因，绝不透出内部细节；
// 大小写不匹配与真正缺失共用同一条文案，避免泄露文件系统信息。
const (
	ReasonNotFound         = "not found"
	ReasonUnsupportedType  = "unsupported file type"
	ReasonMalformedRequest = "malformed request"
	ReasonBackingStore     = "backing store failure"
)

// RespondSuccess 写出唯一一次成功响应：状态码、单个 Content-Type 头与完整正文。
// 调用后不得再对同一响应写入，每条请求路径必须恰好到达一次终端调用。
func RespondSuccess(c fiber.Ctx, status int, mime string, body []byte) error {
	c.Set(fiber.HeaderContentType, mime)
	return c.Status(status).Send(body)
}

// RespondFailure 写出唯一一次失败响应，Content-Type 固定为 text/plain。
func RespondFailure(c fiber.Ctx, status int, message string) error {
	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	return c.Status(status).SendString(message)
}
