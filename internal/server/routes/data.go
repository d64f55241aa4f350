// Package routes 注册绕过文件投递的数据端点：联系表单插入与分类/报表查询。
// 它们直接调用投递助手返回自己的状态码与正文，必须先于兜底路由注册。
package routes

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	"github.com/bwainwright72/web-tech/internal/server"
	"github.com/bwainwright72/web-tech/internal/storage"
)

// RegisterDataRoutes 挂载全部数据端点。
func RegisterDataRoutes(app *fiber.App, store storage.Store, logger *logrus.Logger) {
	if app == nil || store == nil {
		return
	}

	app.Post("/contact", handleContact(store, logger))
	app.Get("/data/category", handleCategory(store, logger))
	app.Get("/data/report", handleReports(store, logger))
}

// handleContact 校验表单形状后写库。形状非法 → 415，写库失败 → 500。
func handleContact(store storage.Store, logger *logrus.Logger) fiber.Handler {
	return func(c fiber.Ctx) error {
		name := strings.TrimSpace(c.FormValue("name"))
		email := strings.TrimSpace(c.FormValue("email"))
		message := strings.TrimSpace(c.FormValue("message"))

		if name == "" || email == "" || message == "" || !strings.Contains(email, "@") {
			return server.RespondFailure(c, fiber.StatusUnsupportedMediaType, server.ReasonMalformedRequest)
		}

		contact := &storage.Contact{
			Name:    name,
			Email:   email,
			Message: message,
		}
		if err := store.SaveContact(contact); err != nil {
			logger.WithFields(logrus.Fields{
				"action":     "contact_insert",
				"request_id": server.RequestID(c),
			}).WithError(err).Error("联系表单写入失败")
			return server.RespondFailure(c, fiber.StatusInternalServerError, server.ReasonBackingStore)
		}

		logger.WithFields(logrus.Fields{
			"action":     "contact_insert",
			"request_id": server.RequestID(c),
			"contact_id": contact.ID,
		}).Info("contact saved")
		return server.RespondSuccess(c, fiber.StatusOK, "text/plain; charset=utf-8", []byte("thanks for getting in touch"))
	}
}

// handleCategory 按 id 查询分类并以 JSON 返回。
func handleCategory(store storage.Store, logger *logrus.Logger) fiber.Handler {
	return func(c fiber.Ctx) error {
		id, ok := parseID(c.Query("id"))
		if !ok {
			return server.RespondFailure(c, fiber.StatusUnsupportedMediaType, server.ReasonMalformedRequest)
		}

		category, err := store.GetCategory(id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return server.RespondFailure(c, fiber.StatusNotFound, server.ReasonNotFound)
			}
			logger.WithFields(logrus.Fields{
				"action":     "category_lookup",
				"request_id": server.RequestID(c),
				"id":         id,
			}).WithError(err).Error("分类查询失败")
			return server.RespondFailure(c, fiber.StatusInternalServerError, server.ReasonBackingStore)
		}

		return c.Status(fiber.StatusOK).JSON(category)
	}
}

// handleReports 返回某分类下的报表列表。空列表返回 []，不视为错误。
func handleReports(store storage.Store, logger *logrus.Logger) fiber.Handler {
	return func(c fiber.Ctx) error {
		id, ok := parseID(c.Query("category"))
		if !ok {
			return server.RespondFailure(c, fiber.StatusUnsupportedMediaType, server.ReasonMalformedRequest)
		}

		reports, err := store.ListReports(id)
		if err != nil {
			logger.WithFields(logrus.Fields{
				"action":     "report_lookup",
				"request_id": server.RequestID(c),
				"category":   id,
			}).WithError(err).Error("报表查询失败")
			return server.RespondFailure(c, fiber.StatusInternalServerError, server.ReasonBackingStore)
		}
		if reports == nil {
			reports = []storage.Report{}
		}

		return c.Status(fiber.StatusOK).JSON(reports)
	}
}

func parseID(raw string) (uint, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(value), true
}
