package logging

import "github.com/sirupsen/logrus"

// BaseFields 构建 action + 配置路径等基础字段，便于不同入口复用。
func BaseFields(action, configPath string) logrus.Fields {
	return logrus.Fields{
		"action":     action,
		"configPath": configPath,
	}
}

// RequestFields 提供请求路径/状态/类型字段，供文件投递日志复用。
func RequestFields(requestID, path, mime string, status int) logrus.Fields {
	return logrus.Fields{
		"request_id": requestID,
		"path":       path,
		"mime":       mime,
		"status":     status,
	}
}
