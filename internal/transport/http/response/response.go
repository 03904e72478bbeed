package response

// Resp 统一响应信封：{data, message, success}
type Resp struct {
	Data    any    `json:"data"`
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// OK 成功响应，data 可为 nil（序列化为 null）
func OK(data any) Resp {
	return Resp{Data: data, Message: MsgOK, Success: true}
}

// Error 失败响应；msg 为空时使用默认文案
func Error(msg string) Resp {
	if msg == "" {
		msg = MsgError
	}
	return Resp{Message: msg}
}

// Fields 字段校验失败：data 为 字段 -> 提示
func Fields(fields map[string]string) Resp {
	return Resp{Data: fields, Message: MsgError}
}
