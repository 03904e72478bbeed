package response

// 默认文案
const (
	MsgOK         = "Operation successful"
	MsgError      = "An error occurred"
	MsgUnexpected = "An unexpected error occurred. Please try again later."
)
