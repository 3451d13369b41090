package model

const (
	ErrorTypeValidation       = "validation_error"
	ErrorTypeUnsupportedModel = "unsupported_model_error"
	ErrorTypeModel            = "model_error"
	ErrorTypeTimeout          = "timeout_error"
	ErrorTypeUnexpectedFormat = "unexpected_format_error"
	ErrorTypeInternal         = "internal_error"
	ErrorTypeUpstream         = "upstream_error"
)

type Error struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Param   string `json:"param,omitempty"`
	Code    any    `json:"code,omitempty"`
}

type ErrorWithStatusCode struct {
	Error
	StatusCode int `json:"status_code"`
}

func NewErrorWithStatusCode(message string, errType string, statusCode int) *ErrorWithStatusCode {
	return &ErrorWithStatusCode{
		Error: Error{
			Message: message,
			Type:    errType,
		},
		StatusCode: statusCode,
	}
}
