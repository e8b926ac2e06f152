package types

import "fmt"

// Error types reported in response bodies
const (
	ErrorTypeUnknown          = "unknown"
	ErrorTypeNotFound         = "notFound"
	ErrorTypeUnsupportedModel = "unsupportedModel"
	ErrorTypeVersion          = "version"
)

type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}
