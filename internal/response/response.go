package response

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// Error codes used across service and handler layers
const (
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeStorage      = "STORAGE_ERROR"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// AppError is an application error carrying a machine-readable code
type AppError struct {
	Code    string
	Message string
	Details string
}

func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewAppError creates a new AppError
func NewAppError(code, message, details string) *AppError {
	return &AppError{Code: code, Message: message, Details: details}
}

// SuccessResponse is the standard success envelope
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ErrorResponse is the standard error envelope
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// Pagination describes one page of a list response
type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalCount  int  `json:"totalCount"`
	PageSize    int  `json:"pageSize"`
	HasNext     bool `json:"hasNext"`
	HasPrev     bool `json:"hasPrev"`
}

// ListResponse is the list envelope. Exactly one of Total (unpaginated)
// or Pagination (paginated) is populated.
type ListResponse struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data"`
	Total      *int        `json:"total,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Message    string      `json:"message"`
}

// SendSuccess writes a success envelope
func SendSuccess(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, SuccessResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// SendError writes an error envelope
func SendError(c *gin.Context, status int, message, detail string) {
	c.JSON(status, ErrorResponse{
		Success: false,
		Message: message,
		Error:   detail,
	})
}

// SendList writes an unpaginated list envelope with a total count
func SendList(c *gin.Context, status int, data interface{}, total int) {
	c.JSON(status, ListResponse{
		Success: true,
		Data:    data,
		Total:   &total,
		Message: "Success",
	})
}

// SendPage writes a paginated list envelope
func SendPage(c *gin.Context, status int, data interface{}, p Pagination) {
	c.JSON(status, ListResponse{
		Success:    true,
		Data:       data,
		Pagination: &p,
		Message:    "Success",
	})
}
