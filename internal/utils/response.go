// internal/utils/response.go
package utils

import (
	"net/http"

	"github.com/javajoker/store-platform/internal/apperror"
	"github.com/javajoker/store-platform/internal/i18n"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func SuccessResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    data,
	})
}

func SuccessResponseWithMeta(c *gin.Context, data interface{}, meta interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

func CreatedResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Data:    data,
	})
}

func ErrorResponse(c *gin.Context, statusCode int, code, message string, details interface{}) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Error: &APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

func BadRequestResponse(c *gin.Context, message string, details interface{}) {
	lang := GetLangFromContext(c)
	if message == "" {
		message = i18n.T(lang, i18n.KeyValidationInvalid, "request")
	}
	ErrorResponse(c, http.StatusBadRequest, string(apperror.CodeValidation), message, details)
}

func UnauthorizedResponse(c *gin.Context, message string) {
	lang := GetLangFromContext(c)
	if message == "" {
		message = i18n.T(lang, i18n.KeyAuthRequired)
	}
	ErrorResponse(c, http.StatusUnauthorized, string(apperror.CodeUnauthorized), message, nil)
}

func ForbiddenResponse(c *gin.Context, message string) {
	lang := GetLangFromContext(c)
	if message == "" {
		message = i18n.T(lang, i18n.KeyAdminAccessDenied)
	}
	ErrorResponse(c, http.StatusForbidden, string(apperror.CodeForbidden), message, nil)
}

func TooManyRequestsResponse(c *gin.Context) {
	lang := GetLangFromContext(c)
	ErrorResponse(c, http.StatusTooManyRequests, string(apperror.CodeRateLimit), i18n.T(lang, i18n.KeyRateLimited), nil)
}

func ValidationErrorResponse(c *gin.Context, errors []ValidationError) {
	lang := GetLangFromContext(c)
	message := i18n.T(lang, i18n.KeyValidationInvalid, "input")
	ErrorResponse(c, http.StatusBadRequest, string(apperror.CodeValidation), message, errors)
}

// AppErrorResponse writes err using its apperror code. Errors without a code
// are reported as persistence failures and their text is not exposed.
func AppErrorResponse(c *gin.Context, err error) {
	typed := apperror.As(err)
	if typed == nil {
		typed = apperror.New(apperror.CodePersistenceFailure, "")
	}
	meta := apperror.MetadataFor(typed.Code())

	message := typed.Message()
	if typed.Code() == apperror.CodePersistenceFailure || message == "" {
		message = meta.PublicMessage
	}
	if key, ok := messageKeys[typed.Code()]; ok {
		message = i18n.T(GetLangFromContext(c), key)
	}

	var details interface{}
	if meta.DetailsAllowed {
		details = typed.Details()
	}
	ErrorResponse(c, meta.HTTPStatus, string(typed.Code()), message, details)
}

var messageKeys = map[apperror.Code]string{
	apperror.CodeDuplicateIdentity:  i18n.KeyAuthUserExists,
	apperror.CodeInvalidCredentials: i18n.KeyAuthInvalidCredentials,
	apperror.CodeUnauthorized:       i18n.KeyAuthRequired,
	apperror.CodeForbidden:          i18n.KeyAdminAccessDenied,
	apperror.CodeRateLimit:          i18n.KeyRateLimited,
}

func GetLangFromContext(c *gin.Context) string {
	if lang, exists := c.Get("lang"); exists {
		if langStr, ok := lang.(string); ok {
			return langStr
		}
	}
	return "en"
}

func GetUserIDFromContext(c *gin.Context) (uint, bool) {
	if userID, exists := c.Get("user_id"); exists {
		if id, ok := userID.(uint); ok {
			return id, true
		}
	}
	return 0, false
}

func IsAdminFromContext(c *gin.Context) bool {
	return c.GetBool("is_admin")
}
