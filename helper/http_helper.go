package helper

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	validator "gopkg.in/go-playground/validator.v9"
	enTranslations "gopkg.in/go-playground/validator.v9/translations/en"
)

const (
	textError = `error`
	textOk    = `ok`

	codeSuccess           = 200
	codeBadRequestError   = 400
	codeUnauthorizedError = 401
	codeNotFound          = 404
)

// HTTPHelper produces the uniform response envelope and carries the struct
// validator shared by handlers.
type HTTPHelper struct {
	Validate   *validator.Validate
	Translator ut.Translator
}

func NewHTTPHelper() (*HTTPHelper, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	translator, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, translator); err != nil {
		return nil, err
	}

	return &HTTPHelper{
		Validate:   validate,
		Translator: translator,
	}, nil
}

func (u *HTTPHelper) send(c *gin.Context, httpStatus int, status, message string, data interface{}, code int) {
	if message == "" {
		message = "success"
	}
	c.JSON(httpStatus, map[string]interface{}{
		"code":         code,
		"status":       status,
		"code_message": message,
		"data":         data,
	})
}

func (u *HTTPHelper) SendSuccess(c *gin.Context, message string, data interface{}) {
	u.send(c, http.StatusOK, textOk, message, data, codeSuccess)
}

func (u *HTTPHelper) SendCreated(c *gin.Context, message string, data interface{}) {
	u.send(c, http.StatusCreated, textOk, message, data, codeSuccess)
}

func (u *HTTPHelper) SendBadRequest(c *gin.Context, message string, data interface{}) {
	u.send(c, http.StatusBadRequest, textError, message, data, codeBadRequestError)
}

func (u *HTTPHelper) SendUnauthorizedError(c *gin.Context, message string, data interface{}) {
	u.send(c, http.StatusUnauthorized, textError, message, data, codeUnauthorizedError)
}

func (u *HTTPHelper) SendNotFoundError(c *gin.Context, message string, data interface{}) {
	u.send(c, http.StatusNotFound, textError, message, data, codeNotFound)
}

// SendValidationError translates field errors into a per-field message map.
func (u *HTTPHelper) SendValidationError(c *gin.Context, validationErrors validator.ValidationErrors) {
	errorResponse := map[string][]string{}
	errorTranslation := validationErrors.Translate(u.Translator)
	for _, err := range validationErrors {
		errKey := Underscore(err.Field())
		errorResponse[errKey] = append(errorResponse[errKey], errorTranslation[err.Namespace()])
	}

	c.JSON(http.StatusBadRequest, map[string]interface{}{
		"code":         codeBadRequestError,
		"status":       textError,
		"code_message": errorResponse,
		"data":         u.EmptyJsonMap(),
	})
}

func (u *HTTPHelper) EmptyJsonMap() map[string]interface{} {
	return make(map[string]interface{})
}

func (u *HTTPHelper) getPagingUrl(c *gin.Context, page, limit int) string {
	r := c.Request
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + r.URL.Path + "?page=" + strconv.Itoa(page) + "&limit=" + strconv.Itoa(limit)
}

// GeneratePaging builds the pagination block for list responses.
func (u *HTTPHelper) GeneratePaging(c *gin.Context, page, limit int, totalRecord int64) map[string]interface{} {
	totalPages := int(math.Ceil(float64(totalRecord) / float64(limit)))

	prevURL, nextURL := "", ""
	if page > 1 && page <= totalPages {
		prevURL = u.getPagingUrl(c, page-1, limit)
	}
	if page < totalPages {
		nextURL = u.getPagingUrl(c, page+1, limit)
	}

	return map[string]interface{}{
		"total_records": totalRecord,
		"per_page":      limit,
		"current_page":  page,
		"total_pages":   totalPages,
		"links": map[string]interface{}{
			"previous": prevURL,
			"next":     nextURL,
		},
	}
}
