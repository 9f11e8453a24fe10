package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/jesusfb/carmu-api/internal/apierror"
	"github.com/jesusfb/carmu-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON inválido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// pathID parses the :id (or named) route parameter as a UUID. Returns false
// after writing the 400 response.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return uuid.Nil, false
	}
	return id, true
}

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// Unknown errors go through the gin error chain so the ErrorHandler middleware
// logs them and answers a detail-free 500.
func respondServiceError(c *gin.Context, err error) {
	var notFound *service.NotFoundError
	var invalidState *service.InvalidStateError
	var validation *service.ValidationError

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, apierror.New(notFound.Msg))
	case errors.As(err, &invalidState):
		c.JSON(http.StatusBadRequest, apierror.New(invalidState.Msg))
	case errors.As(err, &validation):
		c.JSON(http.StatusUnprocessableEntity,
			apierror.NewValidation(map[string]string{validation.Field: validation.Msg}))
	case errors.Is(err, service.ErrConcurrencyConflict):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	default:
		_ = c.Error(err)
	}
}
