package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/Imacx-maria/app-imacx-sub000/internal/apierror"
	"github.com/Imacx-maria/app-imacx-sub000/internal/service"

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

// respondServiceError maps service-layer errors onto the HTTP surface.
// Unknown errors become an opaque 500 so internals never leak.
func respondServiceError(c *gin.Context, err error) {
	var (
		validacao *service.ErroValidacao
		formato   *service.ErroFormatoPalete
		duplicada *service.ErroPaleteDuplicada
		persist   *service.ErroPersistencia
	)
	switch {
	case errors.As(err, &validacao):
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(map[string]string{validacao.Campo: validacao.Detalhe}))
	case errors.As(err, &formato):
		c.JSON(http.StatusBadRequest, apierror.New(formato.Error()))
	case errors.As(err, &duplicada):
		c.JSON(http.StatusConflict, apierror.NewConflict("Números de palete já existem", duplicada.Numeros))
	case errors.Is(err, service.ErrBatchNaoEncontrado),
		errors.Is(err, service.ErrLinhaNaoEncontrada),
		errors.Is(err, service.ErrNENaoEncontrada):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, service.ErrNESemLinhas):
		c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
	case errors.As(err, &persist):
		c.JSON(http.StatusBadGateway, apierror.New("Serviço temporariamente indisponível"))
	default:
		c.JSON(http.StatusInternalServerError, apierror.New("Erro interno do servidor"))
	}
}

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return uuid.Nil, false
	}
	return id, true
}
