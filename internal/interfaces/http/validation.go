package http

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockpro-api/internal/application/dto"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// FieldError campo rechazado por la validación.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// parseBody decodifica el JSON y aplica las etiquetas validate.
// Si falla, ya escribió la respuesta 400 y devuelve ok=false.
func parseBody(c *fiber.Ctx, dst any) (bool, error) {
	if err := c.BodyParser(dst); err != nil {
		return false, invalidBody(c)
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return false, invalidBody(c)
		}
		fields := make([]FieldError, 0, len(verrs))
		names := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, FieldError{Field: fe.Field(), Rule: fe.Tag()})
			names = append(names, fe.Field())
		}
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "campos inválidos: " + strings.Join(names, ", "),
			Details: fields,
		})
	}
	return true, nil
}
