package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"carmart/internal/common"

	"github.com/labstack/echo/v4"
)

// validationFailedMessage heads every 422 body, with the per-field messages
// under "errors".
const validationFailedMessage = "Los datos proporcionados no son válidos."

// respondError maps domain errors onto HTTP responses. Anything outside the
// taxonomy is logged and reported as a plain 500 so store details never leak
// to clients.
func respondError(c echo.Context, err error) error {
	if errors.Is(err, common.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{
			"message": "Registro no encontrado.",
		})
	}

	var vErr *common.ValidationError
	if errors.As(err, &vErr) {
		return c.JSON(http.StatusUnprocessableEntity, map[string]interface{}{
			"message": validationFailedMessage,
			"errors":  vErr.Fields,
		})
	}

	var cErr *common.ConflictError
	if errors.As(err, &cErr) {
		return c.JSON(http.StatusConflict, map[string]string{
			"message": cErr.Message,
		})
	}

	log.Printf("ERROR: unhandled service error: %v", err)
	return c.JSON(http.StatusInternalServerError, map[string]string{
		"message": "Error interno del servidor.",
	})
}

// paramID parses the :id route parameter. Non-numeric ids are reported the
// same way as missing rows.
func paramID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, common.ErrNotFound
	}
	return id, nil
}
