package helpers

import (
	"net/http"

	httperrors "github.com/dropDatabas3/alquiler/internal/http/errors"
	"github.com/dropDatabas3/alquiler/internal/observability/logger"
	"go.uber.org/zap"
)

// Fail loguea el error según su severidad y escribe la respuesta.
// Los 5xx van a Error con la causa; los 4xx quedan en Debug.
func Fail(w http.ResponseWriter, log *zap.Logger, err error) {
	appErr := httperrors.FromError(err)
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		log.Error("request failed", logger.String("code", appErr.Code), logger.Err(err))
	} else {
		log.Debug("request rejected", logger.String("code", appErr.Code), logger.Err(err))
	}
	httperrors.WriteError(w, appErr)
}
