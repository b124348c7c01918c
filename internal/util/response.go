package util

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"vidtube/internal/apperr"
	"vidtube/internal/model/requestresponse"
)

func WriteJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("ошибка кодирования ответа", slog.String("err", err.Error()))
	}
}

// WriteSuccess : ответ в формате {statusCode, data, message, success}
func WriteSuccess(w http.ResponseWriter, statusCode int, data interface{}, message string) {
	WriteJSON(w, statusCode, requestresponse.NewApiResponse(statusCode, data, message))
}

// HandleError : ответ в формате {statusCode, message, errors, success=false}
func HandleError(w http.ResponseWriter, message string, statusCode int, details ...string) {
	WriteJSON(w, statusCode, requestresponse.NewApiError(statusCode, message, details))
}

// WriteError : переводит ошибку сервиса в HTTP ответ без утечки внутренних деталей
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, message, details := apperr.Public(err)
	if status >= http.StatusInternalServerError {
		Logger(r.Context()).Error("ошибка обработки запроса",
			slog.String("path", r.URL.Path),
			slog.String("err", err.Error()),
		)
	}
	HandleError(w, message, status, details...)
}
