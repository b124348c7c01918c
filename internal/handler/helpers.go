package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"vidtube/internal/model"
	"vidtube/internal/security"
	"vidtube/internal/util"
)

// decodeJSON : читает тело запроса с ограничением размера. Пустое тело допустимо при allowEmpty.
// Ошибка разбора отдаётся клиенту в общей обёртке.
func decodeJSON(w http.ResponseWriter, r *http.Request, limit int64, target interface{}, allowEmpty bool) bool {
	status, message := readJSON(w, r, limit, target, allowEmpty)
	if status != 0 {
		util.HandleError(w, message, status)
		return false
	}
	return true
}

// readJSON : возвращает статус и сообщение ошибки разбора, 0 при успехе
func readJSON(w http.ResponseWriter, r *http.Request, limit int64, target interface{}, allowEmpty bool) (int, string) {
	if limit > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, limit)
	}

	err := json.NewDecoder(r.Body).Decode(target)
	if err == nil || (allowEmpty && errors.Is(err, io.EOF)) {
		return 0, ""
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge, "Request body too large"
	}
	return http.StatusBadRequest, "Invalid request body"
}

// currentUser : пользователь, которого положил в контекст JWTMiddleware
func currentUser(w http.ResponseWriter, r *http.Request) (*model.User, bool) {
	user, err := security.UserFromContext(r.Context())
	if err != nil {
		util.HandleError(w, "Unauthorized", http.StatusUnauthorized)
		return nil, false
	}
	return user, true
}

// saveFormFile : сохраняет файл из multipart формы во временный каталог.
// Отсутствие поля - не ошибка, возвращается пустой путь.
func saveFormFile(r *http.Request, field, dir string) (string, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	tmp, err := os.CreateTemp(dir, field+"-*"+ext)
	if err != nil {
		return "", err
	}
	defer tmp.Close()

	if _, err := io.Copy(tmp, file); err != nil {
		_ = os.Remove(tmp.Name())
		return "", err
	}

	return tmp.Name(), nil
}

// removeTemp : временный файл мог быть уже удалён сервисом загрузки
func removeTemp(r *http.Request, path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		util.Logger(r.Context()).Warn("не удалось удалить временный файл", "path", path, "err", err.Error())
	}
}
