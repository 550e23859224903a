// Package dto содержит объекты передачи данных HTTP API.
package dto

// CredentialsRequest содержит данные для входа и регистрации.
// Идентификатор берется из email, а если он пуст - из username.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Identity возвращает идентификатор пользователя из запроса.
func (r CredentialsRequest) Identity() string {
	if r.Email != "" {
		return r.Email
	}
	return r.Username
}

// LoginResponse - ответ на вход.
type LoginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// SuccessResponse - ответ на регистрацию и выход.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// CheckResponse - ответ на проверку сессии.
type CheckResponse struct {
	Authenticated bool `json:"authenticated"`
}

// ErrorResponse - тело ответа с ошибкой.
type ErrorResponse struct {
	Error string `json:"error"`
}
