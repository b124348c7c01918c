package requestresponse

// ApiResponse : общий формат успешного ответа
type ApiResponse struct {
	StatusCode int         `json:"statusCode" example:"200"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message" example:"Success"`
	Success    bool        `json:"success" example:"true"`
}

// ApiError : общий формат ответа с ошибкой
type ApiError struct {
	StatusCode int         `json:"statusCode" example:"400"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message" example:"All fields are required"`
	Success    bool        `json:"success" example:"false"`
	Errors     []string    `json:"errors"`
}

func NewApiResponse(statusCode int, data interface{}, message string) ApiResponse {
	if message == "" {
		message = "Success"
	}
	return ApiResponse{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    statusCode < 400,
	}
}

func NewApiError(statusCode int, message string, errors []string) ApiError {
	if errors == nil {
		errors = []string{}
	}
	return ApiError{
		StatusCode: statusCode,
		Data:       nil,
		Message:    message,
		Success:    false,
		Errors:     errors,
	}
}
