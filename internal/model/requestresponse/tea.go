package requestresponse

// TeaRequest : тело запроса на создание/обновление чая
type TeaRequest struct {
	Name  string  `json:"name" example:"Green Tea"`
	Price float64 `json:"price" example:"5"`
}
