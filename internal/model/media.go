package model

// Media : результат загрузки файла во внешнее хранилище
type Media struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}
