package models

// Quote is a best-effort instrument quote returned by the lookup service.
type Quote struct {
	Code   string  `json:"code"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
	Volume int     `json:"volume"`
}
