package models

const (
	TradeBuy  = "buy"
	TradeSell = "sell"
)

// LotSize converts a quantity×price figure into a monetary amount. The seed
// market trades in lots of 1000 shares.
const LotSize = 1000

// TradeOrder is a buy or sell instruction submitted by an observer.
type TradeOrder struct {
	Type     string  `json:"type"`
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Owner    string  `json:"owner"`
}

// Amount is the monetary value of the order: quantity × price × lot size.
func (o TradeOrder) Amount() float64 {
	return float64(o.Quantity) * o.Price * LotSize
}
