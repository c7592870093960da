package ledger

import "github.com/ergeargwer/investment-competition-platform-v2/models"

// The functions in this file are the trade processor: pure validation and
// mutation over a LedgerState. They either mutate the state completely or
// return an error having touched nothing. Callers hold the store lock.

func validateOrder(state *models.LedgerState, order models.TradeOrder) error {
	if order.Type != models.TradeBuy && order.Type != models.TradeSell {
		return ErrInvalidOrder
	}
	if order.Quantity <= 0 || order.Price <= 0 {
		return ErrInvalidOrder
	}
	if _, ok := state.UserFunds[order.Owner]; !ok {
		return ErrUnknownOwner
	}
	return nil
}

func findHolding(state *models.LedgerState, owner, code string) int {
	for i := range state.Holdings {
		if state.Holdings[i].Owner == owner && state.Holdings[i].Code == code {
			return i
		}
	}
	return -1
}

// applyBuy debits the owner's available funds and either averages the order
// into an existing holding or opens a new one with the given id.
func applyBuy(state *models.LedgerState, order models.TradeOrder, newID func() string) error {
	funds := state.UserFunds[order.Owner]
	amount := order.Amount()
	if amount > funds.Available {
		return ErrInsufficientFunds
	}

	funds.Available -= amount
	funds.Invested += amount
	state.UserFunds[order.Owner] = funds

	if i := findHolding(state, order.Owner, order.Code); i >= 0 {
		h := &state.Holdings[i]
		// Weighted average over the pre-mutation quantity.
		totalCost := float64(h.Quantity)*h.BuyPrice + float64(order.Quantity)*order.Price
		h.Quantity += order.Quantity
		h.BuyPrice = totalCost / float64(h.Quantity)
		h.Profit = (h.CurrentPrice - h.BuyPrice) * float64(h.Quantity) * models.LotSize
		h.ProfitPercentage = (h.CurrentPrice/h.BuyPrice - 1) * 100
	} else {
		state.Holdings = append(state.Holdings, models.Holding{
			ID:           newID(),
			Code:         order.Code,
			Name:         order.Name,
			Quantity:     order.Quantity,
			BuyPrice:     order.Price,
			CurrentPrice: order.Price,
			Owner:        order.Owner,
		})
	}

	recomputeTeam(state)
	return nil
}

// applySell credits the proceeds, releases the invested cost basis and
// returns the realized profit delta.
func applySell(state *models.LedgerState, order models.TradeOrder) (float64, error) {
	i := findHolding(state, order.Owner, order.Code)
	if i < 0 || state.Holdings[i].Quantity < order.Quantity {
		return 0, ErrInsufficientHoldings
	}
	h := &state.Holdings[i]

	sellAmount := order.Amount()
	buyAmount := float64(order.Quantity) * h.BuyPrice * models.LotSize
	profitDelta := sellAmount - buyAmount

	funds := state.UserFunds[order.Owner]
	funds.Available += sellAmount
	funds.Invested -= buyAmount
	state.UserFunds[order.Owner] = funds

	state.TeamStats.TotalProfit += profitDelta
	state.TeamStats.CurrentAssets += profitDelta

	if h.Quantity == order.Quantity {
		state.Holdings = append(state.Holdings[:i], state.Holdings[i+1:]...)
	} else {
		// Partial sell: the average buy price of the residual is unchanged.
		h.Quantity -= order.Quantity
		h.Profit = (h.CurrentPrice - h.BuyPrice) * float64(h.Quantity) * models.LotSize
	}

	recomputeTeam(state)
	return profitDelta, nil
}

func recomputeTeam(state *models.LedgerState) {
	invested := 0.0
	for _, funds := range state.UserFunds {
		invested += funds.Invested
	}
	state.TeamStats.TotalStocks = len(state.Holdings)
	state.TeamStats.TotalTransactions++
	state.TeamStats.InvestmentRatio = invested / state.TeamStats.InitialAssets * 100
}
