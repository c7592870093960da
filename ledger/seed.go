package ledger

import "github.com/ergeargwer/investment-competition-platform-v2/models"

// SeedState returns the opening ledger for the two-person team. The process
// always starts from this state; there is no durable persistence.
func SeedState() models.LedgerState {
	return models.LedgerState{
		UserFunds: map[string]models.Funds{
			"復忠": {Allocated: 30000000, Available: 10500000, Invested: 19500000},
			"信全": {Allocated: 70000000, Available: 15000000, Invested: 55000000},
		},
		TeamStats: models.TeamStats{
			InitialAssets:     100000000,
			CurrentAssets:     103500000,
			InvestmentRatio:   74.5,
			TotalProfit:       3500000,
			TotalStocks:       12,
			TotalTransactions: 28,
		},
		Holdings: []models.Holding{
			{
				ID:               "1",
				Code:             "2330",
				Name:             "台積電",
				Quantity:         10,
				BuyPrice:         550.0,
				CurrentPrice:     580.0,
				Profit:           300000,
				ProfitPercentage: 5.45,
				Owner:            "復忠",
			},
			{
				ID:               "2",
				Code:             "2454",
				Name:             "聯發科",
				Quantity:         5,
				BuyPrice:         1050.0,
				CurrentPrice:     1100.0,
				Profit:           250000,
				ProfitPercentage: 4.76,
				Owner:            "信全",
			},
		},
		Activities: []models.Activity{
			{ID: "1", Time: "2025-03-15 09:30", User: "復忠", Action: "買入台積電(2330) 10張，價格550元"},
			{ID: "2", Time: "2025-03-15 10:15", User: "信全", Action: "買入聯發科(2454) 5張，價格1050元"},
		},
		Warnings: []models.Warning{
			{ID: "1", Type: "investment_ratio", Message: "團隊投資比例低於70%", Severity: "warning"},
		},
	}
}
