package models

// Funds tracks one participant's capital split. Available plus invested
// should stay within the allocated amount; the buy path enforces it through
// the available-funds check.
type Funds struct {
	Allocated float64 `json:"allocated"`
	Available float64 `json:"available"`
	Invested  float64 `json:"invested"`
}

// Holding is one open position. Profit and ProfitPercentage are derived and
// recomputed after every mutation, never authoritative on their own.
type Holding struct {
	ID               string  `json:"id"`
	Code             string  `json:"code"`
	Name             string  `json:"name"`
	Quantity         int     `json:"quantity"`
	BuyPrice         float64 `json:"buyPrice"`
	CurrentPrice     float64 `json:"currentPrice"`
	Profit           float64 `json:"profit"`
	ProfitPercentage float64 `json:"profitPercentage"`
	Owner            string  `json:"owner"`
}

// TeamStats is derived from funds and holdings after each committed trade.
type TeamStats struct {
	InitialAssets     float64 `json:"initialAssets"`
	CurrentAssets     float64 `json:"currentAssets"`
	InvestmentRatio   float64 `json:"investmentRatio"`
	TotalProfit       float64 `json:"totalProfit"`
	TotalStocks       int     `json:"totalStocks"`
	TotalTransactions int     `json:"totalTransactions"`
}

// Activity is one append-only log entry, newest first.
type Activity struct {
	ID     string `json:"id"`
	Time   string `json:"time"`
	User   string `json:"user"`
	Action string `json:"action"`
}

type Warning struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

// LedgerState is the full shared state sent to every observer on connect.
type LedgerState struct {
	UserFunds  map[string]Funds `json:"userFunds"`
	TeamStats  TeamStats        `json:"teamStats"`
	Holdings   []Holding        `json:"holdings"`
	Activities []Activity       `json:"activities"`
	Warnings   []Warning        `json:"warnings"`
}
