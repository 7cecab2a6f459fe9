package report

// DashboardSummary aggregates the headline figures for the dashboard view.
type DashboardSummary struct {
	QuotesByStatus     map[string]int64 `json:"quotes_by_status"`
	OpenQuotes         int64            `json:"open_quotes"`
	RevenueThisYear    string           `json:"revenue_this_year"`
	OutstandingBalance string           `json:"outstanding_balance"`
	MissionsInProgress int64            `json:"missions_in_progress"`
	ActiveEmployees    int64            `json:"active_employees"`
	Prospects          int64            `json:"prospects"`
}

// MonthlyRevenue is one month of recorded payments.
type MonthlyRevenue struct {
	Month   string `json:"month"`
	Revenue string `json:"revenue"`
}
