package model

// OrderStats amounts are minor units; revenue counts paid orders only.
type OrderStats struct {
	TotalOrders       int   `json:"totalorders"`
	TotalRevenue      int64 `json:"totalrevenue"`
	RevenueLast30Days int64 `json:"revenuelast30days"`
	AverageOrderValue int64 `json:"averageordervalue"`
}

type SubscriptionStats struct {
	ActiveCount int                        `json:"activecount"`
	MRR         int64                      `json:"mrr"`
	ARR         int64                      `json:"arr"`
	ByStatus    map[SubscriptionStatus]int `json:"bystatus"`
}
