package service

// LogDelta 一次台账追加量。台账是流水不是集合：同一 delta 追加两次
// 就是两条记录、两次计入余额，调用方不允许自动重试。
type LogDelta struct {
	Particulars string  `json:"particulars" binding:"required"`
	Inward      float64 `json:"inward" binding:"gte=0"`
	Outward     float64 `json:"outward" binding:"gte=0"`
	Remarks     string  `json:"remarks"`
}

// nextBalance 余额递推：balance[n] = balance[n-1] + inward[n] - outward[n]
func nextBalance(previous, inward, outward float64) float64 {
	return previous + inward - outward
}

// clampBalance 原材料余额不允许为负，扣到底即归零
func clampBalance(balance float64) float64 {
	if balance < 0 {
		return 0
	}
	return balance
}
