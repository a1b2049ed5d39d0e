package constvars

const (
	RedisKeyCatalogServices       = "catalog:services"
	RedisKeyCatalogOffers         = "catalog:offers"
	RedisKeySettlementLockFormat  = "settlement:lock:%s"
	RedisKeyEarningsReconcileLock = "earnings:reconcile:leader"
)
