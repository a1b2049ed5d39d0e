package constvars

const (
	MongoCollectionIdentities        = "identities"
	MongoCollectionUsers             = "users"
	MongoCollectionAddresses         = "addresses"
	MongoCollectionAddressOwners     = "address_owners"
	MongoCollectionAppointments      = "appointments"
	MongoCollectionPayments          = "payments"
	MongoCollectionFeedbacks         = "feedbacks"
	MongoCollectionEarningsSummaries = "earnings_summaries"
	MongoCollectionServices          = "services"
	MongoCollectionOffers            = "offers"
)
