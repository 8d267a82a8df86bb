package domain

// Table is a mongo collection name
type Table string

const (
	TableListings    Table = "listings"
	TableActivities  Table = "activities"
	TableFeePolicies Table = "fee_policies"
	TableCounters    Table = "counters"
)
