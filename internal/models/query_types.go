// internal/models/query_types.go
package models

type QueryType string

const (
	QueryTypeUserProfiles     QueryType = "user_profiles"
	QueryTypeBusinessIdeas    QueryType = "business_ideas"
	QueryTypeInvestmentOffers QueryType = "investment_offers"
)
