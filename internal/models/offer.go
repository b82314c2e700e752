// internal/models/offer.go
package models

type InvestmentOffer struct {
	ID                  string   `json:"id"`
	InvestorID          string   `json:"investorId"`
	AmountRange         Range    `json:"amountRange"`
	PreferredEquity     Range    `json:"preferredEquity"`
	PreferredStages     []Stage  `json:"preferredStages"`
	PreferredIndustries []string `json:"preferredIndustries"`
	IsActive            bool     `json:"isActive"`
}
