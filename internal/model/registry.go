package model

// All lists every entity type served by the API.
var All = []Meta{
	BankAccounts.Meta,
	CreditCards.Meta,
}
