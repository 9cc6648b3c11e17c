package model

type CreditCard struct {
	Record
}

var CreditCards = Kind[CreditCard]{
	Meta: Meta{
		Name:      "creditCard",
		RouteBase: "credit-card",
		Resource:  "api/credit-cards",
		Table:     "credit_card",
	},
	Build: func(r Record) CreditCard {
		return CreditCard{Record: r}
	},
}
