package model

type BankAccount struct {
	Record
}

var BankAccounts = Kind[BankAccount]{
	Meta: Meta{
		Name:      "bankAccount",
		RouteBase: "bank-account",
		Resource:  "api/bank-accounts",
		Table:     "bank_account",
	},
	Build: func(r Record) BankAccount {
		return BankAccount{Record: r}
	},
}
