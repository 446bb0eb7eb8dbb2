package models

// Status marks master data as usable for new documents.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

// DocStatus is the lifecycle state of a financial document. Documents are
// created already POSTED; there is no draft or void state.
type DocStatus string

const (
	DocStatusPosted DocStatus = "POSTED"
)

type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "CASH"
	PaymentMethodBank   PaymentMethod = "BANK"
	PaymentMethodCredit PaymentMethod = "CREDIT"
)
