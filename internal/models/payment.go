package models

// gateway-reported payment status
const (
	PaymentStatusCreated   = "created"
	PaymentStatusPending   = "pending"
	PaymentStatusApproved  = "approved"
	PaymentStatusRejected  = "rejected"
	PaymentStatusCancelled = "cancelled"
)

// Payment is the gateway's authoritative record for one payment attempt.
// ExternalReference echoes the order id supplied at issuance.
type Payment struct {
	TransactionID     string
	Status            string
	ExternalReference string
}

// PaymentNotification is the trusted subset of a gateway webhook body:
// only the notification type and the transaction id. Everything else in
// the body is ignored; the actual payment state is re-fetched from the
// gateway before acting.
type PaymentNotification struct {
	Type          string
	TransactionID string
}
