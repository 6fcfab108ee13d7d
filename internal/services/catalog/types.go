package catalog

// Payment methods accepted for package purchases. Card charges settle
// synchronously through the gateway; bank transfers settle later and go
// through the pending-approval workflow.
const (
	MethodCard         = "card"
	MethodBankTransfer = "bank_transfer"
)

// PurchaseRequest describes a point package purchase.
type PurchaseRequest struct {
	PackageID     uint   `json:"package_id"`
	PaymentMethod string `json:"payment_method"`
	CardToken     string `json:"card_token,omitempty"`
}

// PurchaseResult reports the outcome of a purchase. Pending is true when the
// credit awaits settlement confirmation; the points only land on approval.
type PurchaseResult struct {
	TransactionID    uint   `json:"transaction_id"`
	Points           int64  `json:"points"`
	Pending          bool   `json:"pending"`
	GatewayReference string `json:"gateway_reference,omitempty"`
}
