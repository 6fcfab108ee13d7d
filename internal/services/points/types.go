package points

// TransferResult carries the pair of ledger entries a transfer produced.
type TransferResult struct {
	DebitTransactionID  uint `json:"debit_transaction_id"`
	CreditTransactionID uint `json:"credit_transaction_id"`
}

// BulkFailure describes one failed item of a bulk operation.
type BulkFailure struct {
	ID    uint   `json:"id"`
	Error string `json:"error"`
}

// BulkResult aggregates per-item outcomes of a bulk operation. Bulk
// operations never stop at the first error; every id is attempted.
type BulkResult struct {
	Succeeded int           `json:"succeeded"`
	Failed    []BulkFailure `json:"failed"`
}

// MetricsCollector defines the interface for collecting points metrics.
type MetricsCollector interface {
	RecordTransaction(operation string, amount int64)
	RecordError(operation, errType string)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (n *NoopMetricsCollector) RecordTransaction(string, int64) {}
func (n *NoopMetricsCollector) RecordError(string, string)      {}
