package dto

type StatusResponse struct {
	Status           string `json:"status"`
	Products         int64  `json:"products"`
	Invoices         int64  `json:"invoices"`
	InvoiceLines     int64  `json:"invoice_lines"`
	SnapshotID       string `json:"snapshot_id,omitempty"`
	SnapshotProducts int    `json:"snapshot_products"`
	SnapshotLoadedAt string `json:"snapshot_loaded_at,omitempty"`
}

type ReloadResponse struct {
	SnapshotID string `json:"snapshot_id"`
	Products   int    `json:"products"`
	Vectorized int    `json:"vectorized"`
}
