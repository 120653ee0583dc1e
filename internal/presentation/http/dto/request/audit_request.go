package request

// MigrateModesRequest carries optional extra label-to-kind mappings for
// the legacy payment-mode migration, e.g. {"paytm": "UPI"}.
type MigrateModesRequest struct {
	Mapping map[string]string `json:"mapping"`
}
