package bonus

type CreateBonusRequest struct {
	EmployeeID string  `json:"employee_id" binding:"required,uuid"`
	BonusType  string  `json:"bonus_type" binding:"required"`
	Amount     float64 `json:"amount" binding:"required"`
	IsTaxable  bool    `json:"is_taxable"`
	TaxAmount  float64 `json:"tax_amount"`
	Remarks    string  `json:"remarks"`
}

type UpdateBonusRequest struct {
	BonusType string  `json:"bonus_type" binding:"required"`
	Amount    float64 `json:"amount" binding:"required"`
	IsTaxable bool    `json:"is_taxable"`
	TaxAmount float64 `json:"tax_amount"`
	Remarks   string  `json:"remarks"`
}

type MarkPaidRequest struct {
	PaymentDate string `json:"payment_date"`
}

type BonusResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`

	BonusType string  `json:"bonus_type"`
	Amount    float64 `json:"amount"`
	IsTaxable bool    `json:"is_taxable"`
	TaxAmount float64 `json:"tax_amount"`
	NetAmount float64 `json:"net_amount"`

	PaymentStatus string `json:"payment_status"`
	PaymentDate   string `json:"payment_date,omitempty"`
	ApprovedAt    string `json:"approved_at,omitempty"`
	Remarks       string `json:"remarks,omitempty"`
}
