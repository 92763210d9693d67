package request

type ChargePaymentRequest struct {
	MethodID string  `json:"method_id" validate:"required,uuid4"`
	Amount   float64 `json:"amount" validate:"required,gt=0"`
	Notes    string  `json:"notes"`
}

type RefundPaymentRequest struct {
	MethodID string  `json:"method_id" validate:"required,uuid4"`
	Amount   float64 `json:"amount" validate:"required,gt=0"`
	Reason   string  `json:"reason" validate:"required"`
}
