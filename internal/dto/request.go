package dto

type ResolvePaymentRequest struct {
	Decision string `json:"decision"`
}
