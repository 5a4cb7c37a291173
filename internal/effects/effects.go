// Package effects describes the best-effort side effects a lifecycle
// transition produces. The lifecycle engine returns them as plain values;
// the dispatcher performs them after the database transaction commits, so
// a failed notification can never roll back or block a state change.
package effects

type Effect interface {
	// RoutingKey is the topic key the effect is published under.
	RoutingKey() string
}

// NotifyUser is an in-app notification for the notification sink.
type NotifyUser struct {
	UserID   string            `json:"user_id"`
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	Message  string            `json:"message"`
	Link     string            `json:"link,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

func (n NotifyUser) RoutingKey() string { return "notification." + n.Type }

// SendEmail is a templated-externally email request for the email sender.
type SendEmail struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

func (SendEmail) RoutingKey() string { return "email.send" }

// RequestRefund asks the external payment-gateway worker to execute a
// refund whose bookkeeping has already been recorded.
type RequestRefund struct {
	TransactionID uint  `json:"transaction_id"`
	BookingID     uint  `json:"booking_id"`
	Amount        int64 `json:"amount"`
}

func (RequestRefund) RoutingKey() string { return "payment.refund.requested" }
