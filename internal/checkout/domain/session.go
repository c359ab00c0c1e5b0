package domain

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Session is the per-visit checkout state machine. Error is set only in the
// error state; CheckoutURL only in success.
type Session struct {
	Status      Status
	Error       string
	CheckoutURL string
}
