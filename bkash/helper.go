package bkash

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sabitahmadumid/bkash-go/dispatch"
	"github.com/sabitahmadumid/bkash-go/response"
)

// ProcessPayment creates a payment and turns a gateway-level rejection
// into an error, so callers only handle the happy path and one error
// channel.
func (c *Client) ProcessPayment(ctx context.Context, req PaymentRequest) (*response.Payment, error) {
	payment, err := c.CreatePayment(ctx, req)
	if err != nil {
		return nil, err
	}

	if !payment.IsSuccess() {
		msg, _ := payment.ErrorMessage()
		code, _ := payment.ErrorCode()
		return nil, &dispatch.APIError{
			Code:    code,
			Message: fmt.Sprintf("payment creation failed: %s", msg),
		}
	}

	return payment, nil
}

// HandleCallback processes the gateway's redirect callback and executes
// the payment when the payer approved it. Expected keys: paymentID,
// status.
func (c *Client) HandleCallback(ctx context.Context, data map[string]string) (*response.Payment, error) {
	paymentID := data["paymentID"]
	if paymentID == "" {
		return nil, fmt.Errorf("invalid callback data: missing paymentID")
	}

	if status := data["status"]; status != "success" {
		if status == "" {
			status = "unknown"
		}
		return nil, fmt.Errorf("payment was not successful: %s", status)
	}

	return c.ExecutePayment(ctx, paymentID)
}

// PaymentStatusResult is the flattened status view PaymentStatus
// returns. When the query itself fails, OK is false and Err carries the
// failure; the zero values of the other fields apply.
type PaymentStatusResult struct {
	OK        bool
	Status    string
	PaymentID string
	TrxID     string
	Amount    float64
	Completed bool
	Cancelled bool
	Failed    bool
	Raw       response.Payload
	Err       error
}

// PaymentStatus queries a payment and folds the outcome, including any
// query error, into one result value. Convenient for handlers that
// render status without branching on an error channel.
func (c *Client) PaymentStatus(ctx context.Context, paymentID string) PaymentStatusResult {
	query, err := c.QueryPayment(ctx, paymentID)
	if err != nil {
		return PaymentStatusResult{Err: err}
	}

	result := PaymentStatusResult{
		OK:        true,
		Completed: query.IsCompleted(),
		Cancelled: query.IsCancelled(),
		Failed:    query.IsFailed(),
		Raw:       query.Raw(),
	}
	result.Status, _ = query.TransactionStatus()
	result.PaymentID, _ = query.PaymentID()
	result.TrxID, _ = query.TrxID()
	result.Amount, _ = query.Amount()

	return result
}

// IsRefundable reports whether the payment completed and can therefore
// be refunded. Query failures count as not refundable.
func (c *Client) IsRefundable(ctx context.Context, paymentID string) bool {
	query, err := c.QueryPayment(ctx, paymentID)
	if err != nil {
		return false
	}
	return query.IsCompleted()
}

// FormatAmount renders an amount the way the gateway expects: two
// decimal places, dot separator, no grouping.
func FormatAmount(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

// GeneratePayerReference returns a unique payer reference, e.g.
// "PAY_1f0c0e8a2b9d4c".
func GeneratePayerReference(prefix string) string {
	if prefix == "" {
		prefix = "PAY"
	}
	return fmt.Sprintf("%s_%s", prefix, shortID())
}

// GenerateInvoiceNumber returns a unique invoice number carrying the
// current date, e.g. "INV_20240301_1f0c0e8a2b".
func GenerateInvoiceNumber(prefix string) string {
	if prefix == "" {
		prefix = "INV"
	}
	return fmt.Sprintf("%s_%s_%s", prefix, time.Now().Format("20060102"), shortID())
}

func shortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}
