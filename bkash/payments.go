package bkash

import (
	"context"

	"github.com/sabitahmadumid/bkash-go/config"
	"github.com/sabitahmadumid/bkash-go/events"
	"github.com/sabitahmadumid/bkash-go/response"
	"github.com/sabitahmadumid/bkash-go/validate"
)

// Payment mode codes. The mode travels in the payload, not the URL.
const (
	modeAgreement = "0000" // agreement creation
	modeTokenized = "0001" // payment under an existing agreement
	modeOneOff    = "0011" // one-time payment
)

type PaymentRequest struct {
	PayerReference string
	Amount         float64
	InvoiceNumber  string

	// CallbackURL falls back to the configured one when empty.
	CallbackURL string
	// AgreementID switches the payment to tokenized mode when set.
	AgreementID string
	// MerchantAssociationInfo is optional and validated when present.
	MerchantAssociationInfo string
}

// CreatePayment initiates a payment. With an AgreementID the payment
// runs under the agreement (mode 0001); without one it is a one-time
// payment (mode 0011).
func (c *Client) CreatePayment(ctx context.Context, req PaymentRequest) (*response.Payment, error) {
	if err := validate.Field("payerReference", req.PayerReference); err != nil {
		return nil, err
	}
	if err := validate.Field("merchantInvoiceNumber", req.InvoiceNumber); err != nil {
		return nil, err
	}
	if err := validate.FieldOptional("merchantAssociationInfo", req.MerchantAssociationInfo); err != nil {
		return nil, err
	}
	if c.cfg.Validation.StrictMode {
		if err := validate.Amount(req.Amount, c.cfg.Validation.MinAmount, c.cfg.Validation.MaxAmount); err != nil {
			return nil, err
		}
	}

	callbackURL := req.CallbackURL
	if callbackURL == "" {
		callbackURL = c.cfg.CallbackURL
	}

	mode := modeOneOff
	if req.AgreementID != "" {
		mode = modeTokenized
	}

	payload := map[string]any{
		"mode":                  mode,
		"amount":                FormatAmount(req.Amount),
		"callbackURL":           callbackURL,
		"payerReference":        req.PayerReference,
		"currency":              c.cfg.Currency,
		"merchantInvoiceNumber": req.InvoiceNumber,
		"intent":                "sale",
	}
	if req.AgreementID != "" {
		payload["agreementID"] = req.AgreementID
	}
	if req.MerchantAssociationInfo != "" {
		payload["merchantAssociationInfo"] = req.MerchantAssociationInfo
	}

	raw, err := c.post(ctx, config.EndpointCreate, payload)
	if err != nil {
		return nil, err
	}

	c.logTransaction("create_payment", raw)
	return response.NewPayment(raw), nil
}

// ExecutePayment completes a payment after the payer confirmed it.
// PaymentCompleted or PaymentFailed is published depending on the
// resulting transaction status.
func (c *Client) ExecutePayment(ctx context.Context, paymentID string) (*response.Payment, error) {
	if err := validate.Field("paymentID", paymentID); err != nil {
		return nil, err
	}

	raw, err := c.post(ctx, config.EndpointExecute, map[string]any{
		"paymentID": paymentID,
	})
	if err != nil {
		return nil, err
	}

	c.logTransaction("execute_payment", raw)

	// Events fire only for well-formed success payloads; error payloads
	// already surface through the response itself.
	payment := response.NewPayment(raw)
	if payment.IsSuccess() {
		switch {
		case payment.IsCompleted():
			c.publish(events.Event{Type: events.PaymentCompleted, Payload: payment})
		case payment.IsFailed():
			c.publish(events.Event{Type: events.PaymentFailed, Payload: payment})
		}
	}

	return payment, nil
}

func (c *Client) QueryPayment(ctx context.Context, paymentID string) (*response.Query, error) {
	if err := validate.Field("paymentID", paymentID); err != nil {
		return nil, err
	}

	raw, err := c.post(ctx, config.EndpointQuery, map[string]any{
		"paymentID": paymentID,
	})
	if err != nil {
		return nil, err
	}

	c.logTransaction("query_payment", raw)
	return response.NewQuery(raw), nil
}

// RefundPayment refunds a completed payment, fully or partially.
func (c *Client) RefundPayment(ctx context.Context, paymentID string, amount float64, reason string) (*response.Refund, error) {
	if err := validate.Field("paymentID", paymentID); err != nil {
		return nil, err
	}
	if err := validate.Field("reason", reason); err != nil {
		return nil, err
	}
	if c.cfg.Validation.StrictMode {
		if err := validate.Amount(amount, c.cfg.Validation.MinAmount, c.cfg.Validation.MaxAmount); err != nil {
			return nil, err
		}
	}

	raw, err := c.post(ctx, config.EndpointRefund, map[string]any{
		"paymentID": paymentID,
		"amount":    FormatAmount(amount),
		"reason":    reason,
	})
	if err != nil {
		return nil, err
	}

	c.logTransaction("refund_payment", raw)
	return response.NewRefund(raw), nil
}

// RefundStatus looks up the state of a previously requested refund.
func (c *Client) RefundStatus(ctx context.Context, paymentID, trxID string) (*response.Refund, error) {
	if err := validate.Field("paymentID", paymentID); err != nil {
		return nil, err
	}
	if err := validate.Field("trxID", trxID); err != nil {
		return nil, err
	}

	raw, err := c.post(ctx, config.EndpointRefundStatus, map[string]any{
		"paymentID": paymentID,
		"trxID":     trxID,
	})
	if err != nil {
		return nil, err
	}

	c.logTransaction("refund_status", raw)
	return response.NewRefund(raw), nil
}

// SearchTransaction looks up transactions by gateway trxID.
func (c *Client) SearchTransaction(ctx context.Context, trxID string) (*response.Search, error) {
	if err := validate.Field("trxID", trxID); err != nil {
		return nil, err
	}

	raw, err := c.post(ctx, config.EndpointSearch, map[string]any{
		"trxID": trxID,
	})
	if err != nil {
		return nil, err
	}

	c.logTransaction("search_transaction", raw)
	return response.NewSearch(raw), nil
}
