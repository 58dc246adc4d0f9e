package bkash

import (
	"context"

	"github.com/sabitahmadumid/bkash-go/config"
	"github.com/sabitahmadumid/bkash-go/events"
	"github.com/sabitahmadumid/bkash-go/response"
	"github.com/sabitahmadumid/bkash-go/validate"
)

// CreateAgreement starts a tokenized-checkout agreement. The payer
// completes authorization at the returned AgreementURL; callbackURL
// falls back to the configured one when empty.
func (c *Client) CreateAgreement(ctx context.Context, payerReference, callbackURL string) (*response.Agreement, error) {
	if err := validate.Field("payerReference", payerReference); err != nil {
		return nil, err
	}

	if callbackURL == "" {
		callbackURL = c.cfg.CallbackURL
	}

	raw, err := c.post(ctx, config.EndpointAgreementCreate, map[string]any{
		"mode":           modeAgreement,
		"callbackURL":    callbackURL,
		"payerReference": payerReference,
		"currency":       c.cfg.Currency,
		"intent":         "sale",
	})
	if err != nil {
		return nil, err
	}

	c.logTransaction("create_agreement", raw)
	return response.NewAgreement(raw), nil
}

// ExecuteAgreement finalizes an agreement after the payer authorized it.
func (c *Client) ExecuteAgreement(ctx context.Context, paymentID string) (*response.Agreement, error) {
	if err := validate.Field("paymentID", paymentID); err != nil {
		return nil, err
	}

	raw, err := c.post(ctx, config.EndpointAgreementExecute, map[string]any{
		"paymentID": paymentID,
	})
	if err != nil {
		return nil, err
	}

	c.logTransaction("execute_agreement", raw)

	agreement := response.NewAgreement(raw)
	if agreement.IsSuccess() {
		c.publish(events.Event{Type: events.AgreementCreated, Payload: agreement})
	}

	return agreement, nil
}

func (c *Client) QueryAgreement(ctx context.Context, agreementID string) (*response.Agreement, error) {
	if err := validate.Field("agreementID", agreementID); err != nil {
		return nil, err
	}

	raw, err := c.post(ctx, config.EndpointAgreementQuery, map[string]any{
		"agreementID": agreementID,
	})
	if err != nil {
		return nil, err
	}

	c.logTransaction("query_agreement", raw)
	return response.NewAgreement(raw), nil
}

func (c *Client) CancelAgreement(ctx context.Context, agreementID string) (*response.Agreement, error) {
	if err := validate.Field("agreementID", agreementID); err != nil {
		return nil, err
	}

	raw, err := c.post(ctx, config.EndpointAgreementCancel, map[string]any{
		"agreementID": agreementID,
	})
	if err != nil {
		return nil, err
	}

	c.logTransaction("cancel_agreement", raw)
	return response.NewAgreement(raw), nil
}
