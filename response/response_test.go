package response_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sabitahmadumid/bkash-go/response"
)

func TestIsSuccess_OnlyForStatusCode0000(t *testing.T) {
	cases := []struct {
		name    string
		payload response.Payload
		want    bool
	}{
		{"success code", response.Payload{"statusCode": "0000"}, true},
		{"failure code", response.Payload{"statusCode": "2001"}, false},
		{"missing field", response.Payload{"paymentID": "TR001"}, false},
		{"empty payload", response.Payload{}, false},
		{"numeric zero is not the string", response.Payload{"statusCode": float64(0)}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := response.NewPayment(tc.payload)
			require.Equal(t, tc.want, p.IsSuccess())
			require.Equal(t, !tc.want, p.HasError())
		})
	}
}

func TestPayment_AmountRoundTrip(t *testing.T) {
	p := response.NewPayment(response.Payload{"amount": "100.50"})

	amount, ok := p.Amount()
	require.True(t, ok)
	require.Equal(t, 100.50, amount)
}

func TestPayment_AbsentFields(t *testing.T) {
	p := response.NewPayment(response.Payload{})

	_, ok := p.PaymentID()
	require.False(t, ok)

	_, ok = p.Amount()
	require.False(t, ok)

	_, ok = p.CreateTime()
	require.False(t, ok)

	require.False(t, p.IsCompleted())
	require.False(t, p.IsCancelled())
	require.False(t, p.IsFailed())
}

func TestPayment_TransactionStatusIsCaseSensitive(t *testing.T) {
	completed := response.NewPayment(response.Payload{"transactionStatus": "Completed"})
	require.True(t, completed.IsCompleted())

	lower := response.NewPayment(response.Payload{"transactionStatus": "completed"})
	require.False(t, lower.IsCompleted())

	cancelled := response.NewPayment(response.Payload{"transactionStatus": "Cancelled"})
	require.True(t, cancelled.IsCancelled())
	require.False(t, cancelled.IsCompleted())

	failed := response.NewPayment(response.Payload{"transactionStatus": "Failed"})
	require.True(t, failed.IsFailed())
}

func TestBase_ErrorMessageFallsBackToStatusMessage(t *testing.T) {
	withBoth := response.NewQuery(response.Payload{
		"errorMessage":  "explicit error",
		"statusMessage": "status text",
	})
	msg, ok := withBoth.ErrorMessage()
	require.True(t, ok)
	require.Equal(t, "explicit error", msg)

	statusOnly := response.NewQuery(response.Payload{"statusMessage": "status text"})
	msg, ok = statusOnly.ErrorMessage()
	require.True(t, ok)
	require.Equal(t, "status text", msg)

	neither := response.NewQuery(response.Payload{})
	_, ok = neither.ErrorMessage()
	require.False(t, ok)
}

func TestRefund_FieldFallbackOrder(t *testing.T) {
	onlyLegacy := response.NewRefund(response.Payload{"refundID": "RF001"})
	id, ok := onlyLegacy.RefundID()
	require.True(t, ok)
	require.Equal(t, "RF001", id)

	both := response.NewRefund(response.Payload{
		"refundID":    "RF001",
		"refundTrxID": "RTX999",
	})
	id, ok = both.RefundID()
	require.True(t, ok)
	require.Equal(t, "RTX999", id, "refundTrxID wins when both are present")
}

func TestRefund_OriginalPaymentFallbackOrder(t *testing.T) {
	cases := []struct {
		name    string
		payload response.Payload
		want    string
	}{
		{"originalPaymentID first", response.Payload{
			"originalPaymentID": "A", "originalTrxID": "B", "paymentID": "C",
		}, "A"},
		{"originalTrxID second", response.Payload{
			"originalTrxID": "B", "paymentID": "C",
		}, "B"},
		{"paymentID last", response.Payload{"paymentID": "C"}, "C"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := response.NewRefund(tc.payload)
			id, ok := r.OriginalPaymentID()
			require.True(t, ok)
			require.Equal(t, tc.want, id)
		})
	}

	r := response.NewRefund(response.Payload{})
	_, ok := r.OriginalPaymentID()
	require.False(t, ok)
}

func TestSearch_Lookups(t *testing.T) {
	var payload response.Payload
	body := `{
		"statusCode": "0000",
		"transaction": [
			{"trxID": "TRX1", "paymentID": "PAY1", "amount": "10.00"},
			{"trxID": "TRX2", "paymentID": "PAY2", "amount": "20.00"},
			{"trxID": "TRX2", "paymentID": "PAY3", "amount": "30.00"}
		]
	}`
	require.NoError(t, json.Unmarshal([]byte(body), &payload))

	s := response.NewSearch(payload)
	require.Equal(t, 3, s.TransactionCount())

	first, ok := s.FirstTransaction()
	require.True(t, ok)
	trx, _ := first.String("trxID")
	require.Equal(t, "TRX1", trx)

	// first match wins on duplicate trxID
	tx, ok := s.TransactionByTrxID("TRX2")
	require.True(t, ok)
	pay, _ := tx.String("paymentID")
	require.Equal(t, "PAY2", pay)

	tx, ok = s.TransactionByPaymentID("PAY3")
	require.True(t, ok)
	amount, _ := tx.Float("amount")
	require.Equal(t, 30.00, amount)

	_, ok = s.TransactionByTrxID("missing")
	require.False(t, ok)
}

func TestSearch_EmptyOrMalformedTransactionList(t *testing.T) {
	empty := response.NewSearch(response.Payload{"statusCode": "0000"})
	require.Equal(t, 0, empty.TransactionCount())
	_, ok := empty.FirstTransaction()
	require.False(t, ok)

	malformed := response.NewSearch(response.Payload{"transaction": "not a list"})
	require.Nil(t, malformed.Transactions())
}

func TestAgreement_Accessors(t *testing.T) {
	a := response.NewAgreement(response.Payload{
		"statusCode":      "0000",
		"agreementID":     "AGR001",
		"agreementStatus": "Completed",
		"bkashURL":        "https://example.test/authorize",
		"payerReference":  "customer_01",
	})

	require.True(t, a.IsSuccess())

	id, ok := a.AgreementID()
	require.True(t, ok)
	require.Equal(t, "AGR001", id)

	status, ok := a.AgreementStatus()
	require.True(t, ok)
	require.Equal(t, "Completed", status)

	u, ok := a.AgreementURL()
	require.True(t, ok)
	require.Equal(t, "https://example.test/authorize", u)
}

func TestPayload_TimeParsing(t *testing.T) {
	p := response.NewPayment(response.Payload{
		"paymentExecuteTime": "2024-03-01T10:15:30Z",
	})

	ts, ok := p.PaymentExecuteTime()
	require.True(t, ok)
	require.Equal(t, 2024, ts.Year())

	bad := response.NewPayment(response.Payload{"paymentExecuteTime": "not a time"})
	_, ok = bad.PaymentExecuteTime()
	require.False(t, ok)
}
