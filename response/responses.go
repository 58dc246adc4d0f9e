package response

import "time"

// Agreement is the typed view over agreement create/execute/query/cancel
// responses.
type Agreement struct {
	Base
}

func NewAgreement(p Payload) *Agreement {
	return &Agreement{Base{data: p}}
}

func (a *Agreement) AgreementID() (string, bool) {
	return a.data.String("agreementID")
}

func (a *Agreement) AgreementStatus() (string, bool) {
	return a.data.String("agreementStatus")
}

// AgreementURL is the redirect target the payer must visit to authorize.
func (a *Agreement) AgreementURL() (string, bool) {
	return a.data.String("bkashURL")
}

func (a *Agreement) PayerReference() (string, bool) {
	return a.data.String("payerReference")
}

func (a *Agreement) CustomerMsisdn() (string, bool) {
	return a.data.String("customerMsisdn")
}

func (a *Agreement) AgreementExecuteTime() (time.Time, bool) {
	return a.data.Time("agreementExecuteTime")
}

// Payment is the typed view over payment create/execute responses.
type Payment struct {
	Base
}

func NewPayment(p Payload) *Payment {
	return &Payment{Base{data: p}}
}

func (p *Payment) PaymentID() (string, bool) {
	return p.data.String("paymentID")
}

// TrxID is only present on execute responses.
func (p *Payment) TrxID() (string, bool) {
	return p.data.String("trxID")
}

func (p *Payment) Amount() (float64, bool) {
	return p.data.Float("amount")
}

// PaymentURL is the redirect target the payer must visit to confirm.
func (p *Payment) PaymentURL() (string, bool) {
	return p.data.String("bkashURL")
}

func (p *Payment) CustomerMsisdn() (string, bool) {
	return p.data.String("customerMsisdn")
}

func (p *Payment) TransactionStatus() (string, bool) {
	return p.transactionStatus()
}

func (p *Payment) InvoiceNumber() (string, bool) {
	return p.data.String("merchantInvoiceNumber")
}

func (p *Payment) Currency() (string, bool) {
	return p.data.String("currency")
}

func (p *Payment) Intent() (string, bool) {
	return p.data.String("intent")
}

func (p *Payment) Mode() (string, bool) {
	return p.data.String("mode")
}

func (p *Payment) PayerReference() (string, bool) {
	return p.data.String("payerReference")
}

func (p *Payment) AgreementID() (string, bool) {
	return p.data.String("agreementID")
}

func (p *Payment) CreateTime() (time.Time, bool) {
	return p.data.Time("createTime")
}

func (p *Payment) UpdateTime() (time.Time, bool) {
	return p.data.Time("updateTime")
}

func (p *Payment) PaymentExecuteTime() (time.Time, bool) {
	return p.data.Time("paymentExecuteTime")
}

func (p *Payment) IsCompleted() bool {
	s, ok := p.transactionStatus()
	return ok && s == StatusCompleted
}

func (p *Payment) IsCancelled() bool {
	s, ok := p.transactionStatus()
	return ok && s == StatusCancelled
}

func (p *Payment) IsFailed() bool {
	s, ok := p.transactionStatus()
	return ok && s == StatusFailed
}

// Query is the typed view over payment status responses.
type Query struct {
	Base
}

func NewQuery(p Payload) *Query {
	return &Query{Base{data: p}}
}

func (q *Query) PaymentID() (string, bool) {
	return q.data.String("paymentID")
}

func (q *Query) TrxID() (string, bool) {
	return q.data.String("trxID")
}

func (q *Query) Amount() (float64, bool) {
	return q.data.Float("amount")
}

func (q *Query) TransactionStatus() (string, bool) {
	return q.transactionStatus()
}

func (q *Query) IsCompleted() bool {
	s, ok := q.transactionStatus()
	return ok && s == StatusCompleted
}

func (q *Query) IsCancelled() bool {
	s, ok := q.transactionStatus()
	return ok && s == StatusCancelled
}

func (q *Query) IsFailed() bool {
	s, ok := q.transactionStatus()
	return ok && s == StatusFailed
}

// Refund is the typed view over refund and refund-status responses. The
// gateway has shipped two payload shapes over time; each accessor applies
// a fixed fallback order, first present wins.
type Refund struct {
	Base
}

func NewRefund(p Payload) *Refund {
	return &Refund{Base{data: p}}
}

func (r *Refund) RefundID() (string, bool) {
	return r.data.firstString("refundTrxID", "refundID")
}

func (r *Refund) OriginalPaymentID() (string, bool) {
	return r.data.firstString("originalPaymentID", "originalTrxID", "paymentID")
}

func (r *Refund) Amount() (float64, bool) {
	return r.data.Float("amount")
}

func (r *Refund) TransactionStatus() (string, bool) {
	return r.transactionStatus()
}

func (r *Refund) CompletedTime() (time.Time, bool) {
	return r.data.Time("completedTime")
}
