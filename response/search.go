package response

// Search is the typed view over searchTransaction responses. Transactions
// keep the gateway's order; lookups scan linearly and return the first
// match.
type Search struct {
	Base
}

func NewSearch(p Payload) *Search {
	return &Search{Base{data: p}}
}

func (s *Search) Transactions() []Payload {
	raw, ok := s.data["transaction"]
	if !ok {
		return nil
	}

	list, ok := raw.([]any)
	if !ok {
		return nil
	}

	out := make([]Payload, 0, len(list))
	for _, item := range list {
		if m, ok := item.(map[string]any); ok {
			out = append(out, Payload(m))
		}
	}
	return out
}

func (s *Search) TransactionCount() int {
	return len(s.Transactions())
}

func (s *Search) FirstTransaction() (Payload, bool) {
	txs := s.Transactions()
	if len(txs) == 0 {
		return nil, false
	}
	return txs[0], true
}

func (s *Search) TransactionByTrxID(trxID string) (Payload, bool) {
	for _, tx := range s.Transactions() {
		if id, ok := tx.String("trxID"); ok && id == trxID {
			return tx, true
		}
	}
	return nil, false
}

func (s *Search) TransactionByPaymentID(paymentID string) (Payload, bool) {
	for _, tx := range s.Transactions() {
		if id, ok := tx.String("paymentID"); ok && id == paymentID {
			return tx, true
		}
	}
	return nil, false
}
