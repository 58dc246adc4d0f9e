package main

import (
	"github.com/spf13/cobra"

	"github.com/sabitahmadumid/bkash-go/bkash"
)

func createAgreementCmd() *cobra.Command {
	var payerReference, callbackURL string

	cmd := &cobra.Command{
		Use:   "create-agreement",
		Short: "Start a tokenized-checkout agreement",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			resp, err := client.CreateAgreement(cmd.Context(), payerReference, callbackURL)
			if err != nil {
				return err
			}
			return printPayload(resp.Raw())
		},
	}

	cmd.Flags().StringVar(&payerReference, "payer-reference", "", "payer reference (required)")
	cmd.Flags().StringVar(&callbackURL, "callback-url", "", "callback URL override")
	cmd.MarkFlagRequired("payer-reference")

	return cmd
}

func executeAgreementCmd() *cobra.Command {
	var paymentID string

	cmd := &cobra.Command{
		Use:   "execute-agreement",
		Short: "Finalize an agreement after payer authorization",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			resp, err := client.ExecuteAgreement(cmd.Context(), paymentID)
			if err != nil {
				return err
			}
			return printPayload(resp.Raw())
		},
	}

	cmd.Flags().StringVar(&paymentID, "payment-id", "", "payment id from create-agreement (required)")
	cmd.MarkFlagRequired("payment-id")

	return cmd
}

func queryAgreementCmd() *cobra.Command {
	var agreementID string

	cmd := &cobra.Command{
		Use:   "query-agreement",
		Short: "Query agreement status",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			resp, err := client.QueryAgreement(cmd.Context(), agreementID)
			if err != nil {
				return err
			}
			return printPayload(resp.Raw())
		},
	}

	cmd.Flags().StringVar(&agreementID, "agreement-id", "", "agreement id (required)")
	cmd.MarkFlagRequired("agreement-id")

	return cmd
}

func cancelAgreementCmd() *cobra.Command {
	var agreementID string

	cmd := &cobra.Command{
		Use:   "cancel-agreement",
		Short: "Cancel an agreement",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			resp, err := client.CancelAgreement(cmd.Context(), agreementID)
			if err != nil {
				return err
			}
			return printPayload(resp.Raw())
		},
	}

	cmd.Flags().StringVar(&agreementID, "agreement-id", "", "agreement id (required)")
	cmd.MarkFlagRequired("agreement-id")

	return cmd
}

func createPaymentCmd() *cobra.Command {
	var (
		payerReference string
		amount         float64
		invoiceNumber  string
		callbackURL    string
		agreementID    string
	)

	cmd := &cobra.Command{
		Use:   "create-payment",
		Short: "Create a payment (tokenized when --agreement-id is set)",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}

			if invoiceNumber == "" {
				invoiceNumber = bkash.GenerateInvoiceNumber("")
			}

			resp, err := client.CreatePayment(cmd.Context(), bkash.PaymentRequest{
				PayerReference: payerReference,
				Amount:         amount,
				InvoiceNumber:  invoiceNumber,
				CallbackURL:    callbackURL,
				AgreementID:    agreementID,
			})
			if err != nil {
				return err
			}
			return printPayload(resp.Raw())
		},
	}

	cmd.Flags().StringVar(&payerReference, "payer-reference", "", "payer reference (required)")
	cmd.Flags().Float64Var(&amount, "amount", 0, "amount in BDT (required)")
	cmd.Flags().StringVar(&invoiceNumber, "invoice", "", "merchant invoice number (generated when empty)")
	cmd.Flags().StringVar(&callbackURL, "callback-url", "", "callback URL override")
	cmd.Flags().StringVar(&agreementID, "agreement-id", "", "agreement id for tokenized payments")
	cmd.MarkFlagRequired("payer-reference")
	cmd.MarkFlagRequired("amount")

	return cmd
}

func executePaymentCmd() *cobra.Command {
	var paymentID string

	cmd := &cobra.Command{
		Use:   "execute-payment",
		Short: "Execute a payment after payer confirmation",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			resp, err := client.ExecutePayment(cmd.Context(), paymentID)
			if err != nil {
				return err
			}
			return printPayload(resp.Raw())
		},
	}

	cmd.Flags().StringVar(&paymentID, "payment-id", "", "payment id (required)")
	cmd.MarkFlagRequired("payment-id")

	return cmd
}

func queryPaymentCmd() *cobra.Command {
	var paymentID string

	cmd := &cobra.Command{
		Use:   "query-payment",
		Short: "Query payment status",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			resp, err := client.QueryPayment(cmd.Context(), paymentID)
			if err != nil {
				return err
			}
			return printPayload(resp.Raw())
		},
	}

	cmd.Flags().StringVar(&paymentID, "payment-id", "", "payment id (required)")
	cmd.MarkFlagRequired("payment-id")

	return cmd
}

func refundCmd() *cobra.Command {
	var (
		paymentID string
		amount    float64
		reason    string
	)

	cmd := &cobra.Command{
		Use:   "refund",
		Short: "Refund a completed payment",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			resp, err := client.RefundPayment(cmd.Context(), paymentID, amount, reason)
			if err != nil {
				return err
			}
			return printPayload(resp.Raw())
		},
	}

	cmd.Flags().StringVar(&paymentID, "payment-id", "", "payment id (required)")
	cmd.Flags().Float64Var(&amount, "amount", 0, "refund amount (required)")
	cmd.Flags().StringVar(&reason, "reason", "customer request", "refund reason")
	cmd.MarkFlagRequired("payment-id")
	cmd.MarkFlagRequired("amount")

	return cmd
}

func refundStatusCmd() *cobra.Command {
	var paymentID, trxID string

	cmd := &cobra.Command{
		Use:   "refund-status",
		Short: "Look up the state of a refund",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			resp, err := client.RefundStatus(cmd.Context(), paymentID, trxID)
			if err != nil {
				return err
			}
			return printPayload(resp.Raw())
		},
	}

	cmd.Flags().StringVar(&paymentID, "payment-id", "", "payment id (required)")
	cmd.Flags().StringVar(&trxID, "trx-id", "", "refund transaction id (required)")
	cmd.MarkFlagRequired("payment-id")
	cmd.MarkFlagRequired("trx-id")

	return cmd
}

func searchCmd() *cobra.Command {
	var trxID string

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search transactions by trxID",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			resp, err := client.SearchTransaction(cmd.Context(), trxID)
			if err != nil {
				return err
			}
			return printPayload(resp.Raw())
		},
	}

	cmd.Flags().StringVar(&trxID, "trx-id", "", "transaction id (required)")
	cmd.MarkFlagRequired("trx-id")

	return cmd
}
