package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	paylink "github.com/alnah/go-paylink"
	"github.com/alnah/go-paylink/internal/format"
)

// defaultVerifyParallel bounds concurrent verify requests.
const defaultVerifyParallel = 4

// invoiceCreateOptions holds the flags of "invoice create".
type invoiceCreateOptions struct {
	amount      string
	currency    string
	description string
	email       string
	callbackURL string
	metadata    map[string]string
}

// InvoiceCmd creates the invoice command with subcommands.
// The env parameter provides injectable dependencies for testing.
func InvoiceCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoice",
		Short: "Create and verify invoices",
	}

	cmd.AddCommand(invoiceCreateCmd(env))
	cmd.AddCommand(invoiceVerifyCmd(env))

	return cmd
}

func invoiceCreateCmd(env *Env) *cobra.Command {
	var opts invoiceCreateOptions

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an invoice and print its checkout URL",
		Long: `Create an invoice.

The currency is case-insensitive. Supported currencies: NGN, USD, EUR, GBP,
GHS, KES, ZAR, XOF.`,
		Example: `  paylink invoice create --amount 50 --currency ngn
  paylink invoice create --amount 19.99 --currency usd --email buyer@example.com \
    --metadata order_id=42 --format text`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := readGlobals(cmd)
			if err != nil {
				return err
			}
			return runInvoiceCreate(cmd.Context(), env, g, opts)
		},
	}

	cmd.Flags().StringVar(&opts.amount, "amount", "", "Invoice amount, e.g. 50 or 19.99")
	cmd.Flags().StringVarP(&opts.currency, "currency", "c", "", "Currency code, e.g. NGN")
	cmd.Flags().StringVarP(&opts.description, "description", "d", "", "Invoice description")
	cmd.Flags().StringVar(&opts.email, "email", "", "Customer email")
	cmd.Flags().StringVar(&opts.callbackURL, "callback-url", "", "URL notified when the invoice is paid")
	cmd.Flags().StringToStringVar(&opts.metadata, "metadata", nil, "Metadata as key=value pairs")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("currency")

	return cmd
}

// runInvoiceCreate executes "invoice create".
// Validation order: amount parses -> config -> client checks (amount present, currency supported).
func runInvoiceCreate(ctx context.Context, env *Env, g globals, opts invoiceCreateOptions) error {
	amount, err := decimal.NewFromString(opts.amount)
	if err != nil {
		return fmt.Errorf("%w %q: must be a decimal number", ErrInvalidAmount, opts.amount)
	}

	s, err := openSession(env, g)
	if err != nil {
		return err
	}

	params := paylink.CreateInvoiceParams{
		Amount:        amount,
		Currency:      opts.currency,
		Description:   opts.description,
		CustomerEmail: opts.email,
		CallbackURL:   opts.callbackURL,
		Metadata:      opts.metadata,
	}
	resp, err := call(ctx, s, "create invoice", func(ctx context.Context) (*paylink.Envelope[paylink.Invoice], error) {
		return s.api.CreateInvoice(ctx, params)
	})
	if err != nil {
		return err
	}

	if err := writeOutput(env.Stdout, g.format, resp, func(w io.Writer) {
		writeInvoiceText(w, resp)
	}); err != nil {
		return err
	}
	return checkEnvelope(resp.Success, resp.Error)
}

func writeInvoiceText(w io.Writer, resp *paylink.Envelope[paylink.Invoice]) {
	if resp.Data == nil {
		writeEnvelopeErrorText(w, resp.Error)
		return
	}
	inv := resp.Data
	_, _ = fmt.Fprintf(w, "Invoice %s\n", inv.InvoiceID)
	_, _ = fmt.Fprintf(w, "  Amount:   %s\n", format.Amount(inv.Amount, inv.Currency))
	if inv.Status != "" {
		_, _ = fmt.Fprintf(w, "  Status:   %s\n", inv.Status)
	}
	if inv.ExpiresAt != "" {
		_, _ = fmt.Fprintf(w, "  Expires:  %s\n", inv.ExpiresAt)
	}
	_, _ = fmt.Fprintf(w, "  Checkout: %s\n", inv.CheckoutURL)
}

func writeEnvelopeErrorText(w io.Writer, e *paylink.EnvelopeError) {
	if e == nil {
		_, _ = fmt.Fprintln(w, "Request failed (no details)")
		return
	}
	_, _ = fmt.Fprintf(w, "Request failed: %s (%v)\n", e.Message, e.Code)
}

func invoiceVerifyCmd(env *Env) *cobra.Command {
	var parallel int

	cmd := &cobra.Command{
		Use:   "verify <invoice-id>...",
		Short: "Check whether invoices have been paid",
		Long: `Check the payment state of one or more invoices.

Several invoices are verified concurrently. With one ID the JSON output is the
response envelope; with several it is an array of envelopes in argument order.`,
		Example: `  paylink invoice verify inv_123
  paylink invoice verify inv_1 inv_2 inv_3 --parallel 2 --format text`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := readGlobals(cmd)
			if err != nil {
				return err
			}
			return runInvoiceVerify(cmd.Context(), env, g, args, parallel)
		},
	}

	cmd.Flags().IntVarP(&parallel, "parallel", "p", defaultVerifyParallel, "Max concurrent requests")

	return cmd
}

// runInvoiceVerify executes "invoice verify". The first failure cancels the
// remaining requests.
func runInvoiceVerify(ctx context.Context, env *Env, g globals, ids []string, parallel int) error {
	s, err := openSession(env, g)
	if err != nil {
		return err
	}

	results := make([]*paylink.Envelope[paylink.InvoiceVerification], len(ids))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(parallel, 1))
	for i, id := range ids {
		eg.Go(func() error {
			resp, err := call(ctx, s, "verify invoice "+id, func(ctx context.Context) (*paylink.Envelope[paylink.InvoiceVerification], error) {
				return s.api.VerifyInvoice(ctx, id)
			})
			if err != nil {
				return fmt.Errorf("verify %s: %w", id, err)
			}
			results[i] = resp
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	var v any = results
	if len(results) == 1 {
		v = results[0]
	}
	if err := writeOutput(env.Stdout, g.format, v, func(w io.Writer) {
		for i, resp := range results {
			writeVerificationText(w, ids[i], resp)
		}
	}); err != nil {
		return err
	}

	for _, resp := range results {
		if err := checkEnvelope(resp.Success, resp.Error); err != nil {
			return err
		}
	}
	return nil
}

func writeVerificationText(w io.Writer, id string, resp *paylink.Envelope[paylink.InvoiceVerification]) {
	if resp.Data == nil {
		_, _ = fmt.Fprintf(w, "%s: ", id)
		writeEnvelopeErrorText(w, resp.Error)
		return
	}
	v := resp.Data
	state := "unpaid"
	if v.Paid {
		state = "paid"
	}
	_, _ = fmt.Fprintf(w, "%s: %s (%s)", id, state, v.Status)
	if p := v.Payment; p != nil {
		_, _ = fmt.Fprintf(w, " %s tx %s", format.Amount(p.Amount, p.Currency), format.Hashes(p.TxHash))
	}
	_, _ = fmt.Fprintln(w)
}
