package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	paylink "github.com/alnah/go-paylink"
	"github.com/alnah/go-paylink/internal/format"
)

// TransactionsCmd creates the transactions command with subcommands.
// The env parameter provides injectable dependencies for testing.
func TransactionsCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "Browse transactions",
	}
	cmd.AddCommand(transactionsListCmd(env))
	return cmd
}

func transactionsListCmd(env *Env) *cobra.Command {
	var page, limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions page by page",
		Long: `List transactions.

--page and --limit are sent only when given; the server applies its own
defaults and bounds otherwise.`,
		Example: `  paylink transactions list
  paylink transactions list --page 2 --limit 50 --format text`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := readGlobals(cmd)
			if err != nil {
				return err
			}
			var params *paylink.ListTransactionsParams
			if cmd.Flags().Changed("page") || cmd.Flags().Changed("limit") {
				params = &paylink.ListTransactionsParams{}
				if cmd.Flags().Changed("page") {
					params.Page = paylink.Int(page)
				}
				if cmd.Flags().Changed("limit") {
					params.Limit = paylink.Int(limit)
				}
			}
			return runTransactionsList(cmd.Context(), env, g, params)
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&limit, "limit", 20, "Transactions per page")

	return cmd
}

// runTransactionsList executes "transactions list". params may be nil.
func runTransactionsList(ctx context.Context, env *Env, g globals, params *paylink.ListTransactionsParams) error {
	s, err := openSession(env, g)
	if err != nil {
		return err
	}

	resp, err := call(ctx, s, "list transactions", func(ctx context.Context) (*paylink.Envelope[paylink.TransactionList], error) {
		return s.api.ListTransactions(ctx, params)
	})
	if err != nil {
		return err
	}

	if err := writeOutput(env.Stdout, g.format, resp, func(w io.Writer) {
		writeTransactionsText(w, resp)
	}); err != nil {
		return err
	}
	return checkEnvelope(resp.Success, resp.Error)
}

func writeTransactionsText(w io.Writer, resp *paylink.Envelope[paylink.TransactionList]) {
	if resp.Data == nil {
		writeEnvelopeErrorText(w, resp.Error)
		return
	}
	list := resp.Data
	if len(list.Transactions) == 0 {
		_, _ = fmt.Fprintln(w, "No transactions.")
	} else {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(tw, "ID\tSTATUS\tAMOUNT\tTX\tCREATED")
		for _, tx := range list.Transactions {
			_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
				tx.ID, tx.Status, format.Amount(tx.Amount, tx.Currency), format.Hashes(tx.TxHash), tx.CreatedAt)
		}
		_ = tw.Flush()
	}

	p := list.Pagination
	line := format.Page(p.Page, p.TotalPages, p.Total)
	if p.HasMore {
		line += fmt.Sprintf(", next: --page %d", p.Page+1)
	}
	_, _ = fmt.Fprintln(w, line)
}
