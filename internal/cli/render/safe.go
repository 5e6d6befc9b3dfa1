package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/samber/lo"
	"github.com/trebuchet-org/safe-eth/internal/config"
	"github.com/trebuchet-org/safe-eth/internal/usecase"
	"github.com/trebuchet-org/safe-eth/pkg/safe"
)

const etherDecimals = 18

// SafeRenderer renders the read and write results of the transaction service
type SafeRenderer struct {
	out    io.Writer
	format config.OutputFormat
}

func NewSafeRenderer(out io.Writer, format config.OutputFormat) *SafeRenderer {
	return &SafeRenderer{out: out, format: format}
}

type balanceView struct {
	Token    string `json:"token" yaml:"token"`
	Address  string `json:"address,omitempty" yaml:"address,omitempty"`
	Balance  string `json:"balance" yaml:"balance"`
	Decimals int    `json:"decimals" yaml:"decimals"`
	Amount   string `json:"amount" yaml:"amount"`
}

func newBalanceView(b safe.Balance) balanceView {
	view := balanceView{
		Token:    "ETH",
		Balance:  b.Balance,
		Decimals: etherDecimals,
	}
	if b.TokenAddress != nil {
		view.Address = *b.TokenAddress
		view.Token = shorten(*b.TokenAddress)
	}
	if b.Token != nil {
		view.Decimals = b.Token.Decimals
		if b.Token.Symbol != "" {
			view.Token = b.Token.Symbol
		}
	}
	view.Amount = FormatUnits(b.Balance, view.Decimals)
	return view
}

// RenderBalances renders the balances of a Safe
func (r *SafeRenderer) RenderBalances(result *usecase.BalancesResult) error {
	views := lo.Map(result.Balances, func(b safe.Balance, _ int) balanceView {
		return newBalanceView(b)
	})
	if r.format != config.OutputTable {
		return writeStructured(r.out, r.format, views)
	}

	if len(views) == 0 {
		fmt.Fprintf(r.out, "No balances for %s on %s\n", result.Safe.Hex(), result.Network)
		return nil
	}

	t := newTable(r.out)
	t.AppendHeader([]any{"Token", "Amount", "Address"})
	for _, v := range views {
		t.AppendRow([]any{v.Token, v.Amount, orDash(v.Address)})
	}
	t.Render()
	return nil
}

type transactionSummaryView struct {
	SafeTxHash    string `json:"safeTxHash" yaml:"safeTxHash"`
	Nonce         string `json:"nonce" yaml:"nonce"`
	To            string `json:"to" yaml:"to"`
	Value         string `json:"value" yaml:"value"`
	Method        string `json:"method,omitempty" yaml:"method,omitempty"`
	Confirmations int    `json:"confirmations" yaml:"confirmations"`
	Required      *int   `json:"confirmationsRequired,omitempty" yaml:"confirmationsRequired,omitempty"`
	Executed      bool   `json:"executed" yaml:"executed"`
	TxHash        string `json:"transactionHash,omitempty" yaml:"transactionHash,omitempty"`
}

func method(dataDecoded map[string]any) string {
	if m, ok := dataDecoded["method"].(string); ok {
		return m
	}
	return ""
}

// RenderTransactions renders the multisig transactions of a Safe
func (r *SafeRenderer) RenderTransactions(result *usecase.TransactionsResult) error {
	views := lo.Map(result.Transactions, func(tx safe.MultisigTransaction, _ int) transactionSummaryView {
		return transactionSummaryView{
			SafeTxHash:    tx.SafeTxHash,
			Nonce:         tx.Nonce.String(),
			To:            tx.To,
			Value:         tx.Value.String(),
			Method:        method(tx.DataDecoded),
			Confirmations: len(tx.Confirmations),
			Required:      tx.ConfirmationsRequired,
			Executed:      tx.IsExecuted,
			TxHash:        lo.FromPtr(tx.TransactionHash),
		}
	})
	if r.format != config.OutputTable {
		return writeStructured(r.out, r.format, views)
	}

	if len(views) == 0 {
		fmt.Fprintf(r.out, "No transactions for %s on %s\n", result.Safe.Hex(), result.Network)
		return nil
	}

	t := newTable(r.out)
	t.AppendHeader([]any{"Nonce", "Safe Tx Hash", "To", "Method", "Sigs", "Status"})
	for _, v := range views {
		sigs := fmt.Sprintf("%d", v.Confirmations)
		if v.Required != nil {
			sigs = fmt.Sprintf("%d/%d", v.Confirmations, *v.Required)
		}
		t.AppendRow([]any{
			v.Nonce,
			hashStyle.Sprint(shorten(v.SafeTxHash)),
			shorten(v.To),
			orDash(v.Method),
			sigs,
			status(v.Executed),
		})
	}
	t.Render()
	return nil
}

func status(executed bool) string {
	if executed {
		return executedStyle.Sprint("executed")
	}
	return pendingStyle.Sprint("pending")
}

type transactionDetailsView struct {
	Network        string   `json:"network" yaml:"network"`
	SafeTxHash     string   `json:"safeTxHash" yaml:"safeTxHash"`
	Safe           string   `json:"safe" yaml:"safe"`
	To             string   `json:"to" yaml:"to"`
	Value          string   `json:"value" yaml:"value"`
	Data           string   `json:"data" yaml:"data"`
	Operation      string   `json:"operation" yaml:"operation"`
	SafeTxGas      string   `json:"safeTxGas" yaml:"safeTxGas"`
	BaseGas        string   `json:"baseGas" yaml:"baseGas"`
	GasPrice       string   `json:"gasPrice" yaml:"gasPrice"`
	GasToken       string   `json:"gasToken" yaml:"gasToken"`
	RefundReceiver string   `json:"refundReceiver" yaml:"refundReceiver"`
	Nonce          string   `json:"nonce" yaml:"nonce"`
	Executed       bool     `json:"executed" yaml:"executed"`
	TxHash         string   `json:"transactionHash,omitempty" yaml:"transactionHash,omitempty"`
	Signers        []string `json:"signers" yaml:"signers"`
	Decoded        string   `json:"decoded,omitempty" yaml:"decoded,omitempty"`
	SubmissionDate string   `json:"submissionDate,omitempty" yaml:"submissionDate,omitempty"`
}

func hexAddresses(addrs []common.Address) []string {
	return lo.Map(addrs, func(a common.Address, _ int) string { return a.Hex() })
}

// RenderTransaction renders a single transaction with its signers
func (r *SafeRenderer) RenderTransaction(details *usecase.TransactionDetails) error {
	tx := details.SafeTx
	view := transactionDetailsView{
		Network:        details.Network.String(),
		SafeTxHash:     tx.SafeTxHash().Hex(),
		Safe:           tx.Safe.Hex(),
		To:             tx.To.Hex(),
		Value:          tx.Value.String(),
		Data:           hexutil.Encode(tx.Data),
		Operation:      tx.Operation.String(),
		SafeTxGas:      tx.SafeTxGas.String(),
		BaseGas:        tx.BaseGas.String(),
		GasPrice:       tx.GasPrice.String(),
		GasToken:       tx.GasToken.Hex(),
		RefundReceiver: tx.RefundReceiver.Hex(),
		Nonce:          tx.Nonce.String(),
		Executed:       details.Executed(),
		Signers:        hexAddresses(details.Signers),
		Decoded:        details.Decoded,
	}
	if details.TxHash != nil {
		view.TxHash = details.TxHash.Hex()
	}
	if details.Record != nil && details.Record.SubmissionDate != nil {
		view.SubmissionDate = details.Record.SubmissionDate.Format(time.RFC3339)
	}
	if r.format != config.OutputTable {
		return writeStructured(r.out, r.format, view)
	}

	fmt.Fprintln(r.out, sectionHeading.Sprintf("Safe transaction %s", view.SafeTxHash))
	fmt.Fprintln(r.out)

	t := newTable(r.out)
	rows := [][2]string{
		{"Network", view.Network},
		{"Status", status(view.Executed)},
		{"Safe", view.Safe},
		{"To", view.To},
		{"Value", view.Value},
		{"Operation", view.Operation},
		{"Nonce", view.Nonce},
		{"Safe tx gas", view.SafeTxGas},
		{"Base gas", view.BaseGas},
		{"Gas price", view.GasPrice},
		{"Gas token", view.GasToken},
		{"Refund receiver", view.RefundReceiver},
		{"Submitted", orDash(view.SubmissionDate)},
		{"Tx hash", orDash(view.TxHash)},
	}
	for _, row := range rows {
		t.AppendRow([]any{labelStyle.Sprint(row[0]), row[1]})
	}
	t.Render()

	if len(tx.Data) > 0 {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, labelStyle.Sprint("Data:"))
		fmt.Fprintln(r.out, faintStyle.Sprint(view.Data))
	}
	if view.Decoded != "" {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, labelStyle.Sprint("Decoded:"))
		fmt.Fprintln(r.out, view.Decoded)
	}

	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "%s (%d)\n", labelStyle.Sprint("Signers"), len(view.Signers))
	for _, s := range view.Signers {
		fmt.Fprintf(r.out, "  %s\n", addressStyle.Sprint(s))
	}
	return nil
}

type delegateView struct {
	Delegate  string `json:"delegate" yaml:"delegate"`
	Delegator string `json:"delegator" yaml:"delegator"`
	Label     string `json:"label" yaml:"label"`
	Safe      string `json:"safe,omitempty" yaml:"safe,omitempty"`
}

// RenderDelegates renders the delegates registered for a Safe
func (r *SafeRenderer) RenderDelegates(result *usecase.DelegatesResult) error {
	views := lo.Map(result.Delegates, func(d safe.Delegate, _ int) delegateView {
		return delegateView{
			Delegate:  d.Delegate,
			Delegator: d.Delegator,
			Label:     d.Label,
			Safe:      lo.FromPtr(d.Safe),
		}
	})
	if r.format != config.OutputTable {
		return writeStructured(r.out, r.format, views)
	}

	if len(views) == 0 {
		fmt.Fprintf(r.out, "No delegates for %s on %s\n", result.Safe.Hex(), result.Network)
		return nil
	}

	t := newTable(r.out)
	t.AppendHeader([]any{"Delegate", "Delegator", "Label"})
	for _, v := range views {
		t.AppendRow([]any{addressStyle.Sprint(v.Delegate), v.Delegator, orDash(v.Label)})
	}
	t.Render()
	return nil
}

type delegateChangeView struct {
	Action   string `json:"action" yaml:"action"`
	Network  string `json:"network" yaml:"network"`
	Safe     string `json:"safe" yaml:"safe"`
	Delegate string `json:"delegate" yaml:"delegate"`
	Signer   string `json:"signer" yaml:"signer"`
	Label    string `json:"label,omitempty" yaml:"label,omitempty"`
}

// RenderDelegateChange renders the outcome of adding or removing a delegate
func (r *SafeRenderer) RenderDelegateChange(action string, result *usecase.DelegateResult) error {
	if r.format != config.OutputTable {
		return writeStructured(r.out, r.format, delegateChangeView{
			Action:   action,
			Network:  result.Network.String(),
			Safe:     result.Safe.Hex(),
			Delegate: result.Delegate.Hex(),
			Signer:   result.Signer.Hex(),
			Label:    result.Label,
		})
	}

	preposition := "to"
	if action == "removed" {
		preposition = "from"
	}
	msg := fmt.Sprintf("%s delegate %s %s %s", titleCaser.String(action), result.Delegate.Hex(), preposition, result.Safe.Hex())
	if result.Label != "" {
		msg += fmt.Sprintf(" (%s)", result.Label)
	}
	fmt.Fprintln(r.out, FormatSuccess(msg))
	fmt.Fprintf(r.out, "   %s %s on %s\n", faintStyle.Sprint("signed by"), result.Signer.Hex(), result.Network)
	return nil
}

type confirmView struct {
	Network    string   `json:"network" yaml:"network"`
	SafeTxHash string   `json:"safeTxHash" yaml:"safeTxHash"`
	Signer     string   `json:"signer" yaml:"signer"`
	Signature  string   `json:"signature" yaml:"signature"`
	Signers    []string `json:"signers" yaml:"signers"`
}

// RenderConfirmation renders a posted confirmation
func (r *SafeRenderer) RenderConfirmation(result *usecase.ConfirmTransactionResult) error {
	view := confirmView{
		Network:    result.Network.String(),
		SafeTxHash: result.SafeTxHash.Hex(),
		Signer:     result.Signer.Hex(),
		Signature:  hexutil.Encode(result.Signature),
		Signers:    hexAddresses(result.Signers),
	}
	if r.format != config.OutputTable {
		return writeStructured(r.out, r.format, view)
	}

	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Confirmed %s", view.SafeTxHash)))
	fmt.Fprintf(r.out, "   %s %s\n", faintStyle.Sprint("signer:   "), view.Signer)
	fmt.Fprintf(r.out, "   %s %s\n", faintStyle.Sprint("signature:"), shorten(view.Signature))
	fmt.Fprintf(r.out, "   %s %s\n", faintStyle.Sprint("signers:  "), strings.Join(view.Signers, ", "))
	return nil
}

type proposeView struct {
	Network    string `json:"network" yaml:"network"`
	SafeTxHash string `json:"safeTxHash" yaml:"safeTxHash"`
	Nonce      string `json:"nonce" yaml:"nonce"`
	Proposer   string `json:"proposer,omitempty" yaml:"proposer,omitempty"`
}

// RenderProposal renders a proposed transaction
func (r *SafeRenderer) RenderProposal(result *usecase.ProposeTransactionResult) error {
	view := proposeView{
		Network:    result.Network.String(),
		SafeTxHash: result.SafeTxHash.Hex(),
		Nonce:      result.Nonce.String(),
	}
	if result.Proposer != nil {
		view.Proposer = result.Proposer.Hex()
	}
	if r.format != config.OutputTable {
		return writeStructured(r.out, r.format, view)
	}

	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Proposed %s with nonce %s", view.SafeTxHash, view.Nonce)))
	if view.Proposer != "" {
		fmt.Fprintf(r.out, "   %s %s\n", faintStyle.Sprint("proposer:"), view.Proposer)
	} else {
		fmt.Fprintln(r.out, FormatWarning("Proposed without signature, an owner still has to confirm it"))
	}
	return nil
}
