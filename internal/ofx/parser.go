// Package ofx reads bank statements in OFX/QFX format and turns their lines
// into goal contributions and withdrawals.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/Veraticus/nest-egg/internal/model"
	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"
)

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	tagFixRegex   = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// Contribution is one statement line mapped onto a goal movement. Credits
// become additions and debits withdrawals; Amount is always positive.
type Contribution struct {
	Date        time.Time
	FiTID       string
	Account     string
	Description string
	Type        model.TransactionType
	Amount      decimal.Decimal
}

// Parser implements OFX/QFX file parsing.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

// preprocessOFX fixes common formatting issues in OFX files.
func (p *Parser) preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// SEVERITY must be upper case.
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	// SGML files sometimes drop the closing bracket of a bare opening tag.
	return tagFixRegex.ReplaceAllString(content, "$1>")
}

func (p *Parser) parse(reader io.Reader) (*ofxgo.Response, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}
	return resp, nil
}

// ParseFile parses an OFX/QFX file and returns its non-zero lines as
// contributions, oldest first.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) ([]Contribution, error) {
	resp, err := p.parse(reader)
	if err != nil {
		return nil, err
	}

	var contributions []Contribution
	var bankStmts, ccStmts, skipped int

	for _, msg := range resp.Bank {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			got, n := p.convertList(stmt.BankTranList, string(stmt.BankAcctFrom.AcctID))
			contributions = append(contributions, got...)
			skipped += n
		}
	}

	for _, msg := range resp.CreditCard {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			got, n := p.convertList(stmt.BankTranList, string(stmt.CCAcctFrom.AcctID))
			contributions = append(contributions, got...)
			skipped += n
		}
	}

	sort.SliceStable(contributions, func(i, j int) bool {
		return contributions[i].Date.Before(contributions[j].Date)
	})

	slog.Info("Parsed OFX file",
		"contributions", len(contributions),
		"skipped", skipped,
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return contributions, nil
}

func (p *Parser) convertList(list *ofxgo.TransactionList, account string) ([]Contribution, int) {
	if list == nil {
		return nil, 0
	}

	var out []Contribution
	skipped := 0
	for _, ofxTx := range list.Transactions {
		c, ok := p.convertTransaction(ofxTx, account)
		if !ok {
			skipped++
			continue
		}
		out = append(out, c)
	}
	return out, skipped
}

// convertTransaction maps a statement line. Zero and unreadable amounts are
// reported as not ok.
func (p *Parser) convertTransaction(ofxTx ofxgo.Transaction, account string) (Contribution, bool) {
	amount, err := decimal.NewFromString(ofxTx.TrnAmt.FloatString(2))
	if err != nil {
		slog.Warn("Skipping OFX line with unreadable amount", "fitid", ofxTx.FiTID, "error", err)
		return Contribution{}, false
	}
	if amount.IsZero() {
		return Contribution{}, false
	}

	typ := model.TransactionAdd
	if amount.IsNegative() {
		typ = model.TransactionWithdraw
	}

	return Contribution{
		Date:        ofxTx.DtPosted.Time,
		FiTID:       string(ofxTx.FiTID),
		Account:     account,
		Description: p.describe(ofxTx),
		Type:        typ,
		Amount:      amount.Abs(),
	}, true
}

// describe picks the most readable label for a statement line.
func (p *Parser) describe(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return string(tx.Payee.Name)
	}

	name := strings.TrimSpace(string(tx.Name))
	if tx.Memo != "" && isGenericDescription(name) {
		name = strings.TrimSpace(string(tx.Memo))
	}
	return name
}

// isGenericDescription checks if a transaction name is too generic.
func isGenericDescription(name string) bool {
	switch strings.ToUpper(name) {
	case "", "DEBIT", "CREDIT", "DEPOSIT", "TRANSFER", "PAYMENT", "DIRECTDEP":
		return true
	}
	return false
}

// Accounts returns the unique account IDs in the file, sorted.
func (p *Parser) Accounts(reader io.Reader) ([]string, error) {
	resp, err := p.parse(reader)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok && stmt.BankAcctFrom.AcctID != "" {
			seen[string(stmt.BankAcctFrom.AcctID)] = struct{}{}
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok && stmt.CCAcctFrom.AcctID != "" {
			seen[string(stmt.CCAcctFrom.AcctID)] = struct{}{}
		}
	}

	accounts := make([]string, 0, len(seen))
	for acct := range seen {
		accounts = append(accounts, acct)
	}
	sort.Strings(accounts)
	return accounts, nil
}

// Totals sums the additions and withdrawals in contributions.
func Totals(contributions []Contribution) (added, withdrawn decimal.Decimal) {
	added, withdrawn = decimal.Zero, decimal.Zero
	for _, c := range contributions {
		if c.Type == model.TransactionWithdraw {
			withdrawn = withdrawn.Add(c.Amount)
			continue
		}
		added = added.Add(c.Amount)
	}
	return added, withdrawn
}
