package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StatementType identifies one of the four logical financial statements.
type StatementType string

const (
	StatementTrading     StatementType = "TRADING"
	StatementIncome      StatementType = "PL"
	StatementBalance     StatementType = "BALANCE_SHEET"
	StatementOperational StatementType = "OPERATIONAL"
)

// RequiredStatements is the full set an ingestion must locate.
var RequiredStatements = []StatementType{
	StatementTrading,
	StatementIncome,
	StatementBalance,
	StatementOperational,
}

// DisplayName returns the human-readable statement name used in errors.
func (t StatementType) DisplayName() string {
	switch t {
	case StatementTrading:
		return "Trading Account"
	case StatementIncome:
		return "Profit & Loss"
	case StatementBalance:
		return "Balance Sheet"
	case StatementOperational:
		return "Operational Metrics"
	}
	return string(t)
}

// TradingAccount holds the canonical trading statement for one period.
type TradingAccount struct {
	OpeningStock decimal.Decimal `json:"opening_stock"`
	Purchases    decimal.Decimal `json:"purchases"`
	TradeCharges decimal.Decimal `json:"trade_charges"`
	Sales        decimal.Decimal `json:"sales"`
	ClosingStock decimal.Decimal `json:"closing_stock"`
}

// GrossProfit = sales + closing stock - (opening stock + purchases + trade charges).
func (t TradingAccount) GrossProfit() decimal.Decimal {
	return t.Sales.Add(t.ClosingStock).
		Sub(t.OpeningStock.Add(t.Purchases).Add(t.TradeCharges))
}

// ProfitAndLoss holds the canonical income-expense statement for one period.
type ProfitAndLoss struct {
	// Income
	InterestOnLoans     decimal.Decimal `json:"interest_on_loans"`
	InterestOnBankAc    decimal.Decimal `json:"interest_on_bank_ac"`
	ReturnOnInvestment  decimal.Decimal `json:"return_on_investment"`
	MiscellaneousIncome decimal.Decimal `json:"miscellaneous_income"`

	// Expenses
	InterestOnDeposits         decimal.Decimal `json:"interest_on_deposits"`
	InterestOnBorrowings       decimal.Decimal `json:"interest_on_borrowings"`
	EstablishmentContingencies decimal.Decimal `json:"establishment_contingencies"`
	Provisions                 decimal.Decimal `json:"provisions"`

	NetProfit decimal.Decimal `json:"net_profit"`
}

func (p ProfitAndLoss) TotalInterestIncome() decimal.Decimal {
	return p.InterestOnLoans.Add(p.InterestOnBankAc).Add(p.ReturnOnInvestment)
}

func (p ProfitAndLoss) TotalInterestExpense() decimal.Decimal {
	return p.InterestOnDeposits.Add(p.InterestOnBorrowings)
}

func (p ProfitAndLoss) TotalIncome() decimal.Decimal {
	return p.TotalInterestIncome().Add(p.MiscellaneousIncome)
}

// BalanceSheet holds the canonical balance statement for one period.
type BalanceSheet struct {
	// Liabilities (sources)
	ShareCapital        decimal.Decimal `json:"share_capital"`
	Deposits            decimal.Decimal `json:"deposits"`
	Borrowings          decimal.Decimal `json:"borrowings"`
	Reserves            decimal.Decimal `json:"reserves_statutory_free"`
	UndistributedProfit decimal.Decimal `json:"undistributed_profit"`

	// Excluded from working fund
	Provisions       decimal.Decimal `json:"provisions"`
	OtherLiabilities decimal.Decimal `json:"other_liabilities"`

	// Assets (applications)
	CashInHand    decimal.Decimal `json:"cash_in_hand"`
	CashAtBank    decimal.Decimal `json:"cash_at_bank"`
	Investments   decimal.Decimal `json:"investments"`
	LoansAdvances decimal.Decimal `json:"loans_advances"`
	FixedAssets   decimal.Decimal `json:"fixed_assets"`
	OtherAssets   decimal.Decimal `json:"other_assets"`
	StockInTrade  decimal.Decimal `json:"stock_in_trade"`
}

// WorkingFund = share capital + deposits + borrowings + reserves + undistributed profit.
func (b BalanceSheet) WorkingFund() decimal.Decimal {
	return b.ShareCapital.Add(b.Deposits).Add(b.Borrowings).
		Add(b.Reserves).Add(b.UndistributedProfit)
}

// OwnFunds = share capital + reserves + undistributed profit.
func (b BalanceSheet) OwnFunds() decimal.Decimal {
	return b.ShareCapital.Add(b.Reserves).Add(b.UndistributedProfit)
}

// OperationalMetrics holds headcount and similar non-monetary figures.
type OperationalMetrics struct {
	StaffCount int `json:"staff_count"`
}

// StatementSet bundles the four canonical statements for one reporting period.
// Ratio computation refuses to run unless all four are present.
type StatementSet struct {
	OrganizationID uuid.UUID           `json:"organization_id"`
	PeriodLabel    string              `json:"period_label"`
	Trading        *TradingAccount     `json:"trading_account"`
	ProfitLoss     *ProfitAndLoss      `json:"profit_loss"`
	Balance        *BalanceSheet       `json:"balance_sheet"`
	Operational    *OperationalMetrics `json:"operational_metrics"`
	IngestedAt     time.Time           `json:"ingested_at"`
}

// MissingStatement returns the first absent statement type, if any.
func (s *StatementSet) MissingStatement() (StatementType, bool) {
	switch {
	case s.Trading == nil:
		return StatementTrading, true
	case s.ProfitLoss == nil:
		return StatementIncome, true
	case s.Balance == nil:
		return StatementBalance, true
	case s.Operational == nil:
		return StatementOperational, true
	}
	return "", false
}
