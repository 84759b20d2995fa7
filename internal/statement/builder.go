// Package statement assembles resolved line items into canonical statement
// records. The builder is the single place where unresolved fields are
// defaulted to zero, so every downstream computation can assume total field
// presence.
package statement

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/coopstack/ratio-engine/internal/entity"
	"github.com/coopstack/ratio-engine/internal/extract"
	"github.com/coopstack/ratio-engine/internal/resolver"
)

// Builder turns raw line items into canonical statements using a mapping
// snapshot. It is cheap to construct and safe to use for one ingestion.
type Builder struct {
	resolver *resolver.Resolver
	orgID    uuid.UUID
	logger   *zap.Logger
}

func NewBuilder(res *resolver.Resolver, orgID uuid.UUID, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{resolver: res, orgID: orgID, logger: logger}
}

// fields resolves the items of one statement into canonical amounts.
// Repeated hits on a field are last-write-wins. Labels nothing resolves are
// logged and dropped; the affected field keeps its zero default.
func (b *Builder) fields(st entity.StatementType, items []entity.RawLineItem) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for _, item := range items {
		field := b.resolver.Resolve(b.orgID, st, item.Label)
		if field == "" {
			b.logger.Warn("unresolvable line item dropped",
				zap.String("statement", string(st)),
				zap.String("label", item.Label))
			continue
		}
		out[field] = extract.ParseAmount(item.Amount)
	}
	return out
}

// BuildTrading builds the canonical trading account. Fields never supplied
// stay at decimal zero.
func (b *Builder) BuildTrading(items []entity.RawLineItem) *entity.TradingAccount {
	f := b.fields(entity.StatementTrading, items)
	return &entity.TradingAccount{
		OpeningStock: f["opening_stock"],
		Purchases:    f["purchases"],
		TradeCharges: f["trade_charges"],
		Sales:        f["sales"],
		ClosingStock: f["closing_stock"],
	}
}

func (b *Builder) BuildProfitLoss(items []entity.RawLineItem) *entity.ProfitAndLoss {
	f := b.fields(entity.StatementIncome, items)
	return &entity.ProfitAndLoss{
		InterestOnLoans:            f["interest_on_loans"],
		InterestOnBankAc:           f["interest_on_bank_ac"],
		ReturnOnInvestment:         f["return_on_investment"],
		MiscellaneousIncome:        f["miscellaneous_income"],
		InterestOnDeposits:         f["interest_on_deposits"],
		InterestOnBorrowings:       f["interest_on_borrowings"],
		EstablishmentContingencies: f["establishment_contingencies"],
		Provisions:                 f["provisions"],
		NetProfit:                  f["net_profit"],
	}
}

func (b *Builder) BuildBalance(items []entity.RawLineItem) *entity.BalanceSheet {
	f := b.fields(entity.StatementBalance, items)
	return &entity.BalanceSheet{
		ShareCapital:        f["share_capital"],
		Deposits:            f["deposits"],
		Borrowings:          f["borrowings"],
		Reserves:            f["reserves_statutory_free"],
		UndistributedProfit: f["undistributed_profit"],
		Provisions:          f["provisions"],
		OtherLiabilities:    f["other_liabilities"],
		CashInHand:          f["cash_in_hand"],
		CashAtBank:          f["cash_at_bank"],
		Investments:         f["investments"],
		LoansAdvances:       f["loans_advances"],
		FixedAssets:         f["fixed_assets"],
		OtherAssets:         f["other_assets"],
		StockInTrade:        f["stock_in_trade"],
	}
}

func (b *Builder) BuildOperational(items []entity.RawLineItem) *entity.OperationalMetrics {
	f := b.fields(entity.StatementOperational, items)
	return &entity.OperationalMetrics{
		StaffCount: int(f["staff_count"].IntPart()),
	}
}

// BuildSet builds all four canonical statements for one period from the
// extractor output. The result fully replaces any earlier record for the
// same period (upsert, not merge-by-field).
func (b *Builder) BuildSet(periodLabel string, raw map[entity.StatementType][]entity.RawLineItem) *entity.StatementSet {
	return &entity.StatementSet{
		OrganizationID: b.orgID,
		PeriodLabel:    periodLabel,
		Trading:        b.BuildTrading(raw[entity.StatementTrading]),
		ProfitLoss:     b.BuildProfitLoss(raw[entity.StatementIncome]),
		Balance:        b.BuildBalance(raw[entity.StatementBalance]),
		Operational:    b.BuildOperational(raw[entity.StatementOperational]),
		IngestedAt:     time.Now().UTC(),
	}
}
