package statement

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/coopstack/ratio-engine/internal/entity"
	"github.com/coopstack/ratio-engine/internal/resolver"
)

func newTestBuilder() *Builder {
	return NewBuilder(resolver.New(nil), uuid.Nil, nil)
}

func item(st entity.StatementType, label, amount string) entity.RawLineItem {
	return entity.RawLineItem{Label: label, Amount: amount, StatementType: st}
}

func TestBuildTrading_ResolvesAndDefaults(t *testing.T) {
	t.Parallel()

	b := newTestBuilder()
	ta := b.BuildTrading([]entity.RawLineItem{
		item(entity.StatementTrading, "Opening Stock", "25,080"),
		item(entity.StatementTrading, "Purchases during the year", "572,444"),
		item(entity.StatementTrading, "Sales", "552,264"),
		item(entity.StatementTrading, "Completely Unknown", "999"),
	})

	if !ta.OpeningStock.Equal(decimal.NewFromInt(25080)) {
		t.Errorf("opening_stock = %s", ta.OpeningStock)
	}
	if !ta.Purchases.Equal(decimal.NewFromInt(572444)) {
		t.Errorf("purchases = %s", ta.Purchases)
	}
	// Never supplied: must default to zero, not be absent.
	if !ta.TradeCharges.IsZero() || !ta.ClosingStock.IsZero() {
		t.Errorf("unset fields not zero: trade_charges=%s closing_stock=%s",
			ta.TradeCharges, ta.ClosingStock)
	}
}

func TestBuild_LastWriteWins(t *testing.T) {
	t.Parallel()

	b := newTestBuilder()
	ta := b.BuildTrading([]entity.RawLineItem{
		item(entity.StatementTrading, "Sales", "100"),
		item(entity.StatementTrading, "Sales", "200"),
	})
	if !ta.Sales.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("sales = %s, want 200", ta.Sales)
	}
}

func TestBuildOperational_StaffCount(t *testing.T) {
	t.Parallel()

	b := newTestBuilder()
	om := b.BuildOperational([]entity.RawLineItem{
		item(entity.StatementOperational, "Number of Staff", "24"),
	})
	if om.StaffCount != 24 {
		t.Fatalf("staff_count = %d, want 24", om.StaffCount)
	}
}

func TestBuildSet_AllStatementsPresent(t *testing.T) {
	t.Parallel()

	b := newTestBuilder()
	set := b.BuildSet("FY_2012_13", map[entity.StatementType][]entity.RawLineItem{
		entity.StatementTrading: {item(entity.StatementTrading, "Sales", "552264")},
	})

	if set.Trading == nil || set.ProfitLoss == nil || set.Balance == nil || set.Operational == nil {
		t.Fatal("BuildSet must populate all four statements")
	}
	if _, missing := set.MissingStatement(); missing {
		t.Fatal("no statement should be reported missing")
	}
	// Statements with no raw items at all come out zero-filled.
	if !set.Balance.WorkingFund().IsZero() {
		t.Fatalf("empty balance sheet working fund = %s", set.Balance.WorkingFund())
	}
}
