package core

import "github.com/shopspring/decimal"

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount decimal.Decimal
}

// MonthSummary is the dashboard view of the current month.
type MonthSummary struct {
	Income     decimal.Decimal
	Expense    decimal.Decimal
	Balance    decimal.Decimal
	ByCategory []CategoryAmount
	// Shares of income+expense, in percent. Both are zero when there is no
	// activity.
	IncomeShare  decimal.Decimal
	ExpenseShare decimal.Decimal
}

// BudgetStatus compares spending against the monthly budget.
type BudgetStatus struct {
	Budget    decimal.Decimal
	Spent     decimal.Decimal
	Remaining decimal.Decimal
	Percent   int
}

var hundred = decimal.NewFromInt(100)

// NewBudgetStatus computes progress of spent against budget. Percent is
// truncated toward zero and left at 0 when no budget is set.
func NewBudgetStatus(budget, spent decimal.Decimal) BudgetStatus {
	st := BudgetStatus{
		Budget:    budget,
		Spent:     spent,
		Remaining: budget.Sub(spent),
	}
	if budget.IsPositive() {
		st.Percent = int(spent.Div(budget).Mul(hundred).IntPart())
	}
	return st
}

// HasBudget reports whether a monthly budget is set.
func (b BudgetStatus) HasBudget() bool {
	return b.Budget.IsPositive()
}

// Shares returns the income and expense percentages of their sum.
func Shares(income, expense decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	total := income.Add(expense)
	if !total.IsPositive() {
		return decimal.Zero, decimal.Zero
	}
	return income.Div(total).Mul(hundred), expense.Div(total).Mul(hundred)
}
