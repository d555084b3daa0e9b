package repository

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
)

// MonthlyIncome sums income dated in the current month.
func (r *Repository) MonthlyIncome(ctx context.Context) (decimal.Decimal, error) {
	return r.monthlyTotal(ctx, func(t core.Transaction) bool { return t.Type == core.Income })
}

// MonthlyExpense sums expenses dated in the current month.
func (r *Repository) MonthlyExpense(ctx context.Context) (decimal.Decimal, error) {
	return r.monthlyTotal(ctx, func(t core.Transaction) bool { return t.Type == core.Expense })
}

// CategoryExpense sums this month's expenses whose category equals category
// exactly.
func (r *Repository) CategoryExpense(ctx context.Context, category string) (decimal.Decimal, error) {
	return r.monthlyTotal(ctx, func(t core.Transaction) bool {
		return t.Type == core.Expense && t.Category == category
	})
}

// Balance is this month's income minus this month's expense.
func (r *Repository) Balance(ctx context.Context) (decimal.Decimal, error) {
	txs, err := r.List(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	income, expense := r.totals(txs)
	return income.Sub(expense), nil
}

func (r *Repository) monthlyTotal(ctx context.Context, match func(core.Transaction) bool) (decimal.Decimal, error) {
	txs, err := r.List(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	now := r.now()
	total := decimal.Zero
	for _, t := range txs {
		if match(t) && r.window.Contains(now, t.Date) {
			total = total.Add(t.Amount)
		}
	}
	return total, nil
}

// totals returns this month's income and expense in one pass.
func (r *Repository) totals(txs []core.Transaction) (decimal.Decimal, decimal.Decimal) {
	now := r.now()
	income, expense := decimal.Zero, decimal.Zero
	for _, t := range txs {
		if !r.window.Contains(now, t.Date) {
			continue
		}
		switch t.Type {
		case core.Income:
			income = income.Add(t.Amount)
		case core.Expense:
			expense = expense.Add(t.Amount)
		}
	}
	return income, expense
}

// Recent returns up to n transactions, newest first. Entries with the same
// date keep their stored order.
func (r *Repository) Recent(ctx context.Context, n int) ([]core.Transaction, error) {
	if n < 0 {
		return nil, fmt.Errorf("recent transactions: negative count %d", n)
	}
	txs, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	sorted := slices.Clone(txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted, nil
}

// MonthSummary computes the current month's totals and the expense
// breakdown by category, largest first.
func (r *Repository) MonthSummary(ctx context.Context) (core.MonthSummary, error) {
	txs, err := r.List(ctx)
	if err != nil {
		return core.MonthSummary{}, err
	}
	now := r.now()

	income, expense := r.totals(txs)
	byCategory := map[string]decimal.Decimal{}
	var order []string
	for _, t := range txs {
		if t.Type != core.Expense || !r.window.Contains(now, t.Date) {
			continue
		}
		if _, ok := byCategory[t.Category]; !ok {
			order = append(order, t.Category)
		}
		byCategory[t.Category] = byCategory[t.Category].Add(t.Amount)
	}

	cats := make([]core.CategoryAmount, 0, len(order))
	for _, name := range order {
		cats = append(cats, core.CategoryAmount{Name: name, Amount: byCategory[name]})
	}
	sort.SliceStable(cats, func(i, j int) bool {
		return cats[i].Amount.GreaterThan(cats[j].Amount)
	})

	incomeShare, expenseShare := core.Shares(income, expense)
	return core.MonthSummary{
		Income:       income,
		Expense:      expense,
		Balance:      income.Sub(expense),
		ByCategory:   cats,
		IncomeShare:  incomeShare,
		ExpenseShare: expenseShare,
	}, nil
}

// BudgetStatus compares this month's expense against budget.
func (r *Repository) BudgetStatus(ctx context.Context, budget decimal.Decimal) (core.BudgetStatus, error) {
	spent, err := r.MonthlyExpense(ctx)
	if err != nil {
		return core.BudgetStatus{}, err
	}
	return core.NewBudgetStatus(budget, spent), nil
}
