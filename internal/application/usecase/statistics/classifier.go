package statistics

import "github.com/finance-tracker/lucapp/internal/domain/entity"

// legacyIncomeCategories are category names that identified income before
// transactions carried an explicit type. Matching is exact.
var legacyIncomeCategories = map[string]struct{}{
	entity.LegacyCategoryIncome: {},
	"Sueldo":                    {},
	"Freelance":                 {},
}

// Classify returns the effective type of a transaction. An explicit type wins;
// untyped records are income when their category is a known income label and
// expense otherwise.
func Classify(tx entity.Transaction) entity.TransactionType {
	if tx.Type.IsValid() {
		return tx.Type
	}
	if _, ok := legacyIncomeCategories[tx.Category]; ok {
		return entity.TransactionTypeIncome
	}
	return entity.TransactionTypeExpense
}

// LegacyType returns the type a record without a valid stored type should
// get. ok is false for records that already carry a valid type.
func LegacyType(tx entity.Transaction) (entity.TransactionType, bool) {
	if tx.Type.IsValid() {
		return "", false
	}
	return Classify(tx), true
}
