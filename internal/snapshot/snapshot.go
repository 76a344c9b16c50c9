// Package snapshot defines the backup document format and the coordinator
// that moves full datasets in and out of the entity stores. The same document
// is written to export files and pushed to the cloud collaborator.
package snapshot

import (
	"time"

	"github.com/tzoee/personal-finance-manager-sub001/internal/core"
)

// Version is the current snapshot format version. Bump it when the document
// shape changes incompatibly.
const Version = 1

// Snapshot is the complete exportable state: every entity collection plus
// the settings singleton. Field names are a compatibility contract with
// existing backup files and must not change.
type Snapshot struct {
	Version             int                       `json:"version"`
	Settings            core.Settings             `json:"settings"`
	Transactions        []core.Transaction        `json:"transactions"`
	Categories          []core.Category           `json:"categories"`
	Savings             []core.SavingsGoal        `json:"savings"`
	Wishlist            []core.WishlistItem       `json:"wishlist"`
	Installments        []core.Installment        `json:"installments"`
	MonthlyNeeds        []core.MonthlyNeed        `json:"monthlyNeeds"`
	MonthlyNeedPayments []core.MonthlyNeedPayment `json:"monthlyNeedPayments"`
	Assets              []core.Asset              `json:"assets"`
	ExportedAt          time.Time                 `json:"exportedAt"`
}

// IsEmpty reports whether the snapshot carries no entities at all.
func (s Snapshot) IsEmpty() bool {
	return len(s.Transactions) == 0 &&
		len(s.Categories) == 0 &&
		len(s.Savings) == 0 &&
		len(s.Wishlist) == 0 &&
		len(s.Installments) == 0 &&
		len(s.MonthlyNeeds) == 0 &&
		len(s.MonthlyNeedPayments) == 0 &&
		len(s.Assets) == 0
}

// EntityCount sums the entities across all collections.
func (s Snapshot) EntityCount() int {
	return len(s.Transactions) +
		len(s.Categories) +
		len(s.Savings) +
		len(s.Wishlist) +
		len(s.Installments) +
		len(s.MonthlyNeeds) +
		len(s.MonthlyNeedPayments) +
		len(s.Assets)
}
