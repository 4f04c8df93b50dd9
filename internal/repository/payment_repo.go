package repository

import (
	"encoding/json"
	"errors"

	"trustdesk/internal/domain"
	"trustdesk/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(p *models.Payment) error {
	return r.db.Create(p).Error
}

func (r *PaymentRepository) GetByInvoice(invoice string) (*models.Payment, error) {
	var p models.Payment
	err := r.db.Where("invoice = ?", invoice).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// AdvanceStatus moves every record at the given invoice to the target status,
// but only when that is a forward move in the pending < succeeded < completed
// order. The guard lives in the WHERE clause, so a duplicated or reordered
// event that would regress the status matches zero rows instead of writing.
// Returns the number of records actually advanced; zero matches is not an error.
func (r *PaymentRepository) AdvanceStatus(invoice, status string) (int64, error) {
	below := domain.TxStatusesBelow(status)
	if below == nil {
		return 0, domain.ErrValidation
	}
	res := r.db.Model(&models.Payment{}).
		Where("invoice = ? AND transaction_status IN ?", invoice, below).
		Update("transaction_status", status)
	return res.RowsAffected, res.Error
}

// MarkFailed is the one transition allowed to leave the monotonic order.
// It is reachable from any non-terminal state.
func (r *PaymentRepository) MarkFailed(invoice string) (int64, error) {
	res := r.db.Model(&models.Payment{}).
		Where("invoice = ? AND transaction_status <> ?", invoice, domain.TxStatusFailed).
		Update("transaction_status", domain.TxStatusFailed)
	return res.RowsAffected, res.Error
}

// MergeSubscriptionInfo folds the snapshot into the stored subscription
// metadata without touching transaction_status. Existing keys absent from the
// snapshot are preserved (merge-only, never replace-with-empty).
func (r *PaymentRepository) MergeSubscriptionInfo(invoice string, snapshot json.RawMessage) (int64, error) {
	var records []models.Payment
	if err := r.db.Where("invoice = ?", invoice).Find(&records).Error; err != nil {
		return 0, err
	}
	var matched int64
	for i := range records {
		merged, err := mergeJSON(records[i].SubscriptionInfo, snapshot)
		if err != nil {
			return matched, err
		}
		res := r.db.Model(&records[i]).Update("subscription_info", merged)
		if res.Error != nil {
			return matched, res.Error
		}
		matched += res.RowsAffected
	}
	return matched, nil
}

func mergeJSON(existing datatypes.JSON, snapshot json.RawMessage) (datatypes.JSON, error) {
	if len(snapshot) == 0 {
		return existing, nil
	}
	base := map[string]any{}
	if len(existing) > 0 {
		if err := json.Unmarshal(existing, &base); err != nil {
			// Stored metadata was not an object; the snapshot wins.
			base = map[string]any{}
		}
	}
	incoming := map[string]any{}
	if err := json.Unmarshal(snapshot, &incoming); err != nil {
		return nil, err
	}
	for k, v := range incoming {
		base[k] = v
	}
	out, err := json.Marshal(base)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(out), nil
}
