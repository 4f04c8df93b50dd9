package repository_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"trustdesk/internal/domain"
	"trustdesk/internal/models"
	"trustdesk/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Payment{}))
	return db
}

func seedPayment(t *testing.T, db *gorm.DB, invoice, status string, sub datatypes.JSON) *models.Payment {
	t.Helper()
	p := &models.Payment{
		UserID:            1,
		Amount:            25,
		PaymentMethod:     "card",
		Invoice:           invoice,
		TransactionStatus: status,
		SubscriptionInfo:  sub,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func currentStatus(t *testing.T, db *gorm.DB, invoice string) string {
	t.Helper()
	var p models.Payment
	require.NoError(t, db.Where("invoice = ?", invoice).First(&p).Error)
	return p.TransactionStatus
}

func TestAdvanceStatusIsGuarded(t *testing.T) {
	db := openTestDB(t)
	repo := repository.NewPaymentRepository(db)
	seedPayment(t, db, "inv_1", domain.TxStatusPending, nil)

	matched, err := repo.AdvanceStatus("inv_1", domain.TxStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, int64(1), matched)
	assert.Equal(t, domain.TxStatusCompleted, currentStatus(t, db, "inv_1"))

	// Duplicate delivery: no rows match, state unchanged.
	matched, err = repo.AdvanceStatus("inv_1", domain.TxStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, int64(0), matched)

	// Late lower-ranked event cannot downgrade.
	matched, err = repo.AdvanceStatus("inv_1", domain.TxStatusSucceeded)
	require.NoError(t, err)
	assert.Equal(t, int64(0), matched)
	assert.Equal(t, domain.TxStatusCompleted, currentStatus(t, db, "inv_1"))
}

func TestAdvanceStatusNoMatchIsNoOp(t *testing.T) {
	db := openTestDB(t)
	repo := repository.NewPaymentRepository(db)

	matched, err := repo.AdvanceStatus("missing", domain.TxStatusSucceeded)
	require.NoError(t, err)
	assert.Equal(t, int64(0), matched)

	var count int64
	require.NoError(t, db.Model(&models.Payment{}).Count(&count).Error)
	assert.Zero(t, count, "no-op must not create records")
}

func TestAdvanceStatusRejectsUnorderedTarget(t *testing.T) {
	db := openTestDB(t)
	repo := repository.NewPaymentRepository(db)
	seedPayment(t, db, "inv_1", domain.TxStatusPending, nil)

	_, err := repo.AdvanceStatus("inv_1", "refunded")
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, domain.TxStatusPending, currentStatus(t, db, "inv_1"))
}

func TestMarkFailedReachableFromAnyState(t *testing.T) {
	db := openTestDB(t)
	repo := repository.NewPaymentRepository(db)
	seedPayment(t, db, "inv_1", domain.TxStatusCompleted, nil)

	matched, err := repo.MarkFailed("inv_1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), matched)
	assert.Equal(t, domain.TxStatusFailed, currentStatus(t, db, "inv_1"))

	matched, err = repo.MarkFailed("inv_1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), matched, "failed is terminal")
}

func TestMergeSubscriptionInfoPreservesStatusAndKeys(t *testing.T) {
	db := openTestDB(t)
	repo := repository.NewPaymentRepository(db)
	seedPayment(t, db, "inv_1", domain.TxStatusSucceeded, datatypes.JSON(`{"plan":"basic","seats":3}`))

	matched, err := repo.MergeSubscriptionInfo("inv_1", json.RawMessage(`{"plan":"pro","status":"active"}`))
	require.NoError(t, err)
	assert.Equal(t, int64(1), matched)

	var p models.Payment
	require.NoError(t, db.Where("invoice = ?", "inv_1").First(&p).Error)
	assert.Equal(t, domain.TxStatusSucceeded, p.TransactionStatus, "merge must not touch status")
	assert.JSONEq(t, `{"plan":"pro","seats":3,"status":"active"}`, string(p.SubscriptionInfo))
}

func TestMergeSubscriptionInfoNoMatch(t *testing.T) {
	db := openTestDB(t)
	repo := repository.NewPaymentRepository(db)

	matched, err := repo.MergeSubscriptionInfo("missing", json.RawMessage(`{"plan":"pro"}`))
	require.NoError(t, err)
	assert.Equal(t, int64(0), matched)
}

func TestGetByInvoiceMissingIsNil(t *testing.T) {
	db := openTestDB(t)
	repo := repository.NewPaymentRepository(db)

	p, err := repo.GetByInvoice("missing")
	require.NoError(t, err)
	assert.Nil(t, p)
}
