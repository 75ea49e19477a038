package logic

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/modan/fas/internal/cache"
	"github.com/modan/fas/internal/config"
	"github.com/modan/fas/internal/model"
	"github.com/modan/fas/internal/payment"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testFees = config.PaymentConfig{
	PGFeeRate:        0.033,
	PlatformFeeRate:  0.05,
	FirstPaymentRate: 0.5,
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.Maker{}, &model.Project{}, &model.Reward{},
		&model.Order{}, &model.Settlement{}, &model.Shipment{}, &model.DailyStat{},
	))
	return db
}

func newTestSettlementLogic(db *gorm.DB) *SettlementLogic {
	return NewSettlementLogic(db,
		cache.New(config.RedisConfig{}),
		payment.New(config.PaymentConfig{}),
		testFees)
}

func seedMaker(t *testing.T, db *gorm.DB) *model.Maker {
	t.Helper()

	maker := model.Maker{
		Name:          "스튜디오 달",
		Email:         "moon@studio-dal.kr",
		BankName:      "국민은행",
		BankAccount:   "123456-78-901234",
		AccountHolder: "스튜디오 달",
	}
	require.NoError(t, db.Create(&maker).Error)
	return &maker
}

func seedProject(t *testing.T, db *gorm.DB, makerID int64, lifecycle model.LifecycleStatus, review model.ReviewStatus) *model.Project {
	t.Helper()

	now := time.Now()
	project := model.Project{
		MakerID:         makerID,
		Title:           "달빛 무드등",
		Category:        "리빙",
		TargetAmount:    5000000,
		StartTime:       now.Add(-30 * 24 * time.Hour),
		EndTime:         now.Add(-24 * time.Hour),
		LifecycleStatus: lifecycle,
		ReviewStatus:    review,
		SubmittedAt:     &now,
	}
	require.NoError(t, db.Create(&project).Error)
	return &project
}

func seedPaidOrder(t *testing.T, db *gorm.DB, projectID int64, code string, amount int64) *model.Order {
	t.Helper()

	order := model.Order{
		OrderCode:     code,
		ProjectID:     projectID,
		SupporterName: "김서연",
		Address:       "서울시 마포구",
		Amount:        amount,
		Paid:          true,
	}
	require.NoError(t, db.Create(&order).Error)
	return &order
}

func seedShipment(t *testing.T, db *gorm.DB, projectID, orderID int64) *model.Shipment {
	t.Helper()

	shipment := model.Shipment{
		ProjectID: projectID,
		OrderID:   orderID,
		Status:    model.ShipmentStatusReady,
	}
	require.NoError(t, db.Create(&shipment).Error)
	return &shipment
}
