package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/labstock/backend/internal/domain/inventory"
	"github.com/labstock/backend/internal/domain/shared"
)

// newMockReceivingLotRepository creates a GormReceivingLotRepository with a mocked SQL connection
func newMockReceivingLotRepository(t *testing.T) (*GormReceivingLotRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormReceivingLotRepository(gormDB), mock, mockDB
}

func lotRows(lotID uuid.UUID, status inventory.ContainerStatus, quantity decimal.Decimal) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "lot_number", "material_id", "unit_id", "location_id",
		"quantity_received", "unit_cost", "conversion_factor",
		"container_status", "received_at", "version",
	}).AddRow(
		lotID, "LOT-2026-00001", uuid.New(), uuid.New(), uuid.New(),
		quantity, decimal.NewFromFloat(12.50), decimal.NewFromInt(24),
		status, time.Now(), 1,
	)
}

func TestGormReceivingLotRepository_FindByID(t *testing.T) {
	t.Run("finds existing lot", func(t *testing.T) {
		repo, mock, mockDB := newMockReceivingLotRepository(t)
		defer mockDB.Close()

		lotID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "receiving_lots" WHERE id = \$1`).
			WithArgs(lotID, 1).
			WillReturnRows(lotRows(lotID, inventory.ContainerStatusSealed, decimal.NewFromInt(10)))

		lot, err := repo.FindByID(context.Background(), lotID)

		assert.NoError(t, err)
		assert.NotNil(t, lot)
		assert.Equal(t, lotID, lot.ID)
		assert.Equal(t, inventory.ContainerStatusSealed, lot.ContainerStatus)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for missing lot", func(t *testing.T) {
		repo, mock, mockDB := newMockReceivingLotRepository(t)
		defer mockDB.Close()

		lotID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "receiving_lots" WHERE id = \$1`).
			WithArgs(lotID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		lot, err := repo.FindByID(context.Background(), lotID)

		assert.Error(t, err)
		assert.Nil(t, lot)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormReceivingLotRepository_SaveWithLock(t *testing.T) {
	t.Run("updates when stored version matches", func(t *testing.T) {
		repo, mock, mockDB := newMockReceivingLotRepository(t)
		defer mockDB.Close()

		lot := &inventory.ReceivingLot{}
		lot.ID = uuid.New()
		lot.Version = 3
		lot.QuantityReceived = decimal.NewFromInt(5)
		lot.ContainerStatus = inventory.ContainerStatusOpen

		mock.ExpectExec(`UPDATE "receiving_lots" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.SaveWithLock(context.Background(), lot)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns stale state when version moved", func(t *testing.T) {
		repo, mock, mockDB := newMockReceivingLotRepository(t)
		defer mockDB.Close()

		lot := &inventory.ReceivingLot{}
		lot.ID = uuid.New()
		lot.Version = 3

		mock.ExpectExec(`UPDATE "receiving_lots" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "receiving_lots"`).
			WithArgs(lot.ID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		err := repo.SaveWithLock(context.Background(), lot)

		assert.Equal(t, shared.ErrStaleState, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found when lot was deleted", func(t *testing.T) {
		repo, mock, mockDB := newMockReceivingLotRepository(t)
		defer mockDB.Close()

		lot := &inventory.ReceivingLot{}
		lot.ID = uuid.New()
		lot.Version = 2

		mock.ExpectExec(`UPDATE "receiving_lots" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "receiving_lots"`).
			WithArgs(lot.ID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		err := repo.SaveWithLock(context.Background(), lot)

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormReceivingLotRepository_IncrementSealedQuantity(t *testing.T) {
	t.Run("increments sealed lot", func(t *testing.T) {
		repo, mock, mockDB := newMockReceivingLotRepository(t)
		defer mockDB.Close()

		lotID := uuid.New()

		mock.ExpectExec(`UPDATE "receiving_lots" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.IncrementSealedQuantity(context.Background(), lotID, decimal.NewFromInt(1))

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("restores sealed status on an emptied parent", func(t *testing.T) {
		repo, mock, mockDB := newMockReceivingLotRepository(t)
		defer mockDB.Close()

		lotID := uuid.New()

		// The guard accepts SEALED and EMPTY targets and the update writes
		// container_status back to SEALED, so reassembling the child of a
		// fully opened parent revives it.
		mock.ExpectExec(`UPDATE "receiving_lots" SET "container_status"=\$1,"quantity_received"=quantity_received \+ \$2,"updated_at"=\$3 WHERE id = \$4 AND container_status IN \(\$5,\$6\)`).
			WithArgs(inventory.ContainerStatusSealed, sqlmock.AnyArg(), sqlmock.AnyArg(),
				lotID, inventory.ContainerStatusSealed, inventory.ContainerStatusEmpty).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.IncrementSealedQuantity(context.Background(), lotID, decimal.NewFromInt(1))

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects an open container target", func(t *testing.T) {
		repo, mock, mockDB := newMockReceivingLotRepository(t)
		defer mockDB.Close()

		lotID := uuid.New()

		mock.ExpectExec(`UPDATE "receiving_lots" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "receiving_lots"`).
			WithArgs(lotID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		err := repo.IncrementSealedQuantity(context.Background(), lotID, decimal.NewFromInt(1))

		require.Error(t, err)
		assert.True(t, shared.IsCode(err, shared.CodeInvalidState))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
