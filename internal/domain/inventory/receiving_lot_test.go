package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labstock/backend/internal/domain/shared"
)

func createSealedLot(t *testing.T, units int64, conversionFactor int64) *ReceivingLot {
	lot, err := NewReceivingLot("LOT-2026-00001", uuid.New(), uuid.New(), uuid.New(),
		decimal.NewFromInt(units), decimal.NewFromFloat(12.50), decimal.NewFromInt(conversionFactor),
		ContainerStatusSealed, nil, nil)
	require.NoError(t, err)
	return lot
}

func createOpenLot(t *testing.T, quantity, conversionFactor int64, withParent bool) *ReceivingLot {
	lot, err := NewReceivingLot("LOT-2026-00002", uuid.New(), uuid.New(), uuid.New(),
		decimal.NewFromInt(quantity), decimal.NewFromFloat(12.50), decimal.NewFromInt(conversionFactor),
		ContainerStatusOpen, nil, nil)
	require.NoError(t, err)
	if withParent {
		parentID := uuid.New()
		lot.ParentLotID = &parentID
	}
	return lot
}

func TestContainerStatus_IsValid(t *testing.T) {
	assert.True(t, ContainerStatusSealed.IsValid())
	assert.True(t, ContainerStatusOpen.IsValid())
	assert.True(t, ContainerStatusEmpty.IsValid())
	assert.False(t, ContainerStatus("CLOSED").IsValid())
}

func TestNewReceivingLot(t *testing.T) {
	lot := createSealedLot(t, 10, 6)

	assert.True(t, lot.IsSealed())
	assert.False(t, lot.IsEmpty())
	assert.True(t, lot.QuantityReceived.Equal(decimal.NewFromInt(10)))
	require.Len(t, lot.GetDomainEvents(), 1)
	assert.Equal(t, EventTypeLotReceived, lot.GetDomainEvents()[0].EventType())
}

func TestNewReceivingLot_Validation(t *testing.T) {
	_, err := NewReceivingLot("", uuid.New(), uuid.New(), uuid.New(),
		decimal.NewFromInt(1), decimal.Zero, decimal.NewFromInt(1), ContainerStatusSealed, nil, nil)
	require.Error(t, err)
	assert.True(t, shared.IsCode(err, shared.CodeValidation))

	_, err = NewReceivingLot("LOT-2026-00001", uuid.New(), uuid.New(), uuid.New(),
		decimal.Zero, decimal.Zero, decimal.NewFromInt(1), ContainerStatusSealed, nil, nil)
	require.Error(t, err)
	assert.True(t, shared.IsCode(err, shared.CodeValidation))

	// New lots cannot start empty
	_, err = NewReceivingLot("LOT-2026-00001", uuid.New(), uuid.New(), uuid.New(),
		decimal.NewFromInt(1), decimal.Zero, decimal.NewFromInt(1), ContainerStatusEmpty, nil, nil)
	require.Error(t, err)
	assert.True(t, shared.IsCode(err, shared.CodeValidation))
}

func TestReceivingLot_Open(t *testing.T) {
	lot := createSealedLot(t, 2, 6)

	child, err := lot.Open("LOT-2026-00003", uuid.New(), uuid.New())
	require.NoError(t, err)

	assert.True(t, child.IsOpen())
	require.NotNil(t, child.ParentLotID)
	assert.Equal(t, lot.ID, *child.ParentLotID)
	assert.True(t, child.QuantityReceived.Equal(decimal.NewFromInt(6)))
	assert.True(t, lot.QuantityReceived.Equal(decimal.NewFromInt(1)))
	assert.True(t, lot.IsSealed())

	// Opening the last sealed unit empties the parent
	_, err = lot.Open("LOT-2026-00004", uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.True(t, lot.IsEmpty())

	// Empty lots cannot be opened
	_, err = lot.Open("LOT-2026-00005", uuid.New(), uuid.New())
	require.Error(t, err)
	assert.True(t, shared.IsCode(err, shared.CodeInvalidState))
}

func TestReceivingLot_OpenLastUnit_ChildStaysReassemblable(t *testing.T) {
	parent := createSealedLot(t, 1, 6)

	child, err := parent.Open("LOT-2026-00006", uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.True(t, parent.IsEmpty())

	// The child of a fully opened parent must still pass the reassembly
	// preconditions; the guarded increment revives the parent to SEALED
	// when the sealed unit lands back on it.
	assert.NoError(t, child.CheckReassemblyEligibility())
	require.NoError(t, child.MarkReassembled())
	assert.True(t, child.IsEmpty())
}

func TestReceivingLot_Consume(t *testing.T) {
	lot := createOpenLot(t, 6, 6, true)

	require.NoError(t, lot.Consume(decimal.NewFromInt(2)))
	assert.True(t, lot.QuantityReceived.Equal(decimal.NewFromInt(4)))
	assert.True(t, lot.IsOpen())

	// Cannot consume more than remains
	err := lot.Consume(decimal.NewFromInt(5))
	require.Error(t, err)
	assert.True(t, shared.IsCode(err, shared.CodeValidation))

	// Consuming the rest empties the lot
	require.NoError(t, lot.Consume(decimal.NewFromInt(4)))
	assert.True(t, lot.IsEmpty())

	err = lot.Consume(decimal.NewFromInt(1))
	require.Error(t, err)
	assert.True(t, shared.IsCode(err, shared.CodeInvalidState))
}

func TestReceivingLot_CheckReassemblyEligibility(t *testing.T) {
	t.Run("eligible", func(t *testing.T) {
		lot := createOpenLot(t, 6, 6, true)
		assert.NoError(t, lot.CheckReassemblyEligibility())
	})

	t.Run("insufficient quantity", func(t *testing.T) {
		lot := createOpenLot(t, 5, 6, true)
		err := lot.CheckReassemblyEligibility()
		require.Error(t, err)
		assert.True(t, shared.IsCode(err, shared.CodeReassemblyInsufficientQuantity))
	})

	t.Run("missing parent", func(t *testing.T) {
		lot := createOpenLot(t, 6, 6, false)
		err := lot.CheckReassemblyEligibility()
		require.Error(t, err)
		assert.True(t, shared.IsCode(err, shared.CodeReassemblyMissingParent))
	})

	t.Run("not open", func(t *testing.T) {
		lot := createSealedLot(t, 1, 6)
		err := lot.CheckReassemblyEligibility()
		require.Error(t, err)
		assert.True(t, shared.IsCode(err, shared.CodeReassemblyNotOpen))
	})
}

func TestReceivingLot_MarkReassembled(t *testing.T) {
	lot := createOpenLot(t, 6, 6, true)

	require.NoError(t, lot.MarkReassembled())
	assert.True(t, lot.QuantityReceived.IsZero())
	assert.True(t, lot.IsEmpty())

	// Terminal: cannot reassemble again
	err := lot.MarkReassembled()
	require.Error(t, err)
	assert.True(t, shared.IsCode(err, shared.CodeReassemblyNotOpen))
}

func TestReceivingLot_MarkDisposed(t *testing.T) {
	t.Run("open container", func(t *testing.T) {
		lot := createOpenLot(t, 3, 6, true)
		require.NoError(t, lot.MarkDisposed())
		assert.True(t, lot.QuantityReceived.IsZero())
		assert.True(t, lot.IsEmpty())
	})

	t.Run("sealed lot", func(t *testing.T) {
		lot := createSealedLot(t, 2, 6)
		require.NoError(t, lot.MarkDisposed())
		assert.True(t, lot.IsEmpty())
	})

	t.Run("nothing left", func(t *testing.T) {
		lot := createOpenLot(t, 3, 6, true)
		require.NoError(t, lot.MarkDisposed())
		err := lot.MarkDisposed()
		require.Error(t, err)
		assert.True(t, shared.IsCode(err, shared.CodeInvalidState))
	})
}

func TestReceivingLot_Zero(t *testing.T) {
	lot := createSealedLot(t, 5, 6)
	lot.Zero()
	assert.True(t, lot.QuantityReceived.IsZero())
	assert.True(t, lot.IsEmpty())
}

func TestNewConversionLogEntry(t *testing.T) {
	entry, err := NewConversionLogEntry(uuid.New(), decimal.NewFromInt(6), uuid.New(),
		uuid.New(), decimal.NewFromInt(1), uuid.New(),
		ConversionTypeReassembly, "RESTOCK", "unused after experiment", uuid.New())
	require.NoError(t, err)
	assert.Equal(t, ConversionTypeReassembly, entry.ConversionType)
	assert.True(t, entry.TargetQuantity.Equal(decimal.NewFromInt(1)))

	_, err = NewConversionLogEntry(uuid.Nil, decimal.NewFromInt(6), uuid.New(),
		uuid.New(), decimal.NewFromInt(1), uuid.New(),
		ConversionTypeReassembly, "RESTOCK", "", uuid.New())
	require.Error(t, err)

	_, err = NewConversionLogEntry(uuid.New(), decimal.NewFromInt(6), uuid.New(),
		uuid.New(), decimal.NewFromInt(1), uuid.New(),
		ConversionType("SHUFFLE"), "RESTOCK", "", uuid.New())
	require.Error(t, err)

	_, err = NewConversionLogEntry(uuid.New(), decimal.NewFromInt(6), uuid.New(),
		uuid.New(), decimal.NewFromInt(1), uuid.New(),
		ConversionTypeReassembly, "", "", uuid.New())
	require.Error(t, err)
}

func TestNewDisposalLogEntry(t *testing.T) {
	lot := createOpenLot(t, 3, 6, true)

	entry, err := NewDisposalLogEntry(lot, "EXPIRED", "past shelf life", uuid.New())
	require.NoError(t, err)
	assert.Equal(t, lot.ID, entry.ReceivingLotID)
	assert.True(t, entry.QuantityDisposed.Equal(decimal.NewFromInt(3)))
	assert.True(t, entry.TotalValue.IsZero())
	assert.Equal(t, DisposalSourceOpen, entry.SourceType)

	sealed := createSealedLot(t, 2, 6)
	entry, err = NewDisposalLogEntry(sealed, "DAMAGED", "", uuid.New())
	require.NoError(t, err)
	assert.Equal(t, DisposalSourceSealed, entry.SourceType)

	_, err = NewDisposalLogEntry(lot, "", "", uuid.New())
	require.Error(t, err)

	lot.Zero()
	_, err = NewDisposalLogEntry(lot, "EXPIRED", "", uuid.New())
	require.Error(t, err)
	assert.True(t, shared.IsCode(err, shared.CodeValidation))
}
