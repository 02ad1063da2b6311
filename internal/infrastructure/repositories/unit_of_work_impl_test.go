package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUnitOfWork_DoCommitAndRollback(t *testing.T) {
	db := newTestDB(t)
	createUserWalletsTable(t, db)
	u := &UnitOfWorkImpl{db: db}

	// commit path
	err := u.Do(context.Background(), func(ctx context.Context) error {
		return GetDB(ctx, db).Exec(
			"INSERT INTO user_wallets(id,user_id,wallet_address) VALUES (?,?,?)",
			uuid.New().String(), uuid.New().String(), "addr-commit").Error
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Table("user_wallets").Count(&count).Error)
	require.Equal(t, int64(1), count)

	// rollback path
	err = u.Do(context.Background(), func(ctx context.Context) error {
		if err := GetDB(ctx, db).Exec(
			"INSERT INTO user_wallets(id,user_id,wallet_address) VALUES (?,?,?)",
			uuid.New().String(), uuid.New().String(), "addr-rollback").Error; err != nil {
			return err
		}
		return errors.New("force rollback")
	})
	require.Error(t, err)

	require.NoError(t, db.Table("user_wallets").Count(&count).Error)
	require.Equal(t, int64(1), count, "second insert must be rolled back")
}

func TestUnitOfWork_NestedDoSharesTransaction(t *testing.T) {
	db := newTestDB(t)
	createUserWalletsTable(t, db)
	u := &UnitOfWorkImpl{db: db}

	err := u.Do(context.Background(), func(outer context.Context) error {
		if err := GetDB(outer, db).Exec(
			"INSERT INTO user_wallets(id,user_id,wallet_address) VALUES (?,?,?)",
			uuid.New().String(), uuid.New().String(), "addr-outer").Error; err != nil {
			return err
		}
		// the inner Do must reuse the outer transaction, so its error
		// rolls back the outer insert too
		return u.Do(outer, func(inner context.Context) error {
			require.Equal(t, GetDB(outer, db), GetDB(inner, db))
			return errors.New("inner failure")
		})
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Table("user_wallets").Count(&count).Error)
	require.Zero(t, count)
}

func TestUnitOfWork_RepositoriesPickUpTransaction(t *testing.T) {
	db := newTestDB(t)
	createUserWalletsTable(t, db)

	var seen *gorm.DB
	u := &UnitOfWorkImpl{db: db}
	err := u.Do(context.Background(), func(ctx context.Context) error {
		seen = GetDB(ctx, db)
		return nil
	})
	require.NoError(t, err)
	require.NotNil(t, seen)
	require.NotEqual(t, db, seen, "Do must hand repositories the transaction handle")

	require.Equal(t, db, GetDB(context.Background(), db))
}
