package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUsersTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		username TEXT UNIQUE,
		hashed_password TEXT NOT NULL,
		contact_wallet_address TEXT,
		phone_number TEXT,
		is_2fa_enabled BOOLEAN,
		profile_picture_url TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createUserWalletsTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE user_wallets (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		wallet_address TEXT UNIQUE NOT NULL,
		is_primary BOOLEAN,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createDraftNFTsTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE draft_nfts (
		id TEXT PRIMARY KEY,
		creator_user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		symbol TEXT,
		description TEXT,
		image_url TEXT NOT NULL,
		metadata_json_url TEXT NOT NULL,
		price TEXT NOT NULL,
		attributes TEXT,
		collection_name TEXT,
		status TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createNFTsTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE nfts (
		id TEXT PRIMARY KEY,
		mint_address TEXT UNIQUE NOT NULL,
		name TEXT NOT NULL,
		symbol TEXT,
		description TEXT,
		image_url TEXT,
		metadata_url TEXT,
		attributes TEXT,
		collection_name TEXT,
		price TEXT,
		is_listed BOOLEAN NOT NULL,
		owner_wallet_address TEXT NOT NULL,
		owner_user_id TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createTransactionsTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE transactions (
		id TEXT PRIMARY KEY,
		nft_id TEXT NOT NULL,
		seller_wallet_address TEXT NOT NULL,
		buyer_wallet_address TEXT NOT NULL,
		price TEXT NOT NULL,
		transaction_signature TEXT UNIQUE NOT NULL,
		created_at DATETIME
	);`)
}
