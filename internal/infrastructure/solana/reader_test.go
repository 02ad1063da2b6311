package solana

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/stretchr/testify/require"
	domainerrors "mint-market.backend/internal/domain/errors"
)

const (
	readerWallet = "7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU"
	readerMint   = "2vXg6WrfFkWLZ4rM1sfiKBoURwuDLDCsCGf2Pe1tcUBS"
)

// stubRPC is a canned-response RPCClient for reader tests.
type stubRPC struct {
	tokenAccounts *TokenAccountsResult
	parsed        *ParsedAccountValue
	accountData   []byte
	err           error

	lastAddress string
}

func (s *stubRPC) GetTokenAccountsByOwner(_ context.Context, owner string) (*TokenAccountsResult, error) {
	s.lastAddress = owner
	return s.tokenAccounts, s.err
}

func (s *stubRPC) GetParsedAccountInfo(_ context.Context, address string) (*ParsedAccountValue, error) {
	s.lastAddress = address
	if s.err != nil {
		return nil, s.err
	}
	if s.parsed != nil {
		s.parsed.Pubkey = address
	}
	return s.parsed, nil
}

func (s *stubRPC) GetAccountData(_ context.Context, address string) ([]byte, error) {
	s.lastAddress = address
	return s.accountData, s.err
}

func parsedTokenAccount(t *testing.T, mint, owner, amount string) ParsedAccountData {
	t.Helper()
	payload := `{"program":"spl-token","parsed":{"type":"account","info":{` +
		`"mint":"` + mint + `","owner":"` + owner + `","tokenAmount":{"amount":"` + amount + `","decimals":0}}}}`
	var data ParsedAccountData
	require.NoError(t, json.Unmarshal([]byte(payload), &data))
	return data
}

func TestValidateAddress(t *testing.T) {
	require.NoError(t, ValidateAddress(readerWallet))
	require.NoError(t, ValidateAddress("  "+readerMint+"  "))

	for _, bad := range []string{
		"",
		"   ",
		"not-base58-0OIl",
		"abc",                // too short
		readerWallet + "aaa", // too long
	} {
		require.ErrorIs(t, ValidateAddress(bad), domainerrors.ErrInvalidAddress, "input %q", bad)
	}

	r := NewReader(&stubRPC{})
	require.NoError(t, r.ValidateAddress(readerWallet))
	require.ErrorIs(t, r.ValidateAddress("bogus"), domainerrors.ErrInvalidAddress)
}

func TestReader_ListTokenAccounts(t *testing.T) {
	payload := `{"context":{"slot":1},"value":[
		{"pubkey":"TokAcc111","account":{"data":{"program":"spl-token","parsed":{"type":"account","info":{"mint":"` + readerMint + `","owner":"` + readerWallet + `","tokenAmount":{"amount":"1","decimals":0}}}}}},
		{"pubkey":"TokAcc222","account":{"data":{"program":"spl-token","parsed":{"type":"account","info":{}}}}},
		{"pubkey":"TokAcc333","account":{"data":{"program":"spl-token","parsed":{"type":"account","info":{"mint":"` + readerMint + `","owner":"` + readerWallet + `","tokenAmount":{"amount":"not-a-number","decimals":0}}}}}}
	]}`
	res := &TokenAccountsResult{}
	require.NoError(t, json.Unmarshal([]byte(payload), res))

	rpc := &stubRPC{tokenAccounts: res}
	r := NewReader(rpc)

	accounts, err := r.ListTokenAccounts(context.Background(), readerWallet)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	require.Equal(t, "TokAcc111", accounts[0].Address)
	require.Equal(t, readerMint, accounts[0].Mint)
	require.Equal(t, readerWallet, accounts[0].Owner)
	require.Equal(t, uint64(1), accounts[0].Amount)
	require.Equal(t, readerWallet, rpc.lastAddress)
}

func TestReader_ListTokenAccounts_InvalidOwner(t *testing.T) {
	rpc := &stubRPC{}
	r := NewReader(rpc)

	_, err := r.ListTokenAccounts(context.Background(), "bogus")
	require.ErrorIs(t, err, domainerrors.ErrInvalidAddress)
	require.Empty(t, rpc.lastAddress, "invalid owner must not reach the node")
}

func TestReader_ListTokenAccounts_RPCError(t *testing.T) {
	rpc := &stubRPC{err: domainerrors.ErrChainUnavailable}
	r := NewReader(rpc)

	_, err := r.ListTokenAccounts(context.Background(), readerWallet)
	require.ErrorIs(t, err, domainerrors.ErrChainUnavailable)
}

func TestReader_ResolveAssociatedAccount(t *testing.T) {
	parsed := &ParsedAccountValue{Data: parsedTokenAccount(t, readerMint, readerWallet, "1")}
	rpc := &stubRPC{parsed: parsed}
	r := NewReader(rpc)

	account, err := r.ResolveAssociatedAccount(context.Background(), readerMint, readerWallet)
	require.NoError(t, err)
	require.NotNil(t, account)
	require.Equal(t, readerMint, account.Mint)
	require.Equal(t, readerWallet, account.Owner)
	require.Equal(t, uint64(1), account.Amount)

	// the queried address must be the derived ATA, not the wallet
	ata, _, deriveErr := common.FindAssociatedTokenAddress(
		common.PublicKeyFromString(readerWallet), common.PublicKeyFromString(readerMint))
	require.NoError(t, deriveErr)
	require.Equal(t, ata.ToBase58(), rpc.lastAddress)
	require.Equal(t, ata.ToBase58(), account.Address)
}

func TestReader_ResolveAssociatedAccount_Missing(t *testing.T) {
	r := NewReader(&stubRPC{})

	account, err := r.ResolveAssociatedAccount(context.Background(), readerMint, readerWallet)
	require.NoError(t, err)
	require.Nil(t, account)
}

func TestReader_ResolveAssociatedAccount_NonTokenAccount(t *testing.T) {
	parsed := &ParsedAccountValue{}
	parsed.Data.Program = "stake"
	r := NewReader(&stubRPC{parsed: parsed})

	account, err := r.ResolveAssociatedAccount(context.Background(), readerMint, readerWallet)
	require.NoError(t, err)
	require.Nil(t, account)
}

func TestReader_ResolveAssociatedAccount_InvalidInputs(t *testing.T) {
	r := NewReader(&stubRPC{})

	_, err := r.ResolveAssociatedAccount(context.Background(), "bogus", readerWallet)
	require.ErrorIs(t, err, domainerrors.ErrInvalidAddress)

	_, err = r.ResolveAssociatedAccount(context.Background(), readerMint, "bogus")
	require.ErrorIs(t, err, domainerrors.ErrInvalidAddress)
}

func TestReader_GetMetadataAccount_Missing(t *testing.T) {
	rpc := &stubRPC{}
	r := NewReader(rpc)

	_, err := r.GetMetadataAccount(context.Background(), readerMint)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
	require.NotEmpty(t, rpc.lastAddress)
	require.NotEqual(t, readerMint, rpc.lastAddress, "reader must query the metadata PDA")
}

func TestReader_GetMetadataAccount_ErrorPaths(t *testing.T) {
	r := NewReader(&stubRPC{err: domainerrors.ErrChainUnavailable})
	_, err := r.GetMetadataAccount(context.Background(), readerMint)
	require.ErrorIs(t, err, domainerrors.ErrChainUnavailable)

	r = NewReader(&stubRPC{accountData: []byte("garbage")})
	_, err = r.GetMetadataAccount(context.Background(), readerMint)
	require.Error(t, err)

	_, err = r.GetMetadataAccount(context.Background(), "bogus")
	require.ErrorIs(t, err, domainerrors.ErrInvalidAddress)
}

func TestTrimPadding(t *testing.T) {
	require.Equal(t, "Sunrise", trimPadding("Sunrise\x00\x00\x00"))
	require.Equal(t, "", trimPadding("\x00\x00"))
	require.Equal(t, "plain", trimPadding("plain"))
}
