package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	domainerrors "mint-market.backend/internal/domain/errors"
	"mint-market.backend/pkg/logger"
)

const (
	defaultVerifyAttempts = 3
	defaultVerifyDelay    = time.Second
)

// errMintNotSeen marks a primary-path attempt that reached the node but
// found no account for the mint. The account list can lag behind a fresh
// mint or transfer, so an empty-of-match list is retried like a transient
// failure.
var errMintNotSeen = errors.New("mint not present in wallet token accounts")

// VerifierUsecase answers whether a wallet currently holds an NFT mint.
// The primary path enumerates the wallet's token accounts with a bounded
// retry, treating both node failures and a list that lacks the mint as
// retryable. When the retries end without a positive it falls back to a
// direct lookup of the derived associated token account. Fallback failures
// resolve to "not verified" rather than an error so a flaky node cannot
// block purchases forever.
type VerifierUsecase struct {
	chain    ChainReader
	attempts int
	delay    time.Duration
}

// NewVerifierUsecase creates an ownership verifier. attempts and delay
// control the primary-path retry; zero values select the defaults.
func NewVerifierUsecase(chain ChainReader, attempts int, delay time.Duration) *VerifierUsecase {
	if attempts <= 0 {
		attempts = defaultVerifyAttempts
	}
	if delay <= 0 {
		delay = defaultVerifyDelay
	}
	return &VerifierUsecase{
		chain:    chain,
		attempts: attempts,
		delay:    delay,
	}
}

// VerifyOwnership reports whether walletAddress holds at least one unit of
// mintAddress. Invalid addresses fail fast with ErrInvalidAddress. Any
// primary path that exhausts its retries without finding the mint, whether
// the node kept failing or the list simply never contained it, hands off
// to the associated-account fallback.
func (u *VerifierUsecase) VerifyOwnership(ctx context.Context, walletAddress, mintAddress string) (bool, error) {
	if err := u.chain.ValidateAddress(walletAddress); err != nil {
		return false, err
	}
	if err := u.chain.ValidateAddress(mintAddress); err != nil {
		return false, err
	}

	err := u.verifyByTokenAccounts(ctx, walletAddress, mintAddress)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, domainerrors.ErrInvalidAddress) {
		return false, err
	}

	logger.Warn(ctx, "primary ownership check exhausted, falling back to ata lookup",
		zap.String("wallet", walletAddress),
		zap.String("mint", mintAddress),
		zap.Error(err))

	return u.verifyByAssociatedAccount(ctx, walletAddress, mintAddress), nil
}

// verifyByTokenAccounts is the primary path: list every token account of
// the wallet and look for the mint. Node failures and lists that lack the
// mint are both retried with a fixed delay up to the configured attempt
// count; a nil return means the mint was found with a positive balance.
func (u *VerifierUsecase) verifyByTokenAccounts(ctx context.Context, walletAddress, mintAddress string) error {
	operation := func() error {
		accounts, err := u.chain.ListTokenAccounts(ctx, walletAddress)
		if err != nil {
			if errors.Is(err, domainerrors.ErrInvalidAddress) {
				return backoff.Permanent(err)
			}
			return err
		}

		for _, acc := range accounts {
			if acc.Mint == mintAddress && acc.Amount >= 1 {
				return nil
			}
		}
		return errMintNotSeen
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(u.delay), uint64(u.attempts-1)),
		ctx,
	)
	return backoff.Retry(operation, policy)
}

// verifyByAssociatedAccount is the fallback: derive the associated token
// account for (wallet, mint) and check it directly. Any failure here means
// "not verified", never an error.
func (u *VerifierUsecase) verifyByAssociatedAccount(ctx context.Context, walletAddress, mintAddress string) bool {
	account, err := u.chain.ResolveAssociatedAccount(ctx, mintAddress, walletAddress)
	if err != nil {
		logger.Warn(ctx, "ata fallback lookup failed",
			zap.String("wallet", walletAddress),
			zap.String("mint", mintAddress),
			zap.Error(err))
		return false
	}
	if account == nil {
		return false
	}
	return account.Mint == mintAddress && account.Owner == walletAddress && account.Amount >= 1
}
