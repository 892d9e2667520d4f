package services

import (
	"context"

	"matchbook/config"
	"matchbook/domain/entities"
	"matchbook/domain/interfaces"
	"matchbook/pkg/apperror"

	log "github.com/sirupsen/logrus"
)

type roundService struct {
	userRepo  interfaces.UserRepository
	roundRepo interfaces.RoundRepository
}

// NewRoundService creates a new round service
func NewRoundService(userRepo interfaces.UserRepository, roundRepo interfaces.RoundRepository) interfaces.RoundService {
	return &roundService{
		userRepo:  userRepo,
		roundRepo: roundRepo,
	}
}

func (s *roundService) State(ctx context.Context) (*entities.Round, error) {
	round, err := s.roundRepo.Get(ctx)
	if err != nil {
		return nil, apperror.Backend(err)
	}
	return round, nil
}

// OpenBetting hands every non-admin user min(amount, bank) coins for the
// round and opens betting. Per-user updates are independent: one user's
// failure does not roll back the others.
func (s *roundService) OpenBetting(ctx context.Context, amount int64) (*interfaces.DistributionResult, error) {
	if amount <= 0 {
		amount = config.Get().DefaultDistribution
	}

	round, err := s.roundRepo.Get(ctx)
	if err != nil {
		return nil, apperror.Backend(err)
	}
	if err := round.Open(amount); err != nil {
		return nil, apperror.Validation("%s", err.Error())
	}

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, apperror.Backend(err)
	}

	result := &interfaces.DistributionResult{Amount: amount}
	for _, user := range users {
		if user.IsAdmin {
			continue
		}

		grant := user.DistributionFor(amount)
		if err := s.userRepo.UpdateCoins(ctx, user.ID, user.TotalCoins-grant, grant); err != nil {
			log.WithError(err).WithField("username", user.Username).Warn("Coin distribution failed for user")
			result.FailedUsers = append(result.FailedUsers, user.Username)
			continue
		}

		result.UsersPaid++
		result.CoinsMoved += grant
	}

	if err := s.roundRepo.Save(ctx, round); err != nil {
		return nil, apperror.Backend(err)
	}

	log.WithFields(log.Fields{
		"amount":      amount,
		"users_paid":  result.UsersPaid,
		"coins_moved": result.CoinsMoved,
	}).Info("Betting round opened")

	return result, nil
}

// CloseBetting forfeits all unspent distributed coins; nothing returns to the
// bank.
func (s *roundService) CloseBetting(ctx context.Context) error {
	round, err := s.roundRepo.Get(ctx)
	if err != nil {
		return apperror.Backend(err)
	}
	if err := round.Close(); err != nil {
		return apperror.Validation("%s", err.Error())
	}

	cleared, err := s.userRepo.ZeroAvailableCoins(ctx)
	if err != nil {
		return apperror.Backend(err)
	}

	if err := s.roundRepo.Save(ctx, round); err != nil {
		return apperror.Backend(err)
	}

	log.WithField("users_cleared", cleared).Info("Betting round closed")
	return nil
}

func (s *roundService) StartMatch(ctx context.Context) error {
	if err := s.userRepo.ResetVoted(ctx); err != nil {
		return apperror.Backend(err)
	}

	log.Info("Match started, voting flags reset")
	return nil
}
