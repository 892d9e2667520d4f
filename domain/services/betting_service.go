package services

import (
	"context"

	"matchbook/config"
	"matchbook/domain/entities"
	"matchbook/domain/interfaces"
	"matchbook/pkg/apperror"
)

type bettingService struct {
	userRepo  interfaces.UserRepository
	betRepo   interfaces.BetRepository
	roundRepo interfaces.RoundRepository
}

// NewBettingService creates a new betting service
func NewBettingService(userRepo interfaces.UserRepository, betRepo interfaces.BetRepository, roundRepo interfaces.RoundRepository) interfaces.BettingService {
	return &bettingService{
		userRepo:  userRepo,
		betRepo:   betRepo,
		roundRepo: roundRepo,
	}
}

func (s *bettingService) PlaceBet(ctx context.Context, userID, player, prop string, amount, odds int64) (*entities.Bet, error) {
	round, err := s.roundRepo.Get(ctx)
	if err != nil {
		return nil, apperror.Backend(err)
	}
	if !round.IsOpen() {
		return nil, apperror.Validation("betting round is not open")
	}

	if odds <= 0 {
		odds = config.Get().DefaultOdds
	}

	bet := &entities.Bet{
		UserID:  userID,
		MatchID: entities.CurrentMatchID,
		Player:  player,
		Prop:    prop,
		Amount:  amount,
		Odds:    odds,
	}
	if err := bet.Validate(); err != nil {
		return nil, apperror.Validation("%s", err.Error())
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperror.Backend(err)
	}
	if user == nil {
		return nil, apperror.NotFound("user")
	}

	// Checked against the balance as read now; a bet of exactly the
	// available amount is accepted
	if !user.CanAfford(amount) {
		return nil, apperror.Validation("bet of %d exceeds available balance of %d", amount, user.AvailableCoins)
	}

	if err := s.betRepo.Create(ctx, bet); err != nil {
		return nil, apperror.Backend(err)
	}

	// The stake leaves the available balance with a separate update; the
	// bank is untouched until settlement
	if err := s.userRepo.UpdateCoins(ctx, userID, user.TotalCoins, user.AvailableCoins-amount); err != nil {
		return nil, apperror.Backend(err)
	}

	return bet, nil
}

func (s *bettingService) UserBets(ctx context.Context, userID string) ([]*entities.Bet, error) {
	bets, err := s.betRepo.ListByUser(ctx, userID, entities.CurrentMatchID)
	if err != nil {
		return nil, apperror.Backend(err)
	}

	// Settled bets belong to history, not the live round
	open := bets[:0]
	for _, bet := range bets {
		if !bet.Resolved {
			open = append(open, bet)
		}
	}
	return open, nil
}
