package services

import (
	"context"
	"fmt"

	"matchbook/config"
	"matchbook/domain/entities"
	"matchbook/domain/interfaces"
	"matchbook/pkg/apperror"

	log "github.com/sirupsen/logrus"
)

type settlementService struct {
	userRepo   interfaces.UserRepository
	voteRepo   interfaces.VoteRepository
	betRepo    interfaces.BetRepository
	recordRepo interfaces.MatchRecordRepository
	roundRepo  interfaces.RoundRepository
}

// NewSettlementService creates a new settlement service
func NewSettlementService(
	userRepo interfaces.UserRepository,
	voteRepo interfaces.VoteRepository,
	betRepo interfaces.BetRepository,
	recordRepo interfaces.MatchRecordRepository,
	roundRepo interfaces.RoundRepository,
) interfaces.SettlementService {
	return &settlementService{
		userRepo:   userRepo,
		voteRepo:   voteRepo,
		betRepo:    betRepo,
		recordRepo: recordRepo,
		roundRepo:  roundRepo,
	}
}

// EndMatch settles the current match. Only unresolved bets take part, so
// re-running after a completed settlement writes no history and moves no
// coins. Settlement is not atomic across users: a failed user is logged and
// skipped while the rest settle.
func (s *settlementService) EndMatch(ctx context.Context, decide interfaces.OutcomeFn) (*interfaces.SettlementResult, error) {
	if decide == nil {
		return nil, apperror.Validation("an outcome decision function is required")
	}

	open, err := s.betRepo.ListByMatch(ctx, entities.CurrentMatchID, true)
	if err != nil {
		return nil, apperror.Backend(err)
	}

	// Every open bet needs an outcome before the first write. A missing
	// outcome is a caller mistake, not a store failure: abort with nothing
	// resolved so a corrected call still sees every bet.
	outcomes := make(map[int64]bool, len(open))
	for _, bet := range open {
		won, err := decide(bet)
		if err != nil {
			return nil, apperror.Validation("no outcome for bet %d (%s %s): %s", bet.ID, bet.Player, bet.Prop, err)
		}
		outcomes[bet.ID] = won
	}

	result := &interfaces.SettlementResult{}

	// Group by user, keeping first-appearance order for deterministic output
	byUser := make(map[string][]*entities.Bet)
	var userOrder []string
	for _, bet := range open {
		if _, ok := byUser[bet.UserID]; !ok {
			userOrder = append(userOrder, bet.UserID)
		}
		byUser[bet.UserID] = append(byUser[bet.UserID], bet)
	}

	for _, userID := range userOrder {
		settlement, err := s.settleUser(ctx, userID, byUser[userID], outcomes)
		if err != nil {
			log.WithError(err).WithField("user_id", userID).Error("Settlement failed for user")
			result.FailedUsers = append(result.FailedUsers, userID)
			continue
		}
		result.Settled = append(result.Settled, *settlement)
	}

	s.awardMVPBonus(ctx, result)
	s.resetRound(ctx)

	log.WithFields(log.Fields{
		"users_settled": len(result.Settled),
		"users_failed":  len(result.FailedUsers),
		"mvp":           result.MVPWinner,
	}).Info("Match settled")

	return result, nil
}

// settleUser resolves one user's open bets, credits winnings, and appends the
// history record. Within a user, bets resolve in placement order; the total is
// a plain sum, so order never changes the outcome.
func (s *settlementService) settleUser(ctx context.Context, userID string, bets []*entities.Bet, outcomes map[int64]bool) (*interfaces.UserSettlement, error) {
	var winnings int64
	settled := make([]entities.SettledBet, 0, len(bets))

	for _, bet := range bets {
		won := outcomes[bet.ID]

		if err := s.betRepo.Resolve(ctx, bet.ID, won); err != nil {
			return nil, fmt.Errorf("failed to resolve bet %d: %w", bet.ID, err)
		}
		bet.Resolved = true
		bet.Won = won

		settled = append(settled, entities.SettledBet{
			BetID:  bet.ID,
			Player: bet.Player,
			Prop:   bet.Prop,
			Amount: bet.Amount,
			Odds:   bet.Odds,
			Won:    won,
			Payout: bet.Payout(),
		})
		winnings += bet.Payout()
	}

	// Lost stakes were already deducted at placement; only winnings move
	// coins here
	if winnings > 0 {
		user, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, fmt.Errorf("user %s not found", userID)
		}
		if err := s.userRepo.UpdateCoins(ctx, userID, user.TotalCoins+winnings, user.AvailableCoins); err != nil {
			return nil, err
		}
	}

	prior, err := s.recordRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	record := &entities.MatchRecord{
		UserID:    userID,
		MatchName: fmt.Sprintf("Match %d", prior+1),
		Bets:      settled,
	}
	if err := s.recordRepo.Append(ctx, record); err != nil {
		return nil, err
	}

	return &interfaces.UserSettlement{
		UserID:    userID,
		Winnings:  winnings,
		MatchName: record.MatchName,
		Bets:      settled,
	}, nil
}

// awardMVPBonus grants a point to everyone whose first-place pick topped the
// tally. Failures here never fail the settlement.
func (s *settlementService) awardMVPBonus(ctx context.Context, result *interfaces.SettlementResult) {
	votes, err := s.voteRepo.ListByMatch(ctx, entities.CurrentMatchID)
	if err != nil {
		log.WithError(err).Warn("Could not load votes for MVP bonus")
		return
	}
	if len(votes) == 0 {
		return
	}

	ranked := Tally(config.Get().Roster, votes)
	if len(ranked) == 0 || ranked[0].Score == 0 {
		return
	}
	result.MVPWinner = ranked[0].Player

	for _, vote := range votes {
		if vote.FirstPlace != result.MVPWinner {
			continue
		}
		if err := s.userRepo.AddMVPPoints(ctx, vote.UserID, 1); err != nil {
			log.WithError(err).WithField("user_id", vote.UserID).Warn("Could not award MVP point")
		}
	}
}

// resetRound clears per-round state: voted flags, leftover available coins,
// the current match's votes, and the round state machine.
func (s *settlementService) resetRound(ctx context.Context) {
	if err := s.userRepo.ResetVoted(ctx); err != nil {
		log.WithError(err).Error("Could not reset voted flags")
	}
	if _, err := s.userRepo.ZeroAvailableCoins(ctx); err != nil {
		log.WithError(err).Error("Could not clear leftover available coins")
	}
	if _, err := s.voteRepo.DeleteByMatch(ctx, entities.CurrentMatchID); err != nil {
		log.WithError(err).Error("Could not clear match votes")
	}

	round, err := s.roundRepo.Get(ctx)
	if err != nil {
		log.WithError(err).Error("Could not load round state for reset")
		return
	}
	round.Finish()
	if err := s.roundRepo.Save(ctx, round); err != nil {
		log.WithError(err).Error("Could not save round state after settlement")
	}
}
