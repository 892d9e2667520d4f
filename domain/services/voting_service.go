package services

import (
	"context"
	"sort"

	"matchbook/config"
	"matchbook/domain/entities"
	"matchbook/domain/interfaces"
	"matchbook/pkg/apperror"
)

type votingService struct {
	userRepo interfaces.UserRepository
	voteRepo interfaces.VoteRepository
}

// NewVotingService creates a new voting service
func NewVotingService(userRepo interfaces.UserRepository, voteRepo interfaces.VoteRepository) interfaces.VotingService {
	return &votingService{
		userRepo: userRepo,
		voteRepo: voteRepo,
	}
}

func (s *votingService) SubmitVote(ctx context.Context, userID, first, second, third string) (*entities.Vote, error) {
	vote := &entities.Vote{
		UserID:      userID,
		MatchID:     entities.CurrentMatchID,
		FirstPlace:  first,
		SecondPlace: second,
		ThirdPlace:  third,
	}

	// Validation fails fast, before any store write
	if err := vote.Validate(); err != nil {
		return nil, apperror.Validation("%s", err.Error())
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperror.Backend(err)
	}
	if user == nil {
		return nil, apperror.NotFound("user")
	}

	if err := s.voteRepo.Upsert(ctx, vote); err != nil {
		return nil, apperror.Backend(err)
	}

	if err := s.userRepo.SetVoted(ctx, userID, true); err != nil {
		return nil, apperror.Backend(err)
	}

	return vote, nil
}

func (s *votingService) TallyCurrent(ctx context.Context) ([]entities.PlayerScore, error) {
	votes, err := s.voteRepo.ListByMatch(ctx, entities.CurrentMatchID)
	if err != nil {
		return nil, apperror.Backend(err)
	}

	return Tally(config.Get().Roster, votes), nil
}

// Tally ranks players by podium votes: 5 points for a first-place pick, 3 for
// second, 2 for third. Every roster player appears in the result even with no
// votes; picks outside the roster are appended in first-seen order. Ties keep
// roster order (the sort is stable).
func Tally(roster []string, votes []*entities.Vote) []entities.PlayerScore {
	scores := make(map[string]int64, len(roster))
	order := make([]string, 0, len(roster))

	for _, player := range roster {
		if _, ok := scores[player]; !ok {
			scores[player] = 0
			order = append(order, player)
		}
	}

	add := func(player string, points int64) {
		if _, ok := scores[player]; !ok {
			order = append(order, player)
		}
		scores[player] += points
	}

	for _, vote := range votes {
		add(vote.FirstPlace, entities.FirstPlacePoints)
		add(vote.SecondPlace, entities.SecondPlacePoints)
		add(vote.ThirdPlace, entities.ThirdPlacePoints)
	}

	ranked := make([]entities.PlayerScore, len(order))
	for i, player := range order {
		ranked[i] = entities.PlayerScore{Player: player, Score: scores[player]}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	return ranked
}
