package web

import (
	"net/http"

	"matchbook/application/dto"
	"matchbook/config"
	"matchbook/metrics"
	"matchbook/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type voteRequest struct {
	FirstPlace  string `json:"first_place" binding:"required"`
	SecondPlace string `json:"second_place" binding:"required"`
	ThirdPlace  string `json:"third_place" binding:"required"`
}

type betRequest struct {
	Player string `json:"player" binding:"required"`
	Prop   string `json:"prop" binding:"required"`
	Amount int64  `json:"amount" binding:"required"`
	Odds   int64  `json:"odds"`
}

func (s *Server) handleProfile(c *gin.Context) {
	session := currentSession(c)

	user, err := s.users.GetByID(c.Request.Context(), session.UserID)
	if err != nil {
		respondError(c, apperror.Backend(err))
		return
	}
	if user == nil {
		respondError(c, apperror.NotFound("user"))
		return
	}

	c.JSON(http.StatusOK, dto.UserToProfileDTO(user))
}

func (s *Server) handleLeaderboard(c *gin.Context) {
	users, err := s.users.List(c.Request.Context())
	if err != nil {
		respondError(c, apperror.Backend(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": dto.UsersToLeaderboard(users)})
}

func (s *Server) handleRoster(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"players": config.Get().Roster})
}

func (s *Server) handleSubmitVote(c *gin.Context) {
	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	session := currentSession(c)
	_, err := s.voting.SubmitVote(c.Request.Context(), session.UserID, req.FirstPlace, req.SecondPlace, req.ThirdPlace)
	if err != nil {
		respondError(c, err)
		return
	}

	metrics.VotesSubmitted.Inc()
	c.JSON(http.StatusOK, gin.H{"message": "vote recorded"})
}

func (s *Server) handleTally(c *gin.Context) {
	scores, err := s.voting.TallyCurrent(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tally": dto.ScoresToTallyRows(scores)})
}

func (s *Server) handlePlaceBet(c *gin.Context) {
	var req betRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	session := currentSession(c)
	bet, err := s.betting.PlaceBet(c.Request.Context(), session.UserID, req.Player, req.Prop, req.Amount, req.Odds)
	if err != nil {
		respondError(c, err)
		return
	}

	metrics.BetsPlaced.Inc()
	c.JSON(http.StatusCreated, dto.BetToDTO(bet))
}

func (s *Server) handleMyBets(c *gin.Context) {
	session := currentSession(c)

	bets, err := s.betting.UserBets(c.Request.Context(), session.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bets": dto.BetsToDTOs(bets)})
}

func (s *Server) handleHistory(c *gin.Context) {
	session := currentSession(c)

	records, err := s.records.ListByUser(c.Request.Context(), session.UserID)
	if err != nil {
		respondError(c, apperror.Backend(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": dto.RecordsToHistory(records)})
}

func (s *Server) handleRound(c *gin.Context) {
	round, err := s.rounds.State(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.RoundToStatusDTO(round))
}
