package web

import (
	"net/http"
	"strconv"

	"matchbook/application/dto"
	"matchbook/domain/entities"
	"matchbook/metrics"
	"matchbook/pkg/apperror"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type openBettingRequest struct {
	Amount int64 `json:"amount"`
}

type endMatchRequest struct {
	// Decisions maps bet ID to whether the proposition came true. Every
	// unresolved bet needs a decision before settlement runs.
	Decisions map[string]bool `json:"decisions" binding:"required"`
}

func (s *Server) handleOpenBetting(c *gin.Context) {
	// An empty body means the configured default amount
	var req openBettingRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
	}

	result, err := s.rounds.OpenBetting(c.Request.Context(), req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	metrics.CoinsDistributed.Add(float64(result.CoinsMoved))
	metrics.SetRoundState(string(entities.RoundStateOpen))
	c.JSON(http.StatusOK, dto.DistributionToDTO(result))
}

func (s *Server) handleCloseBetting(c *gin.Context) {
	if err := s.rounds.CloseBetting(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}

	metrics.SetRoundState(string(entities.RoundStateClosed))
	c.JSON(http.StatusOK, gin.H{"message": "betting closed"})
}

func (s *Server) handleStartMatch(c *gin.Context) {
	if err := s.rounds.StartMatch(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "match started, votes reset"})
}

func (s *Server) handleEndMatch(c *gin.Context) {
	var req endMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	decisions := make(map[int64]bool, len(req.Decisions))
	for key, won := range req.Decisions {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			respondError(c, apperror.Validation("invalid bet id %q", key))
			return
		}
		decisions[id] = won
	}

	result, err := s.settlement.EndMatch(c.Request.Context(), func(bet *entities.Bet) (bool, error) {
		won, ok := decisions[bet.ID]
		if !ok {
			return false, apperror.Validation("no decision for bet %d", bet.ID)
		}
		return won, nil
	})
	if err != nil {
		respondError(c, err)
		return
	}

	metrics.MatchesSettled.Inc()
	metrics.SetRoundState(string(entities.RoundStateIdle))
	log.WithField("users_settled", len(result.Settled)).Info("Settlement complete")
	c.JSON(http.StatusOK, dto.SettlementToDTO(result))
}
