package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrivas/biblioteca/internal/database"
	"github.com/mrivas/biblioteca/internal/stats"
)

// StatsProvider computes catalog statistics.
type StatsProvider interface {
	AuthorStats(authorID uint) (*stats.AuthorStats, error)
	GlobalStats() (*stats.GlobalStats, error)
}

type StatsController struct {
	provider StatsProvider
}

func NewStatsController(provider StatsProvider) *StatsController {
	return &StatsController{provider: provider}
}

// AuthorStats returns the per-author summary figures.
// GET /api/authors/:id/stats
func (sc *StatsController) AuthorStats(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	s, err := sc.provider.AuthorStats(id)
	if errors.Is(err, database.ErrNotFound) {
		respondNotFound(c, "author")
		return
	}
	if err != nil {
		respondInternalError(c, err, "author stats")
		return
	}
	c.JSON(http.StatusOK, s)
}

// GlobalStats returns the catalog-wide summary figures.
// GET /api/stats
func (sc *StatsController) GlobalStats(c *gin.Context) {
	s, err := sc.provider.GlobalStats()
	if err != nil {
		respondInternalError(c, err, "global stats")
		return
	}
	c.JSON(http.StatusOK, s)
}
