package searchapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/beka-birhanu/gridpath-api/maze"
	"github.com/beka-birhanu/gridpath-api/search"
	"github.com/beka-birhanu/gridpath-api/service"
	"github.com/beka-birhanu/gridpath-api/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const defaultLeaderboardSize = 10

// SearchController manages search session operations.
type SearchController struct {
	sessionManager i.SearchSessionManager
	mazeRepo       i.MazeRepo
}

// NewSearchController initializes a SearchController.
func NewSearchController(sm i.SearchSessionManager, mr i.MazeRepo) (*SearchController, error) {
	return &SearchController{
		sessionManager: sm,
		mazeRepo:       mr,
	}, nil
}

// Register registers the search session routes.
func (sc *SearchController) Register(route *gin.RouterGroup) {
	searches := route.Group("/searches")
	{
		searches.POST("/", sc.create)
		searches.GET("/:ID", sc.frame)
		searches.POST("/:ID/advance", sc.advance)
		searches.DELETE("/:ID", sc.abandon)
	}
	route.GET("/leaderboard", sc.leaderboard)
}

// create handles session creation requests.
func (sc *SearchController) create(ctx *gin.Context) {
	var request CreateSearchRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	grid, err := sc.resolveGrid(&request)
	if err != nil {
		switch {
		case errors.Is(err, i.ErrMazeNotFound):
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, maze.ErrMalformedRows):
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while loading maze"})
		}
		return
	}

	id, err := sc.sessionManager.NewSession(
		search.Algorithm(request.Algorithm),
		grid,
		request.Start.toCoordinate(),
		request.Goal.toCoordinate(),
	)
	if err != nil {
		if errors.Is(err, search.ErrInvalidCoordinate) || errors.Is(err, search.ErrUnknownAlgorithm) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while creating search session"})
		return
	}

	ctx.JSON(http.StatusCreated, CreateSearchResponse{ID: id})
}

// resolveGrid loads the session's grid from the repository or the inline rows.
func (sc *SearchController) resolveGrid(request *CreateSearchRequest) (*maze.Grid, error) {
	if request.MazeID != nil {
		record, err := sc.mazeRepo.ByID(*request.MazeID)
		if err != nil {
			return nil, err
		}
		return maze.Parse(record.Rows)
	}
	return maze.Parse(request.Rows)
}

// advance performs bounded work units on a session and returns the last frame.
func (sc *SearchController) advance(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "id not found"})
		return
	}

	var request AdvanceRequest
	if err := ctx.ShouldBind(&request); err != nil && ctx.Request.ContentLength > 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	frame, err := sc.sessionManager.Advance(id, request.Steps)
	if err != nil {
		if errors.Is(err, service.ErrNoSession) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "No Session"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while advancing search"})
		return
	}

	ctx.JSON(http.StatusOK, fromFrame(frame))
}

// frame retrieves the latest frame of a session without advancing it.
func (sc *SearchController) frame(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "id not found"})
		return
	}

	frame, err := sc.sessionManager.Frame(id)
	if err != nil {
		if errors.Is(err, service.ErrNoSession) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "No Session"})
			return
		}
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, fromFrame(frame))
}

// abandon discards a session.
func (sc *SearchController) abandon(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "id not found"})
		return
	}

	if err := sc.sessionManager.Abandon(id); err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "No Session"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

// leaderboard lists the best finished runs.
func (sc *SearchController) leaderboard(ctx *gin.Context) {
	timeoutCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	runs, err := sc.sessionManager.TopRuns(timeoutCtx, defaultLeaderboardSize)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while loading leaderboard"})
		return
	}

	ctx.JSON(http.StatusOK, LeaderboardResponse{Runs: runs})
}
