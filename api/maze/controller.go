package mazeapi

import (
	"errors"
	"net/http"
	"time"

	dmn "github.com/beka-birhanu/gridpath-api/domain"
	"github.com/beka-birhanu/gridpath-api/maze"
	"github.com/beka-birhanu/gridpath-api/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MazeController manages maze generation and retrieval.
type MazeController struct {
	mazeRepo i.MazeRepo
}

// NewMazeController initializes a MazeController.
func NewMazeController(mr i.MazeRepo) (*MazeController, error) {
	return &MazeController{
		mazeRepo: mr,
	}, nil
}

// Register registers the maze routes.
func (mc *MazeController) Register(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.POST("/", mc.generate)
		mazes.GET("/:ID", mc.byID)
	}
}

// generate carves a new maze, persists it, and returns its block grid.
func (mc *MazeController) generate(ctx *gin.Context) {
	var request GenerateMazeRequest
	if err := ctx.ShouldBind(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	grid, err := maze.Generate(request.Width, request.Height)
	if err != nil {
		if errors.Is(err, maze.ErrInvalidDimensions) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while generating maze"})
		return
	}

	record := &dmn.Maze{
		ID:        uuid.New(),
		Width:     grid.Width(),
		Height:    grid.Height(),
		Rows:      grid.Rows(),
		CreatedAt: time.Now().UTC(),
	}
	if err := mc.mazeRepo.Save(record); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while saving maze"})
		return
	}

	ctx.JSON(http.StatusCreated, fromMaze(record))
}

// byID retrieves a stored maze.
func (mc *MazeController) byID(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "id not found"})
		return
	}

	record, err := mc.mazeRepo.ByID(id)
	if err != nil {
		if errors.Is(err, i.ErrMazeNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while loading maze"})
		return
	}

	ctx.JSON(http.StatusOK, fromMaze(record))
}
