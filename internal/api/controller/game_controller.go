package controller

import (
	"ctchen222/Tic-Tac-Toe-Solo/internal/api/models"
	"ctchen222/Tic-Tac-Toe-Solo/internal/api/response"
	"ctchen222/Tic-Tac-Toe-Solo/internal/api/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GameController handles game-related HTTP requests.
type GameController struct {
	gameService service.GameService
}

// NewGameController creates a new GameController.
func NewGameController(gameService service.GameService) *GameController {
	return &GameController{
		gameService: gameService,
	}
}

// RegisterRoutes mounts the game endpoints on r.
func (gc *GameController) RegisterRoutes(r gin.IRouter) {
	games := r.Group("/games")
	games.POST("", gc.Create)
	games.GET("/:id", gc.Get)
	games.POST("/:id/moves", gc.SubmitMove)
	games.POST("/:id/computer-move", gc.ComputerMove)
	games.POST("/:id/reset", gc.Reset)
}

// Create starts a new game.
func (gc *GameController) Create(c *gin.Context) {
	view, err := gc.gameService.Create(c.Request.Context())
	if err != nil {
		response.DomainErrorResponse(c, err)
		return
	}
	response.CreatedResponse(c, view)
}

// Get returns the state of a game.
func (gc *GameController) Get(c *gin.Context) {
	view, err := gc.gameService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.DomainErrorResponse(c, err)
		return
	}
	response.SuccessResponse(c, view)
}

// SubmitMove handles a human move.
func (gc *GameController) SubmitMove(c *gin.Context) {
	var req models.MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	view, err := gc.gameService.SubmitMove(c.Request.Context(), c.Param("id"), *req.Row, *req.Col)
	if err != nil {
		response.DomainErrorResponse(c, err)
		return
	}
	response.SuccessResponse(c, view)
}

// ComputerMove asks the computer to play. Clients call it once the game is
// awaiting the computer, after whatever pause they want to show.
func (gc *GameController) ComputerMove(c *gin.Context) {
	view, err := gc.gameService.ComputerMove(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.DomainErrorResponse(c, err)
		return
	}
	response.SuccessResponse(c, view)
}

// Reset starts the game over.
func (gc *GameController) Reset(c *gin.Context) {
	view, err := gc.gameService.Reset(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.DomainErrorResponse(c, err)
		return
	}
	response.SuccessResponse(c, view)
}
