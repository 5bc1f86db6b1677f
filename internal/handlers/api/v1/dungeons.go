package v1

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/KirkDiggler/rpg-dungeon/internal/entities"
	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
	"github.com/KirkDiggler/rpg-dungeon/internal/orchestrators/dungeon"
)

// StartDungeonRequest is the body of POST /api/dungeons/start.
// EquippedArtifacts is a pointer so an omitted list is rejected while an
// empty one is accepted.
type StartDungeonRequest struct {
	HeroID            string                 `json:"heroId"`
	HeroStats         *entities.HeroSnapshot `json:"heroStats"`
	EquippedArtifacts *[]entities.Artifact   `json:"equippedArtifacts"`
}

// ChooseRequest is the body of POST /api/dungeons/:runId/choose
type ChooseRequest struct {
	ChoiceIndex *int `json:"choiceIndex"`
}

// RunResponse is the run snapshot returned by start and get
type RunResponse struct {
	RunID             string                  `json:"runId"`
	HeroID            string                  `json:"heroId"`
	HeroStats         entities.HeroSnapshot   `json:"heroStats"`
	EquippedArtifacts []entities.Artifact     `json:"equippedArtifacts"`
	Status            entities.RunStatus      `json:"status"`
	Position          entities.Position       `json:"position"`
	Rooms             []entities.RoomTemplate `json:"rooms"`
	VisitedRooms      []entities.Position     `json:"visitedRooms"`
	StartedAt         time.Time               `json:"startedAt"`
	FinishedAt        *time.Time              `json:"finishedAt"`
}

// ChoicesResponse lists the rooms reachable from the current position
type ChoicesResponse struct {
	Choices []entities.Choice `json:"choices"`
}

// ChooseResponse reports where the hero moved to
type ChooseResponse struct {
	Position entities.Position `json:"position"`
	RoomType entities.RoomType `json:"roomType"`
}

// FinishResponse is returned by finish, abandon and fail
type FinishResponse struct {
	Message    string             `json:"message"`
	RunID      string             `json:"runId"`
	HeroID     string             `json:"heroId"`
	Status     entities.RunStatus `json:"status"`
	FinishedAt *time.Time         `json:"finishedAt"`
}

// StartDungeon creates a new run for a hero.
// POST /api/dungeons/start
func (h *Handler) StartDungeon(c echo.Context) error {
	var req StartDungeonRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, errors.InvalidArgument("invalid request body"))
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("heroId", req.HeroID, vb)
	if req.HeroStats == nil {
		vb.RequiredField("heroStats")
	}
	if req.EquippedArtifacts == nil {
		vb.RequiredField("equippedArtifacts")
	}
	if err := vb.Build(); err != nil {
		return writeError(c, err)
	}

	output, err := h.dungeonService.Start(c.Request().Context(), &dungeon.StartInput{
		HeroID:            req.HeroID,
		HeroSnapshot:      req.HeroStats,
		EquippedArtifacts: *req.EquippedArtifacts,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, toRunResponse(output.Run))
}

// GetDungeon returns a run snapshot.
// GET /api/dungeons/:runId
func (h *Handler) GetDungeon(c echo.Context) error {
	id, err := runID(c)
	if err != nil {
		return writeError(c, err)
	}

	output, err := h.dungeonService.Get(c.Request().Context(), &dungeon.GetInput{RunID: id})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, toRunResponse(output.Run))
}

// GetChoices returns the next rooms the hero may enter.
// GET /api/dungeons/:runId/choices
func (h *Handler) GetChoices(c echo.Context) error {
	id, err := runID(c)
	if err != nil {
		return writeError(c, err)
	}

	output, err := h.dungeonService.GetChoices(c.Request().Context(), &dungeon.GetChoicesInput{RunID: id})
	if err != nil {
		return writeError(c, err)
	}

	choices := output.Choices
	if choices == nil {
		choices = []entities.Choice{}
	}
	return c.JSON(http.StatusOK, ChoicesResponse{Choices: choices})
}

// Choose moves the hero into one of the current choices.
// POST /api/dungeons/:runId/choose
func (h *Handler) Choose(c echo.Context) error {
	id, err := runID(c)
	if err != nil {
		return writeError(c, err)
	}

	var req ChooseRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, errors.InvalidArgument("choiceIndex must be 0 or 1"))
	}

	output, err := h.dungeonService.Choose(c.Request().Context(), &dungeon.ChooseInput{
		RunID:       id,
		ChoiceIndex: req.ChoiceIndex,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, ChooseResponse{
		Position: output.Position,
		RoomType: output.RoomType,
	})
}

// FinishDungeon marks a run completed.
// POST /api/dungeons/:runId/finish
func (h *Handler) FinishDungeon(c echo.Context) error {
	id, err := runID(c)
	if err != nil {
		return writeError(c, err)
	}

	output, err := h.dungeonService.Finish(c.Request().Context(), &dungeon.FinishInput{RunID: id})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, toFinishResponse("Dungeon completed", output.Run))
}

// AbandonDungeon marks a run abandoned.
// POST /api/dungeons/:runId/abandon
func (h *Handler) AbandonDungeon(c echo.Context) error {
	id, err := runID(c)
	if err != nil {
		return writeError(c, err)
	}

	output, err := h.dungeonService.Abandon(c.Request().Context(), &dungeon.AbandonInput{RunID: id})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, toFinishResponse("Dungeon abandoned", output.Run))
}

// FailDungeon marks a run failed after the hero died in combat.
// POST /api/dungeons/:runId/fail
func (h *Handler) FailDungeon(c echo.Context) error {
	id, err := runID(c)
	if err != nil {
		return writeError(c, err)
	}

	output, err := h.dungeonService.Fail(c.Request().Context(), &dungeon.FailInput{RunID: id})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, toFinishResponse("Dungeon failed", output.Run))
}

func toRunResponse(run *entities.DungeonRun) RunResponse {
	resp := RunResponse{
		RunID:             run.RunID,
		HeroID:            run.HeroID,
		HeroStats:         run.HeroSnapshot,
		EquippedArtifacts: run.EquippedArtifacts,
		Status:            run.Status,
		Position:          run.Position,
		Rooms:             run.Rooms,
		VisitedRooms:      run.VisitedRooms,
		StartedAt:         run.StartedAt,
		FinishedAt:        run.FinishedAt,
	}
	if resp.EquippedArtifacts == nil {
		resp.EquippedArtifacts = []entities.Artifact{}
	}
	if resp.Rooms == nil {
		resp.Rooms = []entities.RoomTemplate{}
	}
	if resp.VisitedRooms == nil {
		resp.VisitedRooms = []entities.Position{}
	}
	return resp
}

func toFinishResponse(message string, run *entities.DungeonRun) FinishResponse {
	return FinishResponse{
		Message:    message,
		RunID:      run.RunID,
		HeroID:     run.HeroID,
		Status:     run.Status,
		FinishedAt: run.FinishedAt,
	}
}
