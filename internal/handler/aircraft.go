package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/brunopesce23/EFI-IngSoft/internal/model"
	"github.com/brunopesce23/EFI-IngSoft/internal/repository"
)

// AircraftHandler manages the fleet: aircraft records and their generated
// seat maps. All routes are admin only.
type AircraftHandler struct {
	Aircraft *repository.AircraftRepo
	Seats    *repository.SeatRepo
}

func NewAircraftHandler(aircraft *repository.AircraftRepo, seats *repository.SeatRepo) *AircraftHandler {
	if aircraft == nil || seats == nil {
		panic("nil repository passed to NewAircraftHandler")
	}
	return &AircraftHandler{Aircraft: aircraft, Seats: seats}
}

type aircraftReq struct {
	Model   string `json:"model"`
	Rows    uint32 `json:"rows"`
	Columns uint32 `json:"columns"`
}

func (r aircraftReq) validate() string {
	if strings.TrimSpace(r.Model) == "" {
		return "model is required"
	}
	if r.Rows == 0 || r.Rows > model.MaxRows {
		return "rows must be between 1 and 200"
	}
	if r.Columns == 0 || r.Columns > model.MaxColumns {
		return "columns must be between 1 and 26"
	}
	return ""
}

// Create handles POST /v1/aircraft. It registers the aircraft and generates
// its full seat map in one go, row by row with lettered columns.
func (h *AircraftHandler) Create(c echo.Context) error {
	var req aircraftReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx := c.Request().Context()
	a := &model.Aircraft{
		Model:    strings.TrimSpace(req.Model),
		Rows:     req.Rows,
		Columns:  req.Columns,
		Capacity: model.Capacity(req.Rows, req.Columns),
	}
	if err := h.Aircraft.Create(ctx, a); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create aircraft failed"})
	}

	seats := model.GenerateSeatMap(a.ID, a.Rows, a.Columns, nil)
	if err := h.Seats.CreateBulk(ctx, seats); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "generate seats failed"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"aircraft":      a,
		"seats_created": len(seats),
	})
}

// Update handles PUT /v1/aircraft/:id. Growing the dimensions tops up the
// seat map with the missing seats only; existing seats keep their ids and
// state so reservations pointing at them stay valid. Seats are never
// deleted on shrink.
func (h *AircraftHandler) Update(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid aircraft id"})
	}
	var req aircraftReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx := c.Request().Context()
	a, err := h.Aircraft.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrAircraftNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "aircraft not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	a.Model = strings.TrimSpace(req.Model)
	a.Rows = req.Rows
	a.Columns = req.Columns
	a.Capacity = model.Capacity(req.Rows, req.Columns)
	if err := h.Aircraft.Update(ctx, a); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update aircraft failed"})
	}

	existing, err := h.Seats.ExistingNumbers(ctx, a.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load seats failed"})
	}
	added := model.GenerateSeatMap(a.ID, a.Rows, a.Columns, existing)
	if len(added) > 0 {
		if err := h.Seats.CreateBulk(ctx, added); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "generate seats failed"})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"aircraft":    a,
		"seats_added": len(added),
	})
}

// List handles GET /v1/aircraft.
func (h *AircraftHandler) List(c echo.Context) error {
	items, err := h.Aircraft.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load aircraft failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get handles GET /v1/aircraft/:id, returning the aircraft with its seat
// map ordered by row and column.
func (h *AircraftHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid aircraft id"})
	}
	ctx := c.Request().Context()
	a, err := h.Aircraft.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrAircraftNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "aircraft not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	seats, err := h.Seats.ListByAircraft(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load seats failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"aircraft": a,
		"seats":    seats,
	})
}
