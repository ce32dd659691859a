package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/brunopesce23/EFI-IngSoft/internal/model"
	"github.com/brunopesce23/EFI-IngSoft/internal/repository"
)

// PassengerHandler manages the passenger directory and travel history.
type PassengerHandler struct {
	Passengers   *repository.PassengerRepo
	Reservations *repository.ReservationRepo
}

func NewPassengerHandler(passengers *repository.PassengerRepo, reservations *repository.ReservationRepo) *PassengerHandler {
	if passengers == nil || reservations == nil {
		panic("nil repository passed to NewPassengerHandler")
	}
	return &PassengerHandler{Passengers: passengers, Reservations: reservations}
}

type passengerReq struct {
	FullName       string `json:"full_name"`
	DocumentNumber string `json:"document_number"`
	DocumentType   string `json:"document_type"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	BirthDate      string `json:"birth_date"` // YYYY-MM-DD
}

// Create handles POST /v1/passengers. The document number is the natural
// key; a duplicate yields 409.
func (h *PassengerHandler) Create(c echo.Context) error {
	var req passengerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.FullName = strings.TrimSpace(req.FullName)
	req.DocumentNumber = strings.TrimSpace(req.DocumentNumber)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	docType := model.DocumentType(strings.TrimSpace(req.DocumentType))

	switch {
	case req.FullName == "":
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "full_name is required"})
	case req.DocumentNumber == "":
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "document_number is required"})
	case !model.ValidDocumentType(docType):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown document_type"})
	case req.Email == "":
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email is required"})
	}
	birth, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "birth_date must be YYYY-MM-DD"})
	}
	if birth.After(time.Now().UTC()) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "birth_date is in the future"})
	}

	p := &model.Passenger{
		FullName:       req.FullName,
		DocumentNumber: req.DocumentNumber,
		DocumentType:   docType,
		Email:          req.Email,
		Phone:          strings.TrimSpace(req.Phone),
		BirthDate:      birth,
	}
	if err := h.Passengers.Create(c.Request().Context(), p); err != nil {
		if err == repository.ErrDuplicate {
			return c.JSON(http.StatusConflict, echo.Map{"error": "document_number already registered"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create passenger failed"})
	}
	return c.JSON(http.StatusCreated, p)
}

// List handles GET /v1/passengers (admin). The q parameter matches name,
// document or email.
func (h *PassengerHandler) List(c echo.Context) error {
	items, err := h.Passengers.Search(c.Request().Context(), strings.TrimSpace(c.QueryParam("q")))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load passengers failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get handles GET /v1/passengers/:id (admin), returning the passenger with
// their reservation history newest first.
func (h *PassengerHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid passenger id"})
	}
	ctx := c.Request().Context()
	p, err := h.Passengers.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrPassengerNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "passenger not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	history, err := h.Reservations.ListByPassenger(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reservations failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"passenger":    p,
		"reservations": history,
	})
}
