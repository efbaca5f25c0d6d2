package handler

import (
	"net/http"
	"petagenda/internal/application/dto"
	"petagenda/internal/application/service"
	"petagenda/internal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// PetHandler serves the /pets endpoints.
type PetHandler struct {
	petService service.PetService
	log        logger.Logger
}

// NewPetHandler creates a new PetHandler.
func NewPetHandler(petService service.PetService, log logger.Logger) *PetHandler {
	return &PetHandler{petService: petService, log: log}
}

func (h *PetHandler) List(c echo.Context) error {
	pets, err := h.petService.ListPets(c.Request().Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respond(c, http.StatusOK, "pets retrieved", pets)
}

func (h *PetHandler) Get(c echo.Context) error {
	pet, err := h.petService.GetPet(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respond(c, http.StatusOK, "pet retrieved", pet)
}

func (h *PetHandler) Create(c echo.Context) error {
	var req dto.PetRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c)
	}
	pet, err := h.petService.CreatePet(c.Request().Context(), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respond(c, http.StatusCreated, "pet created", pet)
}

func (h *PetHandler) Update(c echo.Context) error {
	var req dto.PetRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c)
	}
	pet, err := h.petService.UpdatePet(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respond(c, http.StatusOK, "pet updated", pet)
}

func (h *PetHandler) Delete(c echo.Context) error {
	if err := h.petService.DeletePet(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return respond(c, http.StatusOK, "pet deleted", nil)
}
