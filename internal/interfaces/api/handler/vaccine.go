package handler

import (
	"net/http"
	"petagenda/internal/application/dto"
	"petagenda/internal/application/service"
	"petagenda/internal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// VaccineHandler serves the vaccination endpoints.
type VaccineHandler struct {
	vaccineService service.VaccineService
	log            logger.Logger
}

// NewVaccineHandler creates a new VaccineHandler.
func NewVaccineHandler(vaccineService service.VaccineService, log logger.Logger) *VaccineHandler {
	return &VaccineHandler{vaccineService: vaccineService, log: log}
}

func (h *VaccineHandler) List(c echo.Context) error {
	records, err := h.vaccineService.ListVaccineRecords(c.Request().Context(), c.Param("petId"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respond(c, http.StatusOK, "vaccine records retrieved", dto.ToVaccineRecordResponseList(records))
}

func (h *VaccineHandler) Get(c echo.Context) error {
	record, err := h.vaccineService.GetVaccineRecord(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respond(c, http.StatusOK, "vaccine record retrieved", dto.ToVaccineRecordResponse(record))
}

func (h *VaccineHandler) Create(c echo.Context) error {
	var req dto.CreateVaccineRecordRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c)
	}
	if petID := c.Param("petId"); petID != "" {
		req.PetID = petID
	}
	record, err := h.vaccineService.CreateVaccineRecord(c.Request().Context(), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respond(c, http.StatusCreated, "vaccine record saved", dto.ToVaccineRecordResponse(record))
}

func (h *VaccineHandler) Update(c echo.Context) error {
	var req dto.UpdateVaccineRecordRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c)
	}
	record, err := h.vaccineService.UpdateVaccineRecord(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return respond(c, http.StatusOK, "vaccine record updated", dto.ToVaccineRecordResponse(record))
}

func (h *VaccineHandler) Delete(c echo.Context) error {
	if err := h.vaccineService.DeleteVaccineRecord(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return respond(c, http.StatusOK, "vaccine record deleted", nil)
}
