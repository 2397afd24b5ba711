package patient

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/patients", h.ListPatients)
	e.POST("/patients", h.RegisterPatient)
	e.DELETE("/patients/:id", h.DeletePatient)
	e.GET("/doctor/patients", h.ListDoctorPatients)
}

func (h *Handler) ListPatients(c echo.Context) error {
	patients, err := h.svc.ListPatients(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"msg": "failed to list patients"})
	}
	if patients == nil {
		patients = []*Patient{}
	}
	return c.JSON(http.StatusOK, patients)
}

func (h *Handler) RegisterPatient(c echo.Context) error {
	var req CreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid request body"})
	}

	p := req.Normalize()
	if err := h.svc.Register(c.Request().Context(), p); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": err.Error()})
	}

	// The generated id sits at the top level so client grids get a row key.
	return c.JSON(http.StatusCreated, echo.Map{
		"msg":       "Patient registered",
		"id":        p.ID,
		"name":      p.Name,
		"age":       p.Age,
		"gender":    p.Gender,
		"symptoms":  p.Symptoms,
		"date":      p.Date,
		"doctor_id": p.DoctorID,
	})
}

func (h *Handler) DeletePatient(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid patient id"})
	}

	err = h.svc.DeletePatient(c.Request().Context(), id)
	if errors.Is(err, ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"msg": "Patient not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"msg": "failed to delete patient"})
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "Patient deleted"})
}

// doctorPatientItem is the reduced listing used by the doctor's worklist.
type doctorPatientItem struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Symptoms *string `json:"symptoms"`
	DoctorID *string `json:"doctor_id"`
}

func (h *Handler) ListDoctorPatients(c echo.Context) error {
	patients, err := h.svc.ListForDoctor(c.Request().Context(), c.QueryParam("doctor_id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"msg": "failed to list patients"})
	}

	out := make([]doctorPatientItem, 0, len(patients))
	for _, p := range patients {
		out = append(out, doctorPatientItem{
			ID:       p.ID,
			Name:     p.Name,
			Symptoms: p.Symptoms,
			DoctorID: p.DoctorID,
		})
	}
	return c.JSON(http.StatusOK, out)
}
