package bed

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/beds", h.ListBeds)
	e.POST("/beds", h.UpsertBed)
	e.POST("/assign-bed", h.AssignBed)
}

// bedResponse is the canonical bed state returned by the write endpoints.
type bedResponse struct {
	Msg       string `json:"msg"`
	BedNo     string `json:"bed_no"`
	Ward      string `json:"ward"`
	Status    Status `json:"status"`
	PatientID *int   `json:"patient_id"`
}

func newBedResponse(msg string, b *Bed) bedResponse {
	return bedResponse{
		Msg:       msg,
		BedNo:     b.BedNo,
		Ward:      b.Ward,
		Status:    b.Status,
		PatientID: b.PatientID,
	}
}

func (h *Handler) ListBeds(c echo.Context) error {
	beds, err := h.svc.ListBeds(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"msg": "failed to list beds"})
	}
	if beds == nil {
		beds = []*Bed{}
	}
	return c.JSON(http.StatusOK, beds)
}

func (h *Handler) UpsertBed(c echo.Context) error {
	var req UpsertRequest
	if msg, ok := decodeBody(c, &req); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": msg})
	}

	b, created, err := h.svc.Upsert(c.Request().Context(), req)
	if err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			return c.JSON(http.StatusBadRequest, echo.Map{"msg": ve.Msg})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"msg": "failed to save bed"})
	}

	if created {
		return c.JSON(http.StatusCreated, newBedResponse("Bed created", b))
	}
	return c.JSON(http.StatusOK, newBedResponse("Bed status updated", b))
}

func (h *Handler) AssignBed(c echo.Context) error {
	var req AssignRequest
	if msg, ok := decodeBody(c, &req); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": msg})
	}

	b, err := h.svc.Assign(c.Request().Context(), req.Normalize())
	if err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			return c.JSON(http.StatusBadRequest, echo.Map{"msg": ve.Msg})
		}
		var nfe *NotFoundError
		if errors.As(err, &nfe) {
			return c.JSON(http.StatusNotFound, echo.Map{
				"msg": fmt.Sprintf("Bed not found with bed_no=%s and ward=%s", nfe.BedNo, nfe.Ward),
			})
		}
		if errors.Is(err, ErrOccupied) {
			return c.JSON(http.StatusBadRequest, echo.Map{"msg": "Bed already occupied"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"msg": "failed to assign bed"})
	}

	return c.JSON(http.StatusOK, newBedResponse("Bed assigned", b))
}

// decodeBody reads the request body into dst, distinguishing unparsable JSON
// from an empty payload so the client sees which one it sent.
func decodeBody(c echo.Context, dst interface{}) (string, bool) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return "failed to read request body", false
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return fmt.Sprintf("Invalid JSON: %v", err), false
	}
	if len(raw) == 0 {
		return "Empty payload", false
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Sprintf("Invalid JSON: %v", err), false
	}
	return "", true
}
