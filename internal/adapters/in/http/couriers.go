package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

var errUnknownField = errors.New("unknown field")

type idResponse struct {
	ID int64 `json:"id"`
}

type couriersCreatedResponse struct {
	Couriers []idResponse `json:"couriers"`
}

// courierResponse is shared by GET and PATCH; PATCH leaves Earnings nil.
type courierResponse struct {
	CourierID    int64    `json:"courier_id"`
	CourierType  string   `json:"courier_type"`
	Regions      []int    `json:"regions"`
	WorkingHours []string `json:"working_hours"`
	Earnings     *int64   `json:"earnings,omitempty"`
	Rating       *float64 `json:"rating,omitempty"`
}

type courierEntry struct {
	CourierID    int64    `json:"courier_id"`
	CourierType  string   `json:"courier_type"`
	Regions      []int    `json:"regions"`
	WorkingHours []string `json:"working_hours"`
}

// CreateCouriers handles POST /couriers.
func (s *Server) CreateCouriers(c echo.Context) error {
	entries, err := decodeBatch(c)
	if err != nil {
		return s.writeError(c, err)
	}

	drafts := make([]commands.CourierDraft, len(entries))
	rawIDs := make([]json.RawMessage, len(entries))
	for i, raw := range entries {
		drafts[i], rawIDs[i] = newCourierDraft(raw)
	}

	cmd, err := commands.NewCreateCouriersCommand(drafts)
	if err != nil {
		return s.writeError(c, err)
	}

	ids, err := s.handlers.CreateCouriers.Handle(c.Request().Context(), cmd)
	if err != nil {
		var rejected *errs.RejectedBatchError
		if errors.As(err, &rejected) {
			return s.writeRejectedBatch(c, rejected, rawIDs)
		}
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusCreated, couriersCreatedResponse{Couriers: newIDResponses(ids)})
}

// GetCourier handles GET /couriers/:courier_id.
func (s *Server) GetCourier(c echo.Context) error {
	courierID, err := courierIDParam(c)
	if err != nil {
		return s.writeError(c, err)
	}

	query, err := queries.NewGetCourierQuery(courierID)
	if err != nil {
		return s.writeError(c, err)
	}

	view, err := s.handlers.GetCourier.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}

	earnings := view.Earnings
	return c.JSON(http.StatusOK, courierResponse{
		CourierID:    view.CourierID,
		CourierType:  view.CourierType,
		Regions:      view.Regions,
		WorkingHours: view.WorkingHours,
		Earnings:     &earnings,
		Rating:       view.Rating,
	})
}

// UpdateCourier handles PATCH /couriers/:courier_id.
func (s *Server) UpdateCourier(c echo.Context) error {
	courierID, err := courierIDParam(c)
	if err != nil {
		return s.writeError(c, err)
	}

	body, err := readBody(c)
	if err != nil {
		return s.writeError(c, err)
	}
	patch, err := decodeCourierPatch(body)
	if err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewUpdateCourierCommand(courierID, patch)
	if err != nil {
		return s.writeError(c, err)
	}

	profile, err := s.handlers.UpdateCourier.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, courierResponse{
		CourierID:    profile.CourierID,
		CourierType:  profile.CourierType,
		Regions:      profile.Regions,
		WorkingHours: profile.WorkingHours,
	})
}

func courierIDParam(c echo.Context) (int64, error) {
	var courierID int64
	err := runtime.BindStyledParameterWithOptions("simple", "courier_id", c.Param("courier_id"), &courierID,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("courier_id", err)
	}
	return courierID, nil
}

// newCourierDraft decodes one batch entry. A broken entry still yields a
// draft, marked Malformed, so the whole batch can be reported.
func newCourierDraft(raw json.RawMessage) (commands.CourierDraft, json.RawMessage) {
	rawID, id := entryID(raw, "courier_id")
	draft := commands.CourierDraft{ID: id}

	if err := requireFields(raw, "courier_id", "courier_type", "regions", "working_hours"); err != nil {
		draft.Malformed = malformed("couriers", err)
		return draft, rawID
	}

	var entry courierEntry
	if err := decodeStrict(raw, &entry); err != nil {
		draft.Malformed = malformed("couriers", err)
		return draft, rawID
	}

	draft.Type = entry.CourierType
	draft.Regions = entry.Regions
	draft.WorkingHours = entry.WorkingHours
	return draft, rawID
}

// decodeCourierPatch accepts any subset of the three profile keys.
func decodeCourierPatch(body []byte) (commands.CourierPatch, error) {
	fields, err := decodeObject(body)
	if err != nil {
		return commands.CourierPatch{}, errs.NewValueIsInvalidErrorWithCause("body", err)
	}

	var patch commands.CourierPatch
	for key, raw := range fields {
		switch key {
		case "courier_type":
			var courierType string
			if err = json.Unmarshal(raw, &courierType); err != nil {
				return commands.CourierPatch{}, errs.NewValueIsInvalidErrorWithCause(key, err)
			}
			patch.Type = &courierType
		case "regions":
			var regions []int
			if err = json.Unmarshal(raw, &regions); err != nil {
				return commands.CourierPatch{}, errs.NewValueIsInvalidErrorWithCause(key, err)
			}
			patch.Regions = &regions
		case "working_hours":
			var hours []string
			if err = json.Unmarshal(raw, &hours); err != nil {
				return commands.CourierPatch{}, errs.NewValueIsInvalidErrorWithCause(key, err)
			}
			patch.WorkingHours = &hours
		default:
			return commands.CourierPatch{}, errs.NewValueIsInvalidErrorWithCause(key, errUnknownField)
		}
	}

	return patch, nil
}

func newIDResponses(ids []int64) []idResponse {
	out := make([]idResponse, 0, len(ids))
	for _, id := range ids {
		out = append(out, idResponse{ID: id})
	}
	return out
}
