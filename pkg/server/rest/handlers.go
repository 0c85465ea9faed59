package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"lintang/postmanx/pkg/geo"
	"lintang/postmanx/pkg/server"
	"lintang/postmanx/pkg/server/rest/service"
	"lintang/postmanx/pkg/util"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

type PostmanService interface {
	ChinesePostmanRoute(ctx context.Context, polygon []geo.Location, avoidPolygons [][]geo.Location,
		origin, dest geo.Location, departAt string) (service.RouteResult, error)
}

type PostmanHandler struct {
	svc          PostmanService
	promeMetrics *metrics
}

func PostmanRouter(r *chi.Mux, svc PostmanService, m *metrics) {
	handler := &PostmanHandler{svc, m}

	r.Group(func(r chi.Router) {
		r.Route("/api/postman", func(r chi.Router) {
			r.Post("/route", handler.chinesePostmanRoute)
		})
	})
}

// Coord model info
//
//	@Description	model for a coordinate
type Coord struct {
	Lat float64 `json:"lat" validate:"required,lt=90,gt=-90"`
	Lon float64 `json:"lon" validate:"required,lt=180,gt=-180"`
}

// ChinesePostmanRequest model info
//
//	@Description	request body for a route inspection query. The route covers every road inside the polygon at least once
type ChinesePostmanRequest struct {
	Polygon       []Coord   `json:"polygon" validate:"required,min=3,dive"`
	AvoidPolygons [][]Coord `json:"avoid_polygons" validate:"omitempty,dive,min=3,dive"`
	Origin        Coord     `json:"origin" validate:"required"`
	Destination   Coord     `json:"destination" validate:"required"`
	Costing       string    `json:"costing" validate:"omitempty,oneof=auto"`
	DepartAt      string    `json:"depart_at"`
}

func (s *ChinesePostmanRequest) Bind(r *http.Request) error {
	if len(s.Polygon) < 3 {
		return errors.New("invalid request")
	}
	return nil
}

// RouteStep model info
//
//	@Description	model for one traversed edge of the inspection route
type RouteStep struct {
	EdgeID         uint64  `json:"edge_id"`
	ETA            float64 `json:"ETA"`
	TransitionCost float64 `json:"transition_cost,omitempty"`
	FromShortcut   bool    `json:"from_shortcut,omitempty"`
}

// ChinesePostmanResponse model info
//
//	@Description	response body for a route inspection query
type ChinesePostmanResponse struct {
	Steps []RouteStep `json:"steps"`
	Shape string      `json:"shape"`
	Dist  float64     `json:"distance"`
	ETA   float64     `json:"ETA"`
}

func NewChinesePostmanResponse(res service.RouteResult) *ChinesePostmanResponse {
	steps := make([]RouteStep, 0, len(res.Steps))
	for _, s := range res.Steps {
		steps = append(steps, RouteStep{
			EdgeID:         uint64(s.EdgeID),
			ETA:            util.RoundFloat(s.ElapsedCost.Secs, 2),
			TransitionCost: util.RoundFloat(s.TransitionCost.Secs, 2),
			FromShortcut:   s.FromShortcut,
		})
	}
	return &ChinesePostmanResponse{
		Steps: steps,
		Shape: res.Shape,
		Dist:  util.RoundFloat(res.Dist/1000, 2),
		ETA:   util.RoundFloat(res.ETA, 2),
	}
}

// chinesePostmanRoute
//
//	@Summary		route inspection query. Computes a closed route that covers every road inside the polygon at least once
//	@Description	route inspection query. Computes a closed route that covers every road inside the polygon at least once, skipping roads inside the avoid polygons
//	@Tags			postman
//	@Param			body	body	ChinesePostmanRequest	true	"request body route inspection query"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/postman/route [post]
//	@Success		200	{object}	ChinesePostmanResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		422	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *PostmanHandler) chinesePostmanRoute(w http.ResponseWriter, r *http.Request) {
	data := &ChinesePostmanRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	validate := validator.New()
	if err := validate.Struct(*data); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		render.Render(w, r, ErrValidation(err, vv))
		return
	}

	polygon := make([]geo.Location, 0, len(data.Polygon))
	for _, c := range data.Polygon {
		polygon = append(polygon, geo.NewLocation(c.Lat, c.Lon))
	}
	avoidPolygons := make([][]geo.Location, 0, len(data.AvoidPolygons))
	for _, ap := range data.AvoidPolygons {
		avoid := make([]geo.Location, 0, len(ap))
		for _, c := range ap {
			avoid = append(avoid, geo.NewLocation(c.Lat, c.Lon))
		}
		avoidPolygons = append(avoidPolygons, avoid)
	}

	h.promeMetrics.CPQueryCount.WithLabelValues("true").Inc()
	res, err := h.svc.ChinesePostmanRoute(r.Context(), polygon, avoidPolygons,
		geo.NewLocation(data.Origin.Lat, data.Origin.Lon),
		geo.NewLocation(data.Destination.Lat, data.Destination.Lon),
		data.DepartAt)
	if err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, NewChinesePostmanResponse(res))
}

// ErrResponse model info
//
//	@Description	model for error response
type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	StatusText    string   `json:"status"`          // user-level status message
	AppCode       int64    `json:"code,omitempty"`  // application-specific error code
	ErrorText     string   `json:"error,omitempty"` // application-level error message, for debugging
	ErrValidation []string `json:"validation,omitempty"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func ErrInternalServerErrorRend(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 500,
		StatusText:     "Internal server error.",
		ErrorText:      err.Error(),
	}
}

func ErrValidation(err error, errV []error) render.Renderer {
	vv := []string{}
	for _, v := range errV {
		vv = append(vv, v.Error())
	}
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 400,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
		ErrValidation:  vv,
	}
}

func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 400,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
	}
}

func ErrChi(err error) render.Renderer {
	statusText := ""
	switch getStatusCode(err) {
	case http.StatusNotFound:
		statusText = "Resource not found."
	case http.StatusInternalServerError:
		statusText = "Internal server error."
	case http.StatusConflict:
		statusText = "Resource conflict."
	case http.StatusBadRequest:
		statusText = "Bad request."
	case http.StatusUnprocessableEntity:
		statusText = "Unprocessable request."
	default:
		statusText = "Error."
	}

	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: getStatusCode(err),
		StatusText:     statusText,
		ErrorText:      err.Error(),
	}
}

func getStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var ierr *server.Error
	if !errors.As(err, &ierr) {
		return http.StatusInternalServerError
	}
	switch ierr.Code() {
	case server.ErrInternalServerError:
		return http.StatusInternalServerError
	case server.ErrNotFound:
		return http.StatusNotFound
	case server.ErrConflict:
		return http.StatusConflict
	case server.ErrBadParamInput:
		return http.StatusBadRequest
	case server.ErrUnprocessable:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func translateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	validatorErrs := err.(validator.ValidationErrors)
	for _, e := range validatorErrs {
		translatedErr := fmt.Errorf(e.Translate(trans))
		errs = append(errs, translatedErr)
	}
	return errs
}
