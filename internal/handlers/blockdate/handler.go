package blockdate

import (
	"net/http"

	"cottage/infras/otel"
	"cottage/internal/domains/blockdate/model"
	"cottage/internal/domains/blockdate/model/dto"
	"cottage/internal/domains/blockdate/service"
	"cottage/shared/constant"
	gDto "cottage/shared/dto"
	"cottage/shared/validator"
	"cottage/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.BlockedDate
	otel    otel.Otel
}

func New(service service.BlockedDate, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/blocked-dates", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBlockedDate)
		routerGroup.Get("/", handler.GetBlockedDates)
		routerGroup.Delete("/{id}", handler.DeleteBlockedDate)
	})
}

// CreateBlockedDate marks a night as unsellable.
// @Summary Block a date
// @Description Block one night for a specific room, or for the whole property when no room is given.
// @Tags BlockedDate
// @Accept json
// @Produce json
// @Param request body dto.CreateBlockedDateRequest true "Create Blocked Date Request"
// @Success 201 {object} response.Message "Date blocked successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/blocked-dates [post]
// @Security BearerAuth
func (handler *Handler) CreateBlockedDate(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBlockedDate")
	defer scope.End()

	req := dto.CreateBlockedDateRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create blocked date")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Date blocked successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Date blocked successfully")
}

// GetBlockedDates retrieves blocked dates based on query parameters.
// @Summary Get blocked dates
// @Description Retrieve blocked dates with optional filtering and pagination.
// @Tags BlockedDate
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param room_id query string false "Filter by room ID"
// @Success 200 {object} response.Data[dto.GetBlockedDatesResponse] "List of blocked dates"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/blocked-dates [get]
// @Security BearerAuth
func (handler *Handler) GetBlockedDates(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBlockedDates")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	roomID := r.URL.Query().Get(model.FieldRoomID)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if roomID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldRoomID,
			Operator: gDto.FilterOperatorEq,
			Value:    roomID,
			Table:    model.TableName,
		})
	}

	blockedDates, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get blocked dates")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Blocked dates retrieved successfully")

	response.WithJSON(w, http.StatusOK, blockedDates)
}

// DeleteBlockedDate removes a block by its ID.
// @Summary Unblock a date
// @Description Remove a blocked date using its unique identifier.
// @Tags BlockedDate
// @Accept json
// @Produce json
// @Param id path string true "Blocked Date ID"
// @Success 200 {object} response.Message "Blocked date removed successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/blocked-dates/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteBlockedDate(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBlockedDate")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete blocked date")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Blocked date removed successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Blocked date removed successfully")
}
