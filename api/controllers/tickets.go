package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmejiasc/comandas-backend/api/middleware"
	"github.com/dmejiasc/comandas-backend/api/responses"
	"github.com/dmejiasc/comandas-backend/api/validators"
	"github.com/dmejiasc/comandas-backend/internal/tickets"
	"github.com/dmejiasc/comandas-backend/pkg/enums"
	pkgerrors "github.com/dmejiasc/comandas-backend/pkg/errors"
	"github.com/dmejiasc/comandas-backend/pkg/logger"
)

const maxSearchQueryLen = 120

type updateItemStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in_prep delivered canceled"`
}

type cancelItemRequest struct {
	Reason string `json:"reason" validate:"required,min=1,max=500"`
}

type replaceItemRequest struct {
	NewProductName string `json:"new_product_name" validate:"required,min=1,max=255"`
	Reason         string `json:"reason" validate:"required,min=1,max=500"`
}

func ListTickets(svc tickets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters := tickets.ListFilters{
			Query: validators.SanitizeQuery(r.URL.Query().Get("q"), maxSearchQueryLen),
		}

		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := enums.ParseTicketStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter"))
				return
			}
			filters.Status = &status
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, 1000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filters.Limit = limit

		rows, err := svc.ListTickets(r.Context(), filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, tickets.TicketSummariesFromModels(rows))
	}
}

func TicketDetail(svc tickets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ticketID, err := parseTicketID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ticket, err := svc.GetTicket(r.Context(), ticketID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, tickets.TicketWithItemsFromModel(ticket))
	}
}

func TicketEvents(svc tickets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ticketID, err := parseTicketID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		events, err := svc.ListTicketEvents(r.Context(), ticketID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, tickets.AuditEventsFromModels(events))
	}
}

func UpdateItemStatus(svc tickets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ticketID, itemID, err := parseItemPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateItemStatusRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		status, err := enums.ParseItemStatus(req.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid item status"))
			return
		}

		item, err := svc.UpdateItemStatus(r.Context(), tickets.UpdateItemStatusInput{
			TicketID:  ticketID,
			ItemID:    itemID,
			Status:    status,
			ActorName: actorFromContext(r),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, tickets.TicketItemDetailFromModel(item))
	}
}

func CancelItem(svc tickets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ticketID, itemID, err := parseItemPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req cancelItemRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.CancelItem(r.Context(), tickets.CancelItemInput{
			TicketID:  ticketID,
			ItemID:    itemID,
			Reason:    req.Reason,
			ActorName: actorFromContext(r),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, tickets.TicketItemDetailFromModel(item))
	}
}

func ReplaceItem(svc tickets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ticketID, itemID, err := parseItemPath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req replaceItemRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.ReplaceItem(r.Context(), tickets.ReplaceItemInput{
			TicketID:       ticketID,
			ItemID:         itemID,
			NewProductName: req.NewProductName,
			Reason:         req.Reason,
			ActorName:      actorFromContext(r),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, tickets.TicketItemDetailFromModel(item))
	}
}

// PrintTicket renders the receipt HTML; width comes from the query string.
func PrintTicket(svc tickets.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ticketID, err := parseTicketID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		width, err := validators.ParseQueryInt(r, "width", 0, 58, 120)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		html, err := svc.PrintTicket(r.Context(), tickets.PrintTicketInput{
			TicketID:  ticketID,
			WidthMM:   width,
			ActorName: actorFromContext(r),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteHTML(w, http.StatusOK, html)
	}
}

func parseTicketID(r *http.Request) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "ticketId"))
	ticketID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid ticket id")
	}
	return ticketID, nil
}

func parseItemPath(r *http.Request) (uuid.UUID, uuid.UUID, error) {
	ticketID, err := parseTicketID(r)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	itemID, err := uuid.Parse(strings.TrimSpace(chi.URLParam(r, "itemId")))
	if err != nil {
		return uuid.Nil, uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid item id")
	}
	return ticketID, itemID, nil
}

func actorFromContext(r *http.Request) *string {
	if name := middleware.ActorNameFromContext(r.Context()); name != "" {
		return &name
	}
	return nil
}
