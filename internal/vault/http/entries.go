package http

import (
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/vault/internal/vault/domain"
	"github.com/aussiebroadwan/vault/internal/vault/service"
	"github.com/aussiebroadwan/vault/pkg/httpx"
	"github.com/aussiebroadwan/vault/pkg/vaultsdk"
)

// EntriesHandler serves the account's stored credentials.
type EntriesHandler struct {
	EntryService *service.EntryService
}

// HandleList handles GET /v1/entries
//
//	@Summary		List password entries
//	@Description	Newest first. The query matches email and description case-insensitively.
//	@Tags			Entries
//	@Security		SessionCookie
//	@Produce		json
//	@Param			query		query		string	false	"Search text"
//	@Param			page		query		int		false	"Page number, from 1"
//	@Param			per_page	query		int		false	"Page size: 5, 10, 15, 20, 50 or 100"
//	@Success		200			{object}	vaultsdk.EntryListResponse	"One page of entries"
//	@Failure		401			{object}	vaultsdk.ErrorResponse		"Not authenticated"
//	@Failure		500			{object}	vaultsdk.ErrorResponse		"Internal server error"
//	@Router			/v1/entries [get].
func (h *EntriesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	page, err := h.EntryService.List(ctx, httpx.AccountID(ctx), service.ListQuery{
		Search:  q.Get("query"),
		Page:    atoiOrZero(q.Get("page")),
		PerPage: atoiOrZero(q.Get("per_page")),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := vaultsdk.EntryListResponse{
		Success: true,
		Entries: make([]vaultsdk.EntryResponse, 0, len(page.Items)),
		Pagination: vaultsdk.PaginationResponse{
			Page:       page.Page,
			PerPage:    page.PerPage,
			Total:      page.Total,
			TotalPages: page.TotalPages(),
		},
	}
	for _, e := range page.Items {
		out.Entries = append(out.Entries, entryResponse(e))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleCreate handles POST /v1/entries
//
//	@Summary		Create a password entry
//	@Tags			Entries
//	@Security		SessionCookie
//	@Accept			json
//	@Produce		json
//	@Param			request	body		vaultsdk.EntryRequest	true	"Entry"
//	@Success		201		{object}	vaultsdk.EntryEnvelope	"Created entry"
//	@Failure		400		{object}	vaultsdk.ErrorResponse	"Email and password are required"
//	@Failure		401		{object}	vaultsdk.ErrorResponse	"Not authenticated"
//	@Failure		500		{object}	vaultsdk.ErrorResponse	"Internal server error"
//	@Router			/v1/entries [post].
func (h *EntriesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req vaultsdk.EntryRequest
	if err := httpx.ReadJSON(w, r, &req); err != nil {
		writeBadRequest(w, r, err)
		return
	}

	e, err := h.EntryService.Create(ctx, httpx.AccountID(ctx), service.EntryInput{
		Email:       req.Email,
		Password:    req.Password,
		Description: req.Description,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, vaultsdk.EntryEnvelope{Success: true, Entry: entryResponse(e)})
}

// HandleGet handles GET /v1/entries/{id}
//
//	@Summary		Get a password entry
//	@Tags			Entries
//	@Security		SessionCookie
//	@Produce		json
//	@Param			id	path		string					true	"Entry id"
//	@Success		200	{object}	vaultsdk.EntryEnvelope	"Entry"
//	@Failure		401	{object}	vaultsdk.ErrorResponse	"Not authenticated"
//	@Failure		404	{object}	vaultsdk.ErrorResponse	"Password entry not found"
//	@Router			/v1/entries/{id} [get].
func (h *EntriesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	e, err := h.EntryService.Get(ctx, httpx.AccountID(ctx), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, vaultsdk.EntryEnvelope{Success: true, Entry: entryResponse(e)})
}

// HandleUpdate handles PATCH /v1/entries/{id}
//
//	@Summary		Update a password entry
//	@Description	Omitted fields are left unchanged.
//	@Tags			Entries
//	@Security		SessionCookie
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Entry id"
//	@Param			request	body		vaultsdk.EntryUpdateRequest	true	"Fields to change"
//	@Success		200		{object}	vaultsdk.EntryEnvelope		"Updated entry"
//	@Failure		400		{object}	vaultsdk.ErrorResponse		"Validation failed"
//	@Failure		401		{object}	vaultsdk.ErrorResponse		"Not authenticated"
//	@Failure		404		{object}	vaultsdk.ErrorResponse		"Password entry not found"
//	@Router			/v1/entries/{id} [patch].
func (h *EntriesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req vaultsdk.EntryUpdateRequest
	if err := httpx.ReadJSON(w, r, &req); err != nil {
		writeBadRequest(w, r, err)
		return
	}

	e, err := h.EntryService.Update(ctx, httpx.AccountID(ctx), r.PathValue("id"), domain.EntryUpdate{
		Email:       req.Email,
		Password:    req.Password,
		Description: req.Description,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, vaultsdk.EntryEnvelope{Success: true, Entry: entryResponse(e)})
}

// HandleDelete handles DELETE /v1/entries/{id}
//
//	@Summary		Delete a password entry
//	@Tags			Entries
//	@Security		SessionCookie
//	@Produce		json
//	@Param			id	path		string						true	"Entry id"
//	@Success		200	{object}	vaultsdk.MessageResponse	"Deleted"
//	@Failure		401	{object}	vaultsdk.ErrorResponse		"Not authenticated"
//	@Failure		404	{object}	vaultsdk.ErrorResponse		"Password entry not found"
//	@Router			/v1/entries/{id} [delete].
func (h *EntriesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.EntryService.Delete(ctx, httpx.AccountID(ctx), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, vaultsdk.MessageResponse{Success: true, Message: "Password entry deleted"})
}

// atoiOrZero lets the service apply its defaults to missing or malformed
// numbers.
func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
