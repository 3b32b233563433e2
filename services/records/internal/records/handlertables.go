package records

import (
	"errors"
	"net/http"

	"github.com/appetiteclub/apt"

	"github.com/appetiteclub/frontdesk/pkg/enums/occupancy"
)

func (h *Handler) ListTables(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListTables")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	filter := r.URL.Query().Get("occupancy")

	var tables []*Table
	var err error

	if filter != "" {
		state := occupancy.ByName(filter)
		if state == nil {
			apt.RespondError(w, http.StatusBadRequest, "Invalid occupancy filter")
			return
		}
		tables, err = h.tableRepo.ListByOccupancy(ctx, state.Name)
	} else {
		tables, err = h.tableRepo.List(ctx)
	}

	if err != nil {
		log.Error("error retrieving tables", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not retrieve tables")
		return
	}

	apt.RespondCollection(w, tables, "table")
}

func (h *Handler) GetTable(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetTable")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	table, err := h.tableRepo.Get(ctx, id)
	if err != nil {
		log.Error("error loading table", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusInternalServerError, "Could not retrieve table")
		return
	}

	if table == nil {
		apt.RespondError(w, http.StatusNotFound, "Table not found")
		return
	}

	links := apt.RESTfulLinksFor(table)
	apt.RespondSuccess(w, table, links...)
}

// UpdateTableOccupancy flips occupancy. A request carrying expected_occupancy
// is fenced: it fails with 409 when the table is not in that state, which is
// how a second claim of an occupied table gets rejected.
func (h *Handler) UpdateTableOccupancy(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.UpdateTableOccupancy")
	defer finish()

	log := h.log(r)
	ctx := r.Context()

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	var req TableOccupancyRequest
	if !h.decodePayload(w, r, log, &req) {
		return
	}

	if h.respondValidation(w, log, ValidateTableOccupancy(ctx, id, req)) {
		return
	}

	var target occupancy.Occupancy
	if req.Occupancy != "" {
		target = *occupancy.ByName(req.Occupancy)
	} else {
		target = occupancy.FromOccupied(*req.Occupied)
	}

	expected := ""
	if req.ExpectedOccupancy != "" {
		expected = occupancy.ByName(req.ExpectedOccupancy).Name
	}

	current, err := h.tableRepo.Get(ctx, id)
	if err != nil {
		log.Error("error loading table", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusInternalServerError, "Could not retrieve table")
		return
	}
	if current == nil {
		apt.RespondError(w, http.StatusNotFound, "Table not found")
		return
	}

	table, err := h.tableRepo.SetOccupancy(ctx, id, target.Name, expected)
	if err != nil {
		switch {
		case errors.Is(err, ErrConflict):
			log.Info("table occupancy conflict", "id", id.String(), "expected", expected)
			apt.RespondError(w, http.StatusConflict, "Table occupancy changed")
		case errors.Is(err, ErrNotFound):
			apt.RespondError(w, http.StatusNotFound, "Table not found")
		default:
			log.Error("cannot update table occupancy", "error", err)
			apt.RespondError(w, http.StatusInternalServerError, "Could not update table")
		}
		return
	}

	if current.Occupancy != table.Occupancy {
		h.publishTableOccupancyChanged(ctx, table, current.Occupancy, "table.occupancy.updated")
	}

	links := apt.RESTfulLinksFor(table)
	apt.RespondSuccess(w, table, links...)
}
