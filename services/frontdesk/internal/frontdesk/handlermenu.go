package frontdesk

import (
	"net/http"
	"strconv"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"
)

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListCategories")
	defer finish()

	log := h.log(r)

	categories, err := h.menu.ListCategories(r.Context())
	if err != nil {
		h.respondErr(w, log, err, "Could not retrieve categories")
		return
	}

	apt.RespondCollection(w, categories, "category")
}

// ListDishes lists the catalog, available dishes only unless
// ?available=false is given.
func (h *Handler) ListDishes(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListDishes")
	defer finish()

	log := h.log(r)
	query := r.URL.Query()

	categoryID := uuid.Nil
	if raw := query.Get("category"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			apt.RespondError(w, http.StatusBadRequest, "Invalid category parameter")
			return
		}
		categoryID = id
	}

	availableOnly := true
	if raw := query.Get("available"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			apt.RespondError(w, http.StatusBadRequest, "Invalid available parameter")
			return
		}
		availableOnly = v
	}

	dishes, err := h.menu.ListDishes(r.Context(), categoryID, availableOnly)
	if err != nil {
		h.respondErr(w, log, err, "Could not retrieve dishes")
		return
	}

	apt.RespondCollection(w, dishes, "dish")
}

// ListTables returns fresh occupancy, or the cached view when the record
// store cannot be reached.
func (h *Handler) ListTables(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListTables")
	defer finish()

	log := h.log(r)

	tables, err := h.tables.ListTables(r.Context())
	if err != nil {
		cached := h.tables.Cached()
		if len(cached) == 0 {
			h.respondErr(w, log, err, "Could not retrieve tables")
			return
		}
		log.Info("serving cached tables", "error", err)
		tables = cached
	}

	apt.RespondCollection(w, tables, "table")
}

func (h *Handler) ListNotices(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListNotices")
	defer finish()

	notices := h.notices.Active(h.notices.now())
	if r.URL.Query().Get("all") == "true" {
		notices = h.notices.All()
	}

	apt.RespondCollection(w, notices, "notice")
}
