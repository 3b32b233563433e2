package records

import (
	"net/http"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"
)

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListCategories")
	defer finish()

	log := h.log(r)

	categories, err := h.menuRepo.ListCategories(r.Context())
	if err != nil {
		log.Error("error retrieving categories", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not retrieve categories")
		return
	}

	apt.RespondCollection(w, categories, "category")
}

func (h *Handler) ListDishes(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.ListDishes")
	defer finish()

	log := h.log(r)
	query := r.URL.Query()

	var filter DishFilter
	if raw := query.Get("category"); raw != "" {
		categoryID, err := uuid.Parse(raw)
		if err != nil {
			apt.RespondError(w, http.StatusBadRequest, "Invalid category parameter")
			return
		}
		filter.CategoryID = &categoryID
	}
	filter.AvailableOnly = query.Get("available") == "true"

	dishes, err := h.menuRepo.ListDishes(r.Context(), filter)
	if err != nil {
		log.Error("error retrieving dishes", "error", err)
		apt.RespondError(w, http.StatusInternalServerError, "Could not retrieve dishes")
		return
	}

	apt.RespondCollection(w, dishes, "dish")
}

func (h *Handler) GetDish(w http.ResponseWriter, r *http.Request) {
	w, r, finish := h.tlm.Start(w, r, "Handler.GetDish")
	defer finish()

	log := h.log(r)

	id, ok := h.parseIDParam(w, r, log)
	if !ok {
		return
	}

	dish, err := h.menuRepo.GetDish(r.Context(), id)
	if err != nil {
		log.Error("error loading dish", "error", err, "id", id.String())
		apt.RespondError(w, http.StatusInternalServerError, "Could not retrieve dish")
		return
	}
	if dish == nil {
		apt.RespondError(w, http.StatusNotFound, "Dish not found")
		return
	}

	links := apt.RESTfulLinksFor(dish)
	apt.RespondSuccess(w, dish, links...)
}
