package task

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/kazz187/taskmarket/internal/rpc"
	"github.com/kazz187/taskmarket/pkg/cerr"
)

// BrowseHandler serves the read-only JSON endpoints used by the browse page.
// Responses are written by cerr.NewConvertErrorChiMiddleware.
type BrowseHandler struct {
	store *Store
}

func NewBrowseHandler(store *Store) *BrowseHandler {
	return &BrowseHandler{store: store}
}

func (h *BrowseHandler) Routes(r chi.Router) {
	r.Get("/tasks", h.list)
	r.Get("/tasks/{id}", h.get)
}

func (h *BrowseHandler) list(_ http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	f, err := filterFromQuery(r.URL.Query())
	if err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	tasks, err := h.store.Query(ctx, f).Await(ctx)
	if err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	out := make([]*rpc.Task, len(tasks))
	for i, t := range tasks {
		out[i] = toRPC(t)
	}
	cerr.SetJSONResponse(ctx, &rpc.ListTasksResponse{Tasks: out})
}

func (h *BrowseHandler) get(_ http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	t, err := h.store.Get(ctx, chi.URLParam(r, "id")).Await(ctx)
	if err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	cerr.SetJSONResponse(ctx, &rpc.GetTaskResponse{Task: toRPC(t)})
}

// filterFromQuery starts from DefaultFilter and overrides whatever the query
// sets. posted_by narrows the list to one poster.
func filterFromQuery(q url.Values) (Filter, error) {
	f := DefaultFilter()
	var v violations
	if q.Has("category") {
		f.Category = q.Get("category")
	}
	f.PostedBy = q.Get("posted_by")
	if s := q.Get("min"); s != "" {
		d, err := decimal.NewFromString(s)
		if err != nil {
			v.add("min", "decimal", "min must be a decimal number")
		} else {
			f.PriceRange.Min = d
		}
	}
	if s := q.Get("max"); s != "" {
		d, err := decimal.NewFromString(s)
		if err != nil {
			v.add("max", "decimal", "max must be a decimal number")
		} else {
			f.PriceRange.Max = d
		}
	}
	if s := q.Get("distance"); s != "" {
		d, err := strconv.ParseFloat(s, 64)
		if err != nil {
			v.add("distance", "number", "distance must be a number")
		} else {
			f.Distance = d
		}
	}
	if s := q.Get("sort"); s != "" {
		f.SortBy = SortBy(s)
	}
	if err := v.err("invalid filter"); err != nil {
		return Filter{}, err
	}
	return f, nil
}
