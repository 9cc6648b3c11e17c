package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"bank-admin-go/internal/database"
	"bank-admin-go/internal/entity"
	"bank-admin-go/internal/model"
	"bank-admin-go/internal/notifications"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// entityHandler serves the REST resource of one entity kind.
type entityHandler struct {
	server *Server
	meta   model.Meta
}

func (h *entityHandler) logger(r *http.Request) *log.Entry {
	return log.WithFields(log.Fields{
		"entity":     h.meta.Name,
		"request_id": r.Header.Get(entity.RequestIDHeader),
	})
}

func (h *entityHandler) create(w http.ResponseWriter, r *http.Request) {
	var record model.Record
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.logger(r).Debugf("REST request to save %s : %+v", h.meta.Name, record)

	if record.ID != nil {
		badRequestAlert(w, h.meta.Name, fmt.Sprintf("A new %s cannot already have an ID", h.meta.Name), "idexists")
		return
	}

	created, err := h.server.db.CreateRecord(r.Context(), h.meta.Table, record)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	alert := notifications.Alert{Entity: h.meta.Name, Action: notifications.Created, ID: *created.ID}
	h.server.notify(alert)

	setAlertHeaders(w, alert)
	w.Header().Set("Location", fmt.Sprintf("/%s/%d", h.meta.Resource, *created.ID))
	writeJSON(w, http.StatusCreated, created)
}

func (h *entityHandler) update(w http.ResponseWriter, r *http.Request) {
	record, ok := h.checkedBody(w, r)
	if !ok {
		return
	}
	h.logger(r).Debugf("REST request to update %s : %d", h.meta.Name, *record.ID)

	updated, err := h.server.db.UpdateRecord(r.Context(), h.meta.Table, record)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	alert := notifications.Alert{Entity: h.meta.Name, Action: notifications.Updated, ID: *updated.ID}
	h.server.notify(alert)

	setAlertHeaders(w, alert)
	writeJSON(w, http.StatusOK, updated)
}

// partialUpdate overwrites only the fields present and non-null in the body.
func (h *entityHandler) partialUpdate(w http.ResponseWriter, r *http.Request) {
	record, ok := h.checkedBody(w, r)
	if !ok {
		return
	}
	h.logger(r).Debugf("REST request to partial update %s : %d", h.meta.Name, *record.ID)

	patched, err := h.server.db.PatchRecord(r.Context(), h.meta.Table, record)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if patched == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	alert := notifications.Alert{Entity: h.meta.Name, Action: notifications.Updated, ID: *patched.ID}
	h.server.notify(alert)

	setAlertHeaders(w, alert)
	writeJSON(w, http.StatusOK, patched)
}

func (h *entityHandler) list(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		badRequestAlert(w, h.meta.Name, err.Error(), "badquery")
		return
	}
	h.logger(r).Debugf("REST request to get a page of %s", h.meta.Name)

	records, total, err := h.server.db.ListRecords(r.Context(), h.meta.Table, page)
	if err != nil {
		if errors.Is(err, database.ErrBadSort) {
			badRequestAlert(w, h.meta.Name, err.Error(), "badsort")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set(entity.TotalCountHeader, strconv.Itoa(total))
	writeJSON(w, http.StatusOK, records)
}

func (h *entityHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequestAlert(w, h.meta.Name, "Invalid id", "idinvalid")
		return
	}
	h.logger(r).Debugf("REST request to get %s : %d", h.meta.Name, id)

	record, err := h.server.db.GetRecord(r.Context(), h.meta.Table, id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if record == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, record)
}

func (h *entityHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		badRequestAlert(w, h.meta.Name, "Invalid id", "idinvalid")
		return
	}
	h.logger(r).Debugf("REST request to delete %s : %d", h.meta.Name, id)

	if err := h.server.db.DeleteRecord(r.Context(), h.meta.Table, id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	alert := notifications.Alert{Entity: h.meta.Name, Action: notifications.Deleted, ID: id}
	h.server.notify(alert)

	setAlertHeaders(w, alert)
	w.WriteHeader(http.StatusNoContent)
}

// checkedBody decodes a PUT or PATCH body and enforces that it names an existing
// entity matching the path id.
func (h *entityHandler) checkedBody(w http.ResponseWriter, r *http.Request) (model.Record, bool) {
	var record model.Record
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return model.Record{}, false
	}

	if record.ID == nil {
		badRequestAlert(w, h.meta.Name, "Invalid id", "idnull")
		return model.Record{}, false
	}

	id, err := pathID(r)
	if err != nil || id != *record.ID {
		badRequestAlert(w, h.meta.Name, "Invalid ID", "idinvalid")
		return model.Record{}, false
	}

	exists, err := h.server.db.RecordExists(r.Context(), h.meta.Table, id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return model.Record{}, false
	}
	if !exists {
		badRequestAlert(w, h.meta.Name, "Entity not found", "idnotfound")
		return model.Record{}, false
	}

	return record, true
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

const defaultPageSize = 20

// parsePage reads page, size and sort=field[,asc|desc] query parameters. Without
// size a page holds defaultPageSize rows.
func parsePage(r *http.Request) (database.Page, error) {
	query := r.URL.Query()
	page := database.Page{Limit: defaultPageSize}

	if raw := query.Get("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 1 {
			return database.Page{}, fmt.Errorf("invalid size %q", raw)
		}
		page.Limit = size
	}

	if raw := query.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return database.Page{}, fmt.Errorf("invalid page %q", raw)
		}
		page.Offset = n * page.Limit
	}

	for _, raw := range query["sort"] {
		parts := strings.Split(raw, ",")
		s := database.Sort{Column: parts[0]}
		if len(parts) > 1 {
			switch strings.ToLower(parts[1]) {
			case "asc":
			case "desc":
				s.Desc = true
			default:
				return database.Page{}, fmt.Errorf("invalid sort direction %q", parts[1])
			}
		}
		page.Sort = append(page.Sort, s)
	}

	return page, nil
}

func setAlertHeaders(w http.ResponseWriter, alert notifications.Alert) {
	w.Header().Set("X-"+applicationName+"-alert", alert.Message())
	w.Header().Set("X-"+applicationName+"-params", strconv.FormatInt(alert.ID, 10))
}

func badRequestAlert(w http.ResponseWriter, entityName, title, errorKey string) {
	w.Header().Set(entity.ErrorHeader, "error."+errorKey)
	w.Header().Set("X-"+applicationName+"-params", entityName)

	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(http.StatusBadRequest)
	if err := json.NewEncoder(w).Encode(problem{
		Type:       "about:blank",
		Title:      title,
		Status:     http.StatusBadRequest,
		EntityName: entityName,
		ErrorKey:   errorKey,
		Message:    "error." + errorKey,
	}); err != nil {
		log.Errorf("encoding problem: %v", err)
	}
}
