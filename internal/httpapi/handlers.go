package httpapi

import (
	"net/http"

	"github.com/alexanderramin/officeflow/internal/contract"
	"github.com/alexanderramin/officeflow/internal/domain"
	"github.com/gorilla/mux"
)

type handlers struct {
	api *API
}

func (h *handlers) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// listTemplates serves the whole catalog, one template with ?id=, or one
// category with ?category=.
func (h *handlers) listTemplates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	if id := q.Get("id"); id != "" {
		tpl, err := h.api.Templates.GetTemplate(ctx, id)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, tpl)
		return
	}

	var (
		templates []*domain.WorkflowTemplate
		err       error
	)
	if cat := q.Get("category"); cat != "" {
		templates, err = h.api.Templates.ListByCategory(ctx, cat)
	} else {
		templates, err = h.api.Templates.ListTemplates(ctx)
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if templates == nil {
		templates = []*domain.WorkflowTemplate{}
	}
	writeJSON(w, http.StatusOK, templates)
}

func (h *handlers) putTemplate(w http.ResponseWriter, r *http.Request) {
	var tpl domain.WorkflowTemplate
	if err := decodeBody(r, &tpl); err != nil {
		h.writeError(w, r, err)
		return
	}
	id := mux.Vars(r)["id"]
	if tpl.ID == "" {
		tpl.ID = id
	}
	if tpl.ID != id {
		h.writeError(w, r, badRequest("template id in body does not match path"))
		return
	}

	stored, err := h.api.Templates.PutTemplate(r.Context(), &tpl)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stored)
}

func (h *handlers) deleteTemplate(w http.ResponseWriter, r *http.Request) {
	if err := h.api.Templates.DeleteTemplate(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) listInstances(w http.ResponseWriter, r *http.Request) {
	var filter contract.InstanceFilter
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := domain.InstanceStatus(raw)
		if !s.Valid() {
			h.writeError(w, r, badRequest("unknown instance status "+raw))
			return
		}
		filter.Status = &s
	}

	instances, err := h.api.Instances.GetInstances(r.Context(), filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if instances == nil {
		instances = []*domain.WorkflowInstance{}
	}
	writeJSON(w, http.StatusOK, instances)
}

func (h *handlers) createInstance(w http.ResponseWriter, r *http.Request) {
	var req contract.CreateInstanceRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if req.TemplateID == "" {
		h.writeError(w, r, badRequest("templateId is required"))
		return
	}

	inst, err := h.api.Instances.CreateInstance(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, inst)
}

func (h *handlers) getInstance(w http.ResponseWriter, r *http.Request) {
	inst, err := h.api.Instances.GetInstance(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, inst)
}

func (h *handlers) cancelInstance(w http.ResponseWriter, r *http.Request) {
	inst, err := h.api.Instances.CancelInstance(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, inst)
}

func (h *handlers) setTaskStatus(w http.ResponseWriter, r *http.Request) {
	var req contract.SetTaskStatusRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if req.InstanceID == "" || req.TaskID == "" {
		h.writeError(w, r, badRequest("instanceId and taskId are required"))
		return
	}
	if !req.Status.Valid() {
		h.writeError(w, r, badRequest("unknown task status "+string(req.Status)))
		return
	}

	task, err := h.api.Instances.SetTaskStatus(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *handlers) listAssigned(w http.ResponseWriter, r *http.Request) {
	level, ok := h.levelParam(w, r)
	if !ok {
		return
	}
	queue, err := h.api.Instances.ListAssigned(r.Context(), level)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if queue == nil {
		queue = []contract.AssignedTask{}
	}
	writeJSON(w, http.StatusOK, queue)
}

func (h *handlers) listNotifications(w http.ResponseWriter, r *http.Request) {
	level, ok := h.levelParam(w, r)
	if !ok {
		return
	}
	records, err := h.api.Notifications.GetNotificationsFor(r.Context(), level)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if records == nil {
		records = []*domain.NotificationRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *handlers) markRead(w http.ResponseWriter, r *http.Request) {
	if err := h.api.Notifications.MarkRead(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) levelParam(w http.ResponseWriter, r *http.Request) (domain.PositionLevel, bool) {
	level, err := domain.ParsePositionLevel(r.URL.Query().Get("level"))
	if err != nil {
		h.writeError(w, r, badRequest(err.Error()))
		return "", false
	}
	return level, true
}
