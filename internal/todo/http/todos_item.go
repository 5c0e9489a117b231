package http

import (
	"encoding/json"
	"net/http"

	"github.com/tickbox/tickbox/internal/todo/domain"
	"github.com/tickbox/tickbox/internal/todo/service"
	"github.com/tickbox/tickbox/pkg/httpx"
)

// TodoItemHandler serves the single-item endpoints: get, patch, delete.
// Every operation is owner-scoped; a todo owned by another user and a
// nonexistent id produce the same 404.
type TodoItemHandler struct {
	Todos *service.TodoService
}

type patchTodoRequest struct {
	Text      *string `json:"text"`
	Completed *bool   `json:"completed"`
}

// HandleGet fetches one todo by id.
//
//	@Summary		Get a todo
//	@Tags			Todos
//	@Security		TokenAuth
//	@Produce		json
//	@Param			id	path		string	true	"Todo id"
//	@Success		200	{object}	object{todo=domain.PublicTodo}
//	@Failure		401	"Missing, invalid or revoked token"
//	@Failure		404	"Absent, not owned, or malformed id"
//	@Router			/todos/{id} [get].
func (h *TodoItemHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := userFromCtx(ctx)
	if !ok {
		httpx.WriteStatus(w, http.StatusUnauthorized)
		return
	}

	todo, err := h.Todos.Get(ctx, user, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, todoEnvelope{Todo: todo.Public()})
}

// HandlePatch updates a todo's text or completed flag. Fields other
// than text and completed are ignored; the typed request struct means
// the core never sees them at all.
//
//	@Summary		Update a todo
//	@Tags			Todos
//	@Security		TokenAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string									true	"Todo id"
//	@Param			body	body		object{text=string,completed=bool}		true	"Fields to update"
//	@Success		200		{object}	object{todo=domain.PublicTodo}
//	@Failure		400		{object}	object{error=string}					"Empty text"
//	@Failure		401		"Missing, invalid or revoked token"
//	@Failure		404		"Absent, not owned, or malformed id"
//	@Router			/todos/{id} [patch].
func (h *TodoItemHandler) HandlePatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := userFromCtx(ctx)
	if !ok {
		httpx.WriteStatus(w, http.StatusUnauthorized)
		return
	}

	var req patchTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteStatus(w, http.StatusBadRequest)
		return
	}

	patch := domain.TodoPatch{Text: req.Text, Completed: req.Completed}
	todo, err := h.Todos.Update(ctx, user, r.PathValue("id"), patch)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, todoEnvelope{Todo: todo.Public()})
}

// HandleDelete removes a todo and returns the deleted document.
//
//	@Summary		Delete a todo
//	@Tags			Todos
//	@Security		TokenAuth
//	@Produce		json
//	@Param			id	path		string	true	"Todo id"
//	@Success		200	{object}	object{todo=domain.PublicTodo}
//	@Failure		401	"Missing, invalid or revoked token"
//	@Failure		404	"Absent, not owned, or malformed id"
//	@Router			/todos/{id} [delete].
func (h *TodoItemHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := userFromCtx(ctx)
	if !ok {
		httpx.WriteStatus(w, http.StatusUnauthorized)
		return
	}

	todo, err := h.Todos.Delete(ctx, user, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, todoEnvelope{Todo: todo.Public()})
}
