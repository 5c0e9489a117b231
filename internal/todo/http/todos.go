package http

import (
	"encoding/json"
	"net/http"

	"github.com/tickbox/tickbox/internal/todo/domain"
	"github.com/tickbox/tickbox/internal/todo/service"
	"github.com/tickbox/tickbox/pkg/httpx"
)

// TodosHandler serves the collection endpoints: create and list.
type TodosHandler struct {
	Todos *service.TodoService
}

type createTodoRequest struct {
	Text string `json:"text"`
}

// todoEnvelope wraps single-todo responses the way the API has always
// shaped them.
type todoEnvelope struct {
	Todo domain.PublicTodo `json:"todo"`
}

type todoListEnvelope struct {
	Todos []domain.PublicTodo `json:"todos"`
}

// HandleCreate creates a todo owned by the caller.
//
//	@Summary		Create a todo
//	@Tags			Todos
//	@Security		TokenAuth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		object{text=string}		true	"Todo text"
//	@Success		200		{object}	domain.PublicTodo
//	@Failure		400		{object}	object{error=string}	"Empty text"
//	@Failure		401		"Missing, invalid or revoked token"
//	@Router			/todos [post].
func (h *TodosHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := userFromCtx(ctx)
	if !ok {
		httpx.WriteStatus(w, http.StatusUnauthorized)
		return
	}

	var req createTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteStatus(w, http.StatusBadRequest)
		return
	}

	todo, err := h.Todos.Create(ctx, user, req.Text)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, todo.Public())
}

// HandleList returns all of the caller's todos.
//
//	@Summary		List todos
//	@Tags			Todos
//	@Security		TokenAuth
//	@Produce		json
//	@Success		200	{object}	object{todos=[]domain.PublicTodo}
//	@Failure		401	"Missing, invalid or revoked token"
//	@Router			/todos [get].
func (h *TodosHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := userFromCtx(ctx)
	if !ok {
		httpx.WriteStatus(w, http.StatusUnauthorized)
		return
	}

	todos, err := h.Todos.List(ctx, user)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	public := make([]domain.PublicTodo, 0, len(todos))
	for _, t := range todos {
		public = append(public, t.Public())
	}

	httpx.WriteJSON(w, http.StatusOK, todoListEnvelope{Todos: public})
}
