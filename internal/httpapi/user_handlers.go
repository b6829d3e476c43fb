package httpapi

import (
	"net/http"
	"strings"

	"entrega.dev/internal/auth"
)

type updateUserRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Photo    string `json:"photo"`
	Password string `json:"password"`
}

func (a *API) handleUsersCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.listUsers(w, r)
	case http.MethodPut:
		a.updateUser(w, r)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPut)
	}
}

func (a *API) handleUserResource(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/users/")
	if path == "" {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}

	if q, ok := strings.CutPrefix(path, "name/"); ok {
		if r.Method != http.MethodGet {
			methodNotAllowed(w, r, http.MethodGet)
			return
		}
		a.searchUsersByName(w, r, q)
		return
	}
	if q, ok := strings.CutPrefix(path, "email/"); ok {
		if r.Method != http.MethodGet {
			methodNotAllowed(w, r, http.MethodGet)
			return
		}
		a.getUserByEmail(w, r, q)
		return
	}

	if strings.Contains(path, "/") {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		a.getUser(w, r, path)
	default:
		methodNotAllowed(w, r, http.MethodGet)
	}
}

func (a *API) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := a.users.List(r.Context())
	if err != nil {
		handleAuthError(w, r, err)
		return
	}
	if users == nil {
		users = []*auth.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

func (a *API) updateUser(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := a.authn.UpdateProfile(r.Context(), &auth.User{
		ID:    req.ID,
		Name:  req.Name,
		Email: req.Email,
		Photo: req.Photo,
	}, req.Password)
	if err != nil {
		handleAuthError(w, r, err)
		return
	}

	a.audit(r.Context(), "user.update", "user", updated.ID, nil)

	writeJSON(w, http.StatusOK, updated)
}

func (a *API) getUser(w http.ResponseWriter, r *http.Request, id string) {
	user, err := a.users.Find(r.Context(), id)
	if err != nil {
		handleAuthError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (a *API) getUserByEmail(w http.ResponseWriter, r *http.Request, email string) {
	user, err := a.users.FindByEmail(r.Context(), strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		handleAuthError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (a *API) searchUsersByName(w http.ResponseWriter, r *http.Request, name string) {
	users, err := a.users.SearchByName(r.Context(), name)
	if err != nil {
		handleAuthError(w, r, err)
		return
	}
	if users == nil {
		users = []*auth.User{}
	}
	writeJSON(w, http.StatusOK, users)
}
