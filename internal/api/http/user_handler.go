package http

import (
	"net/http"

	"dhara-backend/internal/service"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Me returns the profile of the authenticated caller.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, _ := caller(r.Context())
	user, err := h.userService.GetUserProfile(r.Context(), userID)
	if err != nil {
		fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, user)
}
