package handlers

import "net/http"

// InfoResponse describes the service
// swagger:model InfoResponse
type InfoResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	About   string `json:"about,omitempty"`
}

// NewHomeHandler returns the landing page handler.
// @Summary Home
// @Tags pages
// @Produce json
// @Success 200 {object} handlers.InfoResponse
// @Router / [get]
// @Router /home [get]
func NewHomeHandler(version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, InfoResponse{Name: "recipe-share", Version: version})
	}
}

// NewAboutHandler returns the about page handler.
// @Summary About
// @Tags pages
// @Produce json
// @Success 200 {object} handlers.InfoResponse
// @Router /about [get]
func NewAboutHandler(version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, InfoResponse{
			Name:    "recipe-share",
			Version: version,
			About:   "Share recipes with other cooks. Anyone can read and search; only the author can change or delete a recipe.",
		})
	}
}
