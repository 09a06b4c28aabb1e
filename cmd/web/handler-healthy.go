package main

import "net/http"

type healthResponse struct {
	Status string `json:"status"`
	// Completer is false when the server runs without a completion service credential and every question fails.
	Completer bool `json:"completer"`
}

// healthy reports that the server is up and whether suspects can answer.
func (app *application) healthy(w http.ResponseWriter, r *http.Request) {
	app.writeJSON(w, r, http.StatusOK, healthResponse{
		Status:    "ok",
		Completer: app.relay.CompleterConfigured(),
	})
}
