package main

import "net/http"

type healthStatus struct {
	Status     string            `json:"status"`
	SystemInfo map[string]string `json:"system_info"`
}

func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	health := healthStatus{
		Status: "available",
		SystemInfo: map[string]string{
			"environment": app.config.Environment,
			"version":     app.config.Version,
			"store":       app.config.Store,
		},
	}

	if err := app.writeJSON(w, http.StatusOK, health, nil); err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
