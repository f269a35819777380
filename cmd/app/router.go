package main

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (app *application) routes() http.Handler {
	router := mux.NewRouter()

	router.NotFoundHandler = http.HandlerFunc(app.routeNotFoundErrorResponse)
	router.MethodNotAllowedHandler = http.HandlerFunc(app.methodNotAllowedErrorResponse)

	router.HandleFunc("/healthcheck", app.healthCheckHandler).Methods(http.MethodGet)

	// user service
	router.HandleFunc("/users/signup", app.signupUserHandler).Methods(http.MethodPost)
	router.HandleFunc("/users/login", app.loginUserHandler).Methods(http.MethodPost)
	router.HandleFunc("/users/profile", app.requireAuthUser(app.profileHandler)).Methods(http.MethodGet)

	// blog service
	router.HandleFunc("/blogs", app.listBlogsHandler).Methods(http.MethodGet)
	router.HandleFunc("/blogs", app.requireAuthUser(app.createBlogHandler)).Methods(http.MethodPost)
	router.HandleFunc("/blogs/user/me", app.requireAuthUser(app.listMyBlogsHandler)).Methods(http.MethodGet)
	router.HandleFunc("/blogs/{id}", app.getBlogHandler).Methods(http.MethodGet)
	router.HandleFunc("/blogs/{id}", app.requireAuthUser(app.updateBlogHandler)).Methods(http.MethodPut)
	router.HandleFunc("/blogs/{id}", app.requireAuthUser(app.deleteBlogHandler)).Methods(http.MethodDelete)
	router.HandleFunc("/blogs/{id}/state", app.requireAuthUser(app.updateBlogStateHandler)).Methods(http.MethodPatch)

	return app.recoverPanic(app.enableCORS(app.logRequest(router)))
}
