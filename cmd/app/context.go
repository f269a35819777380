package main

import (
	"context"
	"net/http"

	"github.com/sushihentaime/blogapi/internal/userservice"
)

type contextKey int

const authUserKey contextKey = iota

// withAuthUser returns a shallow copy of r carrying the authenticated user.
func withAuthUser(r *http.Request, user *userservice.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), authUserKey, user))
}

// authUser returns the user placed by requireAuthUser. Reaching it on an unguarded route is a
// wiring bug, so it panics.
func authUser(r *http.Request) *userservice.User {
	user, ok := r.Context().Value(authUserKey).(*userservice.User)
	if !ok {
		panic("authUser called on a route without requireAuthUser")
	}
	return user
}
