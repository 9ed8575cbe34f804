// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// CheckHTTPMethod is registered as the router's MethodNotAllowed handler via
// [chi.Mux.MethodNotAllowed].
//
// Chi answers 405 when a path matches a registered route but the method does
// not. This portal answers 404 instead so that probing with unsupported
// methods reveals nothing about which paths exist. When the method IS
// registered for the matched pattern the request is handed back to the
// router's normal pipeline.
//
// The pattern lookup compares route patterns against the raw request path;
// parameterised segments are not expanded, which is exactly the case where
// falling through to 404 is the desired answer.
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var matched chi.Route
		for _, route := range router.Routes() {
			if route.Pattern == r.URL.Path {
				matched = route
				break
			}
		}

		if _, ok := matched.Handlers[r.Method]; !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		router.ServeHTTP(w, r)
	}
}
