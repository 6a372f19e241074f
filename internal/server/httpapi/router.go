package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (s *HTTPServer) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.logRequests)

	r.HandleFunc("/auth/register", s.register).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", s.login).Methods(http.MethodPost)

	r.Handle("/auth/hwid", s.requireToken(s.getHWID)).Methods(http.MethodGet)
	r.Handle("/auth/register-hwid", s.requireToken(s.registerHWID)).Methods(http.MethodPost)
	r.Handle("/auth/profile", s.requireToken(s.profile)).Methods(http.MethodGet)
	r.Handle("/auth/check-subscription", s.requireToken(s.checkSubscription)).Methods(http.MethodGet)
	r.Handle("/auth/is-subscribed", s.requireToken(s.isSubscribed)).Methods(http.MethodGet)
	r.Handle("/auth/is-banned", s.requireToken(s.isBanned)).Methods(http.MethodGet)
	r.Handle("/auth/ban", s.requireToken(s.ban)).Methods(http.MethodPut)
	r.Handle("/auth/create-checkout", s.requireToken(s.createCheckout)).Methods(http.MethodPost)

	r.HandleFunc("/auth/payment/success", s.paymentSuccess).Methods(http.MethodGet)
	r.HandleFunc("/auth/payment/cancel", s.paymentCancel).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
	return r
}
