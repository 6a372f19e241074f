package httpapi

import (
	"math"
	"net/http"
	"time"

	"github.com/dmitrijs2005/hwidgate/internal/server/users"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

type hwidRequest struct {
	HWID string `json:"hwid"`
}

type hwidResponse struct {
	HWID *string `json:"hwid"`
}

type banRequest struct {
	UserID any `json:"userId"`
}

type checkoutRequest struct {
	Months int `json:"months"`
}

type checkoutResponse struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
	Months    int    `json:"months"`
}

type profileResponse struct {
	ID                    string     `json:"id"`
	Username              string     `json:"username"`
	HWID                  *string    `json:"hwid"`
	IsBanned              bool       `json:"isBanned"`
	IsSubscribed          bool       `json:"isSubscribed"`
	SubscriptionExpiresAt *time.Time `json:"subscriptionExpiresAt"`
	CreatedAt             time.Time  `json:"createdAt"`
}

type subscriptionResponse struct {
	IsSubscribed          bool       `json:"isSubscribed"`
	SubscriptionExpiresAt *time.Time `json:"subscriptionExpiresAt"`
	DaysRemaining         int        `json:"daysRemaining"`
}

type paymentResponse struct {
	Message               string     `json:"message"`
	IsSubscribed          bool       `json:"isSubscribed"`
	SubscriptionExpiresAt *time.Time `json:"subscriptionExpiresAt"`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func expiry(u *users.User) *time.Time {
	if u.SubscribedUntil.IsZero() {
		return nil
	}
	t := u.SubscribedUntil.UTC()
	return &t
}

func (s *HTTPServer) register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	session, err := s.users.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Registered", "username", session.UserName)
	writeJSON(w, http.StatusCreated, authResponse{Token: session.Token, Username: session.UserName})
}

func (s *HTTPServer) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	session, err := s.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{Token: session.Token, Username: session.UserName})
}

func (s *HTTPServer) getHWID(w http.ResponseWriter, r *http.Request) {
	u, err := s.users.Get(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, hwidResponse{HWID: optional(u.HWID)})
}

func (s *HTTPServer) registerHWID(w http.ResponseWriter, r *http.Request) {
	var req hwidRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	userID := userIDFrom(r.Context())
	if err := s.users.RegisterHWID(r.Context(), userID, req.HWID); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "HWID registered", "user_id", userID)
	writeJSON(w, http.StatusOK, messageResponse{Message: "HWID registered successfully"})
}

func (s *HTTPServer) profile(w http.ResponseWriter, r *http.Request) {
	u, err := s.users.Get(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profileResponse{
		ID:                    u.ID,
		Username:              u.UserName,
		HWID:                  optional(u.HWID),
		IsBanned:              u.Banned,
		IsSubscribed:          u.Subscribed(s.users.Now()),
		SubscriptionExpiresAt: expiry(u),
		CreatedAt:             u.CreatedAt.UTC(),
	})
}

func (s *HTTPServer) checkSubscription(w http.ResponseWriter, r *http.Request) {
	u, err := s.users.Get(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	now := s.users.Now()
	resp := subscriptionResponse{IsSubscribed: u.Subscribed(now), SubscriptionExpiresAt: expiry(u)}
	if resp.IsSubscribed {
		resp.DaysRemaining = int(math.Ceil(u.SubscribedUntil.Sub(now).Hours() / 24))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *HTTPServer) isSubscribed(w http.ResponseWriter, r *http.Request) {
	u, err := s.users.Get(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"isSubscribed": u.Subscribed(s.users.Now())})
}

func (s *HTTPServer) isBanned(w http.ResponseWriter, r *http.Request) {
	u, err := s.users.Get(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"isBanned": u.Banned})
}

func (s *HTTPServer) ban(w http.ResponseWriter, r *http.Request) {
	var req banRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	target, _ := req.UserID.(string)

	if err := s.users.Ban(r.Context(), userIDFrom(r.Context()), target); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.logger.Warn(r.Context(), "User banned", "user_id", target)
	writeJSON(w, http.StatusOK, messageResponse{Message: "User banned"})
}

func (s *HTTPServer) createCheckout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	c, url, err := s.users.CreateCheckout(r.Context(), userIDFrom(r.Context()), req.Months)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, checkoutResponse{SessionID: c.SessionID, URL: url, Months: c.Months})
}

func (s *HTTPServer) paymentSuccess(w http.ResponseWriter, r *http.Request) {
	u, err := s.users.CompleteCheckout(r.Context(), r.URL.Query().Get("session_id"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, paymentResponse{
		Message:               "Payment successful",
		IsSubscribed:          u.Subscribed(s.users.Now()),
		SubscriptionExpiresAt: expiry(u),
	})
}

func (s *HTTPServer) paymentCancel(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{Message: "Payment cancelled"})
}
