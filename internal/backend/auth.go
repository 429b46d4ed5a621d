package backend

import (
	"context"
	"net/http"
)

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Message string `json:"message"`
	User    struct {
		Name string `json:"name"`
	} `json:"user"`
}

// AuthResult is the user-facing outcome of a session-lifecycle call.
type AuthResult struct {
	Message  string
	UserName string
}

// Login opens a backend session (POST /login). The returned cookies carry
// the backend's session credential and must be relayed to the browser.
func (s *Session) Login(ctx context.Context, creds Credentials) (*AuthResult, []*http.Cookie, error) {
	var resp authResponse
	cookies, err := s.do(ctx, "login", http.MethodPost, "/login", nil, creds, &resp)
	if err != nil {
		return nil, cookies, err
	}
	return &AuthResult{Message: resp.Message, UserName: resp.User.Name}, cookies, nil
}

// Register creates an account (POST /register).
func (s *Session) Register(ctx context.Context, creds Credentials) (*AuthResult, []*http.Cookie, error) {
	var resp authResponse
	cookies, err := s.do(ctx, "register", http.MethodPost, "/register", nil, creds, &resp)
	if err != nil {
		return nil, cookies, err
	}
	return &AuthResult{Message: resp.Message, UserName: resp.User.Name}, cookies, nil
}

// Logout closes the backend session (POST /logout).
func (s *Session) Logout(ctx context.Context) (*AuthResult, []*http.Cookie, error) {
	var resp authResponse
	cookies, err := s.do(ctx, "logout", http.MethodPost, "/logout", nil, struct{}{}, &resp)
	if err != nil {
		return nil, cookies, err
	}
	return &AuthResult{Message: resp.Message}, cookies, nil
}
