package client

import "context"

// SessionService handles anonymous sessions.
type SessionService struct {
	c *Client
}

// CreateAnonymous starts a new anonymous session. The returned token is not
// installed on the client; pass it to New with WithToken.
func (s *SessionService) CreateAnonymous(ctx context.Context, displayName string) (*Session, error) {
	var session Session
	body := map[string]string{}
	if displayName != "" {
		body["display_name"] = displayName
	}
	if err := s.c.post(ctx, "/api/v1/sessions/anonymous", body, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Me returns the user the client's token belongs to.
func (s *SessionService) Me(ctx context.Context) (*User, error) {
	var user User
	if err := s.c.get(ctx, "/api/v1/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
