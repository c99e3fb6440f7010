package client

import (
	"context"

	"github.com/mywatt/mywatt/lib/utils"
	"github.com/mywatt/mywatt/models"
)

// Login authenticates the user and persists the returned identity in the
// session store so every household-scoped operation can pick it up.
func (c *Client) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	if !utils.ValidateEmail(email) {
		return nil, preconditionError("invalid email format")
	}
	if password == "" {
		return nil, preconditionError("password cannot be empty")
	}

	var resp models.LoginResponse
	err := c.post(ctx, "/login", map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return nil, err
	}

	c.session.SetName(resp.Name)
	c.session.SetRole(string(resp.Role))
	c.session.SetEmail(resp.Email)
	c.session.SetUserID(resp.UserID.String())
	return &resp, nil
}

// Register creates a new account. The caller signs in separately afterwards.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) error {
	if len(req.Name) <= 1 {
		return preconditionError("name must be at least 2 characters")
	}
	if !utils.ValidateEmail(req.Email) {
		return preconditionError("invalid email format")
	}
	if !utils.ValidatePassword(req.Password) {
		return preconditionError("password must be at least 8 characters and contain both letters and numbers")
	}
	return c.post(ctx, "/register", req, nil)
}

// SignOut clears the local session. The backend holds no server-side
// session state, so nothing is sent over the wire.
func (c *Client) SignOut() {
	c.session.Clear()
}

// ResetPassword asks the backend to start a password reset for email.
func (c *Client) ResetPassword(ctx context.Context, email string) error {
	if !utils.ValidateEmail(email) {
		return preconditionError("invalid email format")
	}
	return c.post(ctx, "/reset_password", map[string]string{"email": email}, nil)
}

// UserSettings fetches the signed-in user's profile.
func (c *Client) UserSettings(ctx context.Context) (*models.UserSettings, error) {
	userID, err := c.requireUser()
	if err != nil {
		return nil, err
	}
	var settings models.UserSettings
	if err := c.get(ctx, "/user_settings/"+userID, nil, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateAccount changes the profile fields that are set to non-empty values
// and refreshes the copies held in the session.
func (c *Client) UpdateAccount(ctx context.Context, name, email string) error {
	userID, err := c.requireUser()
	if err != nil {
		return err
	}
	if name == "" && email == "" {
		return preconditionError("nothing to update")
	}
	if email != "" && !utils.ValidateEmail(email) {
		return preconditionError("new email is in invalid format")
	}

	body := map[string]string{"user_id": userID}
	if name != "" {
		body["name"] = name
	}
	if email != "" {
		body["email"] = email
	}
	if err := c.put(ctx, "/update_account", body, nil); err != nil {
		return err
	}

	if name != "" {
		c.session.SetName(name)
	}
	if email != "" {
		c.session.SetEmail(email)
	}
	return nil
}

// UpdatePrivacySettings pushes the privacy toggles for the signed-in user.
func (c *Client) UpdatePrivacySettings(ctx context.Context, dataSharing, activityTracking bool) error {
	userID, err := c.requireUser()
	if err != nil {
		return err
	}
	return c.put(ctx, "/update_privacy_settings", map[string]any{
		"user_id":           userID,
		"data_sharing":      dataSharing,
		"activity_tracking": activityTracking,
	}, nil)
}

// DeleteAccount removes the account on the backend, then clears the local
// session. The session is kept intact when the remote call fails so the
// user can retry.
func (c *Client) DeleteAccount(ctx context.Context) error {
	userID, err := c.requireUser()
	if err != nil {
		return err
	}
	if err := c.delete(ctx, "/delete_account", map[string]string{"user_id": userID}, nil); err != nil {
		return err
	}
	c.session.Clear()
	return nil
}
