package controllers

import (
	"context"
	"errors"
	"strings"
	"time"

	"lumen/lumen/config"
	"lumen/lumen/middlewares"
	"lumen/lumen/sources/psql/dao"
)

var ErrEmptyUsername = errors.New("username is required")

type AuthController struct {
	userDAO *dao.UserDAO
	cfg     config.Config
}

func NewAuthController(userDAO *dao.UserDAO, cfg config.Config) *AuthController {
	return &AuthController{
		userDAO: userDAO,
		cfg:     cfg,
	}
}

// Login returns a token for username, creating the account on first use.
func (c *AuthController) Login(ctx context.Context, username string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", ErrEmptyUsername
	}
	user, err := c.userDAO.GetUserByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if user == nil {
		user, err = c.userDAO.CreateUser(ctx, username, username+"@example.com", nil)
		if err != nil {
			return "", err
		}
	}
	return middlewares.IssueToken(c.cfg.JWTSecret, user.ID, time.Now())
}
