package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidToken       = errors.New("invalid token")

	ErrProfileNotFound = errors.New("profile not found")
	ErrEntryNotFound   = errors.New("entry not found")

	ErrPostNotFound  = errors.New("post not found")
	ErrNotPostOwner  = errors.New("user is not the post owner")
	ErrAlreadyLiked  = errors.New("post already liked")
	ErrNotLiked      = errors.New("post has not yet been liked")
	ErrNoGitHubUser  = errors.New("no github profile found")
)
