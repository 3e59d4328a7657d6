package types

import "time"

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// UpsertProfileRequest carries a create-or-update submission. Optional
// fields are pointers so that an absent field never clears a stored value;
// only non-nil fields make it into the update.
type UpsertProfileRequest struct {
	Status         string  `json:"status" binding:"required"`
	Skills         string  `json:"skills" binding:"required"`
	Company        *string `json:"company"`
	Website        *string `json:"website"`
	Location       *string `json:"location"`
	Bio            *string `json:"bio"`
	GithubUsername *string `json:"githubusername"`
	Youtube        *string `json:"youtube"`
	Twitter        *string `json:"twitter"`
	Facebook       *string `json:"facebook"`
	Linkedin       *string `json:"linkedin"`
	Instagram      *string `json:"instagram"`
}

type AddExperienceRequest struct {
	Company     string     `json:"company" binding:"required"`
	Title       string     `json:"title" binding:"required"`
	Location    string     `json:"location"`
	From        time.Time  `json:"from" binding:"required"`
	To          *time.Time `json:"to"`
	Current     bool       `json:"current"`
	Description string     `json:"description"`
}

type AddEducationRequest struct {
	School       string     `json:"school" binding:"required"`
	Degree       string     `json:"degree" binding:"required"`
	FieldOfStudy string     `json:"fieldofstudy" binding:"required"`
	From         time.Time  `json:"from" binding:"required"`
	To           *time.Time `json:"to"`
	Current      bool       `json:"current"`
	Description  string     `json:"description"`
}

type CreatePostRequest struct {
	Text string `json:"text" binding:"required"`
}

type AddCommentRequest struct {
	Text string `json:"text" binding:"required"`
}
