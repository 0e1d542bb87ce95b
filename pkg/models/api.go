// pkg/models/api.go
package models

import "time"

// Laravel-style validation error response
type ValidationErrorResponse struct {
	Message string              `json:"message" example:"Validation failed"`
	Errors  map[string][]string `json:"errors"`
}

// Generic error response (401/403/404/409/500)
type ErrorResponse struct {
	Error   bool   `json:"error" example:"true"`
	Message string `json:"message" example:"Forbidden"`
	Code    string `json:"code,omitempty" example:"FORBIDDEN"`
}

// PublicUser is the account shape handlers return; it never carries the
// password hash or the credential document reference.
type PublicUser struct {
	ID                 string        `json:"id"`
	Email              string        `json:"email"`
	Phone              string        `json:"phone"`
	FullName           string        `json:"full_name"`
	Role               Role          `json:"role"`
	AccountStatus      AccountStatus `json:"account_status"`
	SuperAdmin         bool          `json:"super_admin,omitempty"`
	DisclaimerAccepted bool          `json:"disclaimer_accepted"`
	CreatedAt          time.Time     `json:"created_at"`
	Lawyer             *PublicLawyer `json:"lawyer,omitempty"`
}

// PublicLawyer is the exposed slice of a lawyer profile.
type PublicLawyer struct {
	Specialty       Specialty          `json:"specialty"`
	Verification    VerificationStatus `json:"verification"`
	Rating          float64            `json:"rating"`
	NumberOfRatings int                `json:"number_of_ratings"`
	Reviews         []string           `json:"reviews"`
	WonCases        int                `json:"won_cases"`
}

// NewPublicUser maps a stored user to its public shape.
func NewPublicUser(u *User) PublicUser {
	out := PublicUser{
		ID:                 u.ID,
		Email:              u.Email,
		Phone:              u.Phone,
		FullName:           u.FullName,
		Role:               u.Role,
		AccountStatus:      u.AccountStatus,
		SuperAdmin:         u.SuperAdmin,
		DisclaimerAccepted: u.DisclaimerAccepted,
		CreatedAt:          u.CreatedAt,
	}
	if u.Lawyer != nil {
		reviews := u.Lawyer.Reviews
		if reviews == nil {
			reviews = []string{}
		}
		out.Lawyer = &PublicLawyer{
			Specialty:       u.Lawyer.Specialty,
			Verification:    u.Lawyer.Verification,
			Rating:          u.Lawyer.Rating,
			NumberOfRatings: u.Lawyer.NumberOfRatings,
			Reviews:         reviews,
			WonCases:        u.Lawyer.WonCases,
		}
	}
	return out
}
