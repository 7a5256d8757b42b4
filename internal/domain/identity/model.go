package identity

import "github.com/meditrack/meditrack/internal/platform/docstore"

// User is an account known to the service. The username doubles as the
// document id across both client apps.
type User struct {
	Username          string `json:"username"`
	Role              string `json:"role"`
	FullName          string `json:"full_name,omitempty"`
	Email             string `json:"email,omitempty"`
	PushToken         string `json:"push_token,omitempty"`
	SubscriptionToken string `json:"subscription_token,omitempty"`
}

// Patient links a patient account to its assigned doctor.
type Patient struct {
	Username  string `json:"username"`
	Doctor    string `json:"doctor"`
	CreatedAt string `json:"created_at,omitempty"`
}

// PushTarget carries the device identifiers the notification relay needs.
// The client registration flow writes it after the push SDK hands out ids.
type PushTarget struct {
	PushToken         string `json:"push_token"`
	SubscriptionToken string `json:"subscription_token"`
}

func (u *User) fields() docstore.Fields {
	return docstore.Fields{
		"role":               u.Role,
		"full_name":          u.FullName,
		"email":              u.Email,
		"push_token":         u.PushToken,
		"subscription_token": u.SubscriptionToken,
	}
}

func userFromFields(username string, f docstore.Fields) *User {
	u := &User{Username: username}
	if v, ok := f["role"].(string); ok {
		u.Role = v
	}
	if v, ok := f["full_name"].(string); ok {
		u.FullName = v
	}
	if v, ok := f["email"].(string); ok {
		u.Email = v
	}
	if v, ok := f["push_token"].(string); ok {
		u.PushToken = v
	}
	if v, ok := f["subscription_token"].(string); ok {
		u.SubscriptionToken = v
	}
	return u
}

func (p *Patient) fields() docstore.Fields {
	return docstore.Fields{
		"doctor":     p.Doctor,
		"created_at": p.CreatedAt,
	}
}

func patientFromFields(username string, f docstore.Fields) *Patient {
	p := &Patient{Username: username}
	if v, ok := f["doctor"].(string); ok {
		p.Doctor = v
	}
	if v, ok := f["created_at"].(string); ok {
		p.CreatedAt = v
	}
	return p
}
