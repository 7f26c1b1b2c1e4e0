package models

// User is an account. Students and professors each own exactly one.
type User struct {
	ID        ObjectID `json:"_id"`
	Email     string   `json:"email"`
	Password  string   `json:"password"` // bcrypt hash
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Role      Role     `json:"role"`
	IsActive  *bool    `json:"isActive,omitempty"` // absent means active
	LastLogin *Date    `json:"lastLogin"`
	CreatedAt Date     `json:"createdAt"`
	UpdatedAt Date     `json:"updatedAt"`
}

func (u User) EntityID() ObjectID { return u.ID }

// Active reports whether the account may log in
func (u User) Active() bool {
	return u.IsActive == nil || *u.IsActive
}

// FullName joins first and last name
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// UserSummary is the public projection of a user
type UserSummary struct {
	ID        ObjectID `json:"_id"`
	Email     string   `json:"email"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Role      Role     `json:"role"`
	IsActive  bool     `json:"isActive"`
	LastLogin *Date    `json:"lastLogin"`
}

// Summary strips the password hash
func (u User) Summary() UserSummary {
	return UserSummary{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		IsActive:  u.Active(),
		LastLogin: u.LastLogin,
	}
}
