package domain

import (
	"strconv"
	"time"
)

var userEditFields = []Field{
	{Name: "last_name", Label: "Last Name"},
	{Name: "first_name", Label: "First Name"},
	{Name: "username", Label: "Username"},
	{Name: "email", Label: "Email Address"},
}

// UsersResource is the users collection.
var UsersResource = Resource{
	Name:       "users",
	Singular:   "User",
	IDField:    "UserID",
	Subject:    "user-page",
	CreatePath: "users",
	CreateFields: append(append([]Field{}, userEditFields...),
		Field{Name: "password", Label: "Password"},
		Field{Name: "password_confirmation", Label: "Confirm Password"},
	),
	UpdateFields: userEditFields,
	Encoding:     EncodingJSON,
	UpdateVerb:   UpdatePut,
	Messages: Messages{
		Created:      "User Added Successfully",
		Updated:      "User Information Edited Successfully",
		Deleted:      "User deleted successfully",
		DeleteFailed: "Error deleting user",
	},
}

// User is a dashboard account.
type User struct {
	UserID       int64     `json:"UserID" bson:"user_id"`
	FirstName    string    `json:"first_name" bson:"first_name"`
	LastName     string    `json:"last_name" bson:"last_name"`
	Username     string    `json:"username" bson:"username"`
	Email        string    `json:"email" bson:"email"`
	Role         Role      `json:"role,omitempty" bson:"role"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// FullName is the display name used by the users table.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// UserFromRow reads the typed view of a users row.
func UserFromRow(r Row) User {
	id, _ := strconv.ParseInt(r.ID(UsersResource.IDField), 10, 64)
	return User{
		UserID:    id,
		FirstName: r.String("first_name"),
		LastName:  r.String("last_name"),
		Username:  r.String("username"),
		Email:     r.String("email"),
		Role:      Role(r.String("role")),
	}
}
