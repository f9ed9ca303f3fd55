package model

import (
	"time"

	"github.com/golang-jwt/jwt"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// User is the identity record. Password is a bcrypt hash and is never
// serialized. The linkedin/twitter token fields are the legacy single-token
// storage kept for the /api/user/tokens flow; per-platform credentials live
// in UserCredentials.
type User struct {
	ID                  bson.ObjectID `json:"id" bson:"_id,omitempty"`
	Name                string        `json:"name" bson:"name,omitempty"`
	Email               string        `json:"email" bson:"email"`
	Password            string        `json:"-" bson:"password,omitempty"`
	TwitterToken        string        `json:"-" bson:"twitterToken,omitempty"`
	LinkedinToken       string        `json:"-" bson:"linkedinToken,omitempty"`
	LinkedinTokenExpiry *time.Time    `json:"-" bson:"linkedinTokenExpiry,omitempty"`
	LinkedinPersonURN   string        `json:"-" bson:"linkedinPersonUrn,omitempty"`
	CreatedAt           time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt           time.Time     `json:"updatedAt" bson:"updatedAt"`
}

// UserView is the wire shape returned by the user endpoints. Token presence
// is exposed as booleans only.
type UserView struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	HasTwitterToken   bool      `json:"hasTwitterToken"`
	HasLinkedinToken  bool      `json:"hasLinkedinToken"`
	CreatedAt         time.Time `json:"createdAt,omitempty"`
}

func (u *User) View() UserView {
	return UserView{
		ID:               u.ID.Hex(),
		Name:             u.Name,
		Email:            u.Email,
		HasTwitterToken:  u.TwitterToken != "",
		HasLinkedinToken: u.LinkedinToken != "",
		CreatedAt:        u.CreatedAt,
	}
}

type UserClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.StandardClaims
}

type ReqRegister struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ReqLogin struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ReqAuthenticate struct {
	Email string `json:"email"`
}

type ReqUpdateToken struct {
	Platform string `json:"platform"`
	Token    string `json:"token"`
}
