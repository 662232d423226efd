package domain

// User is an account record in the Users collection. Password holds the
// bcrypt hash, never the plaintext. Username is the login key and must be
// unique; uniqueness is enforced at signup, not by the store.
type User struct {
	UserID    string `json:"user_id" bson:"UserID"`
	Username  string `json:"username" bson:"Username"`
	Password  string `json:"-" bson:"Password"`
	CreatedAt string `json:"created_at" bson:"CreatedAt"`
}
