package model

// User is the public shape of an account, as sent to clients in signin
// replies and init packets.
type User struct {
	Name   string `json:"name"`
	Credit int    `json:"credit"`
	Title  string `json:"title"`
}

// Account is the stored user record. The password is kept alongside the
// public fields because the wire protocol compares it in the clear; it is
// never included in server-to-client messages.
type Account struct {
	Name   string `json:"name"`
	Passwd string `json:"passwd"`
	Credit int    `json:"credit"`
	Title  string `json:"title"`
}

// User returns the client-visible view of the account
func (a *Account) User() User {
	return User{
		Name:   a.Name,
		Credit: a.Credit,
		Title:  a.Title,
	}
}

// NewAccount creates a fresh account the way signup does: zero credit and
// the lowest title
func NewAccount(name, passwd string) *Account {
	return &Account{
		Name:   name,
		Passwd: passwd,
		Credit: 0,
		Title:  DefaultTitle,
	}
}
