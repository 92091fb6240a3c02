package models

// Identity is what the external identity provider gives us: just enough to
// stamp orders with who bought. Zero value means an anonymous buyer.
type Identity struct {
	UID   string
	Name  string
	Email string
}
