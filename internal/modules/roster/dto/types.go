package dto

type ClientOutput struct {
	ID    int64
	Name  string
	Email string
}

type CreateClientInput struct {
	Name  string
	Email string
}

type ListOutput struct {
	Clients []ClientOutput
	// FromCache is set when the remote fetch failed on transport and the
	// last good snapshot was served instead.
	FromCache bool
}
