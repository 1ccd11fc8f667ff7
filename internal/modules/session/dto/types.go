package dto

type LoginInput struct {
	Email    string
	Password string
}

type ProfileOutput struct {
	Name     string
	Email    string
	Business string
	ABN      string
	Phone    string
}

type SessionOutput struct {
	Authenticated bool
	Email         string
	Profile       ProfileOutput
}
