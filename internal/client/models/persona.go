package models

const (
	PersonaClient = "client"
	PersonaAdmin  = "admin"
)

// PersonaData is the backend's view of the current client.
type PersonaData struct {
	Persona      string `json:"persona"`
	Name         string `json:"name"`
	RecoveryCode string `json:"recovery_code,omitempty"`
	Version      string `json:"version,omitempty"`
}

// AnonymousPersona is what callers get when the persona cannot be fetched.
// It means "unknown", not "error".
func AnonymousPersona() PersonaData {
	return PersonaData{Persona: PersonaClient, Name: ""}
}

func (p PersonaData) IsAdmin() bool {
	return p.Persona == PersonaAdmin
}
