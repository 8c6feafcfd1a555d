package models

import "time"

type User struct {
	ID              int64     `json:"id"`
	Nombre          string    `json:"nombre"`
	Apellido        string    `json:"apellido"`
	FechaNacimiento time.Time `json:"fechaNacimiento"`
	Email           string    `json:"email"`
	Pais            string    `json:"pais"`
	PasswordHash    string    `json:"-"` // nunca se envía al frontend
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// PublicUser es la forma que viaja en las respuestas de auth.
type PublicUser struct {
	ID              int64     `json:"id"`
	Nombre          string    `json:"nombre"`
	Apellido        string    `json:"apellido"`
	Email           string    `json:"email"`
	Pais            string    `json:"pais"`
	FechaNacimiento time.Time `json:"fechaNacimiento"`
}

func (u *User) ToPublic() PublicUser {
	return PublicUser{
		ID:              u.ID,
		Nombre:          u.Nombre,
		Apellido:        u.Apellido,
		Email:           u.Email,
		Pais:            u.Pais,
		FechaNacimiento: u.FechaNacimiento,
	}
}

// Edad calcula la edad en años cumplidos a la fecha dada (UTC).
func (u *User) Edad(now time.Time) int {
	diff := now.UTC().Sub(u.FechaNacimiento.UTC())
	// misma aritmética que el registro original: años epoch sobre la diferencia
	return time.Unix(0, 0).Add(diff).UTC().Year() - 1970
}
