package services

import (
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"inventario/internal/domain"
	"inventario/internal/domain/models"
	"inventario/internal/repositories"
	"inventario/internal/utils"
)

const edadMinima = 18

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthService maneja registro y login. La verificación del token en las
// rutas protegidas vive en el middleware, no acá.
type AuthService struct {
	Users     repositories.UserRepository
	JWTSecret []byte
	TokenTTL  time.Duration
	RequestID string
}

type RegisterInput struct {
	Nombre          string `json:"nombre"`
	Apellido        string `json:"apellido"`
	FechaNacimiento string `json:"fechaNacimiento"`
	Email           string `json:"email"`
	Pais            string `json:"pais"`
	Password        string `json:"password"`
}

// Register valida campos obligatorios, formato de email, edad mínima y
// unicidad del email antes de guardar el hash bcrypt.
func (s AuthService) Register(in RegisterInput) (models.PublicUser, error) {
	required := []struct {
		campo, valor string
	}{
		{"nombre", in.Nombre},
		{"apellido", in.Apellido},
		{"fechaNacimiento", in.FechaNacimiento},
		{"email", in.Email},
		{"pais", in.Pais},
		{"password", in.Password},
	}
	faltantes := []string{}
	for _, r := range required {
		if strings.TrimSpace(r.valor) == "" {
			faltantes = append(faltantes, r.campo)
		}
	}
	if len(faltantes) > 0 {
		return models.PublicUser{}, domain.ValidationError{
			Msg:     "Faltan campos obligatorios: " + strings.Join(faltantes, ", "),
			Details: faltantes,
		}
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if !emailRe.MatchString(email) {
		return models.PublicUser{}, domain.ValidationError{Field: "email", Msg: "Formato de email inválido"}
	}

	nacimiento, err := parseFechaNacimiento(in.FechaNacimiento)
	if err != nil {
		return models.PublicUser{}, domain.ValidationError{Field: "fechaNacimiento", Msg: "fecha inválida", Err: err}
	}

	u := models.User{
		Nombre:          strings.TrimSpace(in.Nombre),
		Apellido:        strings.TrimSpace(in.Apellido),
		FechaNacimiento: nacimiento,
		Email:           email,
		Pais:            strings.TrimSpace(in.Pais),
	}
	if u.Edad(time.Now()) < edadMinima {
		return models.PublicUser{}, domain.ValidationError{
			Field: "fechaNacimiento",
			Msg:   "Debes tener al menos 18 años para registrarte",
		}
	}

	exists, err := s.Users.EmailExists(email)
	if err != nil {
		return models.PublicUser{}, err
	}
	if exists {
		return models.PublicUser{}, domain.ConflictError{Resource: "usuario", Msg: "El correo ya está registrado"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.PublicUser{}, domain.InternalError{Msg: "error generando hash de password", Err: err}
	}
	u.PasswordHash = string(hash)

	// El índice único cubre la carrera entre el check y el insert.
	created, err := s.Users.Create(u)
	if err != nil {
		return models.PublicUser{}, err
	}

	utils.LogEvent(s.RequestID, "auth", "register", "email="+email)
	return created.ToPublic(), nil
}

// Login compara credenciales y emite el token firmado (HS256).
// Email desconocido y password incorrecto responden igual.
func (s AuthService) Login(email, password string) (string, models.PublicUser, error) {
	u, err := s.Users.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if domain.IsNotFound(err) {
			return "", models.PublicUser{}, domain.UnauthorizedError{Msg: "Credenciales inválidas"}
		}
		return "", models.PublicUser{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", models.PublicUser{}, domain.UnauthorizedError{Msg: "Credenciales inválidas", Err: err}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": u.ID,
		"exp":    time.Now().Add(s.TokenTTL).Unix(),
	})
	signed, err := token.SignedString(s.JWTSecret)
	if err != nil {
		return "", models.PublicUser{}, domain.InternalError{Msg: "error firmando el token", Err: err}
	}

	utils.LogEvent(s.RequestID, "auth", "login", "user_id ok")
	return signed, u.ToPublic(), nil
}

func parseFechaNacimiento(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
