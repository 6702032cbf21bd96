package auth

// Claims representa la información extraída del token.
// El proveedor de identidad es externo; acá no se manejan sesiones.
type Claims struct {
	UserID        string
	Email         string
	EmailVerified bool
}
